package hunting

import "time"

const (
	OverpopulationThreshold = 20

	SpawnCheckCap   = 10
	SpawnRollFaces  = 10
	BankruptBalance = 0

	DefaultGoalBalance  = 1000
	DefaultStartMoney   = 100
	DefaultTaxMin       = 15
	DefaultTaxMax       = 35
	DefaultInitialStock = 5

	DefaultTaxInterval   = 10 * time.Second
	DefaultHuntInterval  = 5 * time.Second
	DefaultSpawnInterval = 1 * time.Second
)

const (
	ReasonBankrupt     = "bankrupt"
	ReasonGoalReached  = "goal reached"
	reasonExtinctionAt = "extinction: "
	reasonOverrunAt    = "overrun: "
)
