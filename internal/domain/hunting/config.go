package hunting

import (
	"fmt"
	"strings"
	"time"
)

type Timers struct {
	Tax   time.Duration `json:"tax"`
	Hunt  time.Duration `json:"hunt"`
	Spawn time.Duration `json:"spawn"`
}

type Config struct {
	Catalog      Catalog    `json:"catalog"`
	Zones        []ZoneSpec `json:"zones"`
	StartMoney   int        `json:"start_money"`
	TaxMin       int        `json:"tax_min"`
	TaxMax       int        `json:"tax_max"`
	GoalBalance  int        `json:"goal_balance"`
	InitialStock int        `json:"initial_stock"`
	Timers       Timers     `json:"timers"`
	Seed         int64      `json:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Catalog:      DefaultCatalog(),
		Zones:        []ZoneSpec{{ID: "meadow", Name: "Meadow"}},
		StartMoney:   DefaultStartMoney,
		TaxMin:       DefaultTaxMin,
		TaxMax:       DefaultTaxMax,
		GoalBalance:  DefaultGoalBalance,
		InitialStock: DefaultInitialStock,
		Timers: Timers{
			Tax:   DefaultTaxInterval,
			Hunt:  DefaultHuntInterval,
			Spawn: DefaultSpawnInterval,
		},
	}
}

// Validate is meant to run once at startup. Any error here is a
// configuration mistake, not a runtime condition.
func (c Config) Validate() error {
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	if len(c.Zones) == 0 {
		return fmt.Errorf("%w: at least one zone is required", ErrInvalidConfig)
	}
	seen := make(map[ZoneID]struct{}, len(c.Zones))
	for _, z := range c.Zones {
		if strings.TrimSpace(string(z.ID)) == "" {
			return fmt.Errorf("%w: zone with empty id", ErrInvalidConfig)
		}
		if _, dup := seen[z.ID]; dup {
			return fmt.Errorf("%w: duplicate zone %q", ErrInvalidConfig, z.ID)
		}
		seen[z.ID] = struct{}{}
	}
	if c.TaxMin < 0 || c.TaxMax < c.TaxMin {
		return fmt.Errorf("%w: tax range [%d,%d) is invalid", ErrInvalidConfig, c.TaxMin, c.TaxMax)
	}
	if c.GoalBalance <= BankruptBalance {
		return fmt.Errorf("%w: goal balance must be positive", ErrInvalidConfig)
	}
	if c.InitialStock < 0 {
		return fmt.Errorf("%w: initial stock must not be negative", ErrInvalidConfig)
	}
	if c.Timers.Tax <= 0 || c.Timers.Hunt <= 0 || c.Timers.Spawn <= 0 {
		return fmt.Errorf("%w: timer intervals must be positive", ErrInvalidConfig)
	}
	return nil
}
