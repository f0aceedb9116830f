package replay

import (
	"time"

	"trapzone/internal/app/ports"
	"trapzone/internal/domain/hunting"
)

type Request struct {
	SessionID string
	Limit     int
	Types     []string
}

type Response struct {
	Events      []ports.JournalEntry `json:"events"`
	LatestState LatestState          `json:"latest_state"`
}

// LatestState is rebuilt from the absolute values carried by every journal
// entry of the session, regardless of the limit and type filters.
type LatestState struct {
	Balance *int                                            `json:"balance,omitempty"`
	Owned   map[hunting.TrapKindID]int                      `json:"owned"`
	Animals map[hunting.ZoneID]map[hunting.AnimalKindID]int `json:"animals"`
	Traps   map[hunting.ZoneID]map[hunting.TrapKindID]int   `json:"traps"`
	Caught  int                                             `json:"caught"`
	Clock   time.Duration                                   `json:"clock"`
	Over    bool                                            `json:"over"`
	Reason  string                                          `json:"reason,omitempty"`
}
