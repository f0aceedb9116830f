package game

import "trapzone/internal/domain/hunting"

type StartRequest struct {
	Seed     *int64
	Scenario string
}

type PurchaseRequest struct {
	SessionID string
	TrapKind  string
}

type DeployRequest struct {
	SessionID string
	TrapKind  string
	Zone      string
}

type AdvanceRequest struct {
	SessionID string
	Seconds   float64
}

type FireRequest struct {
	SessionID string
	Process   string
}

type SessionRequest struct {
	SessionID string
}

type Response struct {
	SessionID string           `json:"session_id"`
	Seed      int64            `json:"seed"`
	Fired     int              `json:"fired"`
	Events    []hunting.Event  `json:"events"`
	Snapshot  hunting.Snapshot `json:"snapshot"`
}
