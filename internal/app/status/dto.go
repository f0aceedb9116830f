package status

import (
	"trapzone/internal/app/ports"
	"trapzone/internal/domain/hunting"
)

type Request struct {
	SessionID string
}

type Response struct {
	SessionID string               `json:"session_id"`
	Live      bool                 `json:"live"`
	Snapshot  *hunting.Snapshot    `json:"snapshot,omitempty"`
	Record    *ports.SessionRecord `json:"record,omitempty"`
	Message   string               `json:"message,omitempty"`
}
