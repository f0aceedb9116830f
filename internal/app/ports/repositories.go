package ports

import (
	"context"
	"errors"
	"time"

	"trapzone/internal/domain/hunting"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a write that would reuse a sequence number or
	// close a session twice.
	ErrConflict = errors.New("conflict")
)

// TxManager runs fn with a context carrying the backend transaction.
// Repositories called with that context join it; a nested RunInTx reuses the
// outer transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// JournalEntry is one stored notification. Seq is dense and increasing per
// session.
type JournalEntry struct {
	SessionID  string        `json:"session_id"`
	Seq        int64         `json:"seq"`
	Event      hunting.Event `json:"event"`
	ClockAt    time.Duration `json:"clock_at"`
	RecordedAt time.Time     `json:"recorded_at"`
}

type SessionRecord struct {
	SessionID    string     `json:"session_id"`
	Seed         int64      `json:"seed"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	Reason       string     `json:"reason,omitempty"`
	FinalBalance int        `json:"final_balance"`
}

type EventRepository interface {
	Append(ctx context.Context, sessionID string, entries []JournalEntry) error
	// ListBySessionID returns the latest limit entries (all when limit <= 0)
	// in ascending Seq order.
	ListBySessionID(ctx context.Context, sessionID string, limit int) ([]JournalEntry, error)
}

type SessionRepository interface {
	Create(ctx context.Context, record SessionRecord) error
	Close(ctx context.Context, sessionID, reason string, finalBalance int, endedAt time.Time) error
	Get(ctx context.Context, sessionID string) (SessionRecord, error)
}

type EventPublisher interface {
	Publish(sessionID string, entries []JournalEntry)
}
