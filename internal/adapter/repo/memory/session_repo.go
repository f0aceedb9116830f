package memory

import (
	"context"
	"time"

	"trapzone/internal/app/ports"
)

type SessionRepo struct {
	store *Store
}

func NewSessionRepo(store *Store) SessionRepo {
	return SessionRepo{store: store}
}

func (r SessionRepo) Create(_ context.Context, record ports.SessionRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.sessions[record.SessionID]; exists {
		return ports.ErrConflict
	}
	r.store.sessions[record.SessionID] = record
	return nil
}

func (r SessionRepo) Close(_ context.Context, sessionID, reason string, finalBalance int, endedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.store.sessions[sessionID]
	if !ok {
		return ports.ErrNotFound
	}
	if rec.EndedAt != nil {
		return ports.ErrConflict
	}
	rec.EndedAt = &endedAt
	rec.Reason = reason
	rec.FinalBalance = finalBalance
	r.store.sessions[sessionID] = rec
	return nil
}

func (r SessionRepo) Get(_ context.Context, sessionID string) (ports.SessionRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.sessions[sessionID]
	if !ok {
		return ports.SessionRecord{}, ports.ErrNotFound
	}
	return rec, nil
}
