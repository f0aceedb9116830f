package memory

import (
	"context"

	"trapzone/internal/app/ports"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, sessionID string, entries []ports.JournalEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing := r.store.events[sessionID]
	var last int64
	if n := len(existing); n > 0 {
		last = existing[n-1].Seq
	}
	for _, e := range entries {
		if e.Seq <= last {
			return ports.ErrConflict
		}
		last = e.Seq
	}
	for _, e := range entries {
		e.SessionID = sessionID
		existing = append(existing, e)
	}
	r.store.events[sessionID] = existing
	return nil
}

func (r EventRepo) ListBySessionID(_ context.Context, sessionID string, limit int) ([]ports.JournalEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := r.store.events[sessionID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return append([]ports.JournalEntry(nil), all...), nil
}
