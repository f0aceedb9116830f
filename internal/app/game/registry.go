package game

import (
	"sync"
	"sync/atomic"
	"time"

	"trapzone/internal/app/ports"
	"trapzone/internal/domain/hunting"
)

// Registry holds live sessions. Each session is guarded by its own mutex so
// commands against different sessions run in parallel.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*liveSession
}

type liveSession struct {
	mu       sync.Mutex
	id       string
	session  *hunting.Session
	recorder *hunting.Recorder
	nextSeq  int64
	closed   bool

	// closedAt is the wall time (unix nanos) the session ended; 0 while it
	// runs. Read without mu by EvictClosed.
	closedAt atomic.Int64
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[string]*liveSession{}}
}

func (r *Registry) add(live *liveSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[live.id] = live
}

func (r *Registry) get(id string) (*liveSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	live, ok := r.sessions[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return live, nil
}

// EvictClosed drops sessions that ended before cutoff and returns their ids.
// Their summaries stay in the journal.
func (r *Registry) EvictClosed(cutoff time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var evicted []string
	for id, live := range r.sessions {
		at := live.closedAt.Load()
		if at != 0 && at < cutoff.UnixNano() {
			delete(r.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Snapshot returns the current view of a live session.
func (r *Registry) Snapshot(id string) (hunting.Snapshot, error) {
	live, err := r.get(id)
	if err != nil {
		return hunting.Snapshot{}, err
	}
	live.mu.Lock()
	defer live.mu.Unlock()
	return live.session.Snapshot(), nil
}
