package memory

import (
	"context"
	"sync"

	"trapzone/internal/app/ports"
)

// Store keeps the journal in process memory. txMu serialises transactions;
// mu guards the maps so reads outside a transaction stay safe.
type Store struct {
	txMu     sync.Mutex
	mu       sync.RWMutex
	sessions map[string]ports.SessionRecord
	events   map[string][]ports.JournalEntry
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]ports.SessionRecord),
		events:   make(map[string][]ports.JournalEntry),
	}
}

// TxManager serialises journal writes on the store. Nothing is rolled back,
// so a failed Append leaves an earlier Create of the same tx in place.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()
	return fn(ctx)
}
