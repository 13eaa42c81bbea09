package store

import (
	"context"
	"sync"

	"github.com/dvloznov/spent-tracker/internal/transaction"
)

// Memory is an in-memory HistoryStore for tests and dry runs. It is safe
// for concurrent use. Data is lost when the process exits.
type Memory struct {
	mu      sync.RWMutex
	history []*transaction.Transaction

	// Uploads counts completed Upload calls, so tests can assert whether a
	// merge actually persisted anything.
	Uploads int
}

var _ HistoryStore = (*Memory)(nil)

// NewMemory creates a store seeded with the given history.
func NewMemory(history []*transaction.Transaction) *Memory {
	return &Memory{history: history}
}

// Download implements HistoryStore.
func (m *Memory) Download(ctx context.Context) ([]*transaction.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*transaction.Transaction, len(m.history))
	copy(out, m.history)
	return out, nil
}

// Upload implements HistoryStore.
func (m *Memory) Upload(ctx context.Context, transactions []*transaction.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history = make([]*transaction.Transaction, len(transactions))
	copy(m.history, transactions)
	m.Uploads++
	return nil
}
