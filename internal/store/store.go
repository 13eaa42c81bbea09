// Package store persists the transaction history as a single JSON document
// in a blob store, read and overwritten wholesale. The core pipeline only
// sees the HistoryStore interface; callers are responsible for serializing
// read-merge-write cycles against a shared store.
package store

import (
	"context"

	"github.com/dvloznov/spent-tracker/internal/transaction"
)

// HistoryStore loads and saves the full transaction history.
type HistoryStore interface {
	// Download fetches the entire history. A store with no history yet
	// returns an empty slice, not an error.
	Download(ctx context.Context) ([]*transaction.Transaction, error)

	// Upload overwrites the entire history.
	Upload(ctx context.Context, transactions []*transaction.Transaction) error
}
