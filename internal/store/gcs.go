package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"

	"github.com/dvloznov/spent-tracker/internal/transaction"
)

// GCS stores the history blob in a Google Cloud Storage object. It assumes
// Application Default Credentials are configured.
type GCS struct {
	Bucket string
	Object string
}

var _ HistoryStore = (*GCS)(nil)

// NewGCS creates a store writing to gs://<bucket>/<object>.
func NewGCS(bucket, object string) *GCS {
	return &GCS{Bucket: bucket, Object: object}
}

// Download implements HistoryStore. A missing object yields an empty
// history, so a first-ever import starts from nothing.
func (g *GCS) Download(ctx context.Context) ([]*transaction.Transaction, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("Download: create storage client: %w", err)
	}
	defer client.Close()

	rc, err := client.Bucket(g.Bucket).Object(g.Object).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return []*transaction.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Download: reading object %s/%s: %w", g.Bucket, g.Object, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("Download: reading bytes: %w", err)
	}

	var transactions []*transaction.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("Download: unmarshal history: %w", err)
	}
	return transactions, nil
}

// Upload implements HistoryStore, overwriting the whole object.
func (g *GCS) Upload(ctx context.Context, transactions []*transaction.Transaction) error {
	data, err := json.Marshal(transactions)
	if err != nil {
		return fmt.Errorf("Upload: marshal history: %w", err)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("Upload: create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(g.Bucket).Object(g.Object).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("Upload: writing object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("Upload: finalize upload: %w", err)
	}
	return nil
}
