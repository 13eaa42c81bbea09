package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dvloznov/spent-tracker/internal/infra/bigquery"
	"github.com/dvloznov/spent-tracker/internal/logger"
	"github.com/dvloznov/spent-tracker/internal/store"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	bucket := flag.String("bucket", "", "GCS bucket holding the transaction history (required)")
	object := flag.String("object", "transactions.json", "GCS object name of the transaction history")
	projectID := flag.String("project", "", "GCP project ID for BigQuery (required)")
	flag.Parse()

	if *bucket == "" {
		log.Fatal().Msg("Error: --bucket is required")
	}
	if *projectID == "" {
		log.Fatal().Msg("Error: --project is required")
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Str("bucket", *bucket).
		Str("object", *object).
		Str("project", *projectID).
		Msg("Starting BigQuery export")

	history, err := store.NewGCS(*bucket, *object).Download(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to download transaction history")
	}

	now := time.Now()
	rows := make([]*bigquery.TransactionRow, 0, len(history))
	var skipped int
	for _, t := range history {
		row, err := bigquery.RowFromTransaction(t, now)
		if err != nil {
			log.Warn().Err(err).Str("transaction_id", t.ID).Msg("Skipping unexportable transaction")
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	if err := bigquery.InsertTransactions(ctx, *projectID, rows); err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	log.Info().
		Int("exported", len(rows)).
		Int("skipped", skipped).
		Msg("BigQuery export completed")

	fmt.Printf("Exported %d transactions.\n", len(rows))
}
