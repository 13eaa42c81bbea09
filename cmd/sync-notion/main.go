package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dvloznov/spent-tracker/internal/logger"
	"github.com/dvloznov/spent-tracker/internal/notionsync"
	"github.com/dvloznov/spent-tracker/internal/store"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	bucket := flag.String("bucket", "", "GCS bucket holding the transaction history (required)")
	object := flag.String("object", "transactions.json", "GCS object name of the transaction history")
	notionToken := flag.String("notion-token", "", "Notion API token (required)")
	notionDBID := flag.String("notion-db-id", "", "Notion database ID (required)")
	dryRun := flag.Bool("dry-run", false, "Dry run mode - preview changes without syncing")
	flag.Parse()

	// Validate required flags
	if *bucket == "" {
		log.Fatal().Msg("Error: --bucket is required")
	}
	if *notionToken == "" {
		log.Fatal().Msg("Error: --notion-token is required")
	}
	if *notionDBID == "" {
		log.Fatal().Msg("Error: --notion-db-id is required")
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Str("bucket", *bucket).
		Str("object", *object).
		Bool("dry_run", *dryRun).
		Msg("Starting Notion sync")

	history, err := store.NewGCS(*bucket, *object).Download(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to download transaction history")
	}

	// Initialize Notion client
	notionClient := notionsync.NewNotionClient(*notionToken)

	// Sync transactions
	if err := notionsync.SyncTransactions(ctx, history, notionClient, *notionDBID, *dryRun); err != nil {
		log.Fatal().Err(err).Msg("Sync failed")
	}

	fmt.Println("Sync completed successfully.")
}
