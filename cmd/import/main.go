package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dvloznov/spent-tracker/internal/logger"
	"github.com/dvloznov/spent-tracker/internal/pipeline"
	"github.com/dvloznov/spent-tracker/internal/store"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	csvDir := flag.String("dir", ".", "Directory holding the bank CSV exports")
	bucket := flag.String("bucket", "", "GCS bucket holding the transaction history (required)")
	object := flag.String("object", "transactions.json", "GCS object name of the transaction history")
	keepFiles := flag.Bool("keep-files", false, "Keep the CSV files after a successful import")
	flag.Parse()

	if *bucket == "" {
		log.Fatal().Msg("Error: --bucket is required")
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Str("dir", *csvDir).
		Str("bucket", *bucket).
		Str("object", *object).
		Msg("Starting import")

	cfg := pipeline.Config{
		CSVDir:    *csvDir,
		KeepFiles: *keepFiles,
	}

	imported, err := pipeline.Import(ctx, cfg, store.NewGCS(*bucket, *object))
	if err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}

	fmt.Printf("Import completed successfully, %d transactions added.\n", imported)
}
