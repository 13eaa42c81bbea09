package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvloznov/spent-tracker/internal/jobs"
	"github.com/dvloznov/spent-tracker/internal/jobs/inmemory"
	"github.com/dvloznov/spent-tracker/internal/logger"
	"github.com/dvloznov/spent-tracker/internal/pipeline"
	"github.com/dvloznov/spent-tracker/internal/store"
)

func main() {
	// Initialize logger
	log := logger.New()

	// Parse CLI flags
	bucket := flag.String("bucket", "", "GCS bucket holding the transaction history (required)")
	object := flag.String("object", "transactions.json", "GCS object name of the transaction history")
	csvDir := flag.String("dir", "", "Directory to import at startup; the worker then keeps consuming jobs")
	workers := flag.Int("workers", 5, "Number of concurrent job workers")
	flag.Parse()

	if *bucket == "" {
		log.Fatal().Msg("Error: --bucket is required")
	}

	// Initialize job store and queue
	// In production, this would be replaced with Cloud Tasks or Pub/Sub
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, *workers, jobStore)

	log.Info().Msg("Starting worker service")

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = logger.WithContext(ctx, log)

	historyStore := store.NewGCS(*bucket, *object)

	// Create job handler that runs the import pipeline
	handler := func(ctx context.Context, job jobs.Job) error {
		importJob, ok := job.(*jobs.ImportBatchJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", importJob.JobID).
			Str("csv_dir", importJob.CSVDir).
			Msg("Processing import job")

		cfg := pipeline.Config{CSVDir: importJob.CSVDir}
		imported, err := pipeline.Import(ctx, cfg, historyStore)
		if err != nil {
			log.Error().
				Err(err).
				Str("job_id", importJob.JobID).
				Str("csv_dir", importJob.CSVDir).
				Msg("Import pipeline failed")
			return err
		}
		importJob.Imported = imported

		log.Info().
			Str("job_id", importJob.JobID).
			Int("imported", imported).
			Msg("Import pipeline completed successfully")

		return nil
	}

	// Start consuming jobs
	if err := jobQueue.Start(ctx, handler); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job consumer")
	}

	log.Info().Msg("Worker service started, waiting for jobs...")

	// Enqueue an initial import if a directory was given
	if *csvDir != "" {
		job := &jobs.ImportBatchJob{CSVDir: *csvDir}
		if err := jobQueue.PublishImportBatch(ctx, job); err != nil {
			log.Error().Err(err).Str("csv_dir", *csvDir).Msg("Failed to publish import job")
		} else {
			log.Info().Str("job_id", job.JobID).Str("csv_dir", *csvDir).Msg("Published import job")
		}
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down worker service...")

	// Cancel context to stop workers
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop the queue and wait for in-flight jobs
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during graceful shutdown")
	}

	// Close the queue
	if err := jobQueue.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close job queue")
	}

	log.Info().Msg("Worker service exited")
}
