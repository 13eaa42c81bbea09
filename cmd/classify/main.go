package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/dvloznov/spent-tracker/internal/classify"
	"github.com/dvloznov/spent-tracker/internal/logger"
	"github.com/dvloznov/spent-tracker/internal/store"
	"github.com/dvloznov/spent-tracker/internal/transaction"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	bucket := flag.String("bucket", "", "GCS bucket holding the transaction history (required)")
	object := flag.String("object", "transactions.json", "GCS object name of the transaction history")
	threshold := flag.Int("threshold", classify.DefaultThreshold, "Maximum edit distance for a description match")
	useGemini := flag.Bool("use-gemini", false, "Fall back to Gemini when edit distance finds nothing")
	apply := flag.Bool("apply", false, "Write the suggested tags back to the history")
	flag.Parse()

	if *bucket == "" {
		log.Fatal().Msg("Error: --bucket is required")
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	historyStore := store.NewGCS(*bucket, *object)

	history, err := historyStore.Download(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to download transaction history")
	}

	log.Info().
		Int("transaction_count", len(history)).
		Int("threshold", *threshold).
		Msg("Suggesting tags for untagged transactions")

	var gemini *classify.GeminiSuggester
	if *useGemini {
		gemini = classify.NewGeminiSuggester()
	}

	var suggested, unmatched int
	for _, t := range history {
		if len(t.Tags) > 0 {
			continue
		}

		tags := classify.SuggestTags(history, t, *threshold)
		if len(tags) == 0 && gemini != nil {
			tags, err = gemini.Suggest(ctx, history, t)
			if err != nil {
				log.Warn().Err(err).Str("transaction_id", t.ID).Msg("Gemini suggestion failed")
				tags = nil
			}
		}

		if len(tags) == 0 {
			unmatched++
			continue
		}

		fmt.Printf("%s  %s  %s  ->  %s\n",
			t.Date,
			transaction.FormatAmount(t.AmountCents),
			t.Description,
			strings.Join(tags, ", "))
		suggested++

		if *apply {
			t.Tags = tags
		}
	}

	log.Info().
		Int("suggested", suggested).
		Int("unmatched", unmatched).
		Msg("Tag suggestion completed")

	if *apply && suggested > 0 {
		if err := historyStore.Upload(ctx, history); err != nil {
			log.Fatal().Err(err).Msg("Failed to upload transaction history")
		}
		fmt.Printf("Applied tags to %d transactions.\n", suggested)
	}
}
