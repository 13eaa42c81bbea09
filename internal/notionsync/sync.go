package notionsync

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/spent-tracker/internal/logger"
	"github.com/dvloznov/spent-tracker/internal/transaction"
)

const (
	// BatchSize defines the number of transactions to process in a single batch
	BatchSize = 100
)

// SyncTransactions mirrors the transaction history into a Notion database.
// This function:
// 1. Queries all existing Notion transactions
// 2. Deletes stale pages (not in the current history)
// 3. Creates pages for history records Notion does not have yet
// 4. Updates pages for records Notion already has, so tag and note edits
//    propagate on re-sync
// The Transaction ID property on each page is used for idempotency.
func SyncTransactions(ctx context.Context, history []*transaction.Transaction, notionClient NotionService, notionDBID string, dryRun bool) error {
	log := logger.FromContext(ctx)

	log.Info().
		Int("transaction_count", len(history)).
		Bool("dry_run", dryRun).
		Msg("Starting transaction sync to Notion")

	// Build set of valid transaction IDs from the history
	validTransactionIDs := make(map[string]bool)
	for _, t := range history {
		validTransactionIDs[t.ID] = true
	}

	// Query all existing transactions from Notion
	log.Info().Msg("Querying existing transactions from Notion")
	notionPages, err := queryAllNotionPages(ctx, notionClient, notionDBID)
	if err != nil {
		return fmt.Errorf("failed to query Notion pages: %w", err)
	}

	log.Info().Int("notion_page_count", len(notionPages)).Msg("Retrieved existing Notion pages")

	// Build map of transaction ID to Notion page ID (for dedup and updates)
	existingPageIDs := make(map[string]string)
	for _, page := range notionPages {
		txID := extractTransactionID(page)
		if txID != "" {
			existingPageIDs[txID] = string(page.ID)
		}
	}

	// Delete stale pages from Notion (those not in the valid set)
	var deleted int
	for _, page := range notionPages {
		txID := extractTransactionID(page)

		// Delete pages without Transaction ID (from old sync) or not in valid set
		if txID == "" || !validTransactionIDs[txID] {
			if dryRun {
				log.Info().
					Str("transaction_id", txID).
					Str("page_id", string(page.ID)).
					Msg("[DRY RUN] Would delete stale Notion page")
				deleted++
			} else {
				if err := notionClient.DeletePage(ctx, string(page.ID)); err != nil {
					log.Warn().
						Err(err).
						Str("transaction_id", txID).
						Str("page_id", string(page.ID)).
						Msg("Failed to delete stale Notion page")
					continue
				}
				log.Info().
					Str("transaction_id", txID).
					Str("page_id", string(page.ID)).
					Msg("Deleted stale Notion page")
				deleted++
			}
		}
	}

	if deleted > 0 {
		log.Info().Int("deleted", deleted).Msg("Deleted stale transactions from Notion")
	}

	// Process transactions in batches
	var created, updated int
	for i := 0; i < len(history); i += BatchSize {
		end := i + BatchSize
		if end > len(history) {
			end = len(history)
		}

		batch := history[i:end]
		log.Info().
			Int("batch_start", i).
			Int("batch_end", end).
			Int("batch_size", len(batch)).
			Msg("Processing batch")

		for _, t := range batch {
			existingPageID := existingPageIDs[t.ID]

			if dryRun {
				if existingPageID != "" {
					log.Info().
						Str("transaction_id", t.ID).
						Str("page_id", existingPageID).
						Msg("[DRY RUN] Would update existing Notion page")
					updated++
				} else {
					log.Info().
						Str("transaction_id", t.ID).
						Msg("[DRY RUN] Would create new Notion page")
					created++
				}
				continue
			}

			props := TransactionToNotionProperties(t)

			if existingPageID != "" {
				// Update existing page so tag and note edits propagate
				_, err := notionClient.UpdatePage(ctx, existingPageID, props)
				if err != nil {
					log.Warn().
						Err(err).
						Str("transaction_id", t.ID).
						Str("page_id", existingPageID).
						Msg("Failed to update Notion page")
					// Continue processing other transactions
					continue
				}
				log.Info().
					Str("transaction_id", t.ID).
					Str("page_id", existingPageID).
					Msg("Updated Notion page")
				updated++
			} else {
				// Create new page
				page, err := notionClient.CreatePage(ctx, notionDBID, props)
				if err != nil {
					log.Warn().
						Err(err).
						Str("transaction_id", t.ID).
						Msg("Failed to create Notion page")
					// Continue processing other transactions
					continue
				}
				log.Info().
					Str("transaction_id", t.ID).
					Str("page_id", string(page.ID)).
					Msg("Created Notion page")
				created++
			}
		}
	}

	log.Info().
		Int("deleted", deleted).
		Int("created", created).
		Int("updated", updated).
		Int("total", len(history)).
		Msg("Transaction sync completed")

	return nil
}

// queryAllNotionPages queries all pages from a Notion database and returns them.
// Handles pagination automatically.
func queryAllNotionPages(ctx context.Context, notionClient NotionService, databaseID string) ([]notionapi.Page, error) {
	var allPages []notionapi.Page
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{
			PageSize: 100,
		}

		// Only set StartCursor if we have a cursor value
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := notionClient.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("queryAllNotionPages: %w", err)
		}

		allPages = append(allPages, resp.Results...)

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return allPages, nil
}

// extractTransactionID extracts the transaction ID from a Notion page's properties.
// Returns empty string if not found.
func extractTransactionID(page notionapi.Page) string {
	if prop, ok := page.Properties["Transaction ID"]; ok {
		if richText, ok := prop.(*notionapi.RichTextProperty); ok {
			if len(richText.RichText) > 0 {
				return richText.RichText[0].PlainText
			}
		}
	}
	return ""
}
