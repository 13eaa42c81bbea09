package pipeline

import (
	"strings"

	"github.com/dvloznov/spent-tracker/internal/transaction"
	"github.com/rs/zerolog"
)

// sourceClass coarsens a source tag for dedup decisions: every
// "split:<id>" collapses to "split", an absent source is "unknown".
func sourceClass(source string) string {
	if source == "" {
		return "unknown"
	}
	if strings.HasPrefix(source, "split:") {
		return "split"
	}
	return source
}

// Merge appends the transactions from batch that are not already present in
// history, returning the resulting history and the number appended. If
// anything was appended the result is re-sorted; otherwise the existing
// order is left untouched so an unchanged history never needs a rewrite.
//
// Presence is decided by original line plus source compatibility: a line
// already recorded with source class "unknown", "split", or legacy "chase"
// blocks the import no matter where the candidate came from; those classes
// pre-date per-card tagging and re-importing the line under a new per-card
// source would duplicate it. A line recorded under the candidate's own
// source class blocks an exact repeat from the same dialect.
func Merge(history, batch []*transaction.Transaction, log zerolog.Logger) ([]*transaction.Transaction, int) {
	existing := make(map[string]map[string]struct{})
	record := func(t *transaction.Transaction) {
		classes, ok := existing[t.OriginalLine]
		if !ok {
			classes = make(map[string]struct{})
			existing[t.OriginalLine] = classes
		}
		classes[sourceClass(t.Source)] = struct{}{}
	}
	for _, t := range history {
		record(t)
		for _, component := range t.Transactions {
			record(component)
		}
	}

	merged := history
	imported := 0
	for _, t := range batch {
		if classes, ok := existing[t.OriginalLine]; ok {
			if _, hit := classes["unknown"]; hit {
				continue
			}
			if _, hit := classes["split"]; hit {
				continue
			}
			if _, hit := classes["chase"]; hit {
				continue
			}
			if _, hit := classes[sourceClass(t.Source)]; hit {
				continue
			}
		}
		merged = append(merged, t)
		imported++
	}
	log.Info().Int("imported", imported).Msg("merged batch")

	if imported > 0 {
		resorted := make([]*transaction.Transaction, len(merged))
		copy(resorted, merged)
		transaction.Sort(resorted)
		return resorted, imported
	}
	return merged, imported
}
