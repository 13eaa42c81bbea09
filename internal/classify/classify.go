// Package classify produces tag suggestions for untagged transactions by
// fuzzy-matching their descriptions against the already-tagged history.
package classify

import (
	"sort"
	"strings"

	"github.com/dvloznov/spent-tracker/internal/transaction"
)

// DefaultThreshold is the edit distance under which two descriptions are
// considered the same merchant.
const DefaultThreshold = 6

// EditDistance computes the Levenshtein distance between a and b with unit
// cost for insert, delete and substitute, counted over runes so multi-byte
// descriptions are not penalized per byte. It keeps a single rolling row, so
// space is O(min(len(a), len(b))).
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	// Iterate over the longer string, keep the row for the shorter one.
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		prev := row[0] // row[i-1][j-1]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			next := min3(row[j]+1, row[j-1]+1, prev+cost)
			prev = row[j]
			row[j] = next
		}
	}
	return row[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// SuggestTags returns the majority-vote tag set for target among historical
// transactions whose normalized description is within threshold edits. A
// tag is suggested only if it appears in at least 51% of the matches. The
// result is sorted alphabetically; it is empty when nothing matches.
func SuggestTags(history []*transaction.Transaction, target *transaction.Transaction, threshold int) []string {
	normalizedTarget := normalize(target.Description)

	matches := 0
	counts := make(map[string]int)
	for _, t := range history {
		if t.ID == target.ID || len(t.Tags) == 0 {
			continue
		}
		if EditDistance(normalizedTarget, normalize(t.Description)) > threshold {
			continue
		}
		matches++
		for _, tag := range t.Tags {
			counts[tag]++
		}
	}
	if matches == 0 {
		return []string{}
	}

	needed := 0.51 * float64(matches)
	var tags []string
	for tag, count := range counts {
		if float64(count) >= needed {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	if tags == nil {
		return []string{}
	}
	return tags
}

func normalize(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}
