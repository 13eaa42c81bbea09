package transaction

import "strings"

// Filters selects a subset of a history. Zero values mean "no constraint".
type Filters struct {
	// StartDate and EndDate bound the date range, inclusive, in YYYY-MM-DD form.
	StartDate string
	EndDate   string
	// TagsIncludeAny keeps transactions carrying at least one of these tags.
	TagsIncludeAny []string
	// TagsIncludeAll keeps transactions carrying every one of these tags.
	TagsIncludeAll []string
	// TagsExcludeAny drops transactions carrying any of these tags.
	TagsExcludeAny []string
	// SearchQuery is split into keywords; a transaction must contain all of
	// them in its description or notes (case-insensitive).
	SearchQuery string
}

// searchByDate finds the boundary index for date in a newest-first history.
// String comparison on YYYY-MM-DD dates beats time.Parse here by an order of
// magnitude on large histories.
func searchByDate(transactions []*Transaction, date string, isStart bool) int {
	hi := 0
	lo := len(transactions) - 1
	for lo > hi {
		mid := (lo + hi) / 2
		transactionDate := transactions[mid].Date
		if transactionDate == date {
			scan := 1
			if !isStart {
				scan = -1
			}
			for mid+scan >= 0 && mid+scan <= len(transactions)-1 &&
				transactions[mid+scan].Date == transactionDate {
				mid += scan
			}
			return mid
		} else if transactionDate < date {
			if lo == mid {
				lo = mid - 1
			} else {
				lo = mid
			}
		} else {
			if hi == mid {
				hi = mid + 1
			} else {
				hi = mid
			}
		}
	}
	if isStart {
		for lo > 0 && transactions[lo].Date < date {
			lo--
		}
	} else {
		for lo < len(transactions)-1 && transactions[lo].Date > date {
			lo++
		}
	}
	return lo
}

// FilterByDate returns transactions between the two dates, inclusive. The
// input must be sorted newest-first.
func FilterByDate(transactions []*Transaction, startDate, endDate string) []*Transaction {
	if len(transactions) == 0 {
		return nil
	}
	startIndex := searchByDate(transactions, startDate, true)
	endIndex := searchByDate(transactions, endDate, false)
	return transactions[endIndex : startIndex+1]
}

// Filter applies the given filters to a newest-first history and returns the
// matching transactions. The input slice is never modified.
func Filter(transactions []*Transaction, filters Filters) []*Transaction {
	if len(transactions) == 0 {
		return nil
	}

	filtered := transactions
	if filters.StartDate != "" || filters.EndDate != "" {
		start := filters.StartDate
		if start == "" {
			start = transactions[len(transactions)-1].Date
		}
		end := filters.EndDate
		if end == "" {
			end = transactions[0].Date
		}
		filtered = FilterByDate(filtered, start, end)
	}

	if len(filters.TagsIncludeAll) > 0 {
		filtered = keep(filtered, func(t *Transaction) bool {
			for _, want := range filters.TagsIncludeAll {
				if !hasTag(t, want) {
					return false
				}
			}
			return true
		})
	}

	if len(filters.TagsIncludeAny) > 0 {
		filtered = keep(filtered, func(t *Transaction) bool {
			for _, want := range filters.TagsIncludeAny {
				if hasTag(t, want) {
					return true
				}
			}
			return false
		})
	}

	if len(filters.TagsExcludeAny) > 0 {
		filtered = keep(filtered, func(t *Transaction) bool {
			for _, unwanted := range filters.TagsExcludeAny {
				if hasTag(t, unwanted) {
					return false
				}
			}
			return true
		})
	}

	if filters.SearchQuery != "" {
		tokens := strings.Fields(strings.ToLower(filters.SearchQuery))
		filtered = keep(filtered, func(t *Transaction) bool {
			description := strings.ToLower(t.Description)
			notes := strings.ToLower(t.Notes)
			for _, token := range tokens {
				if !strings.Contains(description, token) && !strings.Contains(notes, token) {
					return false
				}
			}
			return true
		})
	}

	return filtered
}

func keep(transactions []*Transaction, pred func(*Transaction) bool) []*Transaction {
	var out []*Transaction
	for _, t := range transactions {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

func hasTag(t *Transaction, tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}
