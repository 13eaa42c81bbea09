package transaction

import (
	"fmt"
	"math"
	"sort"
)

// Edit operations return new records and new history slices rather than
// mutating inputs in place, so callers holding prior references never see
// partial updates.

// clone copies a transaction one level deep: tags and the component list get
// fresh backing arrays, components themselves are shared (they are never
// mutated after creation).
func clone(t *Transaction) *Transaction {
	c := *t
	c.Tags = append([]string(nil), t.Tags...)
	c.Transactions = append([]*Transaction(nil), t.Transactions...)
	return &c
}

// MergeInto combines the transactions identified by fromIDs into the one
// identified by intoID. The merged record gets a fresh ID, its amount is the
// sum of all parts, and its component list holds every original one level
// deep: a part that was itself a merge contributes its components, not
// itself. Returns the new history, sorted, and the merged record.
func MergeInto(history []*Transaction, intoID string, fromIDs []string) ([]*Transaction, *Transaction, error) {
	from := make(map[string]*Transaction, len(fromIDs))
	var into *Transaction
	for _, t := range history {
		if t.ID == intoID {
			into = t
			continue
		}
		for _, id := range fromIDs {
			if t.ID == id {
				from[id] = t
				break
			}
		}
	}
	if into == nil {
		return nil, nil, fmt.Errorf("MergeInto: transaction %s not found", intoID)
	}
	if len(from) != len(fromIDs) {
		return nil, nil, fmt.Errorf("MergeInto: %d of %d transactions to merge not found",
			len(fromIDs)-len(from), len(fromIDs))
	}

	merged := clone(into)
	id, err := NewID()
	if err != nil {
		return nil, nil, err
	}
	merged.ID = id
	if len(into.Transactions) == 0 {
		merged.Transactions = []*Transaction{into}
	}
	for _, id := range fromIDs {
		f := from[id]
		merged.AmountCents += f.AmountCents
		if len(f.Transactions) > 0 {
			merged.Transactions = append(merged.Transactions, f.Transactions...)
		} else {
			merged.Transactions = append(merged.Transactions, f)
		}
	}

	next := make([]*Transaction, 0, len(history)-len(from))
	for _, t := range history {
		if _, gone := from[t.ID]; gone {
			continue
		}
		if t.ID == intoID {
			next = append(next, merged)
			continue
		}
		next = append(next, t)
	}
	Sort(next)
	return next, merged, nil
}

// Split divides a transaction into two halves sharing its description, date,
// tags and original line. The first half keeps the original ID and source;
// the second gets a fresh ID and a "split:<originalID>" source. The amounts
// are the rounded half and the remainder, so they always sum to the original.
func Split(t *Transaction) (*Transaction, *Transaction, error) {
	id, err := NewID()
	if err != nil {
		return nil, nil, err
	}

	// Round half up, so a 75.5/75.5 split of 151 becomes 76/75.
	half := int64(math.Floor(float64(t.AmountCents)/2 + 0.5))

	first := clone(t)
	first.Transactions = nil
	first.AmountCents = half

	second := clone(t)
	second.ID = id
	second.Transactions = nil
	second.AmountCents = t.AmountCents - half
	second.Source = "split:" + t.ID

	return first, second, nil
}

// ApplySplit replaces the transaction identified by id with its two halves
// and returns the new history, sorted.
func ApplySplit(history []*Transaction, id string) ([]*Transaction, error) {
	var target *Transaction
	for _, t := range history {
		if t.ID == id {
			target = t
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("ApplySplit: transaction %s not found", id)
	}

	first, second, err := Split(target)
	if err != nil {
		return nil, err
	}

	next := make([]*Transaction, 0, len(history)+1)
	for _, t := range history {
		if t.ID == id {
			continue
		}
		next = append(next, t)
	}
	next = append(next, first, second)
	Sort(next)
	return next, nil
}

// BatchTag replaces the tag list of every transaction in ids and returns the
// new history. Records outside ids are carried over untouched.
func BatchTag(history []*Transaction, ids []string, tags []string) []*Transaction {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	next := make([]*Transaction, len(history))
	for i, t := range history {
		if _, ok := idSet[t.ID]; ok {
			tagged := clone(t)
			tagged.Tags = append([]string(nil), tags...)
			next[i] = tagged
			continue
		}
		next[i] = t
	}
	return next
}

// Sort orders a history in place per Compare: newest first, then by
// description, then by ID.
func Sort(transactions []*Transaction) {
	sort.Slice(transactions, func(i, j int) bool {
		return Compare(transactions[i], transactions[j]) < 0
	})
}
