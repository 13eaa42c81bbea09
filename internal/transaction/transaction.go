package transaction

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Transaction is the canonical unit of the spent tracker. The JSON field
// names match the persisted transactions.json blob exactly; changing them
// would orphan years of history.
type Transaction struct {
	// ID is a 40-character lowercase hex string from a cryptographically
	// random source. It is opaque and never derived from content.
	ID string `json:"id"`

	// Description is the free-text merchant/payee string from the source file.
	Description string `json:"description"`

	// OriginalLine is the verbatim source CSV line (or a reconstructed
	// equivalent for rewritten formats). It is the dedup key.
	OriginalLine string `json:"original_line"`

	// Date is a calendar date in YYYY-MM-DD form, no time of day.
	Date string `json:"date"`

	// Tags are free-text category labels in insertion order.
	Tags []string `json:"tags"`

	// AmountCents is the signed amount in cents. Positive is a charge,
	// negative is a credit/refund.
	AmountCents int64 `json:"amount_cents"`

	// Transactions holds the component transactions when this record is a
	// merge of several originals. Empty otherwise.
	Transactions []*Transaction `json:"transactions"`

	// Source identifies the origin: "usaa", "chaseNNNN", "barclay",
	// "split:<parentId>", "unknown", or a manual marker.
	Source string `json:"source,omitempty"`

	// Notes is an optional user-editable annotation.
	Notes string `json:"notes,omitempty"`
}

// NewID returns a fresh transaction identifier: 20 bytes from crypto/rand,
// hex encoded to 40 lowercase characters.
func NewID() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("NewID: reading random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Compare is a total order over transactions: descending by date (most
// recent first), then ascending by description, then ascending by ID.
// The IDs should never be equal, so it never returns 0 for distinct records.
func Compare(lhs, rhs *Transaction) int {
	if lhs.Date < rhs.Date {
		return 1
	} else if lhs.Date > rhs.Date {
		return -1
	}

	if lhs.Description < rhs.Description {
		return -1
	} else if lhs.Description > rhs.Description {
		return 1
	}

	if lhs.ID < rhs.ID {
		return -1
	}
	return 1
}

// SlashDateToDash converts a slash-delimited MM/DD/YYYY (or YY) date to
// YYYY-MM-DD. Month and day are expected to be zero-padded already; this
// only reorders the parts.
func SlashDateToDash(slashDate string) string {
	parts := strings.SplitN(slashDate, "/", 3)
	if len(parts) != 3 {
		return slashDate
	}
	return parts[2] + "-" + parts[0] + "-" + parts[1]
}

// FormatAmount renders cents as a dollar string with thousands separators,
// wrapping credits in parentheses: 123456 → "1,234.56", -50 → "(0.50)".
func FormatAmount(amountCents int64) string {
	isNegative := amountCents < 0
	if isNegative {
		amountCents = -amountCents
	}

	cents := fmt.Sprintf("%03d", amountCents)
	dollars := cents[:len(cents)-2]
	var b strings.Builder
	for i, d := range dollars {
		if i > 0 && (len(dollars)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	amount := b.String() + "." + cents[len(cents)-2:]
	if isNegative {
		amount = "(" + amount + ")"
	}
	return amount
}

// Tags returns the set of distinct tags across the history, for building the
// tag vocabulary offered by downstream consumers.
func Tags(transactions []*Transaction) map[string]struct{} {
	tagSet := make(map[string]struct{})
	for _, t := range transactions {
		for _, tag := range t.Tags {
			tagSet[tag] = struct{}{}
		}
	}
	return tagSet
}
