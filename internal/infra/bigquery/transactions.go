package bigquery

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/dvloznov/spent-tracker/internal/transaction"
)

type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED

	TransactionDate civil.Date `bigquery:"transaction_date"` // REQUIRED in schema

	Amount *big.Rat `bigquery:"amount"` // REQUIRED NUMERIC

	Description  string `bigquery:"description"`   // REQUIRED STRING
	OriginalLine string `bigquery:"original_line"` // REQUIRED STRING

	Source bigquery.NullString `bigquery:"source"` // NULLABLE
	Notes  bigquery.NullString `bigquery:"notes"`  // NULLABLE

	CategoryName bigquery.NullString `bigquery:"category_name"` // NULLABLE

	IsMerged bigquery.NullBool `bigquery:"is_merged"`
	IsSplit  bigquery.NullBool `bigquery:"is_split"`

	Tags []string `bigquery:"tags"` // REPEATED STRING

	CreatedTS time.Time `bigquery:"created_ts"` // REQUIRED (default CURRENT_TIMESTAMP)
}

// RowFromTransaction maps a history record onto the warehouse schema. The
// category column is best effort: a record whose tags span multiple
// categories gets NULL rather than an arbitrary pick.
func RowFromTransaction(t *transaction.Transaction, now time.Time) (*TransactionRow, error) {
	date, err := civil.ParseDate(t.Date)
	if err != nil {
		return nil, fmt.Errorf("RowFromTransaction: parsing date %q: %w", t.Date, err)
	}

	row := &TransactionRow{
		TransactionID:   t.ID,
		TransactionDate: date,
		Amount:          new(big.Rat).SetFrac64(t.AmountCents, 100),
		Description:     t.Description,
		OriginalLine:    t.OriginalLine,
		Tags:            append([]string{}, t.Tags...),
		CreatedTS:       now,
	}
	if t.Source != "" {
		row.Source = bigquery.NullString{StringVal: t.Source, Valid: true}
	}
	if t.Notes != "" {
		row.Notes = bigquery.NullString{StringVal: t.Notes, Valid: true}
	}
	if cat, err := transaction.CategoryOf(t); err == nil && cat != transaction.CategoryOther {
		row.CategoryName = bigquery.NullString{StringVal: cat.String(), Valid: true}
	}
	row.IsMerged = bigquery.NullBool{Bool: len(t.Transactions) > 0, Valid: true}
	row.IsSplit = bigquery.NullBool{Bool: strings.HasPrefix(t.Source, "split:"), Valid: true}

	return row, nil
}
