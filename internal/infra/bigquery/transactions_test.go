package bigquery

import (
	"testing"
	"time"

	"github.com/dvloznov/spent-tracker/internal/transaction"
)

func TestRowFromTransaction(t *testing.T) {
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	tx := &transaction.Transaction{
		ID:           "abc123",
		Description:  "SAFEWAY",
		OriginalLine: "raw,line",
		Date:         "2023-01-15",
		Tags:         []string{"grocery"},
		AmountCents:  -1234,
		Source:       "usaa",
		Notes:        "weekly shop",
	}

	row, err := RowFromTransaction(tx, now)
	if err != nil {
		t.Fatalf("RowFromTransaction failed: %v", err)
	}

	if row.TransactionID != "abc123" {
		t.Errorf("TransactionID = %q", row.TransactionID)
	}
	if row.TransactionDate.Year != 2023 || int(row.TransactionDate.Month) != 1 || row.TransactionDate.Day != 15 {
		t.Errorf("TransactionDate = %v", row.TransactionDate)
	}
	if f, _ := row.Amount.Float64(); f != -12.34 {
		t.Errorf("Amount = %v, want -12.34", f)
	}
	if !row.Source.Valid || row.Source.StringVal != "usaa" {
		t.Errorf("Source = %#v", row.Source)
	}
	if !row.Notes.Valid || row.Notes.StringVal != "weekly shop" {
		t.Errorf("Notes = %#v", row.Notes)
	}
	if !row.CategoryName.Valid || row.CategoryName.StringVal != "Grocery" {
		t.Errorf("CategoryName = %#v", row.CategoryName)
	}
	if !row.IsMerged.Valid || row.IsMerged.Bool {
		t.Errorf("IsMerged = %#v, want valid false", row.IsMerged)
	}
	if !row.IsSplit.Valid || row.IsSplit.Bool {
		t.Errorf("IsSplit = %#v, want valid false", row.IsSplit)
	}
	if !row.CreatedTS.Equal(now) {
		t.Errorf("CreatedTS = %v, want %v", row.CreatedTS, now)
	}
}

func TestRowFromTransactionEdgeCases(t *testing.T) {
	now := time.Now()

	// Bad date is an error; the record cannot land in a DATE column.
	bad := &transaction.Transaction{ID: "x", Description: "X", Date: "01/15/2023"}
	if _, err := RowFromTransaction(bad, now); err == nil {
		t.Error("expected an error for a slash-form date")
	}

	// Split and merged markers.
	split := &transaction.Transaction{
		ID:     "y",
		Date:   "2023-01-15",
		Source: "split:parent123",
		Transactions: []*transaction.Transaction{
			{ID: "component"},
		},
	}
	row, err := RowFromTransaction(split, now)
	if err != nil {
		t.Fatalf("RowFromTransaction failed: %v", err)
	}
	if !row.IsSplit.Bool {
		t.Error("IsSplit should be true for a split source")
	}
	if !row.IsMerged.Bool {
		t.Error("IsMerged should be true when components are present")
	}

	// Ambiguous tags leave the category NULL.
	ambiguous := &transaction.Transaction{
		ID:   "z",
		Date: "2023-01-15",
		Tags: []string{"grocery", "restaurant"},
	}
	row, err = RowFromTransaction(ambiguous, now)
	if err != nil {
		t.Fatalf("RowFromTransaction failed: %v", err)
	}
	if row.CategoryName.Valid {
		t.Errorf("CategoryName = %#v, want NULL for ambiguous tags", row.CategoryName)
	}
}
