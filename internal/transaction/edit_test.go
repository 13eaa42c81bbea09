package transaction

import (
	"testing"
)

func mustID(t *testing.T) string {
	t.Helper()
	id, err := NewID()
	if err != nil {
		t.Fatalf("NewID failed: %v", err)
	}
	return id
}

func newTestTransaction(t *testing.T, description, date string, cents int64) *Transaction {
	t.Helper()
	return &Transaction{
		ID:           mustID(t),
		Description:  description,
		OriginalLine: description + "-line",
		Date:         date,
		Tags:         []string{},
		AmountCents:  cents,
		Transactions: []*Transaction{},
		Source:       "usaa",
	}
}

func TestMergeInto(t *testing.T) {
	a := newTestTransaction(t, "A", "2023-01-15", 100)
	b := newTestTransaction(t, "B", "2023-01-14", 250)
	c := newTestTransaction(t, "C", "2023-01-13", 50)
	history := []*Transaction{a, b, c}

	next, merged, err := MergeInto(history, a.ID, []string{b.ID})
	if err != nil {
		t.Fatalf("MergeInto failed: %v", err)
	}

	if merged.AmountCents != 350 {
		t.Errorf("merged amount = %d, want 350", merged.AmountCents)
	}
	if merged.ID == a.ID || merged.ID == b.ID {
		t.Error("merged record reused an input ID")
	}
	if len(merged.Transactions) != 2 {
		t.Fatalf("components = %d, want 2", len(merged.Transactions))
	}
	if merged.Transactions[0] != a || merged.Transactions[1] != b {
		t.Error("components should hold the original records")
	}

	if len(next) != 2 {
		t.Fatalf("history length = %d, want 2", len(next))
	}
	for _, tx := range next {
		if tx.ID == b.ID {
			t.Error("merged-away record still present in history")
		}
	}

	// Inputs are untouched.
	if a.AmountCents != 100 || len(a.Transactions) != 0 {
		t.Error("original record was mutated")
	}
}

func TestMergeIntoFlattensOneLevel(t *testing.T) {
	p1 := newTestTransaction(t, "P1", "2023-01-10", 10)
	p2 := newTestTransaction(t, "P2", "2023-01-10", 20)
	prior := newTestTransaction(t, "PRIOR MERGE", "2023-01-10", 30)
	prior.Transactions = []*Transaction{p1, p2}
	other := newTestTransaction(t, "OTHER", "2023-01-11", 5)
	history := []*Transaction{prior, other}

	_, merged, err := MergeInto(history, other.ID, []string{prior.ID})
	if err != nil {
		t.Fatalf("MergeInto failed: %v", err)
	}

	if merged.AmountCents != 35 {
		t.Errorf("merged amount = %d, want 35", merged.AmountCents)
	}
	// The prior merge contributes its components, not itself.
	if len(merged.Transactions) != 3 {
		t.Fatalf("components = %d, want 3", len(merged.Transactions))
	}
	for _, component := range merged.Transactions {
		if component == prior {
			t.Error("nested merge record leaked into the component list")
		}
	}
}

func TestMergeIntoMissingTransaction(t *testing.T) {
	a := newTestTransaction(t, "A", "2023-01-15", 100)
	history := []*Transaction{a}

	if _, _, err := MergeInto(history, "nonexistent", []string{a.ID}); err == nil {
		t.Error("expected error for missing target")
	}
	if _, _, err := MergeInto(history, a.ID, []string{"nonexistent"}); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		cents      int64
		wantFirst  int64
		wantSecond int64
	}{
		{name: "even amount", cents: 1000, wantFirst: 500, wantSecond: 500},
		{name: "odd amount rounds half up", cents: 151, wantFirst: 76, wantSecond: 75},
		{name: "negative odd amount", cents: -151, wantFirst: -75, wantSecond: -76},
		{name: "single cent", cents: 1, wantFirst: 1, wantSecond: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := newTestTransaction(t, "SPLIT ME", "2023-01-15", tt.cents)
			original.Tags = []string{"restaurant"}

			first, second, err := Split(original)
			if err != nil {
				t.Fatalf("Split failed: %v", err)
			}

			if first.AmountCents != tt.wantFirst {
				t.Errorf("first amount = %d, want %d", first.AmountCents, tt.wantFirst)
			}
			if second.AmountCents != tt.wantSecond {
				t.Errorf("second amount = %d, want %d", second.AmountCents, tt.wantSecond)
			}
			if first.AmountCents+second.AmountCents != tt.cents {
				t.Errorf("halves sum to %d, want %d", first.AmountCents+second.AmountCents, tt.cents)
			}

			if first.ID != original.ID {
				t.Error("first half should keep the original ID")
			}
			if first.Source != original.Source {
				t.Error("first half should keep the original source")
			}
			if second.ID == original.ID {
				t.Error("second half should get a fresh ID")
			}
			if want := "split:" + original.ID; second.Source != want {
				t.Errorf("second source = %q, want %q", second.Source, want)
			}
			if second.Description != original.Description {
				t.Errorf("second description = %q, want %q", second.Description, original.Description)
			}
			if len(second.Tags) != 1 || second.Tags[0] != "restaurant" {
				t.Errorf("second tags = %v, want the original tags", second.Tags)
			}
		})
	}
}

func TestApplySplit(t *testing.T) {
	a := newTestTransaction(t, "KEEP", "2023-01-16", 100)
	b := newTestTransaction(t, "SPLIT", "2023-01-15", 200)
	history := []*Transaction{a, b}

	next, err := ApplySplit(history, b.ID)
	if err != nil {
		t.Fatalf("ApplySplit failed: %v", err)
	}
	if len(next) != 3 {
		t.Fatalf("history length = %d, want 3", len(next))
	}

	var total int64
	for _, tx := range next {
		if tx.Description == "SPLIT" {
			total += tx.AmountCents
		}
	}
	if total != 200 {
		t.Errorf("split halves sum to %d, want 200", total)
	}

	if _, err := ApplySplit(history, "nonexistent"); err == nil {
		t.Error("expected error for unknown ID")
	}
}

func TestBatchTag(t *testing.T) {
	a := newTestTransaction(t, "A", "2023-01-15", 100)
	b := newTestTransaction(t, "B", "2023-01-14", 200)
	a.Tags = []string{"old"}
	history := []*Transaction{a, b}

	next := BatchTag(history, []string{a.ID}, []string{"grocery", "reimbursed"})

	if len(next[0].Tags) != 2 || next[0].Tags[0] != "grocery" {
		t.Errorf("tags = %v, want replaced", next[0].Tags)
	}
	// Untargeted records are the same pointers; targeted ones are copies.
	if next[1] != b {
		t.Error("untargeted record should be carried over as-is")
	}
	if len(a.Tags) != 1 || a.Tags[0] != "old" {
		t.Errorf("original record mutated: %v", a.Tags)
	}
}

func TestSort(t *testing.T) {
	a := newTestTransaction(t, "B DESC", "2023-01-15", 1)
	b := newTestTransaction(t, "A DESC", "2023-01-15", 2)
	c := newTestTransaction(t, "ANY", "2023-06-01", 3)
	history := []*Transaction{a, b, c}

	Sort(history)

	if history[0] != c {
		t.Error("newest transaction should sort first")
	}
	if history[1] != b || history[2] != a {
		t.Error("same-date transactions should order by description")
	}
}
