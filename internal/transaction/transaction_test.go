package transaction

import (
	"regexp"
	"testing"
)

func TestNewID(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{40}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewID()
		if err != nil {
			t.Fatalf("NewID failed: %v", err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("ID %q is not 40 lowercase hex characters", id)
		}
		if seen[id] {
			t.Fatalf("duplicate ID %q", id)
		}
		seen[id] = true
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		lhs  *Transaction
		rhs  *Transaction
		want int
	}{
		{
			name: "newer date sorts first",
			lhs:  &Transaction{Date: "2023-06-01", ID: "a"},
			rhs:  &Transaction{Date: "2023-01-01", ID: "b"},
			want: -1,
		},
		{
			name: "older date sorts last",
			lhs:  &Transaction{Date: "2023-01-01", ID: "a"},
			rhs:  &Transaction{Date: "2023-06-01", ID: "b"},
			want: 1,
		},
		{
			name: "same date, description ascending",
			lhs:  &Transaction{Date: "2023-01-01", Description: "APPLE", ID: "a"},
			rhs:  &Transaction{Date: "2023-01-01", Description: "ZEBRA", ID: "b"},
			want: -1,
		},
		{
			name: "same date and description, ID ascending",
			lhs:  &Transaction{Date: "2023-01-01", Description: "SAME", ID: "aaa"},
			rhs:  &Transaction{Date: "2023-01-01", Description: "SAME", ID: "bbb"},
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.lhs, tt.rhs); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
			if got := Compare(tt.rhs, tt.lhs); got != -tt.want {
				t.Errorf("Compare() reversed = %d, want %d", got, -tt.want)
			}
		})
	}
}

func TestSlashDateToDash(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"01/15/2023", "2023-01-15"},
		{"12/31/1999", "1999-12-31"},
		{"2023-01-15", "2023-01-15"}, // already dashed, left alone
		{"garbage", "garbage"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SlashDateToDash(tt.in); got != tt.want {
			t.Errorf("SlashDateToDash(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{50, "0.50"},
		{123, "1.23"},
		{123456, "1,234.56"},
		{100000000, "1,000,000.00"},
		{-50, "(0.50)"},
		{-123456, "(1,234.56)"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.cents); got != tt.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestTags(t *testing.T) {
	history := []*Transaction{
		{Tags: []string{"grocery", "restaurant"}},
		{Tags: []string{"grocery"}},
		{Tags: nil},
	}

	tags := Tags(history)
	if len(tags) != 2 {
		t.Fatalf("got %d tags, want 2", len(tags))
	}
	for _, want := range []string{"grocery", "restaurant"} {
		if _, ok := tags[want]; !ok {
			t.Errorf("missing tag %q", want)
		}
	}
}
