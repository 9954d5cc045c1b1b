package cart

import (
	"testing"

	"github.com/fairyhunter13/coffee-storefront-simulator/internal/model"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if !s.Empty || s.Message != EmptyMessage || s.Count != 0 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.TotalDisplay != "$0.00" {
		t.Fatalf("unexpected total display %q", s.TotalDisplay)
	}
	if s.Items == nil || s.Lines == nil {
		t.Fatalf("expected non-nil slices")
	}
}

func TestSummarizeLines(t *testing.T) {
	s := Summarize([]model.LineItem{
		{Name: "Latte", Price: 4.5, Qty: 3},
		{Name: "Americano", Price: 3, Qty: 1},
	})
	if s.Empty || s.Message != "" {
		t.Fatalf("unexpected empty state: %+v", s)
	}
	if s.Count != 4 {
		t.Fatalf("expected unit count 4, got %d", s.Count)
	}
	if s.Lines[0].Display != "$4.50 × 3" {
		t.Fatalf("unexpected line display %q", s.Lines[0].Display)
	}
	if s.Total != 16.5 || s.TotalDisplay != "$16.50" {
		t.Fatalf("unexpected total %v %q", s.Total, s.TotalDisplay)
	}
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{10.5, "$10.50"},
		{3.25, "$3.25"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.in); got != tc.want {
			t.Fatalf("FormatMoney(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
