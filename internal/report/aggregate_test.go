package report

import (
	"testing"

	"smartspend/internal/core"
)

func rec(cents int64, category, description string) core.ExpenseRecord {
	return core.ExpenseRecord{Amount: core.Money{Cents: cents}, Category: category, Description: description}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]core.ExpenseRecord{
		rec(100_00, "food", "a"),
		rec(50_00, "food", "b"),
		rec(20_00, "transport", "c"),
	})
	if len(s.PerCategory) != 2 {
		t.Fatalf("expected 2 categories, got %v", s.PerCategory)
	}
	if s.PerCategory["food"].Cents != 150_00 {
		t.Errorf("food = %s, want 150.00", s.PerCategory["food"])
	}
	if s.PerCategory["transport"].Cents != 20_00 {
		t.Errorf("transport = %s, want 20.00", s.PerCategory["transport"])
	}
	if s.Total.Cents != 170_00 {
		t.Errorf("total = %s, want 170.00", s.Total)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total.Cents != 0 || len(s.PerCategory) != 0 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestSummarizeDoesNotDrift(t *testing.T) {
	records := make([]core.ExpenseRecord, 0, 10000)
	for i := 0; i < 10000; i++ {
		records = append(records, rec(10, "misc", "x")) // 0.10
	}
	if got := Summarize(records).Total.String(); got != "1000.00" {
		t.Fatalf("total = %s, want 1000.00", got)
	}
}

func TestSummarizeLargestAmountsStayPositive(t *testing.T) {
	a, err := core.NewEntry("10000000000", "rent", "tower")
	if err != nil {
		t.Fatalf("largest amount rejected: %v", err)
	}
	if _, err := core.NewEntry("50000000000000000", "rent", "tower"); !core.IsValidation(err) {
		t.Fatalf("oversized amount accepted, err=%v", err)
	}

	records := make([]core.ExpenseRecord, 0, 1000)
	for i := 0; i < 1000; i++ {
		records = append(records, core.ExpenseRecord{Amount: a.Amount, Category: a.Category, Description: a.Description})
	}
	s := Summarize(records)
	if s.Total.Cents != 1000*core.MaxAmount.Cents {
		t.Fatalf("total = %s, want %d cents", s.Total, 1000*core.MaxAmount.Cents)
	}
	if !IsHighSpending(s.Total, DefaultHighSpendingThreshold) {
		t.Fatal("large total not flagged as high spending")
	}
}

func TestIsHighSpending(t *testing.T) {
	threshold := DefaultHighSpendingThreshold
	tests := []struct {
		total int64
		want  bool
	}{
		{170_00, false},
		{1000_00, false}, // strictly greater
		{1000_01, true},
		{1200_00, true},
	}
	for _, tt := range tests {
		if got := IsHighSpending(core.Money{Cents: tt.total}, threshold); got != tt.want {
			t.Errorf("IsHighSpending(%d) = %v, want %v", tt.total, got, tt.want)
		}
	}
	if !IsHighSpending(core.Money{Cents: 60_00}, core.Money{Cents: 50_00}) {
		t.Error("custom threshold not honoured")
	}
}

func TestFindRecurring(t *testing.T) {
	counts := map[string]int{}
	for _, d := range []string{"coffee", "coffee", "lunch", "coffee"} {
		counts[d]++
	}
	got := FindRecurring(counts, 2)
	if len(got) != 1 || got[0] != (Recurring{Description: "coffee", Count: 3}) {
		t.Fatalf("unexpected recurring: %+v", got)
	}
}

func TestFindRecurringIsSorted(t *testing.T) {
	counts := map[string]int{"rent": 2, "coffee": 5, "gym": 3, "gift": 1}
	got := FindRecurring(counts, DefaultMinOccurrences)
	want := []string{"coffee", "gym", "rent"}
	if len(got) != len(want) {
		t.Fatalf("unexpected recurring: %+v", got)
	}
	for i := range want {
		if got[i].Description != want[i] {
			t.Fatalf("position %d = %q, want %q", i, got[i].Description, want[i])
		}
	}
}

func TestFindRecurringMinOccurrencesFloor(t *testing.T) {
	got := FindRecurring(map[string]int{"once": 1}, 0)
	if len(got) != 1 {
		t.Fatalf("expected single occurrence with min 0 treated as 1, got %+v", got)
	}
	if got := FindRecurring(map[string]int{}, 2); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}
