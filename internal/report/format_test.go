package report

import (
	"testing"

	"smartspend/internal/core"
)

func TestFormatSummaryDaily(t *testing.T) {
	f := NewFormatter(DefaultCurrency)
	s := Summarize([]core.ExpenseRecord{
		rec(20_00, "transport", "bus"),
		rec(100_00, "food", "groceries"),
		rec(50_00, "food", "lunch"),
		rec(1100_00, "eating out", "party"),
	})
	got := f.FormatSummary("Daily Summary", DayLabel("2025-03-14", true), s, true)
	want := "Daily Summary\n" +
		"Today: 2025-03-14\n" +
		"\n" +
		"Eating Out: ₹1100.00\n" +
		"Food: ₹150.00\n" +
		"Transport: ₹20.00\n" +
		"\n" +
		"Total: ₹1270.00\n" +
		"High spending today!\n"
	if got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatSummaryMonthlyWithoutWarning(t *testing.T) {
	f := Formatter{Currency: "$"}
	got := f.FormatSummary("Monthly Summary", MonthLabel("2025-03"), Summarize(nil), false)
	want := "Monthly Summary\nMonth: 2025-03\n\n\nTotal: $0.00\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatSummaryIsDeterministic(t *testing.T) {
	f := NewFormatter(DefaultCurrency)
	records := []core.ExpenseRecord{
		rec(1, "b", "x"), rec(2, "a", "x"), rec(3, "d", "x"), rec(4, "c", "x"),
		rec(5, "f", "x"), rec(6, "e", "x"), rec(7, "h", "x"), rec(8, "g", "x"),
	}
	first := f.FormatSummary("T", DayLabel("2025-01-01", false), Summarize(records), false)
	for i := 0; i < 50; i++ {
		if got := f.FormatSummary("T", DayLabel("2025-01-01", false), Summarize(records), false); got != first {
			t.Fatalf("output changed between calls:\n%s\n---\n%s", first, got)
		}
	}
}

func TestFormatRecurring(t *testing.T) {
	f := NewFormatter(DefaultCurrency)
	if got := f.FormatRecurring(nil); got != "No recurring expenses found.\n" {
		t.Fatalf("unexpected empty output %q", got)
	}
	got := f.FormatRecurring([]Recurring{{"coffee", 3}, {"rent", 2}})
	want := "Recurring Expenses:\n\ncoffee — 3 times\nrent — 2 times\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if again := f.FormatRecurring([]Recurring{{"coffee", 3}, {"rent", 2}}); again != got {
		t.Fatal("output not deterministic")
	}
}

func TestDayLabel(t *testing.T) {
	if got := DayLabel("2025-03-14", true); got != "Today: 2025-03-14" {
		t.Errorf("got %q", got)
	}
	if got := DayLabel("2025-03-14", false); got != "Date: 2025-03-14" {
		t.Errorf("got %q", got)
	}
}
