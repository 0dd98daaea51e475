// Package report aggregates ledger records and renders the results as text.
package report

import (
	"sort"

	"smartspend/internal/core"
)

const (
	// DefaultMinOccurrences is how many times a description must appear
	// before it is reported as recurring.
	DefaultMinOccurrences = 2
)

// DefaultHighSpendingThreshold is the daily total above which a day is
// flagged as high spending.
var DefaultHighSpendingThreshold = core.Money{Cents: 1000_00}

// Summary holds per-category and overall totals of a record set.
type Summary struct {
	PerCategory map[string]core.Money
	Total       core.Money
}

// Recurring is a description and the number of times it was recorded.
type Recurring struct {
	Description string
	Count       int
}

// Summarize totals records by category. Sums are exact integer cents.
func Summarize(records []core.ExpenseRecord) Summary {
	s := Summary{PerCategory: make(map[string]core.Money)}
	for _, r := range records {
		s.PerCategory[r.Category] = s.PerCategory[r.Category].Add(r.Amount)
		s.Total = s.Total.Add(r.Amount)
	}
	return s
}

// Categories returns the summary's categories in sorted order.
func (s Summary) Categories() []string {
	out := make([]string, 0, len(s.PerCategory))
	for c := range s.PerCategory {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// IsHighSpending reports whether total strictly exceeds threshold.
func IsHighSpending(total, threshold core.Money) bool {
	return total.Cents > threshold.Cents
}

// FindRecurring returns the descriptions counted at least minOccurrences
// times, sorted by description. A minOccurrences below 1 is treated as 1.
func FindRecurring(counts map[string]int, minOccurrences int) []Recurring {
	if minOccurrences < 1 {
		minOccurrences = 1
	}
	out := make([]Recurring, 0)
	for desc, n := range counts {
		if n >= minOccurrences {
			out = append(out, Recurring{Description: desc, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Description < out[j].Description
	})
	return out
}
