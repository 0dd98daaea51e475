package report

import (
	"fmt"
	"strings"

	"smartspend/internal/core"
)

const (
	DefaultCurrency = "₹"

	noRecurringMessage = "No recurring expenses found."
	highSpendingLine   = "High spending today!"
)

// Formatter renders summaries as plain text. The zero value prints amounts
// without a currency symbol.
type Formatter struct {
	Currency string
}

// NewFormatter returns a Formatter using currency as the amount prefix.
func NewFormatter(currency string) Formatter {
	return Formatter{Currency: currency}
}

// Amount renders m with the currency prefix, e.g. "₹150.00".
func (f Formatter) Amount(m core.Money) string {
	return f.Currency + m.String()
}

// FormatSummary renders a title, the period label, one line per category
// (sorted), the total and, when highSpending is set, a warning line.
func (f Formatter) FormatSummary(title, dateLabel string, s Summary, highSpending bool) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(dateLabel)
	b.WriteString("\n\n")
	for _, c := range s.Categories() {
		fmt.Fprintf(&b, "%s: %s\n", core.DisplayCategory(c), f.Amount(s.PerCategory[c]))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", f.Amount(s.Total))
	if highSpending {
		b.WriteString(highSpendingLine)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatRecurring renders one line per pair with its description and count.
func (f Formatter) FormatRecurring(pairs []Recurring) string {
	if len(pairs) == 0 {
		return noRecurringMessage + "\n"
	}
	var b strings.Builder
	b.WriteString("Recurring Expenses:\n\n")
	for _, p := range pairs {
		fmt.Fprintf(&b, "%s — %d times\n", p.Description, p.Count)
	}
	return b.String()
}

// DayLabel is the period line of a daily summary.
func DayLabel(day string, isToday bool) string {
	if isToday {
		return "Today: " + day
	}
	return "Date: " + day
}

// MonthLabel is the period line of a monthly summary.
func MonthLabel(month string) string {
	return "Month: " + month
}
