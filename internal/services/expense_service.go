package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartspend/internal/core"
	"smartspend/internal/export"
	"smartspend/internal/ledger"
	"smartspend/internal/log"
	"smartspend/internal/report"
)

const (
	DailySummaryTitle   = "Daily Summary"
	MonthlySummaryTitle = "Monthly Summary"
)

// ExpenseServiceConfig holds the report settings of an ExpenseService
type ExpenseServiceConfig struct {
	// HighSpendingThreshold flags a day whose total exceeds it (default: 1000)
	HighSpendingThreshold core.Money

	// MinOccurrences is how often a description must appear to be recurring (default: 2)
	MinOccurrences int

	// ExportPath is the CSV destination used when none is given (default: expenses.csv)
	ExportPath string

	// Currency prefixes every rendered amount (default: ₹)
	Currency string

	// Now is the clock deciding what "today" and "this month" are
	Now func() time.Time
}

// DefaultExpenseServiceConfig returns the documented defaults
func DefaultExpenseServiceConfig() ExpenseServiceConfig {
	return ExpenseServiceConfig{
		HighSpendingThreshold: report.DefaultHighSpendingThreshold,
		MinOccurrences:        report.DefaultMinOccurrences,
		ExportPath:            "expenses.csv",
		Currency:              report.DefaultCurrency,
		Now:                   time.Now,
	}
}

// ExpenseService is what the presentation shell talks to. It owns no UI
// state; it validates input, reads and writes the ledger, and renders
// reports.
type ExpenseService struct {
	store     ledger.Store
	formatter report.Formatter
	config    ExpenseServiceConfig
	logger    *log.Logger
}

func NewExpenseService(store ledger.Store, config ExpenseServiceConfig, logger *log.Logger) *ExpenseService {
	if config.Now == nil {
		config.Now = time.Now
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &ExpenseService{
		store:     store,
		formatter: report.NewFormatter(config.Currency),
		config:    config,
		logger:    logger.WithComponent(log.ComponentExpense),
	}
}

// Formatter returns the formatter used for reports.
func (s *ExpenseService) Formatter() report.Formatter {
	return s.formatter
}

// AddExpense validates the raw user input and appends it to the ledger.
func (s *ExpenseService) AddExpense(ctx context.Context, amount, category, description string) (core.ExpenseRecord, error) {
	entry, err := core.NewEntry(amount, category, description)
	if err != nil {
		s.logger.DebugContext(ctx, "Rejected expense input",
			log.NewFields().WithOperation(log.OpAppend).WithError(err, log.ErrorTypeValidation).ToSlice()...)
		return core.ExpenseRecord{}, err
	}

	rec, err := s.store.Append(ctx, entry)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save expense",
			log.NewFields().WithOperation(log.OpAppend).WithError(err, errorType(err)).ToSlice()...)
		return core.ExpenseRecord{}, fmt.Errorf("save expense: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense created",
		log.NewFields().WithOperation(log.OpAppend).
			WithExpense(rec.ID, rec.Amount.Cents, rec.Category, rec.Description).ToSlice()...)
	return rec, nil
}

// DailySummary renders the summary of the current day.
func (s *ExpenseService) DailySummary(ctx context.Context) (string, error) {
	return s.SummaryForDay(ctx, s.config.Now())
}

// SummaryForDay renders the summary of the calendar day of day, with the
// high spending warning when its total exceeds the threshold.
func (s *ExpenseService) SummaryForDay(ctx context.Context, day time.Time) (string, error) {
	records, err := s.store.QueryByDate(ctx, day)
	if err != nil {
		return "", fmt.Errorf("query daily expenses: %w", err)
	}

	label := day.Format(core.DayLayout)
	isToday := label == s.config.Now().Format(core.DayLayout)
	summary := report.Summarize(records)
	high := report.IsHighSpending(summary.Total, s.config.HighSpendingThreshold)

	s.logger.DebugContext(ctx, "Daily summary computed",
		log.NewFields().WithOperation(log.OpDaily).WithReport(label, len(records)).ToSlice()...)
	if high {
		s.logger.InfoContext(ctx, "High spending day",
			log.FieldPeriod, label,
			log.FieldAmountCents, summary.Total.Cents)
	}

	return s.formatter.FormatSummary(DailySummaryTitle, report.DayLabel(label, isToday), summary, high), nil
}

// MonthlySummary renders the summary of the current month.
func (s *ExpenseService) MonthlySummary(ctx context.Context) (string, error) {
	now := s.config.Now()
	return s.SummaryForMonth(ctx, now.Year(), now.Month())
}

// SummaryForMonth renders the summary of a year-month. Monthly summaries
// never carry the high spending warning.
func (s *ExpenseService) SummaryForMonth(ctx context.Context, year int, month time.Month) (string, error) {
	records, err := s.store.QueryByMonth(ctx, year, month)
	if err != nil {
		return "", fmt.Errorf("query monthly expenses: %w", err)
	}

	label := fmt.Sprintf("%04d-%02d", year, int(month))
	s.logger.DebugContext(ctx, "Monthly summary computed",
		log.NewFields().WithOperation(log.OpMonthly).WithReport(label, len(records)).ToSlice()...)

	return s.formatter.FormatSummary(MonthlySummaryTitle, report.MonthLabel(label), report.Summarize(records), false), nil
}

// Recurring renders the descriptions recorded at least MinOccurrences
// times across the whole ledger.
func (s *ExpenseService) Recurring(ctx context.Context) (string, error) {
	pairs, err := s.RecurringExpenses(ctx)
	if err != nil {
		return "", err
	}
	return s.formatter.FormatRecurring(pairs), nil
}

// RecurringExpenses returns the recurring descriptions sorted by description.
func (s *ExpenseService) RecurringExpenses(ctx context.Context) ([]report.Recurring, error) {
	counts, err := s.store.GroupByDescriptionCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count descriptions: %w", err)
	}
	pairs := report.FindRecurring(counts, s.config.MinOccurrences)
	s.logger.DebugContext(ctx, "Recurring expenses detected",
		log.FieldOperation, log.OpRecurring,
		"descriptions", len(counts),
		"recurring", len(pairs))
	return pairs, nil
}

// Export writes the whole ledger to path (or the configured default) and
// returns the path written. It returns export.ErrNothingToExport when the
// ledger is empty.
func (s *ExpenseService) Export(ctx context.Context, path string) (string, error) {
	if path == "" {
		path = s.config.ExportPath
	}

	logger := s.logger.WithComponent(log.ComponentExport)

	records, err := s.store.QueryAll(ctx)
	if err != nil {
		return "", fmt.Errorf("query all expenses: %w", err)
	}

	if err := export.ExportCSV(records, path); err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			logger.InfoContext(ctx, "Nothing to export", log.FieldPath, path)
		} else {
			logger.ErrorContext(ctx, "Export failed",
				log.NewFields().WithOperation(log.OpExport).WithError(err, log.ErrorTypeExport).ToSlice()...)
		}
		return "", err
	}

	logger.InfoContext(ctx, "Expenses exported",
		log.FieldOperation, log.OpExport,
		log.FieldPath, path,
		log.FieldRecords, len(records))
	return path, nil
}

// Close releases the ledger.
func (s *ExpenseService) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close expense service: %w", err)
	}
	return nil
}

func errorType(err error) string {
	var se *core.StoreError
	switch {
	case core.IsValidation(err):
		return log.ErrorTypeValidation
	case errors.As(err, &se):
		return log.ErrorTypeDatabase
	default:
		return log.ErrorTypeInternal
	}
}
