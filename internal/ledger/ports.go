// Package ledger defines the ports implemented by ledger backends.
package ledger

import (
	"context"
	"time"

	"smartspend/internal/core"
)

type (
	// Appender durably records a new expense. The record is committed
	// before Append returns.
	Appender interface {
		Append(ctx context.Context, e core.Entry) (core.ExpenseRecord, error)
	}

	// Querier reads records back from the ledger.
	Querier interface {
		// QueryByDate returns the records whose timestamp falls on the
		// calendar day of day (in day's location).
		QueryByDate(ctx context.Context, day time.Time) ([]core.ExpenseRecord, error)
		// QueryByMonth returns the records of the given year and month.
		QueryByMonth(ctx context.Context, year int, month time.Month) ([]core.ExpenseRecord, error)
		// QueryAll returns every record ordered by id.
		QueryAll(ctx context.Context) ([]core.ExpenseRecord, error)
	}

	// DescriptionCounter counts occurrences of each description over the
	// whole ledger.
	DescriptionCounter interface {
		GroupByDescriptionCounts(ctx context.Context) (map[string]int, error)
	}

	// CategoryLister returns the distinct stored categories, sorted.
	CategoryLister interface {
		Categories(ctx context.Context) ([]string, error)
	}

	// Store is the full ledger contract.
	Store interface {
		Appender
		Querier
		DescriptionCounter
		CategoryLister
		Close() error
	}
)
