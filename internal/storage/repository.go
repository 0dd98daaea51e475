package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"smartspend/internal/core"
	"smartspend/internal/ledger"
	"smartspend/internal/log"

	_ "modernc.org/sqlite"
)

const (
	insertExpense = `INSERT INTO expenses (amount_cents, category, description, timestamp) VALUES (?, ?, ?, ?)`

	selectColumns = `SELECT id, amount_cents, category, description, timestamp FROM expenses`

	selectByDate  = selectColumns + ` WHERE date(timestamp) = ? ORDER BY id`
	selectByMonth = selectColumns + ` WHERE strftime('%Y-%m', timestamp) = ? ORDER BY id`
	selectAll     = selectColumns + ` ORDER BY id`

	countByDescription = `SELECT description, COUNT(*) FROM expenses GROUP BY description`
	distinctCategories = `SELECT DISTINCT category FROM expenses ORDER BY category`
)

// dsnPragmas make every commit durable before Append returns.
const dsnPragmas = "?_pragma=busy_timeout(5000)&_pragma=synchronous(FULL)"

// SQLiteRepository is the durable ledger. It holds a single connection that
// is released by Close.
type SQLiteRepository struct {
	db     *sql.DB
	now    func() time.Time
	logger *log.Logger
}

// Option configures a SQLiteRepository.
type Option func(*SQLiteRepository)

// WithLogger sets the logger; records are tagged with the storage component.
func WithLogger(logger *log.Logger) Option {
	return func(r *SQLiteRepository) {
		if logger != nil {
			r.logger = logger.WithComponent(log.ComponentStorage)
		}
	}
}

// WithClock overrides the clock used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(r *SQLiteRepository) {
		r.now = now
	}
}

func NewSQLiteRepository(dbPath string, opts ...Option) (*SQLiteRepository, error) {
	repo := &SQLiteRepository{
		now:    time.Now,
		logger: log.New(log.DefaultConfig()).WithComponent(log.ComponentStorage),
	}
	for _, opt := range opts {
		opt(repo)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, &core.StoreError{Op: "open", Err: fmt.Errorf("create db directory: %w", err)}
	}

	dsn := dbPath + dsnPragmas

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &core.StoreError{Op: "open", Err: fmt.Errorf("open sqlite database: %w", err)}
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &core.StoreError{Op: "open", Err: fmt.Errorf("ping database: %w", err)}
	}

	if err := RunMigrations(dsn, repo.logger); err != nil {
		db.Close()
		return nil, &core.StoreError{Op: "open", Err: err}
	}

	repo.db = db
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append validates the entry and inserts it in its own transaction.
func (r *SQLiteRepository) Append(ctx context.Context, e core.Entry) (core.ExpenseRecord, error) {
	e.Category = core.NormalizeCategory(e.Category)
	if err := e.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}

	rec := core.ExpenseRecord{
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Timestamp:   r.now().Truncate(time.Second),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.ExpenseRecord{}, &core.StoreError{Op: "append", Err: fmt.Errorf("begin transaction: %w", err)}
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, insertExpense,
		rec.Amount.Cents, rec.Category, rec.Description, rec.Timestamp.Format(core.TimestampLayout))
	if err != nil {
		return core.ExpenseRecord{}, &core.StoreError{Op: "append", Err: fmt.Errorf("insert expense: %w", err)}
	}
	if rec.ID, err = res.LastInsertId(); err != nil {
		return core.ExpenseRecord{}, &core.StoreError{Op: "append", Err: fmt.Errorf("read expense id: %w", err)}
	}
	if err := tx.Commit(); err != nil {
		return core.ExpenseRecord{}, &core.StoreError{Op: "append", Err: fmt.Errorf("commit expense: %w", err)}
	}

	r.logger.DebugContext(ctx, "Expense saved to SQLite",
		log.NewFields().WithOperation(log.OpAppend).
			WithExpense(rec.ID, rec.Amount.Cents, rec.Category, rec.Description).ToSlice()...)

	return rec, nil
}

// QueryByDate implements ledger.Querier
func (r *SQLiteRepository) QueryByDate(ctx context.Context, day time.Time) ([]core.ExpenseRecord, error) {
	return r.query(ctx, "query by date", selectByDate, day.Format(core.DayLayout))
}

// QueryByMonth implements ledger.Querier
func (r *SQLiteRepository) QueryByMonth(ctx context.Context, year int, month time.Month) ([]core.ExpenseRecord, error) {
	key := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Format(core.MonthLayout)
	return r.query(ctx, "query by month", selectByMonth, key)
}

// QueryAll implements ledger.Querier
func (r *SQLiteRepository) QueryAll(ctx context.Context) ([]core.ExpenseRecord, error) {
	return r.query(ctx, "query all", selectAll)
}

// GroupByDescriptionCounts implements ledger.DescriptionCounter
func (r *SQLiteRepository) GroupByDescriptionCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, countByDescription)
	if err != nil {
		return nil, &core.StoreError{Op: "count descriptions", Err: err}
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			desc  string
			count int
		)
		if err := rows.Scan(&desc, &count); err != nil {
			return nil, &core.StoreError{Op: "count descriptions", Err: fmt.Errorf("scan row: %w", err)}
		}
		counts[desc] = count
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StoreError{Op: "count descriptions", Err: err}
	}
	return counts, nil
}

// Categories implements ledger.CategoryLister
func (r *SQLiteRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, distinctCategories)
	if err != nil {
		return nil, &core.StoreError{Op: "list categories", Err: err}
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, &core.StoreError{Op: "list categories", Err: fmt.Errorf("scan row: %w", err)}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StoreError{Op: "list categories", Err: err}
	}
	return out, nil
}

func (r *SQLiteRepository) query(ctx context.Context, op, q string, args ...any) ([]core.ExpenseRecord, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &core.StoreError{Op: op, Err: err}
	}
	defer rows.Close()

	var out []core.ExpenseRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, &core.StoreError{Op: op, Err: err}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StoreError{Op: op, Err: err}
	}
	return out, nil
}

func scanRecord(rows *sql.Rows) (core.ExpenseRecord, error) {
	var (
		rec core.ExpenseRecord
		ts  string
	)
	if err := rows.Scan(&rec.ID, &rec.Amount.Cents, &rec.Category, &rec.Description, &ts); err != nil {
		return rec, fmt.Errorf("scan row: %w", err)
	}
	t, err := time.ParseInLocation(core.TimestampLayout, ts, time.Local)
	if err != nil {
		return rec, fmt.Errorf("parse timestamp of expense %d: %w", rec.ID, err)
	}
	rec.Timestamp = t
	return rec, nil
}

var _ ledger.Store = (*SQLiteRepository)(nil)
