package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"smartspend/internal/core"
	"smartspend/internal/ledger"
)

// Store is a volatile ledger. Records are lost when the process exits.
type Store struct {
	mu     sync.Mutex
	now    func() time.Time
	nextID int64
	items  []core.ExpenseRecord
}

// New returns an empty store stamping records with time.Now.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock returns an empty store stamping records with now.
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now, nextID: 1}
}

// Append validates and stores the entry.
func (s *Store) Append(_ context.Context, e core.Entry) (core.ExpenseRecord, error) {
	e.Category = core.NormalizeCategory(e.Category)
	if err := e.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := core.ExpenseRecord{
		ID:          s.nextID,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Timestamp:   s.now().Truncate(time.Second),
	}
	s.nextID++
	s.items = append(s.items, rec)
	return rec, nil
}

func (s *Store) QueryByDate(_ context.Context, day time.Time) ([]core.ExpenseRecord, error) {
	want := day.Format(core.DayLayout)
	return s.filter(func(r core.ExpenseRecord) bool {
		return r.Timestamp.Format(core.DayLayout) == want
	}), nil
}

func (s *Store) QueryByMonth(_ context.Context, year int, month time.Month) ([]core.ExpenseRecord, error) {
	return s.filter(func(r core.ExpenseRecord) bool {
		return r.Timestamp.Year() == year && r.Timestamp.Month() == month
	}), nil
}

func (s *Store) QueryAll(_ context.Context) ([]core.ExpenseRecord, error) {
	return s.filter(func(core.ExpenseRecord) bool { return true }), nil
}

func (s *Store) GroupByDescriptionCounts(_ context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int)
	for _, r := range s.items {
		counts[r.Description]++
	}
	return counts, nil
}

func (s *Store) Categories(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, r := range s.items {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	sort.Strings(out)
	return out, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// filter returns a copy of the matching records; items are kept in id order.
func (s *Store) filter(keep func(core.ExpenseRecord) bool) []core.ExpenseRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.ExpenseRecord, 0, len(s.items))
	for _, r := range s.items {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

var _ ledger.Store = (*Store)(nil)
