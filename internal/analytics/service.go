package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ekazakova/moneta/internal/platform/category"
	"github.com/ekazakova/moneta/internal/platform/transaction"
)

// Store is the ledger read model the aggregator depends on. All entry
// queries are scoped to one user; cutoffs are timestamps, so callers decide
// the day boundaries.
type Store interface {
	// EntriesBefore returns the user's entries with occurred_at strictly
	// before cutoff.
	EntriesBefore(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]Entry, error)

	// EntriesBetween returns the user's entries with
	// from <= occurred_at < to, ordered by occurred_at then id.
	EntriesBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Entry, error)

	// Entries returns all of the user's entries.
	Entries(ctx context.Context, userID uuid.UUID) ([]Entry, error)

	// CategoriesByKind lists all categories of the given kind.
	CategoriesByKind(ctx context.Context, kind category.Kind) ([]CategoryRef, error)
}

// Service recomputes chart series from the transaction ledger on every
// call. It holds no state between invocations and is safe for concurrent
// use.
type Service struct {
	store Store
	cfg   Config
	now   func() time.Time
}

// NewService creates an analytics service with the given chart configuration.
func NewService(store Store, cfg Config) *Service {
	return &Service{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Config returns the chart configuration the service was built with, for
// use by transport-level window resolution.
func (s *Service) Config() Config {
	return s.cfg
}

// BalanceHistory reconstructs the user's day-by-day running balance over
// the trailing windowDays days. The series has windowDays+1 points, one per
// calendar day from today-windowDays through today inclusive.
func (s *Service) BalanceHistory(ctx context.Context, userID uuid.UUID, windowDays int) (*BalanceHistory, error) {
	today := dateOf(s.now())
	start := today.AddDate(0, 0, -windowDays)
	end := today.AddDate(0, 0, 1) // exclusive upper bound: end of today

	// Opening balance: everything that happened before the window.
	opening, err := s.store.EntriesBefore(ctx, userID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries before window: %w", err)
	}

	running := decimal.Zero
	for _, e := range opening {
		running = running.Add(e.signed())
	}

	entries, err := s.store.EntriesBetween(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load window entries: %w", err)
	}

	// Bucket signed contributions by calendar day, time-of-day discarded.
	deltas := make(map[time.Time]decimal.Decimal, len(entries))
	for _, e := range entries {
		day := dateOf(e.OccurredAt)
		deltas[day] = deltas[day].Add(e.signed())
	}

	format := s.cfg.labelFormat(windowDays)
	labels := make([]string, 0, windowDays+1)
	balances := make([]float64, 0, windowDays+1)

	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		running = running.Add(deltas[day])
		labels = append(labels, day.Format(format))
		balances = append(balances, running.Round(2).InexactFloat64())
	}

	return &BalanceHistory{Labels: labels, Balances: balances}, nil
}

// CategoryComparison totals the user's income and expenses per category
// over the given window. Categories appear alphabetically; a category with
// activity on only one side gets a zero on the other so the two series stay
// index-aligned.
func (s *Service) CategoryComparison(ctx context.Context, userID uuid.UUID, win Window) (*CategoryComparison, error) {
	var (
		entries []Entry
		err     error
	)
	if win.AllTime {
		entries, err = s.store.Entries(ctx, userID)
	} else {
		today := dateOf(s.now())
		start := today.AddDate(0, 0, -win.Days)
		entries, err = s.store.EntriesBetween(ctx, userID, start, today.AddDate(0, 0, 1))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	expenseNames, err := s.categoryNames(ctx, category.KindExpense)
	if err != nil {
		return nil, err
	}
	incomeNames, err := s.categoryNames(ctx, category.KindIncome)
	if err != nil {
		return nil, err
	}

	expenseTotals := totalsByCategory(entries, transaction.KindExpense, expenseNames)
	incomeTotals := totalsByCategory(entries, transaction.KindIncome, incomeNames)

	// Union of category names with activity on either side.
	nameSet := make(map[string]struct{}, len(expenseTotals)+len(incomeTotals))
	for name := range expenseTotals {
		nameSet[name] = struct{}{}
	}
	for name := range incomeTotals {
		nameSet[name] = struct{}{}
	}

	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}
	sort.Strings(names)

	result := &CategoryComparison{
		Categories: names,
		Expenses:   make([]float64, len(names)),
		Incomes:    make([]float64, len(names)),
	}
	for i, name := range names {
		result.Expenses[i] = expenseTotals[name].InexactFloat64()
		result.Incomes[i] = incomeTotals[name].InexactFloat64()
	}

	return result, nil
}

// categoryNames returns an id -> name lookup for all categories of a kind.
func (s *Service) categoryNames(ctx context.Context, kind category.Kind) (map[uuid.UUID]string, error) {
	cats, err := s.store.CategoriesByKind(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s categories: %w", kind, err)
	}

	names := make(map[uuid.UUID]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names, nil
}

// totalsByCategory sums amounts of the given kind grouped by category name.
// Entries without a category, or whose category is not in the lookup, are
// skipped; zero totals are dropped so inactive categories never surface.
func totalsByCategory(entries []Entry, kind transaction.Kind, names map[uuid.UUID]string) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e.Kind != kind || e.CategoryID == nil {
			continue
		}
		name, ok := names[*e.CategoryID]
		if !ok {
			continue
		}
		totals[name] = totals[name].Add(e.Amount)
	}

	for name, total := range totals {
		if total.IsZero() {
			delete(totals, name)
		}
	}
	return totals
}

// dateOf truncates a timestamp to midnight in its own location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
