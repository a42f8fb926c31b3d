package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekazakova/moneta/internal/platform/category"
	"github.com/ekazakova/moneta/internal/platform/transaction"
)

type fakeStore struct {
	entries    []Entry
	categories map[category.Kind][]CategoryRef
}

func (f *fakeStore) EntriesBefore(_ context.Context, _ uuid.UUID, cutoff time.Time) ([]Entry, error) {
	var out []Entry
	for _, e := range f.entries {
		if e.OccurredAt.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) EntriesBetween(_ context.Context, _ uuid.UUID, from, to time.Time) ([]Entry, error) {
	var out []Entry
	for _, e := range f.entries {
		if !e.OccurredAt.Before(from) && e.OccurredAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) Entries(_ context.Context, _ uuid.UUID) ([]Entry, error) {
	return f.entries, nil
}

func (f *fakeStore) CategoriesByKind(_ context.Context, kind category.Kind) ([]CategoryRef, error) {
	return f.categories[kind], nil
}

func newTestService(store Store, now time.Time) *Service {
	svc := NewService(store, DefaultConfig())
	svc.now = func() time.Time { return now }
	return svc
}

func amt(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestBalanceHistory_RunningBalance(t *testing.T) {
	// Day 0 is two days before "today"; the window covers days 0..2.
	day0 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	day2 := day0.AddDate(0, 0, 2)

	store := &fakeStore{entries: []Entry{
		{Amount: amt("1000"), Kind: transaction.KindIncome, OccurredAt: day0},
		{Amount: amt("300"), Kind: transaction.KindExpense, OccurredAt: day0},
		{Amount: amt("200"), Kind: transaction.KindExpense, OccurredAt: day2},
	}}
	svc := newTestService(store, day2)

	history, err := svc.BalanceHistory(context.Background(), uuid.New(), 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"01.06", "02.06", "03.06"}, history.Labels)
	assert.Equal(t, []float64{700, 700, 500}, history.Balances)
}

func TestBalanceHistory_ZeroWindow(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

	store := &fakeStore{entries: []Entry{
		{Amount: amt("50"), Kind: transaction.KindIncome, OccurredAt: now.AddDate(0, 0, -5)},
		{Amount: amt("20"), Kind: transaction.KindExpense, OccurredAt: now.Add(-time.Hour)},
	}}
	svc := newTestService(store, now)

	history, err := svc.BalanceHistory(context.Background(), uuid.New(), 0)
	require.NoError(t, err)

	// A single pair: today's label and the cumulative balance including today.
	require.Len(t, history.Labels, 1)
	require.Len(t, history.Balances, 1)
	assert.Equal(t, "10.06", history.Labels[0])
	assert.Equal(t, 30.0, history.Balances[0])
}

func TestBalanceHistory_OpeningBalanceOutsideWindow(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	store := &fakeStore{entries: []Entry{
		// Well before the window; must seed the opening balance.
		{Amount: amt("5000"), Kind: transaction.KindIncome, OccurredAt: now.AddDate(0, 0, -40)},
		{Amount: amt("100"), Kind: transaction.KindExpense, OccurredAt: now},
	}}
	svc := newTestService(store, now)

	history, err := svc.BalanceHistory(context.Background(), uuid.New(), 2)
	require.NoError(t, err)

	assert.Equal(t, []float64{5000, 5000, 4900}, history.Balances)
}

func TestBalanceHistory_TransfersContributeNothing(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	store := &fakeStore{entries: []Entry{
		{Amount: amt("100"), Kind: transaction.KindIncome, OccurredAt: now},
		{Amount: amt("999"), Kind: transaction.KindTransfer, OccurredAt: now},
	}}
	svc := newTestService(store, now)

	history, err := svc.BalanceHistory(context.Background(), uuid.New(), 1)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 100}, history.Balances)
}

func TestBalanceHistory_SeriesLengths(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeStore{}, now)

	for _, days := range []int{0, 1, 30, 90} {
		history, err := svc.BalanceHistory(context.Background(), uuid.New(), days)
		require.NoError(t, err)
		assert.Len(t, history.Labels, days+1)
		assert.Len(t, history.Balances, days+1)
	}
}

func TestBalanceHistory_LongWindowLabelsIncludeYear(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeStore{}, now)

	history, err := svc.BalanceHistory(context.Background(), uuid.New(), 365)
	require.NoError(t, err)

	assert.Equal(t, "10.06.24", history.Labels[0])
	assert.Equal(t, "10.06.25", history.Labels[len(history.Labels)-1])
}

func TestBalanceHistory_Deterministic(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	store := &fakeStore{entries: []Entry{
		{Amount: amt("123.45"), Kind: transaction.KindIncome, OccurredAt: now.AddDate(0, 0, -3)},
		{Amount: amt("67.89"), Kind: transaction.KindExpense, OccurredAt: now.AddDate(0, 0, -1)},
	}}
	svc := newTestService(store, now)

	first, err := svc.BalanceHistory(context.Background(), uuid.New(), 30)
	require.NoError(t, err)
	second, err := svc.BalanceHistory(context.Background(), uuid.New(), 30)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCategoryComparison_ZeroFilledAlignment(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	foodID := uuid.New()
	salaryID := uuid.New()

	store := &fakeStore{
		entries: []Entry{
			{Amount: amt("150"), Kind: transaction.KindExpense, OccurredAt: now, CategoryID: &foodID},
			{Amount: amt("2000"), Kind: transaction.KindIncome, OccurredAt: now, CategoryID: &salaryID},
		},
		categories: map[category.Kind][]CategoryRef{
			category.KindExpense: {{ID: foodID, Name: "Food"}},
			category.KindIncome:  {{ID: salaryID, Name: "Salary"}},
		},
	}
	svc := newTestService(store, now)

	comparison, err := svc.CategoryComparison(context.Background(), uuid.New(), Window{Days: 30})
	require.NoError(t, err)

	assert.Equal(t, []string{"Food", "Salary"}, comparison.Categories)
	assert.Equal(t, []float64{150, 0}, comparison.Expenses)
	assert.Equal(t, []float64{0, 2000}, comparison.Incomes)
}

func TestCategoryComparison_InactiveCategoriesOmitted(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	foodID := uuid.New()
	travelID := uuid.New()

	store := &fakeStore{
		entries: []Entry{
			{Amount: amt("75"), Kind: transaction.KindExpense, OccurredAt: now, CategoryID: &foodID},
			// No category; must not be attributed anywhere.
			{Amount: amt("40"), Kind: transaction.KindExpense, OccurredAt: now},
		},
		categories: map[category.Kind][]CategoryRef{
			category.KindExpense: {
				{ID: foodID, Name: "Food"},
				{ID: travelID, Name: "Travel"},
			},
		},
	}
	svc := newTestService(store, now)

	comparison, err := svc.CategoryComparison(context.Background(), uuid.New(), Window{Days: 30})
	require.NoError(t, err)

	assert.Equal(t, []string{"Food"}, comparison.Categories)
	assert.Equal(t, []float64{75}, comparison.Expenses)
	assert.Equal(t, []float64{0}, comparison.Incomes)
}

func TestCategoryComparison_AllTimeIncludesOldEntries(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	rentID := uuid.New()

	store := &fakeStore{
		entries: []Entry{
			{Amount: amt("900"), Kind: transaction.KindExpense, OccurredAt: now.AddDate(-2, 0, 0), CategoryID: &rentID},
		},
		categories: map[category.Kind][]CategoryRef{
			category.KindExpense: {{ID: rentID, Name: "Rent"}},
		},
	}
	svc := newTestService(store, now)

	windowed, err := svc.CategoryComparison(context.Background(), uuid.New(), Window{Days: 30})
	require.NoError(t, err)
	assert.Empty(t, windowed.Categories)

	allTime, err := svc.CategoryComparison(context.Background(), uuid.New(), Window{AllTime: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rent"}, allTime.Categories)
	assert.Equal(t, []float64{900}, allTime.Expenses)
}

func TestCategoryComparison_EmptyLedger(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeStore{}, now)

	comparison, err := svc.CategoryComparison(context.Background(), uuid.New(), Window{Days: 30})
	require.NoError(t, err)

	assert.Empty(t, comparison.Categories)
	assert.Empty(t, comparison.Expenses)
	assert.Empty(t, comparison.Incomes)
}
