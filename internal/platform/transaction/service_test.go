package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekazakova/moneta/internal/platform/category"
)

type mockRepo struct {
	transactions map[uuid.UUID]*Transaction
	owners       map[uuid.UUID]uuid.UUID
	created      []*Transaction
	searched     string
	searchLimit  int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		transactions: make(map[uuid.UUID]*Transaction),
		owners:       make(map[uuid.UUID]uuid.UUID),
	}
}

func (m *mockRepo) Create(_ context.Context, t *Transaction) error {
	m.transactions[t.ID] = t
	m.created = append(m.created, t)
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Transaction, error) {
	t, ok := m.transactions[id]
	if !ok {
		return nil, ErrTransactionNotFound
	}
	return t, nil
}

func (m *mockRepo) OwnerOf(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	owner, ok := m.owners[id]
	if !ok {
		return uuid.Nil, ErrTransactionNotFound
	}
	return owner, nil
}

func (m *mockRepo) ListByUser(_ context.Context, _ uuid.UUID, filter Filter) ([]*Transaction, error) {
	out := make([]*Transaction, 0, len(m.transactions))
	for _, t := range m.transactions {
		out = append(out, t)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, t *Transaction) error {
	if _, ok := m.transactions[t.ID]; !ok {
		return ErrTransactionNotFound
	}
	m.transactions[t.ID] = t
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.transactions[id]; !ok {
		return ErrTransactionNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *mockRepo) SumByKindSince(_ context.Context, _ uuid.UUID, kind Kind, since time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range m.transactions {
		if t.Kind == kind && !t.OccurredAt.Before(since) {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

func (m *mockRepo) CountSince(_ context.Context, _ uuid.UUID, since time.Time) (int, error) {
	count := 0
	for _, t := range m.transactions {
		if !t.OccurredAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (m *mockRepo) Search(_ context.Context, _ uuid.UUID, query string, limit int) ([]*Transaction, error) {
	m.searched = query
	m.searchLimit = limit
	return []*Transaction{}, nil
}

type mockAccounts struct {
	owners map[uuid.UUID]uuid.UUID
}

func (m *mockAccounts) OwnerOf(_ context.Context, accountID uuid.UUID) (uuid.UUID, error) {
	owner, ok := m.owners[accountID]
	if !ok {
		return uuid.Nil, ErrTransactionNotFound
	}
	return owner, nil
}

type mockCategories struct {
	categories map[uuid.UUID]*category.Category
}

func (m *mockCategories) GetByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	return c, nil
}

type fixture struct {
	svc        *Service
	repo       *mockRepo
	userID     uuid.UUID
	accountID  uuid.UUID
	categories *mockCategories
}

func newFixture() *fixture {
	repo := newMockRepo()
	userID := uuid.New()
	accountID := uuid.New()
	accounts := &mockAccounts{owners: map[uuid.UUID]uuid.UUID{accountID: userID}}
	categories := &mockCategories{categories: make(map[uuid.UUID]*category.Category)}

	return &fixture{
		svc:        NewService(repo, accounts, categories),
		repo:       repo,
		userID:     userID,
		accountID:  accountID,
		categories: categories,
	}
}

func TestService_Create(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), &Transaction{
		AccountID:  f.accountID,
		Amount:     decimal.NewFromInt(100),
		Kind:       KindExpense,
		OccurredAt: time.Now(),
	}, f.userID)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Len(t, f.repo.created, 1)
}

func TestService_Create_ForeignAccount(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), &Transaction{
		AccountID:  f.accountID,
		Amount:     decimal.NewFromInt(100),
		Kind:       KindExpense,
		OccurredAt: time.Now(),
	}, uuid.New())

	assert.ErrorIs(t, err, ErrUnauthorizedAccess)
}

func TestService_Create_Validation(t *testing.T) {
	f := newFixture()
	catID := uuid.New()

	tests := []struct {
		name    string
		tx      *Transaction
		wantErr error
	}{
		{
			name:    "missing account",
			tx:      &Transaction{Amount: decimal.NewFromInt(10), Kind: KindExpense},
			wantErr: ErrAccountRequired,
		},
		{
			name:    "zero amount",
			tx:      &Transaction{AccountID: f.accountID, Amount: decimal.Zero, Kind: KindExpense},
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:    "negative amount",
			tx:      &Transaction{AccountID: f.accountID, Amount: decimal.NewFromInt(-5), Kind: KindIncome},
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:    "unknown kind",
			tx:      &Transaction{AccountID: f.accountID, Amount: decimal.NewFromInt(5), Kind: "refund"},
			wantErr: ErrInvalidKind,
		},
		{
			name: "transfer with category",
			tx: &Transaction{
				AccountID:  f.accountID,
				Amount:     decimal.NewFromInt(5),
				Kind:       KindTransfer,
				CategoryID: &catID,
			},
			wantErr: ErrTransferWithCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tt.tx, f.userID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Create_CategoryKindMismatch(t *testing.T) {
	f := newFixture()
	catID := uuid.New()
	f.categories.categories[catID] = &category.Category{ID: catID, Name: "Salary", Kind: category.KindIncome}

	_, err := f.svc.Create(context.Background(), &Transaction{
		AccountID:  f.accountID,
		CategoryID: &catID,
		Amount:     decimal.NewFromInt(100),
		Kind:       KindExpense,
	}, f.userID)

	assert.ErrorIs(t, err, ErrCategoryKindMismatch)
}

func TestService_Duplicate(t *testing.T) {
	f := newFixture()
	srcID := uuid.New()
	tagID := uuid.New()
	f.repo.transactions[srcID] = &Transaction{
		ID:          srcID,
		AccountID:   f.accountID,
		Amount:      decimal.NewFromInt(42),
		Kind:        KindExpense,
		OccurredAt:  time.Now().AddDate(0, 0, -7),
		Description: "groceries",
		TagIDs:      []uuid.UUID{tagID},
	}

	copyTx, err := f.svc.Duplicate(context.Background(), srcID, f.userID)
	require.NoError(t, err)

	assert.NotEqual(t, srcID, copyTx.ID)
	assert.Equal(t, "Copy of groceries", copyTx.Description)
	assert.True(t, copyTx.Amount.Equal(decimal.NewFromInt(42)))
	assert.Equal(t, []uuid.UUID{tagID}, copyTx.TagIDs)
	assert.WithinDuration(t, time.Now(), copyTx.OccurredAt, time.Minute)
}

func TestService_Duplicate_ForeignTransaction(t *testing.T) {
	f := newFixture()
	srcID := uuid.New()
	f.repo.transactions[srcID] = &Transaction{
		ID:        srcID,
		AccountID: f.accountID,
		Amount:    decimal.NewFromInt(42),
		Kind:      KindExpense,
	}

	_, err := f.svc.Duplicate(context.Background(), srcID, uuid.New())
	assert.ErrorIs(t, err, ErrUnauthorizedAccess)
}

func TestService_Delete_OwnershipCheck(t *testing.T) {
	f := newFixture()
	txID := uuid.New()
	f.repo.transactions[txID] = &Transaction{ID: txID, AccountID: f.accountID}
	f.repo.owners[txID] = f.userID

	err := f.svc.Delete(context.Background(), txID, uuid.New())
	assert.ErrorIs(t, err, ErrUnauthorizedAccess)

	err = f.svc.Delete(context.Background(), txID, f.userID)
	require.NoError(t, err)
	assert.Empty(t, f.repo.transactions)
}

func TestService_Statistics(t *testing.T) {
	f := newFixture()
	now := time.Now()

	for _, e := range []struct {
		kind   Kind
		amount int64
		age    int
	}{
		{KindIncome, 1000, 1},
		{KindExpense, 300, 2},
		{KindExpense, 200, 5},
		{KindIncome, 9999, 60}, // outside the window
	} {
		id := uuid.New()
		f.repo.transactions[id] = &Transaction{
			ID:         id,
			AccountID:  f.accountID,
			Amount:     decimal.NewFromInt(e.amount),
			Kind:       e.kind,
			OccurredAt: now.AddDate(0, 0, -e.age),
		}
	}

	stats, err := f.svc.Statistics(context.Background(), f.userID, 30)
	require.NoError(t, err)

	assert.Equal(t, 30, stats.PeriodDays)
	assert.True(t, stats.TotalIncome.Equal(decimal.NewFromInt(1000)))
	assert.True(t, stats.TotalExpense.Equal(decimal.NewFromInt(500)))
	assert.True(t, stats.NetIncome.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 3, stats.Count)
}

func TestService_Search(t *testing.T) {
	f := newFixture()

	results, err := f.svc.Search(context.Background(), f.userID, "coffee")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, "coffee", f.repo.searched)
	assert.Equal(t, searchLimit, f.repo.searchLimit)
}

func TestService_Search_EmptyQuery(t *testing.T) {
	f := newFixture()

	results, err := f.svc.Search(context.Background(), f.userID, "")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, f.repo.searched, "repository must not be hit for an empty query")
}

func TestService_Recent_UsesLimit(t *testing.T) {
	f := newFixture()
	for i := 0; i < 15; i++ {
		id := uuid.New()
		f.repo.transactions[id] = &Transaction{ID: id, AccountID: f.accountID}
	}

	recent, err := f.svc.Recent(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Len(t, recent, recentLimit)
}
