package account

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	accounts map[uuid.UUID]*Account
}

func newMockRepo() *mockRepo {
	return &mockRepo{accounts: make(map[uuid.UUID]*Account)}
}

func (m *mockRepo) Create(_ context.Context, a *Account) error {
	m.accounts[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a, nil
}

func (m *mockRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*Account, error) {
	var out []*Account
	for _, a := range m.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, a *Account) error {
	if _, ok := m.accounts[a.ID]; !ok {
		return ErrAccountNotFound
	}
	m.accounts[a.ID] = a
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.accounts[id]; !ok {
		return ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func seedAccount(repo *mockRepo, userID uuid.UUID, code string, balance string) *Account {
	a := &Account{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "acct-" + code,
		Type:         TypeCash,
		CurrencyID:   uuid.New(),
		Balance:      decimal.RequireFromString(balance),
		CurrencyCode: code,
	}
	repo.accounts[a.ID] = a
	return a
}

func TestService_Create(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	userID := uuid.New()

	a, err := svc.Create(context.Background(), &Account{
		Name:       "Wallet",
		Type:       TypeCash,
		CurrencyID: uuid.New(),
	}, userID)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, userID, a.UserID)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		account *Account
		wantErr error
	}{
		{"empty name", &Account{Type: TypeCash, CurrencyID: uuid.New()}, ErrEmptyName},
		{"unknown type", &Account{Name: "x", Type: "crypto", CurrencyID: uuid.New()}, ErrInvalidType},
		{"missing currency", &Account{Name: "x", Type: TypeBank}, ErrCurrencyRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newMockRepo())
			_, err := svc.Create(context.Background(), tt.account, uuid.New())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_GetByID_ForeignAccount(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	a := seedAccount(repo, uuid.New(), "EUR", "100")

	_, err := svc.GetByID(context.Background(), a.ID, uuid.New())
	assert.ErrorIs(t, err, ErrUnauthorizedAccess)
}

func TestService_Update_PreservesOwnerAndCreatedAt(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	userID := uuid.New()
	existing := seedAccount(repo, userID, "EUR", "100")

	updated, err := svc.Update(context.Background(), &Account{
		ID:         existing.ID,
		Name:       "Renamed",
		Type:       TypeSavings,
		CurrencyID: existing.CurrencyID,
		Balance:    decimal.NewFromInt(250),
	}, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, updated.UserID)
	assert.Equal(t, existing.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestService_Delete_ForeignAccount(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	a := seedAccount(repo, uuid.New(), "EUR", "100")

	err := svc.Delete(context.Background(), a.ID, uuid.New())
	assert.ErrorIs(t, err, ErrUnauthorizedAccess)
	assert.Len(t, repo.accounts, 1)
}

func TestService_TotalBalance(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	userID := uuid.New()

	seedAccount(repo, userID, "EUR", "100.50")
	seedAccount(repo, userID, "EUR", "49.50")
	seedAccount(repo, userID, "USD", "200")
	seedAccount(repo, uuid.New(), "USD", "9999")

	summary, err := svc.TotalBalance(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.AccountsCount)
	assert.True(t, summary.TotalBalance.Equal(decimal.RequireFromString("350")))
	assert.True(t, summary.ByCurrency["EUR"].Equal(decimal.NewFromInt(150)))
	assert.True(t, summary.ByCurrency["USD"].Equal(decimal.NewFromInt(200)))
}

func TestService_TotalBalance_NoAccounts(t *testing.T) {
	svc := NewService(newMockRepo())

	summary, err := svc.TotalBalance(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.AccountsCount)
	assert.True(t, summary.TotalBalance.IsZero())
	assert.Empty(t, summary.ByCurrency)
}

func TestService_OwnerOf(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	userID := uuid.New()
	a := seedAccount(repo, userID, "EUR", "100")

	owner, err := svc.OwnerOf(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, owner)

	_, err = svc.OwnerOf(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
