package stock

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	stocks map[uuid.UUID]*Stock
}

func newMockRepo() *mockRepo {
	return &mockRepo{stocks: make(map[uuid.UUID]*Stock)}
}

func (m *mockRepo) Create(_ context.Context, s *Stock) error {
	m.stocks[s.ID] = s
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Stock, error) {
	s, ok := m.stocks[id]
	if !ok {
		return nil, ErrStockNotFound
	}
	return s, nil
}

func (m *mockRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*Stock, error) {
	var out []*Stock
	for _, s := range m.stocks {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, s *Stock) error {
	if _, ok := m.stocks[s.ID]; !ok {
		return ErrStockNotFound
	}
	m.stocks[s.ID] = s
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.stocks[id]; !ok {
		return ErrStockNotFound
	}
	delete(m.stocks, id)
	return nil
}

func seedStock(repo *mockRepo, userID uuid.UUID, code, qty, price string) *Stock {
	s := &Stock{
		ID:            uuid.New(),
		UserID:        userID,
		Ticker:        "AAPL",
		Quantity:      decimal.RequireFromString(qty),
		PurchasePrice: decimal.RequireFromString(price),
		CurrencyID:    uuid.New(),
		CurrencyCode:  code,
	}
	repo.stocks[s.ID] = s
	return s
}

func TestService_Create_UppercasesTicker(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	s, err := svc.Create(context.Background(), &Stock{
		Ticker:        "aapl",
		Quantity:      decimal.NewFromInt(10),
		PurchasePrice: decimal.RequireFromString("185.50"),
		CurrencyID:    uuid.New(),
	}, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, "AAPL", s.Ticker)
	assert.NotEqual(t, uuid.Nil, s.ID)
}

func TestService_Create_Validation(t *testing.T) {
	currencyID := uuid.New()

	tests := []struct {
		name    string
		stock   *Stock
		wantErr error
	}{
		{
			name:    "empty ticker",
			stock:   &Stock{Quantity: decimal.NewFromInt(1), PurchasePrice: decimal.NewFromInt(1), CurrencyID: currencyID},
			wantErr: ErrEmptyTicker,
		},
		{
			name:    "zero quantity",
			stock:   &Stock{Ticker: "AAPL", PurchasePrice: decimal.NewFromInt(1), CurrencyID: currencyID},
			wantErr: ErrNonPositiveQuantity,
		},
		{
			name:    "negative price",
			stock:   &Stock{Ticker: "AAPL", Quantity: decimal.NewFromInt(1), PurchasePrice: decimal.NewFromInt(-5), CurrencyID: currencyID},
			wantErr: ErrNonPositivePrice,
		},
		{
			name:    "missing currency",
			stock:   &Stock{Ticker: "AAPL", Quantity: decimal.NewFromInt(1), PurchasePrice: decimal.NewFromInt(1)},
			wantErr: ErrCurrencyRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newMockRepo())
			_, err := svc.Create(context.Background(), tt.stock, uuid.New())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_GetByID_ForeignStock(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	s := seedStock(repo, uuid.New(), "USD", "10", "100")

	_, err := svc.GetByID(context.Background(), s.ID, uuid.New())
	assert.ErrorIs(t, err, ErrUnauthorizedAccess)
}

func TestService_Delete_ForeignStock(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	s := seedStock(repo, uuid.New(), "USD", "10", "100")

	err := svc.Delete(context.Background(), s.ID, uuid.New())
	assert.ErrorIs(t, err, ErrUnauthorizedAccess)
	assert.Len(t, repo.stocks, 1)
}

func TestService_PortfolioSummary(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	userID := uuid.New()

	// 10 * 185.50 = 1855, 2.5 * 100 = 250
	seedStock(repo, userID, "USD", "10", "185.50")
	seedStock(repo, userID, "EUR", "2.5", "100")
	seedStock(repo, uuid.New(), "USD", "100", "500")

	summary, err := svc.PortfolioSummary(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.StocksCount)
	assert.True(t, summary.TotalInvestment.Equal(decimal.RequireFromString("2105")))
	assert.True(t, summary.ByCurrency["USD"].Equal(decimal.NewFromInt(1855)))
	assert.True(t, summary.ByCurrency["EUR"].Equal(decimal.NewFromInt(250)))
}

func TestService_PortfolioSummary_Empty(t *testing.T) {
	svc := NewService(newMockRepo())

	summary, err := svc.PortfolioSummary(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.StocksCount)
	assert.True(t, summary.TotalInvestment.IsZero())
	assert.Empty(t, summary.ByCurrency)
}
