package stock

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides business logic for the stock portfolio
type Service struct {
	repo Repository
}

// NewService creates a new stock service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create records a new holding for a user
func (s *Service) Create(ctx context.Context, st *Stock, userID uuid.UUID) (*Stock, error) {
	st.Ticker = strings.ToUpper(st.Ticker)
	if err := st.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	st.ID = uuid.New()
	st.UserID = userID

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to create stock: %w", err)
	}

	return st, nil
}

// GetByID retrieves a holding and verifies ownership
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Stock, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if st.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}

	return st, nil
}

// List retrieves all of the user's holdings
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Stock, error) {
	stocks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}

	return stocks, nil
}

// Update updates a holding the user owns
func (s *Service) Update(ctx context.Context, st *Stock, userID uuid.UUID) (*Stock, error) {
	st.Ticker = strings.ToUpper(st.Ticker)
	if err := st.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.repo.GetByID(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}

	st.UserID = existing.UserID

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	return st, nil
}

// Delete deletes a holding the user owns
func (s *Service) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrUnauthorizedAccess
	}

	return s.repo.Delete(ctx, id)
}

// PortfolioSummary totals the user's holdings, overall and per currency.
func (s *Service) PortfolioSummary(ctx context.Context, userID uuid.UUID) (*PortfolioSummary, error) {
	stocks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}

	summary := &PortfolioSummary{
		TotalInvestment: decimal.Zero,
		StocksCount:     len(stocks),
		ByCurrency:      make(map[string]decimal.Decimal),
	}

	for _, st := range stocks {
		investment := st.TotalInvestment()
		summary.TotalInvestment = summary.TotalInvestment.Add(investment)
		summary.ByCurrency[st.CurrencyCode] = summary.ByCurrency[st.CurrencyCode].Add(investment)
	}

	return summary, nil
}
