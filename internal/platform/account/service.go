package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides business logic for account operations
type Service struct {
	repo Repository
}

// NewService creates a new account service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new account for a user
func (s *Service) Create(ctx context.Context, a *Account, userID uuid.UUID) (*Account, error) {
	if err := a.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	a.ID = uuid.New()
	a.UserID = userID

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return a, nil
}

// GetByID retrieves an account and verifies ownership
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Account, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if a.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}

	return a, nil
}

// List retrieves all of the user's accounts
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Account, error) {
	accounts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}

// Update updates an account the user owns
func (s *Service) Update(ctx context.Context, a *Account, userID uuid.UUID) (*Account, error) {
	if err := a.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}

	a.UserID = existing.UserID
	a.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return a, nil
}

// Delete deletes an account the user owns
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

// TotalBalance aggregates the user's balances across all accounts,
// overall and per currency code.
func (s *Service) TotalBalance(ctx context.Context, userID uuid.UUID) (*BalanceSummary, error) {
	accounts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	summary := &BalanceSummary{
		TotalBalance:  decimal.Zero,
		AccountsCount: len(accounts),
		ByCurrency:    make(map[string]decimal.Decimal),
	}

	for _, a := range accounts {
		summary.TotalBalance = summary.TotalBalance.Add(a.Balance)
		summary.ByCurrency[a.CurrencyCode] = summary.ByCurrency[a.CurrencyCode].Add(a.Balance)
	}

	return summary, nil
}

// OwnerOf returns the user owning the account. It backs ownership checks
// in other services.
func (s *Service) OwnerOf(ctx context.Context, accountID uuid.UUID) (uuid.UUID, error) {
	a, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return uuid.Nil, err
	}
	return a.UserID, nil
}
