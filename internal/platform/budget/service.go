package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service provides business logic for budget operations
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new budget service
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Create creates a new budget for a user
func (s *Service) Create(ctx context.Context, b *Budget, userID uuid.UUID) (*Budget, error) {
	if err := b.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	b.ID = uuid.New()
	b.UserID = userID

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return b, nil
}

// GetByID retrieves a budget and verifies ownership
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Budget, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}

	return b, nil
}

// List retrieves all of the user's budgets
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Budget, error) {
	budgets, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	return budgets, nil
}

// Active retrieves the user's budgets covering today: started on or before
// today and either open-ended or ending on or after today.
func (s *Service) Active(ctx context.Context, userID uuid.UUID) ([]*Budget, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	budgets, err := s.repo.ListActive(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list active budgets: %w", err)
	}

	return budgets, nil
}

// Update updates a budget the user owns
func (s *Service) Update(ctx context.Context, b *Budget, userID uuid.UUID) (*Budget, error) {
	if err := b.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.repo.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}

	b.UserID = existing.UserID

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return b, nil
}

// Delete deletes a budget the user owns
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
