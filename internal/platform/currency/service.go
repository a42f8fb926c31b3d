package currency

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service provides business logic for currency operations
type Service struct {
	repo Repository
}

// NewService creates a new currency service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new currency
func (s *Service) Create(ctx context.Context, c *Currency) (*Currency, error) {
	c.Code = strings.ToUpper(c.Code)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	c.ID = uuid.New()
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	return c, nil
}

// GetByID retrieves a currency by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Currency, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all currencies ordered by code
func (s *Service) List(ctx context.Context) ([]*Currency, error) {
	return s.repo.List(ctx)
}

// Update updates a currency
func (s *Service) Update(ctx context.Context, c *Currency) (*Currency, error) {
	c.Code = strings.ToUpper(c.Code)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update currency: %w", err)
	}

	return c, nil
}

// Delete deletes a currency
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
