package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service provides business logic for category operations
type Service struct {
	repo Repository
}

// NewService creates a new category service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new category
func (s *Service) Create(ctx context.Context, c *Category) (*Category, error) {
	if err := c.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if c.ParentID != nil {
		parent, err := s.repo.GetByID(ctx, *c.ParentID)
		if err != nil {
			if err == ErrCategoryNotFound {
				return nil, ErrParentNotFound
			}
			return nil, fmt.Errorf("failed to load parent category: %w", err)
		}
		if parent.Kind != c.Kind {
			return nil, ErrParentKindMismatch
		}
	}

	c.ID = uuid.New()
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return c, nil
}

// GetByID retrieves a category by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all categories, optionally filtered by kind
func (s *Service) List(ctx context.Context, kind Kind) ([]*Category, error) {
	if kind != "" {
		if !kind.Valid() {
			return nil, ErrInvalidKind
		}
		return s.repo.ListByKind(ctx, kind)
	}
	return s.repo.List(ctx)
}

// Update updates an existing category. System categories are read-only.
func (s *Service) Update(ctx context.Context, c *Category) (*Category, error) {
	if err := c.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.repo.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if existing.System {
		return nil, ErrSystemCategory
	}

	// Kind changes would orphan transactions of the old kind.
	c.Kind = existing.Kind
	c.System = existing.System

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return c, nil
}

// Delete deletes a category. System categories are read-only.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.System {
		return ErrSystemCategory
	}

	return s.repo.Delete(ctx, id)
}
