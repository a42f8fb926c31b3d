package tag

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service provides business logic for tag operations
type Service struct {
	repo Repository
}

// NewService creates a new tag service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new tag for a user
func (s *Service) Create(ctx context.Context, t *Tag, userID uuid.UUID) (*Tag, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	t.ID = uuid.New()
	t.UserID = userID

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return t, nil
}

// List retrieves all of the user's tags
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Tag, error) {
	tags, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return tags, nil
}

// Update updates a tag the user owns
func (s *Service) Update(ctx context.Context, t *Tag, userID uuid.UUID) (*Tag, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.repo.GetByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}

	t.UserID = existing.UserID

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	return t, nil
}

// Delete deletes a tag the user owns
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
