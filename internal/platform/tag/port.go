package tag

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for tag persistence operations
type Repository interface {
	// Create creates a new tag
	Create(ctx context.Context, t *Tag) error

	// GetByID retrieves a tag by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Tag, error)

	// ListByUser retrieves a user's tags ordered by name
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Tag, error)

	// Update updates a tag
	Update(ctx context.Context, t *Tag) error

	// Delete deletes a tag and its transaction links
	Delete(ctx context.Context, id uuid.UUID) error
}
