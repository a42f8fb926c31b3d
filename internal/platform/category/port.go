package category

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for category persistence operations
type Repository interface {
	// Create creates a new category
	Create(ctx context.Context, c *Category) error

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// List retrieves all categories ordered by kind then name
	List(ctx context.Context) ([]*Category, error)

	// ListByKind retrieves all categories of the given kind ordered by name
	ListByKind(ctx context.Context, kind Kind) ([]*Category, error)

	// Update updates a category
	Update(ctx context.Context, c *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error
}
