package currency

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for currency persistence operations
type Repository interface {
	// Create creates a new currency
	Create(ctx context.Context, c *Currency) error

	// GetByID retrieves a currency by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Currency, error)

	// List retrieves all currencies ordered by code
	List(ctx context.Context) ([]*Currency, error)

	// Update updates a currency
	Update(ctx context.Context, c *Currency) error

	// Delete deletes a currency
	Delete(ctx context.Context, id uuid.UUID) error
}
