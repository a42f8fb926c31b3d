package stock

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for stock persistence operations
type Repository interface {
	// Create creates a new holding
	Create(ctx context.Context, s *Stock) error

	// GetByID retrieves a holding by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Stock, error)

	// ListByUser retrieves a user's holdings, newest purchase first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Stock, error)

	// Update updates a holding
	Update(ctx context.Context, s *Stock) error

	// Delete deletes a holding
	Delete(ctx context.Context, id uuid.UUID) error
}
