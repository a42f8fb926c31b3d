package budget

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for budget persistence operations
type Repository interface {
	// Create creates a new budget
	Create(ctx context.Context, b *Budget) error

	// GetByID retrieves a budget by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Budget, error)

	// ListByUser retrieves a user's budgets, newest start date first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Budget, error)

	// ListActive retrieves the user's budgets covering the given date
	ListActive(ctx context.Context, userID uuid.UUID, date time.Time) ([]*Budget, error)

	// Update updates a budget
	Update(ctx context.Context, b *Budget) error

	// Delete deletes a budget
	Delete(ctx context.Context, id uuid.UUID) error
}
