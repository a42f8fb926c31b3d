package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for account persistence operations
type Repository interface {
	// Create creates a new account
	Create(ctx context.Context, a *Account) error

	// GetByID retrieves an account by ID with its currency code
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// ListByUser retrieves a user's accounts, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Account, error)

	// Update updates an account
	Update(ctx context.Context, a *Account) error

	// Delete deletes an account and its transactions
	Delete(ctx context.Context, id uuid.UUID) error
}
