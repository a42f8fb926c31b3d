package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ekazakova/moneta/internal/platform/category"
)

// Repository defines the interface for transaction persistence operations.
// All user-scoped queries join through the owning account.
type Repository interface {
	// Create creates a new transaction with its tag links
	Create(ctx context.Context, t *Transaction) error

	// GetByID retrieves a transaction by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// OwnerOf returns the user owning the transaction's account
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	// ListByUser retrieves a user's transactions, newest first
	ListByUser(ctx context.Context, userID uuid.UUID, filter Filter) ([]*Transaction, error)

	// Update updates a transaction and replaces its tag links
	Update(ctx context.Context, t *Transaction) error

	// Delete deletes a transaction
	Delete(ctx context.Context, id uuid.UUID) error

	// SumByKindSince sums amounts of the given kind since the cutoff
	SumByKindSince(ctx context.Context, userID uuid.UUID, kind Kind, since time.Time) (decimal.Decimal, error)

	// CountSince counts a user's transactions since the cutoff
	CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)

	// Search matches a user's transactions by description, category name
	// or account name, newest first, capped at limit rows
	Search(ctx context.Context, userID uuid.UUID, query string, limit int) ([]*Transaction, error)
}

// AccountSource resolves account ownership for authorization checks.
type AccountSource interface {
	OwnerOf(ctx context.Context, accountID uuid.UUID) (uuid.UUID, error)
}

// CategorySource resolves category kinds for validation.
type CategorySource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error)
}
