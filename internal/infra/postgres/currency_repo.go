package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekazakova/moneta/internal/platform/currency"
)

// CurrencyRepository implements the repository interface using PostgreSQL
type CurrencyRepository struct {
	pool *pgxpool.Pool
}

// NewCurrencyRepository creates a new PostgreSQL currency repository
func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}

// Create creates a new currency
func (r *CurrencyRepository) Create(ctx context.Context, c *currency.Currency) error {
	query := `
		INSERT INTO currencies (id, code, name, symbol)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, c.ID, c.Code, c.Name, c.Symbol)
	if err != nil {
		if isUniqueViolation(err) {
			return currency.ErrDuplicateCode
		}
		return fmt.Errorf("failed to create currency: %w", err)
	}

	return nil
}

// GetByID retrieves a currency by ID
func (r *CurrencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*currency.Currency, error) {
	query := `
		SELECT id, code, name, symbol
		FROM currencies
		WHERE id = $1
	`

	var c currency.Currency
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Code, &c.Name, &c.Symbol)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, currency.ErrCurrencyNotFound
		}
		return nil, fmt.Errorf("failed to get currency: %w", err)
	}

	return &c, nil
}

// List retrieves all currencies ordered by code
func (r *CurrencyRepository) List(ctx context.Context) ([]*currency.Currency, error) {
	query := `
		SELECT id, code, name, symbol
		FROM currencies
		ORDER BY code
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	defer rows.Close()

	currencies := make([]*currency.Currency, 0)
	for rows.Next() {
		var c currency.Currency
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Symbol); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, &c)
	}

	return currencies, rows.Err()
}

// Update updates a currency
func (r *CurrencyRepository) Update(ctx context.Context, c *currency.Currency) error {
	query := `
		UPDATE currencies
		SET code = $2, name = $3, symbol = $4
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, c.ID, c.Code, c.Name, c.Symbol)
	if err != nil {
		if isUniqueViolation(err) {
			return currency.ErrDuplicateCode
		}
		return fmt.Errorf("failed to update currency: %w", err)
	}

	if result.RowsAffected() == 0 {
		return currency.ErrCurrencyNotFound
	}

	return nil
}

// Delete deletes a currency
func (r *CurrencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM currencies WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		// Accounts and stocks restrict deletion of their currency.
		if isForeignKeyViolation(err) {
			return currency.ErrCurrencyInUse
		}
		return fmt.Errorf("failed to delete currency: %w", err)
	}

	if result.RowsAffected() == 0 {
		return currency.ErrCurrencyNotFound
	}

	return nil
}
