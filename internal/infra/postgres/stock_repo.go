package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekazakova/moneta/internal/platform/stock"
)

// StockRepository implements the repository interface using PostgreSQL
type StockRepository struct {
	pool *pgxpool.Pool
}

// NewStockRepository creates a new PostgreSQL stock repository
func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

const stockSelect = `
	SELECT s.id, s.user_id, s.ticker, s.company_name, s.quantity, s.purchase_price,
	       s.purchase_date, s.currency_id, c.code
	FROM stocks s
	JOIN currencies c ON c.id = s.currency_id
`

// Create creates a new holding
func (r *StockRepository) Create(ctx context.Context, s *stock.Stock) error {
	query := `
		INSERT INTO stocks (id, user_id, ticker, company_name, quantity, purchase_price, purchase_date, currency_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		s.ID,
		s.UserID,
		s.Ticker,
		s.CompanyName,
		s.Quantity,
		s.PurchasePrice,
		s.PurchaseDate,
		s.CurrencyID,
	)
	if err != nil {
		return fmt.Errorf("failed to create stock: %w", err)
	}

	return nil
}

// GetByID retrieves a holding by ID
func (r *StockRepository) GetByID(ctx context.Context, id uuid.UUID) (*stock.Stock, error) {
	query := stockSelect + ` WHERE s.id = $1`

	s, err := scanStock(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, stock.ErrStockNotFound
		}
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}

	return s, nil
}

// ListByUser retrieves a user's holdings, newest purchase first
func (r *StockRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*stock.Stock, error) {
	query := stockSelect + ` WHERE s.user_id = $1 ORDER BY s.purchase_date DESC, s.ticker`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}
	defer rows.Close()

	stocks := make([]*stock.Stock, 0)
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, s)
	}

	return stocks, rows.Err()
}

// Update updates a holding
func (r *StockRepository) Update(ctx context.Context, s *stock.Stock) error {
	query := `
		UPDATE stocks
		SET ticker = $2, company_name = $3, quantity = $4, purchase_price = $5, purchase_date = $6, currency_id = $7
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		s.ID,
		s.Ticker,
		s.CompanyName,
		s.Quantity,
		s.PurchasePrice,
		s.PurchaseDate,
		s.CurrencyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	if result.RowsAffected() == 0 {
		return stock.ErrStockNotFound
	}

	return nil
}

// Delete deletes a holding
func (r *StockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM stocks WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete stock: %w", err)
	}

	if result.RowsAffected() == 0 {
		return stock.ErrStockNotFound
	}

	return nil
}

func scanStock(row pgx.Row) (*stock.Stock, error) {
	var s stock.Stock
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Ticker,
		&s.CompanyName,
		&s.Quantity,
		&s.PurchasePrice,
		&s.PurchaseDate,
		&s.CurrencyID,
		&s.CurrencyCode,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
