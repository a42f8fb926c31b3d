package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekazakova/moneta/internal/platform/budget"
)

// BudgetRepository implements the repository interface using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new PostgreSQL budget repository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetSelect = `
	SELECT b.id, b.user_id, b.name, b.amount, b.period, b.start_date, b.end_date,
	       b.category_id, COALESCE(c.name, '')
	FROM budgets b
	LEFT JOIN categories c ON c.id = b.category_id
`

// Create creates a new budget
func (r *BudgetRepository) Create(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (id, user_id, name, amount, period, start_date, end_date, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.UserID,
		b.Name,
		b.Amount,
		b.Period,
		b.StartDate,
		b.EndDate,
		b.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}

	return nil
}

// GetByID retrieves a budget by ID
func (r *BudgetRepository) GetByID(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	query := budgetSelect + ` WHERE b.id = $1`

	b, err := scanBudget(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, budget.ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	return b, nil
}

// ListByUser retrieves a user's budgets, newest start date first
func (r *BudgetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*budget.Budget, error) {
	query := budgetSelect + ` WHERE b.user_id = $1 ORDER BY b.start_date DESC, b.name`

	return r.queryBudgets(ctx, query, userID)
}

// ListActive retrieves the user's budgets covering the given date
func (r *BudgetRepository) ListActive(ctx context.Context, userID uuid.UUID, date time.Time) ([]*budget.Budget, error) {
	query := budgetSelect + `
		WHERE b.user_id = $1
		  AND b.start_date <= $2
		  AND (b.end_date IS NULL OR b.end_date >= $2)
		ORDER BY b.start_date DESC, b.name
	`

	return r.queryBudgets(ctx, query, userID, date)
}

// Update updates a budget
func (r *BudgetRepository) Update(ctx context.Context, b *budget.Budget) error {
	query := `
		UPDATE budgets
		SET name = $2, amount = $3, period = $4, start_date = $5, end_date = $6, category_id = $7
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Name,
		b.Amount,
		b.Period,
		b.StartDate,
		b.EndDate,
		b.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}

	if result.RowsAffected() == 0 {
		return budget.ErrBudgetNotFound
	}

	return nil
}

// Delete deletes a budget
func (r *BudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM budgets WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	if result.RowsAffected() == 0 {
		return budget.ErrBudgetNotFound
	}

	return nil
}

func (r *BudgetRepository) queryBudgets(ctx context.Context, query string, args ...any) ([]*budget.Budget, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	budgets := make([]*budget.Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}

	return budgets, rows.Err()
}

func scanBudget(row pgx.Row) (*budget.Budget, error) {
	var b budget.Budget
	var endDate sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.Name,
		&b.Amount,
		&b.Period,
		&b.StartDate,
		&endDate,
		&b.CategoryID,
		&b.CategoryName,
	)
	if err != nil {
		return nil, err
	}

	if endDate.Valid {
		b.EndDate = &endDate.Time
	}

	return &b, nil
}
