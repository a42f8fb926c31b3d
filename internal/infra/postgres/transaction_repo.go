package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ekazakova/moneta/internal/platform/transaction"
)

// TransactionRepository implements the repository interface using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// transactionSelect pulls the read-side joins every listing needs. Tag IDs
// come from a correlated subquery so no GROUP BY is required.
const transactionSelect = `
	SELECT t.id, t.account_id, t.category_id, t.amount, t.kind, t.occurred_at,
	       t.description, t.is_recurring,
	       a.name, COALESCE(c.name, ''), cur.code,
	       (SELECT COALESCE(array_agg(tt.tag_id), '{}')
	        FROM transaction_tags tt WHERE tt.transaction_id = t.id)
	FROM transactions t
	JOIN accounts a ON a.id = t.account_id
	JOIN currencies cur ON cur.id = a.currency_id
	LEFT JOIN categories c ON c.id = t.category_id
`

// Create creates a new transaction with its tag links
func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO transactions (id, account_id, category_id, amount, kind, occurred_at, description, is_recurring)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, query,
		t.ID,
		t.AccountID,
		t.CategoryID,
		t.Amount,
		t.Kind,
		t.OccurredAt,
		t.Description,
		t.Recurring,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := insertTagLinks(ctx, tx, t.ID, t.TagIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := transactionSelect + ` WHERE t.id = $1`

	t, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return t, nil
}

// OwnerOf returns the user owning the transaction's account
func (r *TransactionRepository) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	query := `
		SELECT a.user_id
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.id = $1
	`

	var userID uuid.UUID
	err := r.pool.QueryRow(ctx, query, id).Scan(&userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, transaction.ErrTransactionNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get transaction owner: %w", err)
	}

	return userID, nil
}

// ListByUser retrieves a user's transactions, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter transaction.Filter) ([]*transaction.Transaction, error) {
	query := transactionSelect + ` WHERE a.user_id = $1`
	args := []any{userID}

	if filter.Kind != "" {
		args = append(args, filter.Kind)
		query += fmt.Sprintf(" AND t.kind = $%d", len(args))
	}
	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		query += fmt.Sprintf(" AND t.account_id = $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND t.category_id = $%d", len(args))
	}

	query += " ORDER BY t.occurred_at DESC, t.id DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return r.queryTransactions(ctx, query, args...)
}

// Update updates a transaction and replaces its tag links
func (r *TransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE transactions
		SET account_id = $2, category_id = $3, amount = $4, kind = $5, occurred_at = $6, description = $7, is_recurring = $8
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query,
		t.ID,
		t.AccountID,
		t.CategoryID,
		t.Amount,
		t.Kind,
		t.OccurredAt,
		t.Description,
		t.Recurring,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_tags WHERE transaction_id = $1`, t.ID); err != nil {
		return fmt.Errorf("failed to clear tag links: %w", err)
	}
	if err := insertTagLinks(ctx, tx, t.ID, t.TagIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete deletes a transaction
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

// SumByKindSince sums amounts of the given kind since the cutoff
func (r *TransactionRepository) SumByKindSince(ctx context.Context, userID uuid.UUID, kind transaction.Kind, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(t.amount), 0)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = $1 AND t.kind = $2 AND t.occurred_at >= $3
	`

	var sum decimal.Decimal
	err := r.pool.QueryRow(ctx, query, userID, kind, since).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}

	return sum, nil
}

// CountSince counts a user's transactions since the cutoff
func (r *TransactionRepository) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = $1 AND t.occurred_at >= $2
	`

	var count int
	err := r.pool.QueryRow(ctx, query, userID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return count, nil
}

// Search matches a user's transactions by description, category name or
// account name, newest first, capped at limit rows
func (r *TransactionRepository) Search(ctx context.Context, userID uuid.UUID, search string, limit int) ([]*transaction.Transaction, error) {
	query := transactionSelect + `
		WHERE a.user_id = $1
		  AND (t.description ILIKE $2 OR c.name ILIKE $2 OR a.name ILIKE $2)
		ORDER BY t.occurred_at DESC, t.id DESC
		LIMIT $3
	`

	pattern := "%" + search + "%"
	return r.queryTransactions(ctx, query, userID, pattern, limit)
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]*transaction.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*transaction.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (*transaction.Transaction, error) {
	var t transaction.Transaction
	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.CategoryID,
		&t.Amount,
		&t.Kind,
		&t.OccurredAt,
		&t.Description,
		&t.Recurring,
		&t.AccountName,
		&t.CategoryName,
		&t.CurrencyCode,
		&t.TagIDs,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func insertTagLinks(ctx context.Context, tx pgx.Tx, transactionID uuid.UUID, tagIDs []uuid.UUID) error {
	for _, tagID := range tagIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO transaction_tags (transaction_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			transactionID, tagID,
		)
		if err != nil {
			return fmt.Errorf("failed to link tag: %w", err)
		}
	}
	return nil
}
