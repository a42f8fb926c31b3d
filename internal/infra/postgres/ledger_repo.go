package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekazakova/moneta/internal/analytics"
	"github.com/ekazakova/moneta/internal/platform/category"
)

// LedgerRepository is the analytics read model over the transactions table.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new PostgreSQL ledger repository
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

const entrySelect = `
	SELECT t.amount, t.kind, t.occurred_at, t.category_id
	FROM transactions t
	JOIN accounts a ON a.id = t.account_id
	WHERE a.user_id = $1
`

// EntriesBefore returns the user's entries with occurred_at strictly
// before cutoff.
func (r *LedgerRepository) EntriesBefore(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]analytics.Entry, error) {
	query := entrySelect + ` AND t.occurred_at < $2 ORDER BY t.occurred_at, t.id`

	return r.queryEntries(ctx, query, userID, cutoff)
}

// EntriesBetween returns the user's entries with from <= occurred_at < to,
// ordered by occurred_at then id.
func (r *LedgerRepository) EntriesBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]analytics.Entry, error) {
	query := entrySelect + ` AND t.occurred_at >= $2 AND t.occurred_at < $3 ORDER BY t.occurred_at, t.id`

	return r.queryEntries(ctx, query, userID, from, to)
}

// Entries returns all of the user's entries.
func (r *LedgerRepository) Entries(ctx context.Context, userID uuid.UUID) ([]analytics.Entry, error) {
	query := entrySelect + ` ORDER BY t.occurred_at, t.id`

	return r.queryEntries(ctx, query, userID)
}

// CategoriesByKind lists all categories of the given kind.
func (r *LedgerRepository) CategoriesByKind(ctx context.Context, kind category.Kind) ([]analytics.CategoryRef, error) {
	query := `SELECT id, name FROM categories WHERE kind = $1 ORDER BY name`

	rows, err := r.pool.Query(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	refs := make([]analytics.CategoryRef, 0)
	for rows.Next() {
		var ref analytics.CategoryRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		refs = append(refs, ref)
	}

	return refs, rows.Err()
}

func (r *LedgerRepository) queryEntries(ctx context.Context, query string, args ...any) ([]analytics.Entry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]analytics.Entry, 0)
	for rows.Next() {
		var e analytics.Entry
		if err := rows.Scan(&e.Amount, &e.Kind, &e.OccurredAt, &e.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
