package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekazakova/moneta/internal/platform/tag"
)

// TagRepository implements the repository interface using PostgreSQL
type TagRepository struct {
	pool *pgxpool.Pool
}

// NewTagRepository creates a new PostgreSQL tag repository
func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

// Create creates a new tag
func (r *TagRepository) Create(ctx context.Context, t *tag.Tag) error {
	query := `
		INSERT INTO tags (id, user_id, name, color)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, t.ID, t.UserID, t.Name, t.Color)
	if err != nil {
		if isUniqueViolation(err) {
			return tag.ErrDuplicateTagName
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

// GetByID retrieves a tag by ID
func (r *TagRepository) GetByID(ctx context.Context, id uuid.UUID) (*tag.Tag, error) {
	query := `
		SELECT id, user_id, name, color
		FROM tags
		WHERE id = $1
	`

	var t tag.Tag
	err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.UserID, &t.Name, &t.Color)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, tag.ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return &t, nil
}

// ListByUser retrieves a user's tags ordered by name
func (r *TagRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*tag.Tag, error) {
	query := `
		SELECT id, user_id, name, color
		FROM tags
		WHERE user_id = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]*tag.Tag, 0)
	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &t)
	}

	return tags, rows.Err()
}

// Update updates a tag
func (r *TagRepository) Update(ctx context.Context, t *tag.Tag) error {
	query := `
		UPDATE tags
		SET name = $2, color = $3
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, t.ID, t.Name, t.Color)
	if err != nil {
		if isUniqueViolation(err) {
			return tag.ErrDuplicateTagName
		}
		return fmt.Errorf("failed to update tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return tag.ErrTagNotFound
	}

	return nil
}

// Delete deletes a tag and its transaction links (ON DELETE CASCADE).
func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tags WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return tag.ErrTagNotFound
	}

	return nil
}
