package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendlog/server/internal/domain/categories"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func (r *CategoryRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func (r *CategoryRepository) Create(ctx context.Context, name string, ownerID int64) (*categories.Category, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO categories (name, user_id)
VALUES ($1, $2)
RETURNING id, name, user_id
`, name, ownerID)

	category, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (r *CategoryRepository) GetVisible(ctx context.Context, id, viewerID int64) (*categories.Category, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT id, name, user_id
  FROM categories
 WHERE id = $1
   AND (user_id IS NULL OR user_id = $2)
`, id, viewerID)

	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, categories.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

func (r *CategoryRepository) ListVisible(ctx context.Context, viewerID int64) ([]categories.Category, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT id, name, user_id
  FROM categories
 WHERE user_id IS NULL OR user_id = $1
 ORDER BY id
`, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := []categories.Category{}
	for rows.Next() {
		var c categories.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.OwnerID); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

func (r *CategoryRepository) DeleteVisible(ctx context.Context, id, viewerID int64) error {
	tag, err := r.queryer().Exec(ctx, `
DELETE FROM categories
 WHERE id = $1
   AND (user_id IS NULL OR user_id = $2)
`, id, viewerID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return categories.ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*categories.Category, error) {
	var c categories.Category
	if err := row.Scan(&c.ID, &c.Name, &c.OwnerID); err != nil {
		return nil, err
	}
	return &c, nil
}
