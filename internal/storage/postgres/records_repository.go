package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendlog/server/internal/domain/records"
)

type RecordRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func (r *RecordRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func (r *RecordRepository) Create(ctx context.Context, params records.CreateParams) (*records.Record, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO records (user_id, category_id, amount)
VALUES ($1, $2, $3)
RETURNING id, user_id, category_id, amount, created_at
`, params.UserID, params.CategoryID, params.Amount)

	record, err := scanRecord(row)
	if err != nil {
		// The category can disappear between the visibility check and the
		// insert; the FK violation keeps the store consistent.
		if isForeignKeyViolation(err) {
			return nil, records.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("create record: %w", err)
	}
	return record, nil
}

func (r *RecordRepository) GetOwned(ctx context.Context, id, ownerID int64) (*records.Record, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT id, user_id, category_id, amount, created_at
  FROM records
 WHERE id = $1
   AND user_id = $2
`, id, ownerID)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, records.ErrNotFound
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

func (r *RecordRepository) ListOwned(ctx context.Context, ownerID int64, filters records.Filters) ([]records.Record, error) {
	query := `
SELECT id, user_id, category_id, amount, created_at
  FROM records
 WHERE user_id = $1`
	args := []any{ownerID}
	if filters.CategoryID != nil {
		query += ` AND category_id = $2`
		args = append(args, *filters.CategoryID)
	}
	query += ` ORDER BY id`

	rows, err := r.queryer().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	items := []records.Record{}
	for rows.Next() {
		var rec records.Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.CategoryID, &rec.Amount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return items, nil
}

func (r *RecordRepository) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	tag, err := r.queryer().Exec(ctx, `
DELETE FROM records
 WHERE id = $1
   AND user_id = $2
`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return records.ErrNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (*records.Record, error) {
	var rec records.Record
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.CategoryID, &rec.Amount, &rec.CreatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}
