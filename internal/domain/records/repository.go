package records

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrCategoryNotFound covers both a missing category and one owned by
	// another user; the two are indistinguishable to the caller.
	ErrCategoryNotFound = errors.New("category not found")
)

type Record struct {
	ID         int64
	UserID     int64
	CategoryID int64
	Amount     float64
	// CreatedAt is assigned by the store on insert and never updated.
	CreatedAt time.Time
}

type CreateParams struct {
	UserID     int64
	CategoryID int64
	Amount     float64
}

// Filters narrows a record listing. The listing itself is always scoped to
// the owner; filters only narrow within that scope.
type Filters struct {
	CategoryID *int64
}

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Record, error)
	GetOwned(ctx context.Context, id, ownerID int64) (*Record, error)
	ListOwned(ctx context.Context, ownerID int64, filters Filters) ([]Record, error)
	// DeleteOwned returns ErrNotFound when no owned row was deleted.
	DeleteOwned(ctx context.Context, id, ownerID int64) error
}
