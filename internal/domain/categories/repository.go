package categories

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("category not found")
	ErrNameRequired = errors.New("category name is required")
)

// Category is a spending label. A nil OwnerID marks a global category
// visible to every authenticated user; otherwise it belongs to one user.
type Category struct {
	ID      int64
	Name    string
	OwnerID *int64
}

// Repository operations take the viewer's user id and apply the visibility
// predicate (owner IS NULL OR owner = viewer) in the query itself, so a
// category owned by someone else behaves exactly like a missing row.
type Repository interface {
	Create(ctx context.Context, name string, ownerID int64) (*Category, error)
	GetVisible(ctx context.Context, id, viewerID int64) (*Category, error)
	ListVisible(ctx context.Context, viewerID int64) ([]Category, error)
	// DeleteVisible removes a visible category; the store cascades to its
	// records. Returns ErrNotFound when no visible row was deleted.
	DeleteVisible(ctx context.Context, id, viewerID int64) error
}
