package storage

import (
	"context"

	"github.com/spendlog/server/internal/domain/categories"
	"github.com/spendlog/server/internal/domain/records"
	"github.com/spendlog/server/internal/domain/users"
)

// Repository groups data access by domain.
type Repository interface {
	Users() users.Repository
	Categories() categories.Repository
	Records() records.Repository

	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
}
