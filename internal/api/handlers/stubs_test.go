package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spendlog/server/internal/api/middleware"
	"github.com/spendlog/server/internal/domain/categories"
	"github.com/spendlog/server/internal/domain/records"
	"github.com/spendlog/server/internal/domain/users"
)

type stubUserRepo struct {
	createFn        func(ctx context.Context, params users.CreateParams) (*users.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*users.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*users.User, error)
	deleteFn        func(ctx context.Context, id int64) error
}

func (s *stubUserRepo) Create(ctx context.Context, params users.CreateParams) (*users.User, error) {
	return s.createFn(ctx, params)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	if s.getByUsernameFn == nil {
		return nil, users.ErrNotFound
	}
	return s.getByUsernameFn(ctx, username)
}

func (s *stubUserRepo) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubCategoryRepo struct {
	createFn        func(ctx context.Context, name string, ownerID int64) (*categories.Category, error)
	getVisibleFn    func(ctx context.Context, id, viewerID int64) (*categories.Category, error)
	listVisibleFn   func(ctx context.Context, viewerID int64) ([]categories.Category, error)
	deleteVisibleFn func(ctx context.Context, id, viewerID int64) error
}

func (s *stubCategoryRepo) Create(ctx context.Context, name string, ownerID int64) (*categories.Category, error) {
	return s.createFn(ctx, name, ownerID)
}

func (s *stubCategoryRepo) GetVisible(ctx context.Context, id, viewerID int64) (*categories.Category, error) {
	return s.getVisibleFn(ctx, id, viewerID)
}

func (s *stubCategoryRepo) ListVisible(ctx context.Context, viewerID int64) ([]categories.Category, error) {
	return s.listVisibleFn(ctx, viewerID)
}

func (s *stubCategoryRepo) DeleteVisible(ctx context.Context, id, viewerID int64) error {
	return s.deleteVisibleFn(ctx, id, viewerID)
}

type stubRecordRepo struct {
	createFn      func(ctx context.Context, params records.CreateParams) (*records.Record, error)
	getOwnedFn    func(ctx context.Context, id, ownerID int64) (*records.Record, error)
	listOwnedFn   func(ctx context.Context, ownerID int64, filters records.Filters) ([]records.Record, error)
	deleteOwnedFn func(ctx context.Context, id, ownerID int64) error
}

func (s *stubRecordRepo) Create(ctx context.Context, params records.CreateParams) (*records.Record, error) {
	return s.createFn(ctx, params)
}

func (s *stubRecordRepo) GetOwned(ctx context.Context, id, ownerID int64) (*records.Record, error) {
	return s.getOwnedFn(ctx, id, ownerID)
}

func (s *stubRecordRepo) ListOwned(ctx context.Context, ownerID int64, filters records.Filters) ([]records.Record, error) {
	return s.listOwnedFn(ctx, ownerID, filters)
}

func (s *stubRecordRepo) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	return s.deleteOwnedFn(ctx, id, ownerID)
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// asUser attaches a caller identity the way RequireAuth would.
func asUser(r *http.Request, userID int64, username string) *http.Request {
	ctx := middleware.ContextWithIdentity(r.Context(), &middleware.Identity{UserID: userID, Username: username})
	return r.WithContext(ctx)
}
