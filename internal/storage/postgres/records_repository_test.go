package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlog/server/internal/domain/records"
	"github.com/spendlog/server/internal/storage"
)

func TestRecordRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &RecordRepository{pool: pool}

	alice := insertUser(t, ctx, pool, "alice")
	categoryID := insertCategory(t, ctx, pool, "Groceries", nil)

	created, err := repo.Create(ctx, records.CreateParams{UserID: alice, CategoryID: categoryID, Amount: 12.50})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, alice, created.UserID)
	assert.Equal(t, 12.50, created.Amount)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestRecordRepositoryCreateMissingCategory(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &RecordRepository{pool: pool}

	alice := insertUser(t, ctx, pool, "alice")

	_, err := repo.Create(ctx, records.CreateParams{UserID: alice, CategoryID: 9999, Amount: 1.00})
	assert.ErrorIs(t, err, records.ErrCategoryNotFound)
}

func TestRecordRepositoryOwnerScoping(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &RecordRepository{pool: pool}

	alice := insertUser(t, ctx, pool, "alice")
	bob := insertUser(t, ctx, pool, "bob")
	categoryID := insertCategory(t, ctx, pool, "Groceries", nil)

	aliceRecord := insertRecord(t, ctx, pool, alice, categoryID, 5.00)
	insertRecord(t, ctx, pool, bob, categoryID, 7.00)

	// Listing only returns the owner's rows.
	list, err := repo.ListOwned(ctx, alice, records.Filters{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, aliceRecord, list[0].ID)

	// Another user's record behaves like a missing row.
	_, err = repo.GetOwned(ctx, aliceRecord, bob)
	assert.ErrorIs(t, err, records.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteOwned(ctx, aliceRecord, bob), records.ErrNotFound)

	// Still there for the owner.
	got, err := repo.GetOwned(ctx, aliceRecord, alice)
	require.NoError(t, err)
	assert.Equal(t, 5.00, got.Amount)
}

func TestRecordRepositoryListWithCategoryFilter(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &RecordRepository{pool: pool}

	alice := insertUser(t, ctx, pool, "alice")
	groceries := insertCategory(t, ctx, pool, "Groceries", nil)
	hobbies := insertCategory(t, ctx, pool, "Hobbies", &alice)

	insertRecord(t, ctx, pool, alice, groceries, 5.00)
	hobbyRecord := insertRecord(t, ctx, pool, alice, hobbies, 20.00)

	list, err := repo.ListOwned(ctx, alice, records.Filters{CategoryID: &hobbies})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, hobbyRecord, list[0].ID)
}

func TestRecordRepositoryListEmpty(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &RecordRepository{pool: pool}

	alice := insertUser(t, ctx, pool, "alice")

	list, err := repo.ListOwned(ctx, alice, records.Filters{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestRecordRepositoryDeleteIdempotence(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &RecordRepository{pool: pool}

	alice := insertUser(t, ctx, pool, "alice")
	categoryID := insertCategory(t, ctx, pool, "Groceries", nil)
	recordID := insertRecord(t, ctx, pool, alice, categoryID, 3.00)

	require.NoError(t, repo.DeleteOwned(ctx, recordID, alice))
	assert.ErrorIs(t, repo.DeleteOwned(ctx, recordID, alice), records.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteOwned(ctx, recordID, alice), records.ErrNotFound)
}

func TestRepositoryWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)

	repo, err := NewRepository(pool)
	require.NoError(t, err)

	alice := insertUser(t, ctx, pool, "alice")
	categoryID := insertCategory(t, ctx, pool, "Groceries", nil)

	boom := assert.AnError
	err = repo.WithTx(ctx, func(ctx context.Context, txRepo storage.Repository) error {
		_, err := txRepo.Records().Create(ctx, records.CreateParams{UserID: alice, CategoryID: categoryID, Amount: 1.00})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM records`).Scan(&count))
	assert.Zero(t, count)
}
