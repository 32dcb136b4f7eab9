package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/msomdec/storeapi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ domain.Database = (*DB)(nil)

func TestMigrateWrapsGooseError(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDir string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string) error {
		gotDir = dir
		return errors.New("boom")
	}

	db := &DB{}
	err := db.Migrate(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "run migrations: boom")
	assert.Equal(t, ".", gotDir)
}

// newTestDB connects to TEST_DATABASE_URL and starts from an empty schema.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	db, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.SqlDB.ExecContext(ctx,
		"DROP TABLE IF EXISTS likes, comments, posts, users, goose_db_version CASCADE")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))
	return db
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()
	ctx := context.Background()

	user := &domain.User{Email: "pg@example.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, user))
	assert.NotZero(t, user.ID)

	err := users.Create(ctx, &domain.User{Email: "pg@example.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	require.NoError(t, users.SetConfirmed(ctx, "pg@example.com"))
	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Confirmed)

	_, err = users.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, users.SetConfirmed(ctx, "missing@example.com"), domain.ErrNotFound)
}

func TestPostRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := &domain.User{Email: "poster@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Users().Create(ctx, user))

	posts := db.Posts()
	first := &domain.Post{UserID: user.ID, Body: "first"}
	second := &domain.Post{UserID: user.ID, Body: "second"}
	require.NoError(t, posts.Create(ctx, first))
	require.NoError(t, posts.Create(ctx, second))
	require.NoError(t, posts.CreateLike(ctx, &domain.Like{PostID: first.ID, UserID: user.ID}))
	require.NoError(t, posts.CreateComment(ctx, &domain.Comment{PostID: first.ID, UserID: user.ID, Body: "hi"}))

	list, err := posts.List(ctx, domain.SortMostLikes)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, 1, list[0].Likes)

	list, err = posts.List(ctx, domain.SortNew)
	require.NoError(t, err)
	assert.Equal(t, second.ID, list[0].ID)

	comments, err := posts.ListComments(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "hi", comments[0].Body)

	_, err = posts.GetByID(ctx, 99999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderBy(t *testing.T) {
	tests := []struct {
		sorting domain.PostSorting
		want    string
	}{
		{domain.SortNew, "p.id DESC"},
		{domain.SortOld, "p.id ASC"},
		{domain.SortMostLikes, "likes DESC, p.id ASC"},
		{"'; DROP TABLE posts; --", "p.id DESC"},
	}
	for _, tt := range tests {
		t.Run(string(tt.sorting), func(t *testing.T) {
			assert.Equal(t, tt.want, orderBy(tt.sorting))
		})
	}
}
