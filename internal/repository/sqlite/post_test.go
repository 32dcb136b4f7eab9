package sqlite_test

import (
	"context"
	"testing"

	"github.com/msomdec/storeapi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, db interface{ Users() domain.UserRepository }, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, db.Users().Create(context.Background(), user))
	return user
}

func TestPostRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "post@example.com")
	repo := db.Posts()
	ctx := context.Background()

	post := &domain.Post{UserID: user.ID, Body: "The Post"}
	require.NoError(t, repo.Create(ctx, post))
	assert.NotZero(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Post", got.Body)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, 0, got.Likes)

	_, err = repo.GetByID(ctx, 99999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostRepository_ListOrders(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "list@example.com")
	repo := db.Posts()
	ctx := context.Background()

	var ids []int64
	for _, body := range []string{"one", "two", "three"} {
		p := &domain.Post{UserID: user.ID, Body: body}
		require.NoError(t, repo.Create(ctx, p))
		ids = append(ids, p.ID)
	}
	// two gets two likes, three gets one.
	for _, postID := range []int64{ids[1], ids[1], ids[2]} {
		require.NoError(t, repo.CreateLike(ctx, &domain.Like{PostID: postID, UserID: user.ID}))
	}

	collect := func(sorting domain.PostSorting) []int64 {
		posts, err := repo.List(ctx, sorting)
		require.NoError(t, err)
		out := make([]int64, len(posts))
		for i, p := range posts {
			out[i] = p.ID
		}
		return out
	}

	assert.Equal(t, []int64{ids[2], ids[1], ids[0]}, collect(domain.SortNew))
	assert.Equal(t, []int64{ids[0], ids[1], ids[2]}, collect(domain.SortOld))
	assert.Equal(t, []int64{ids[1], ids[2], ids[0]}, collect(domain.SortMostLikes))
}

func TestPostRepository_Comments(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "comment@example.com")
	repo := db.Posts()
	ctx := context.Background()

	post := &domain.Post{UserID: user.ID, Body: "The Post"}
	require.NoError(t, repo.Create(ctx, post))

	empty, err := repo.ListComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, body := range []string{"first", "second"} {
		require.NoError(t, repo.CreateComment(ctx, &domain.Comment{PostID: post.ID, UserID: user.ID, Body: body}))
	}

	comments, err := repo.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Body)
	assert.Equal(t, "second", comments[1].Body)
}

func TestPostRepository_LikeRequiresPost(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "like@example.com")

	err := db.Posts().CreateLike(context.Background(), &domain.Like{PostID: 99999, UserID: user.ID})
	assert.Error(t, err, "foreign key should reject likes on missing posts")
}
