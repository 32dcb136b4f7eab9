package service_test

import (
	"context"
	"testing"

	"github.com/msomdec/storeapi/internal/domain"
	"github.com/msomdec/storeapi/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostService(t *testing.T) (*service.PostService, *domain.User) {
	t.Helper()
	auth, db := newTestAuthService(t, service.DefaultTokenPolicy())
	user := registerConfirmed(t, auth, "poster@test.com", "12345")
	return service.NewPostService(db.Posts()), user
}

func TestPostService_Create(t *testing.T) {
	posts, user := newTestPostService(t)

	post, err := posts.Create(context.Background(), user.ID, "The Post")
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, user.ID, post.UserID)
	assert.Equal(t, "The Post", post.Body)
}

func TestPostService_Create_EmptyBody(t *testing.T) {
	posts, user := newTestPostService(t)

	_, err := posts.Create(context.Background(), user.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPostService_List_Empty(t *testing.T) {
	posts, _ := newTestPostService(t)

	list, err := posts.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPostService_List_Sorted(t *testing.T) {
	posts, user := newTestPostService(t)
	ctx := context.Background()

	first, err := posts.Create(ctx, user.ID, "Demo 1")
	require.NoError(t, err)
	second, err := posts.Create(ctx, user.ID, "Demo 2")
	require.NoError(t, err)
	_, err = posts.Like(ctx, user.ID, first.ID)
	require.NoError(t, err)

	tests := []struct {
		sorting domain.PostSorting
		want    []int64
	}{
		{"", []int64{second.ID, first.ID}},
		{domain.SortNew, []int64{second.ID, first.ID}},
		{domain.SortOld, []int64{first.ID, second.ID}},
		{domain.SortMostLikes, []int64{first.ID, second.ID}},
	}

	for _, tc := range tests {
		t.Run(string(tc.sorting), func(t *testing.T) {
			list, err := posts.List(ctx, tc.sorting)
			require.NoError(t, err)

			ids := make([]int64, len(list))
			for i, p := range list {
				ids[i] = p.ID
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestPostService_List_UnknownSorting(t *testing.T) {
	posts, _ := newTestPostService(t)

	_, err := posts.List(context.Background(), "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPostService_CommentsAndLikes(t *testing.T) {
	posts, user := newTestPostService(t)
	ctx := context.Background()

	post, err := posts.Create(ctx, user.ID, "The Post")
	require.NoError(t, err)

	comment, err := posts.Comment(ctx, user.ID, post.ID, "The Comment")
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)

	_, err = posts.Like(ctx, user.ID, post.ID)
	require.NoError(t, err)

	comments, err := posts.Comments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "The Comment", comments[0].Body)

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Likes)
}

func TestPostService_MissingPost(t *testing.T) {
	posts, user := newTestPostService(t)
	ctx := context.Background()

	_, err := posts.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = posts.Comment(ctx, user.ID, 99, "The Comment")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = posts.Comments(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = posts.Like(ctx, user.ID, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
