package domain

import (
	"context"
	"time"
)

type PostSorting string

const (
	SortNew       PostSorting = "new"
	SortOld       PostSorting = "old"
	SortMostLikes PostSorting = "most_likes"
)

// Valid reports whether s is a known sort order.
func (s PostSorting) Valid() bool {
	switch s {
	case SortNew, SortOld, SortMostLikes:
		return true
	}
	return false
}

type Post struct {
	ID        int64
	UserID    int64
	Body      string
	Likes     int // derived from the likes table, not stored
	CreatedAt time.Time
}

type Comment struct {
	ID        int64
	PostID    int64
	UserID    int64
	Body      string
	CreatedAt time.Time
}

type Like struct {
	ID        int64
	PostID    int64
	UserID    int64
	CreatedAt time.Time
}

// PostRepository handles posts together with their comments and likes.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	List(ctx context.Context, sorting PostSorting) ([]Post, error)
	CreateComment(ctx context.Context, comment *Comment) error
	ListComments(ctx context.Context, postID int64) ([]Comment, error)
	CreateLike(ctx context.Context, like *Like) error
}
