package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/storeapi/internal/domain"
)

// PostService handles posts, comments and likes.
type PostService struct {
	posts domain.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// Create publishes a new post for userID.
func (s *PostService) Create(ctx context.Context, userID int64, body string) (*domain.Post, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: body is required", domain.ErrInvalidInput)
	}

	post := &domain.Post{UserID: userID, Body: body}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// GetByID returns a post with its like count.
func (s *PostService) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// List returns all posts in the requested order. An empty sorting means newest first.
func (s *PostService) List(ctx context.Context, sorting domain.PostSorting) ([]domain.Post, error) {
	if sorting == "" {
		sorting = domain.SortNew
	}
	if !sorting.Valid() {
		return nil, fmt.Errorf("%w: unknown sorting %q", domain.ErrInvalidInput, sorting)
	}
	return s.posts.List(ctx, sorting)
}

// Comment adds a comment by userID to an existing post.
func (s *PostService) Comment(ctx context.Context, userID, postID int64, body string) (*domain.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: body is required", domain.ErrInvalidInput)
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{PostID: postID, UserID: userID, Body: body}
	if err := s.posts.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// Comments returns the comments of an existing post, oldest first.
func (s *PostService) Comments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.posts.ListComments(ctx, postID)
}

// Like records a like by userID on an existing post.
func (s *PostService) Like(ctx context.Context, userID, postID int64) (*domain.Like, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	like := &domain.Like{PostID: postID, UserID: userID}
	if err := s.posts.CreateLike(ctx, like); err != nil {
		return nil, fmt.Errorf("create like: %w", err)
	}
	return like, nil
}
