package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/storeapi/internal/domain"
)

// postRepo implements domain.PostRepository using SQLite.
type postRepo struct {
	db *sql.DB
}

const selectPostsWithLikes = `SELECT p.id, p.user_id, p.body, p.created_at, COUNT(l.id) AS likes
	FROM posts p LEFT JOIN likes l ON l.post_id = p.id`

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (user_id, body, created_at) VALUES (?, ?, ?)`,
		post.UserID, post.Body, now,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get post id: %w", err)
	}

	post.ID = id
	post.CreatedAt = now
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	p := &domain.Post{}
	err := r.db.QueryRowContext(ctx,
		selectPostsWithLikes+` WHERE p.id = ? GROUP BY p.id`, id,
	).Scan(&p.ID, &p.UserID, &p.Body, &p.CreatedAt, &p.Likes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

func (r *postRepo) List(ctx context.Context, sorting domain.PostSorting) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, selectPostsWithLikes+` GROUP BY p.id ORDER BY `+orderBy(sorting))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Body, &p.CreatedAt, &p.Likes); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postRepo) CreateComment(ctx context.Context, comment *domain.Comment) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (post_id, user_id, body, created_at) VALUES (?, ?, ?, ?)`,
		comment.PostID, comment.UserID, comment.Body, now,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get comment id: %w", err)
	}

	comment.ID = id
	comment.CreatedAt = now
	return nil
}

func (r *postRepo) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, post_id, user_id, body, created_at
		 FROM comments WHERE post_id = ? ORDER BY id`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *postRepo) CreateLike(ctx context.Context, like *domain.Like) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO likes (post_id, user_id, created_at) VALUES (?, ?, ?)`,
		like.PostID, like.UserID, now,
	)
	if err != nil {
		return fmt.Errorf("insert like: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get like id: %w", err)
	}

	like.ID = id
	like.CreatedAt = now
	return nil
}

// orderBy maps a sort order to its ORDER BY clause. Only fixed strings are
// returned, never caller input.
func orderBy(sorting domain.PostSorting) string {
	switch sorting {
	case domain.SortOld:
		return "p.id ASC"
	case domain.SortMostLikes:
		return "likes DESC, p.id ASC"
	default:
		return "p.id DESC"
	}
}
