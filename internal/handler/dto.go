package handler

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/msomdec/storeapi/internal/domain"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Confirmed bool   `json:"confirmed"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{ID: u.ID, Email: u.Email, Confirmed: u.Confirmed}
}

// PostDTO is the JSON representation of a post with its like count.
type PostDTO struct {
	ID     int64  `json:"id"`
	Body   string `json:"body"`
	UserID int64  `json:"user_id"`
	Likes  int    `json:"likes"`
}

func toPostDTO(p *domain.Post) PostDTO {
	return PostDTO{ID: p.ID, Body: p.Body, UserID: p.UserID, Likes: p.Likes}
}

func toPostDTOs(posts []domain.Post) []PostDTO {
	dtos := make([]PostDTO, len(posts))
	for i := range posts {
		dtos[i] = toPostDTO(&posts[i])
	}
	return dtos
}

// CommentDTO is the JSON representation of a comment.
type CommentDTO struct {
	ID     int64  `json:"id"`
	Body   string `json:"body"`
	PostID int64  `json:"post_id"`
	UserID int64  `json:"user_id"`
}

func toCommentDTO(c *domain.Comment) CommentDTO {
	return CommentDTO{ID: c.ID, Body: c.Body, PostID: c.PostID, UserID: c.UserID}
}

func toCommentDTOs(comments []domain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i := range comments {
		dtos[i] = toCommentDTO(&comments[i])
	}
	return dtos
}

// LikeDTO is the JSON representation of a like.
type LikeDTO struct {
	ID     int64 `json:"id"`
	PostID int64 `json:"post_id"`
	UserID int64 `json:"user_id"`
}

func toLikeDTO(l *domain.Like) LikeDTO {
	return LikeDTO{ID: l.ID, PostID: l.PostID, UserID: l.UserID}
}

// PostWithCommentsDTO is the response of GET /post/{id}.
type PostWithCommentsDTO struct {
	Post     PostDTO      `json:"post"`
	Comments []CommentDTO `json:"comments"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type loginRequest struct {
	Username string
	Password string
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type createPostRequest struct {
	Body string `json:"body"`
}

func (r createPostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Body, validation.Required),
	)
}

type createCommentRequest struct {
	Body   string `json:"body"`
	PostID int64  `json:"post_id"`
}

func (r createCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Body, validation.Required),
		validation.Field(&r.PostID, validation.Required),
	)
}

type likeRequest struct {
	PostID int64 `json:"post_id"`
}

func (r likeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PostID, validation.Required),
	)
}
