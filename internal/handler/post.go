package handler

import (
	"net/http"
	"strconv"

	"github.com/msomdec/storeapi/internal/domain"
	"github.com/msomdec/storeapi/internal/service"
)

// PostHandler handles posts, comments and likes.
type PostHandler struct {
	posts *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// HandleCreatePost publishes a post for the current user.
// POST /post
// Request:  {"body":"..."}
func (h *PostHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	var req createPostRequest
	if err := readJSON(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	post, err := h.posts.Create(r.Context(), user.ID, req.Body)
	if err != nil {
		writeServiceError(w, "create post", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostDTO(post))
}

// HandleListPosts lists posts with their like counts.
// GET /post?sorting=new|old|most_likes
func (h *PostHandler) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context(), domain.PostSorting(r.URL.Query().Get("sorting")))
	if err != nil {
		writeServiceError(w, "list posts", err)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTOs(posts))
}

// HandleGetPost returns a post with its comments.
// GET /post/{id}
func (h *PostHandler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, "get post", err)
		return
	}
	comments, err := h.posts.Comments(r.Context(), id)
	if err != nil {
		writeServiceError(w, "list comments", err)
		return
	}

	writeJSON(w, http.StatusOK, PostWithCommentsDTO{
		Post:     toPostDTO(post),
		Comments: toCommentDTOs(comments),
	})
}

// HandleListComments returns the comments of a post.
// GET /post/{id}/comment
func (h *PostHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	comments, err := h.posts.Comments(r.Context(), id)
	if err != nil {
		writeServiceError(w, "list comments", err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentDTOs(comments))
}

// HandleCreateComment comments on a post as the current user.
// POST /comment
// Request:  {"body":"...","post_id":1}
func (h *PostHandler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	var req createCommentRequest
	if err := readJSON(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	comment, err := h.posts.Comment(r.Context(), user.ID, req.PostID, req.Body)
	if err != nil {
		writeServiceError(w, "create comment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentDTO(comment))
}

// HandleLike likes a post as the current user.
// POST /like
// Request:  {"post_id":1}
func (h *PostHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	var req likeRequest
	if err := readJSON(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	like, err := h.posts.Like(r.Context(), user.ID, req.PostID)
	if err != nil {
		writeServiceError(w, "like post", err)
		return
	}
	writeJSON(w, http.StatusCreated, toLikeDTO(like))
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "id must be an integer")
		return 0, false
	}
	return id, true
}
