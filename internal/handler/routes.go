package handler

import (
	"net/http"

	"github.com/msomdec/storeapi/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, posts *service.PostService, publicURL string) {
	authHandler := NewAuthHandler(auth, publicURL)
	postHandler := NewPostHandler(posts)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}

	mux.HandleFunc("GET /{$}", HandleRoot)
	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /register", authHandler.HandleRegister)
	mux.HandleFunc("POST /token", authHandler.HandleToken)
	mux.HandleFunc("GET /confirm/{token}", authHandler.HandleConfirm)
	mux.Handle("GET /me", protected(authHandler.HandleMe))

	mux.HandleFunc("GET /post", postHandler.HandleListPosts)
	mux.HandleFunc("GET /post/{id}", postHandler.HandleGetPost)
	mux.HandleFunc("GET /post/{id}/comment", postHandler.HandleListComments)
	mux.Handle("POST /post", protected(postHandler.HandleCreatePost))
	mux.Handle("POST /comment", protected(postHandler.HandleCreateComment))
	mux.Handle("POST /like", protected(postHandler.HandleLike))
}
