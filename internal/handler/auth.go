package handler

import (
	"net/http"

	"github.com/msomdec/storeapi/internal/service"
)

// AuthHandler handles registration, email confirmation and token issuance.
type AuthHandler struct {
	auth      *service.AuthService
	publicURL string
}

// NewAuthHandler creates a new AuthHandler. publicURL is the externally
// visible base URL used in confirmation links; when empty it is derived from
// the incoming request.
func NewAuthHandler(auth *service.AuthService, publicURL string) *AuthHandler {
	return &AuthHandler{auth: auth, publicURL: publicURL}
}

// HandleRegister creates an unconfirmed user.
// POST /register
// Request:  {"email":"...","password":"..."}
// Response: 201 {"detail":"...","confirmation_url":"..."}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	_, token, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, "register user", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"detail":           "User created. Please confirm your email.",
		"confirmation_url": h.baseURL(r) + "/confirm/" + token,
	})
}

// HandleToken exchanges form-encoded credentials for an access token.
// POST /token
// Request:  username=...&password=...
// Response: {"access_token":"...","token_type":"bearer"}
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeBodyError(w, err)
		return
	}
	req := loginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, "login user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// HandleConfirm consumes a confirmation token.
// GET /confirm/{token}
// Response: {"detail":"User confirmed"}
func (h *AuthHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.auth.Confirm(r.Context(), r.PathValue("token")); err != nil {
		writeServiceError(w, "confirm user", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "User confirmed"})
}

// HandleMe returns the currently authenticated user.
// GET /me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

func (h *AuthHandler) baseURL(r *http.Request) string {
	if h.publicURL != "" {
		return h.publicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
