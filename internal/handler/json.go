package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/storeapi/internal/domain"
)

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"detail": message})
}

// writeUnauthorized sends a 401 carrying a bearer challenge.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, message)
}

// maxBodyBytes caps JSON and form request bodies.
const maxBodyBytes = 1 << 20 // 1MB

// readJSON decodes the request body into the given destination, reading at
// most maxBodyBytes.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeBodyError reports a request body that could not be read or decoded.
func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large.")
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid request body.")
}

// authErrorDetail returns the client-facing message for an authentication
// or token error, and false if err is not one.
func authErrorDetail(err error) (string, bool) {
	var typeErr *domain.TokenTypeError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnknownSubject):
		return "Could not validate credentials", true
	case errors.Is(err, domain.ErrEmailNotConfirmed):
		return "User has not confirmed email", true
	case errors.Is(err, domain.ErrTokenExpired):
		return "Token has expired", true
	case errors.Is(err, domain.ErrMissingSubject):
		return "Token is missing 'sub' field", true
	case errors.As(err, &typeErr):
		return "Token has incorrect type, expected '" + typeErr.Expected + "'", true
	case errors.Is(err, domain.ErrInvalidToken):
		return "Invalid token", true
	}
	return "", false
}

// writeServiceError maps a service error to its HTTP response. Errors outside
// the known taxonomy are logged under op and reported as 500.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	if detail, ok := authErrorDetail(err); ok {
		writeUnauthorized(w, detail)
		return
	}
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "user already registered")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "post not found!")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
