package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrMissingSubject     = errors.New("token missing subject")
	ErrTokenTypeMismatch  = errors.New("token type mismatch")
	ErrUnknownSubject     = errors.New("unknown token subject")
)

// TokenTypeError reports a token whose type claim does not match the type the
// caller expected. It matches ErrTokenTypeMismatch under errors.Is.
type TokenTypeError struct {
	Expected string
	Actual   string
}

func (e *TokenTypeError) Error() string {
	return fmt.Sprintf("token has incorrect type %q, expected %q", e.Actual, e.Expected)
}

func (e *TokenTypeError) Is(target error) bool {
	return target == ErrTokenTypeMismatch
}
