package domain

import (
	"context"
	"time"
)

// User represents a registered user of the application.
// A user cannot log in until Confirmed is true.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Confirmed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// SetConfirmed marks the user with the given email as confirmed.
	// Confirming an already confirmed user is not an error.
	SetConfirmed(ctx context.Context, email string) error
}
