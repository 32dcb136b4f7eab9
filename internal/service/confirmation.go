package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/msomdec/storeapi/internal/domain"
)

// Register creates an unconfirmed user and returns it together with a
// confirmation token to be delivered to the user out of band.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	// Skip the hashing cost for emails we already know about; the unique
	// constraint in the store still decides concurrent registrations.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.IssueConfirmationToken(user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue confirmation token: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// IssueConfirmationToken returns a signed confirmation token for email.
func (s *AuthService) IssueConfirmationToken(email string) (string, error) {
	return s.tokens.Encode(email, TokenConfirmation, s.policy.ConfirmationTTL)
}

// Confirm consumes a confirmation token and marks its user confirmed.
// It returns the confirmed email. Confirming twice is not an error.
func (s *AuthService) Confirm(ctx context.Context, token string) (string, error) {
	email, err := s.tokens.Decode(token, TokenConfirmation)
	if err != nil {
		return "", err
	}

	if err := s.users.SetConfirmed(ctx, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnknownSubject
		}
		return "", fmt.Errorf("set confirmed: %w", err)
	}

	slog.Info("user confirmed", "email", email)
	return email, nil
}
