package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/msomdec/storeapi/internal/domain"
)

// AuthService handles registration, email confirmation, login and
// resolution of the current user from an access token.
type AuthService struct {
	users  domain.UserRepository
	hasher *PasswordHasher
	tokens *TokenCodec
	policy TokenPolicy
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, hasher *PasswordHasher, tokens *TokenCodec, policy TokenPolicy) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		policy: policy,
	}
}

// Authenticate verifies the credentials of a confirmed user.
// An unknown email and a wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	slog.Debug("authenticating user", "email", email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Confirmed {
		return nil, domain.ErrEmailNotConfirmed
	}

	return user, nil
}

// IssueAccessToken returns a signed access token for email.
func (s *AuthService) IssueAccessToken(email string) (string, error) {
	return s.tokens.Encode(email, TokenAccess, s.policy.AccessTTL)
}

// Login authenticates the user and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.IssueAccessToken(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return token, nil
}

// ResolveCurrentUser returns the user an access token was issued to.
// Token failures are returned as-is; a valid token for a user that no longer
// exists yields ErrUnknownSubject.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error) {
	email, err := s.tokens.Decode(token, TokenAccess)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnknownSubject
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
