package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/storeapi/internal/domain"
)

// TokenType distinguishes what a signed token may be used for.
type TokenType string

const (
	TokenAccess       TokenType = "access"
	TokenConfirmation TokenType = "confirmation"
)

const (
	DefaultAccessTTL       = 30 * time.Minute
	DefaultConfirmationTTL = 24 * time.Hour
	DefaultAlgorithm       = "HS256"
)

// TokenPolicy holds the lifetimes of issued tokens. A negative TTL produces
// tokens that are already expired.
type TokenPolicy struct {
	AccessTTL       time.Duration
	ConfirmationTTL time.Duration
}

// DefaultTokenPolicy returns the standard token lifetimes.
func DefaultTokenPolicy() TokenPolicy {
	return TokenPolicy{
		AccessTTL:       DefaultAccessTTL,
		ConfirmationTTL: DefaultConfirmationTTL,
	}
}

type tokenClaims struct {
	Type TokenType `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies typed, expiring JWTs whose subject is a user email.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	parser *jwt.Parser
}

// NewTokenCodec creates a TokenCodec for the given HMAC algorithm
// (HS256, HS384 or HS512). An empty algorithm selects HS256.
func NewTokenCodec(secret, algorithm string) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &TokenCodec{
		secret: []byte(secret),
		method: method,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{method.Alg()}), jwt.WithIssuedAt()),
	}, nil
}

// Encode issues a token for subject of the given type that expires after ttl.
func (c *TokenCodec) Encode(subject string, typ TokenType, ttl time.Duration) (string, error) {
	slog.Debug("creating token", "email", subject, "type", typ)
	now := time.Now()
	claims := tokenClaims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies token and returns its subject. The token must carry a valid
// signature, must not be expired and must be of the expected type.
func (c *TokenCodec) Decode(token string, expected TokenType) (string, error) {
	claims := &tokenClaims{}
	_, err := c.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", domain.ErrMissingSubject
	}
	if claims.Type != expected {
		return "", &domain.TokenTypeError{Expected: string(expected), Actual: string(claims.Type)}
	}
	return claims.Subject, nil
}
