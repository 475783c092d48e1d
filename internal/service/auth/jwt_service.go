package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lessonboard/lessonboard/internal/domain"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
	TokenTypeVerify  = "verify"
)

// VerificationTokenLifetime bounds how long an e-mail verification link stays valid.
const VerificationTokenLifetime = 60 * time.Minute

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for user. The token carries a
	// fingerprint of the user's password hash so that a password change
	// invalidates existing sessions.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken validates an access token and extracts its claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed refresh token for user.
	// Refresh tokens have a longer lifetime and are used to obtain new access tokens.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateRefreshToken validates a refresh token and extracts its claims.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateVerificationToken creates the token embedded in an e-mail
	// verification link. It is bound to the user's current address.
	GenerateVerificationToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateVerificationToken validates a verification token and extracts its claims.
	ValidateVerificationToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims structure for the JWT tokens.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType is one of TokenTypeAccess, TokenTypeRefresh or TokenTypeVerify.
	TokenType string `json:"type,omitempty"`

	// Fingerprint binds the token to the user's password hash (session tokens)
	// or e-mail address (verification tokens).
	Fingerprint string `json:"fp,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// MatchesPassword reports whether the session claims were issued for the
// given password hash.
func (c *Claims) MatchesPassword(hashedPassword string) bool {
	return c.Fingerprint == Fingerprint(hashedPassword)
}

// MatchesEmail reports whether verification claims were issued for email.
func (c *Claims) MatchesEmail(email string) bool {
	return c.Fingerprint == Fingerprint(email)
}
