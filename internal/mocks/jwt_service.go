package mocks

import (
	"context"

	"github.com/lessonboard/lessonboard/internal/domain"
	"github.com/lessonboard/lessonboard/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	GenerateTokenFn             func(ctx context.Context, user *domain.User) (string, error)
	ValidateTokenFn             func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenFn      func(ctx context.Context, user *domain.User) (string, error)
	ValidateRefreshTokenFn      func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateVerificationTokenFn func(ctx context.Context, user *domain.User) (string, error)
	ValidateVerificationTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token        string
	RefreshToken string
	Err          error
	ValidateErr  error
	Claims       *auth.Claims
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, user *domain.User) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, user)
	}
	return m.Token, m.Err
}

// ValidateToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

// GenerateRefreshToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, user)
	}
	return m.RefreshToken, m.Err
}

// ValidateRefreshToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

// GenerateVerificationToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateVerificationToken(ctx context.Context, user *domain.User) (string, error) {
	if m.GenerateVerificationTokenFn != nil {
		return m.GenerateVerificationTokenFn(ctx, user)
	}
	return m.Token, m.Err
}

// ValidateVerificationToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateVerificationToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateVerificationTokenFn != nil {
		return m.ValidateVerificationTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}
