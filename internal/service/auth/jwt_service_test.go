package auth

import (
	"context"
	"testing"
	"time"

	"github.com/lessonboard/lessonboard/internal/config"
	"github.com/lessonboard/lessonboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 1440,
	}
}

func newTestService(t *testing.T, now func() time.Time) *hmacJWTService {
	t.Helper()
	svc, err := newHMACJWTService(testAuthConfig(), now)
	require.NoError(t, err)
	return svc
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Ada", "ada@example.com", "correct horse battery")
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$somehashvalue"
	user.Password = ""
	return user
}

func TestNewJWTService_RejectsShortSecret(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	cfg.JWTSecret = "too-short"
	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, func() time.Time { return fixedTime })
	user := testUser(t)

	token, err := svc.GenerateToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(60*time.Minute).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.MatchesPassword(user.HashedPassword))
	assert.False(t, claims.MatchesPassword("$2a$10$anotherhash"))
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, func() time.Time { return issued })
	user := testUser(t)

	access, err := svc.GenerateToken(context.Background(), user)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(context.Background(), user)
	require.NoError(t, err)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "wrong-secret-that-is-long-enough-for-testing"
	other, err := newHMACJWTService(otherCfg, func() time.Time { return issued })
	require.NoError(t, err)
	foreign, err := other.GenerateToken(context.Background(), user)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{"valid", access, issued.Add(time.Minute), nil},
		{"within clock skew", access, issued.Add(61 * time.Minute), nil},
		{"expired", access, issued.Add(2 * time.Hour), ErrExpiredToken},
		{"malformed", "not-a-token", issued, ErrInvalidToken},
		{"empty", "", issued, ErrMissingToken},
		{"wrong signature", foreign, issued, ErrInvalidToken},
		{"refresh token as access token", refresh, issued, ErrWrongTokenType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			validator := newTestService(t, func() time.Time { return now })

			claims, err := validator.ValidateToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID, claims.UserID)
		})
	}
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, func() time.Time { return issued })
	user := testUser(t)

	refresh, err := svc.GenerateRefreshToken(context.Background(), user)
	require.NoError(t, err)
	claims, err := svc.ValidateRefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)

	access, err := svc.GenerateToken(context.Background(), user)
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(context.Background(), access)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	later := newTestService(t, func() time.Time { return issued.Add(48 * time.Hour) })
	_, err = later.ValidateRefreshToken(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestVerificationToken(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, func() time.Time { return issued })
	user := testUser(t)

	token, err := svc.GenerateVerificationToken(context.Background(), user)
	require.NoError(t, err)

	claims, err := svc.ValidateVerificationToken(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, claims.MatchesEmail("ada@example.com"))
	assert.False(t, claims.MatchesEmail("other@example.com"))

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	later := newTestService(t, func() time.Time { return issued.Add(VerificationTokenLifetime + time.Hour) })
	_, err = later.ValidateVerificationToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidVerificationToken)
}
