package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lessonboard/lessonboard/internal/api/shared"
	"github.com/lessonboard/lessonboard/internal/domain"
	"github.com/lessonboard/lessonboard/internal/platform/inertia"
	"github.com/lessonboard/lessonboard/internal/platform/logger"
	"github.com/lessonboard/lessonboard/internal/redact"
	"github.com/lessonboard/lessonboard/internal/service/auth"
	"github.com/lessonboard/lessonboard/internal/store"
)

// AuthOptions configures where rejected browser requests are sent and which
// cookie carries the session token.
type AuthOptions struct {
	SessionCookie string
	LoginURL      string
	VerifyURL     string
}

// AuthMiddleware authenticates requests from a session token and guards
// routes that need a verified account.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
	opts       AuthOptions
	logger     *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(
	jwtService auth.JWTService,
	userStore store.UserStore,
	opts AuthOptions,
	log *slog.Logger,
) *AuthMiddleware {
	if log == nil {
		log = slog.Default()
	}
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
		opts:       opts,
		logger:     log.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate validates the access token from the Authorization header or
// the session cookie and adds the user ID to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.tokenFromRequest(r)
		if token == "" {
			m.unauthenticated(w, r, auth.ErrMissingToken)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			m.unauthenticated(w, r, err)
			return
		}

		ctx := shared.SetUserID(r.Context(), claims.UserID)
		ctx = withClaims(ctx, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthenticateSession loads the authenticated user and rejects tokens issued
// before the user's password last changed. It must run after Authenticate.
func (m *AuthMiddleware) AuthenticateSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r.Context())
		if !ok {
			m.unauthenticated(w, r, auth.ErrMissingToken)
			return
		}

		user, err := m.userStore.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if !errors.Is(err, store.ErrUserNotFound) {
				logger.FromContextOrDefault(r.Context(), m.logger).
					Error("failed to load session user", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
				return
			}
			m.unauthenticated(w, r, err)
			return
		}

		if !claims.MatchesPassword(user.HashedPassword) {
			m.clearCookie(w)
			m.unauthenticated(w, r, auth.ErrStaleSession)
			return
		}

		ctx := shared.SetUser(r.Context(), user)
		ctx = inertia.WithSharedProp(ctx, "auth", map[string]any{"user": user})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// EnsureVerified rejects users who have not verified their e-mail address.
// It must run after AuthenticateSession.
func (m *AuthMiddleware) EnsureVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := shared.GetUser(r.Context())
		if !ok {
			m.unauthenticated(w, r, domain.ErrUnauthorized)
			return
		}
		if !user.IsVerified() {
			if shared.WantsJSON(r) {
				shared.RespondWithError(w, r, http.StatusForbidden, "Your email address is not verified.")
				return
			}
			inertia.Redirect(w, r, m.opts.VerifyURL)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Identify attaches the user to the request when a valid session is present
// and lets every request through.
func (m *AuthMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := inertia.WithSharedProp(r.Context(), "auth", map[string]any{"user": nil})

		token := m.tokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		claims, err := m.jwtService.ValidateToken(ctx, token)
		if err != nil {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		user, err := m.userStore.GetByID(ctx, claims.UserID)
		if err != nil || !claims.MatchesPassword(user.HashedPassword) {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		ctx = shared.SetUserID(ctx, user.ID)
		ctx = shared.SetUser(ctx, user)
		ctx = inertia.WithSharedProp(ctx, "auth", map[string]any{"user": user})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromRequest prefers a Bearer token and falls back to the session cookie.
func (m *AuthMiddleware) tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if m.opts.SessionCookie == "" {
		return ""
	}
	cookie, err := r.Cookie(m.opts.SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (m *AuthMiddleware) unauthenticated(w http.ResponseWriter, r *http.Request, cause error) {
	logger.FromContextOrDefault(r.Context(), m.logger).Debug("request not authenticated",
		"reason", cause.Error(),
		"path", r.URL.Path)

	if shared.WantsJSON(r) {
		message := "Unauthenticated."
		if errors.Is(cause, auth.ErrExpiredToken) {
			message = "Token expired"
		}
		shared.RespondWithError(w, r, http.StatusUnauthorized, message)
		return
	}
	inertia.Redirect(w, r, m.opts.LoginURL)
}

func (m *AuthMiddleware) clearCookie(w http.ResponseWriter) {
	if m.opts.SessionCookie == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
