package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lessonboard/lessonboard/internal/api/shared"
	"github.com/lessonboard/lessonboard/internal/config"
	"github.com/lessonboard/lessonboard/internal/domain"
	"github.com/lessonboard/lessonboard/internal/platform/inertia"
	"github.com/lessonboard/lessonboard/internal/platform/logger"
	"github.com/lessonboard/lessonboard/internal/service/auth"
	"github.com/lessonboard/lessonboard/internal/store"
)

// TokenParam is the path parameter carrying an e-mail verification token.
const TokenParam = "token"

const (
	msgBadCredentials   = "These credentials do not match our records."
	statusLinkSent      = "verification-link-sent"
	verificationLogHint = "email verification link issued"
)

// AuthHandler handles sign-in, registration and e-mail verification.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	renderer         *inertia.Renderer
	authConfig       *config.AuthConfig
	baseURL          string
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	renderer *inertia.Renderer,
	authConfig *config.AuthConfig,
	baseURL string,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		renderer:         renderer,
		authConfig:       authConfig,
		baseURL:          baseURL,
		logger:           logger.With(slog.String("handler", "auth")),
	}
}

// ShowLogin renders the login form, or sends signed-in users to the dashboard.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := shared.GetUser(r.Context()); ok {
		h.renderer.Redirect(w, r, MustURL(RouteDashboard))
		return
	}
	h.renderer.Render(w, r, "Auth/Login", nil)
}

// Login checks the credentials and starts a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)
	form := formPage{component: "Auth/Login"}

	var req LoginRequest
	if !bindForm(w, r, h.renderer, &req, form) {
		return
	}

	user, err := h.userStore.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}
	if err != nil || h.passwordVerifier.Compare(user.HashedPassword, req.Password) != nil {
		log.Debug("login rejected")
		if shared.WantsJSON(r) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		renderFormErrors(w, r, h.renderer, form, map[string]string{"email": msgBadCredentials})
		return
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	h.startSession(w, r, user, http.StatusOK, MustURL(RouteDashboard))
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if _, ok := shared.GetUser(r.Context()); ok {
		h.renderer.Redirect(w, r, MustURL(RouteDashboard))
		return
	}
	h.renderer.Render(w, r, "Auth/Register", nil)
}

// Register creates an unverified account, issues its verification link and
// starts a session.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form := formPage{component: "Auth/Register"}

	var req RegisterRequest
	if !bindForm(w, r, h.renderer, &req, form) {
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		h.failUserForm(w, r, form, err)
		return
	}
	if err := h.userStore.Create(ctx, user); err != nil {
		h.failUserForm(w, r, form, err)
		return
	}

	logger.FromContextOrDefault(ctx, h.logger).
		Info("user registered", slog.String("user_id", user.ID.String()))

	if err := h.issueVerificationLink(r, user); err != nil {
		HandleAPIError(w, r, err, "Failed to issue verification link")
		return
	}
	h.startSession(w, r, user, http.StatusCreated, MustURL(RouteDashboard))
}

// Logout ends the browser session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, "", -1)
	if shared.WantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.renderer.Redirect(w, r, MustURL(RouteHome))
}

// RefreshToken exchanges a refresh token for a new token pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RefreshTokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithValidationErrors(w, r, shared.FieldErrors(err))
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	user, err := h.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			HandleAPIError(w, r, auth.ErrInvalidRefreshToken, "")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}
	if !claims.MatchesPassword(user.HashedPassword) {
		HandleAPIError(w, r, auth.ErrInvalidRefreshToken, "")
		return
	}

	resp, err := h.tokenPair(r, user)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// VerificationNotice tells an unverified user to check their inbox.
func (h *AuthHandler) VerificationNotice(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.GetUser(r.Context())
	if ok && user.IsVerified() {
		h.renderer.Redirect(w, r, MustURL(RouteDashboard))
		return
	}
	h.renderer.Render(w, r, "Auth/VerifyEmail", inertia.Props{"status": r.URL.Query().Get("status")})
}

// SendVerification issues a fresh verification link.
func (h *AuthHandler) SendVerification(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.GetUser(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}
	if user.IsVerified() {
		h.renderer.Redirect(w, r, MustURL(RouteDashboard))
		return
	}

	if err := h.issueVerificationLink(r, user); err != nil {
		HandleAPIError(w, r, err, "Failed to issue verification link")
		return
	}
	if shared.WantsJSON(r) {
		shared.RespondWithJSON(w, r, http.StatusAccepted, map[string]string{"status": statusLinkSent})
		return
	}
	h.renderer.Redirect(w, r, MustURL(RouteVerifyNotice)+"?status="+statusLinkSent)
}

// VerifyEmail marks the account named by a verification link as verified.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, err := h.jwtService.ValidateVerificationToken(ctx, chi.URLParam(r, TokenParam))
	if err != nil {
		HandleAPIError(w, r, auth.ErrInvalidVerificationToken, "")
		return
	}
	user, err := h.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			HandleAPIError(w, r, auth.ErrInvalidVerificationToken, "")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}
	if !claims.MatchesEmail(user.Email) {
		HandleAPIError(w, r, auth.ErrInvalidVerificationToken, "")
		return
	}

	if !user.IsVerified() {
		user.MarkVerified(time.Now())
		if err := h.userStore.Update(ctx, user); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		logger.FromContextOrDefault(ctx, h.logger).
			Info("email verified", slog.String("user_id", user.ID.String()))
	}

	if shared.WantsJSON(r) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]bool{"verified": true})
		return
	}
	h.renderer.Redirect(w, r, MustURL(RouteDashboard)+"?verified=1")
}

// startSession issues tokens for user. JSON clients receive them in the body
// with jsonStatus; browsers get the session cookie and a redirect to next.
func (h *AuthHandler) startSession(
	w http.ResponseWriter,
	r *http.Request,
	user *domain.User,
	jsonStatus int,
	next string,
) {
	resp, err := h.tokenPair(r, user)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	h.setSessionCookie(w, resp.AccessToken, h.authConfig.TokenLifetimeMinutes*60)
	if shared.WantsJSON(r) {
		shared.RespondWithJSON(w, r, jsonStatus, resp)
		return
	}
	h.renderer.Redirect(w, r, next)
}

func (h *AuthHandler) tokenPair(r *http.Request, user *domain.User) (AuthResponse, error) {
	access, err := h.jwtService.GenerateToken(r.Context(), user)
	if err != nil {
		return AuthResponse{}, err
	}
	refresh, err := h.jwtService.GenerateRefreshToken(r.Context(), user)
	if err != nil {
		return AuthResponse{}, err
	}
	expiresAt := time.Now().UTC().Add(time.Duration(h.authConfig.TokenLifetimeMinutes) * time.Minute)
	return AuthResponse{
		UserID:       user.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt.Format(time.RFC3339),
	}, nil
}

// issueVerificationLink logs the verification URL for user. No mail is sent.
func (h *AuthHandler) issueVerificationLink(r *http.Request, user *domain.User) error {
	token, err := h.jwtService.GenerateVerificationToken(r.Context(), user)
	if err != nil {
		return err
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Info(verificationLogHint,
		slog.String("user_id", user.ID.String()),
		slog.String("url", h.baseURL+MustURL(RouteVerifyEmail, token)))
	return nil
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.authConfig.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   strings.HasPrefix(h.baseURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	})
}

// failUserForm maps account errors onto the registration form.
func (h *AuthHandler) failUserForm(w http.ResponseWriter, r *http.Request, form formPage, err error) {
	var fields map[string]string
	switch {
	case errors.Is(err, store.ErrEmailExists):
		fields = map[string]string{"email": shared.FieldMessage("email", "unique", "")}
	case errors.Is(err, domain.ErrEmptyEmail):
		fields = map[string]string{"email": shared.FieldMessage("email", "required", "")}
	case errors.Is(err, domain.ErrInvalidEmail):
		fields = map[string]string{"email": shared.FieldMessage("email", "email", "")}
	case errors.Is(err, domain.ErrPasswordTooShort):
		fields = map[string]string{"password": shared.FieldMessage("password", "min", "12")}
	case errors.Is(err, domain.ErrPasswordTooLong):
		fields = map[string]string{"password": shared.FieldMessage("password", "max", "72")}
	default:
		fields = domainFieldErrors(err)
	}
	if fields == nil {
		HandleAPIError(w, r, err, "")
		return
	}
	renderFormErrors(w, r, h.renderer, form, fields)
}
