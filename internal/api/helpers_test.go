package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lessonboard/lessonboard/internal/api/middleware"
	"github.com/lessonboard/lessonboard/internal/config"
	"github.com/lessonboard/lessonboard/internal/domain"
	"github.com/lessonboard/lessonboard/internal/mocks"
	"github.com/lessonboard/lessonboard/internal/platform/inertia"
	"github.com/lessonboard/lessonboard/internal/platform/logger"
	"github.com/lessonboard/lessonboard/internal/service/auth"
	"github.com/stretchr/testify/require"
)

const (
	testAssetVersion = "v1"
	testPassword     = "correct-horse-battery"
)

var testAuthConfig = config.AuthConfig{
	JWTSecret:                   "test-secret-that-is-at-least-32-characters",
	TokenLifetimeMinutes:        60,
	RefreshTokenLifetimeMinutes: 1440,
	SessionCookie:               "lessonboard_session",
	BCryptCost:                  4,
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

// testApp is the router with in-memory stores behind it.
type testApp struct {
	router     http.Handler
	categories *mocks.MockCategoryStore
	lessons    *mocks.MockLessonStore
	roles      *mocks.MockRoleStore
	users      *mocks.MockUserStore
	tx         *mocks.MockTransactor
	jwt        auth.JWTService
	logs       *logger.TestLogBuffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithDB(t, pingerFunc(func(context.Context) error { return nil }))
}

func newTestAppWithDB(t *testing.T, db Pinger) *testApp {
	t.Helper()

	log, logs := logger.GetTestLogger(t)

	jwtService, err := auth.NewJWTService(testAuthConfig)
	require.NoError(t, err)

	renderer, err := inertia.NewRenderer(config.ViewConfig{
		AppName:      "Lessonboard",
		AppURL:       "http://localhost:8080",
		AssetVersion: testAssetVersion,
	}, log)
	require.NoError(t, err)

	categories := mocks.NewMockCategoryStore()
	app := &testApp{
		categories: categories,
		lessons:    mocks.NewMockLessonStore(categories),
		roles:      mocks.NewMockRoleStore(),
		users:      mocks.NewMockUserStore(),
		tx:         mocks.NewMockTransactor(),
		jwt:        jwtService,
		logs:       logs,
	}

	handlers := NewHandlers(Dependencies{
		Categories:       app.categories,
		Lessons:          app.lessons,
		Roles:            app.roles,
		Users:            app.users,
		Tx:               app.tx,
		JWTService:       jwtService,
		PasswordVerifier: auth.NewBcryptVerifier(),
		Renderer:         renderer,
		DB:               db,
		AuthConfig:       testAuthConfig,
		AppURL:           "http://localhost:8080",
		Logger:           log,
	})
	authMW := middleware.NewAuthMiddleware(jwtService, app.users, middleware.AuthOptions{
		SessionCookie: testAuthConfig.SessionCookie,
		LoginURL:      MustURL(RouteLogin),
		VerifyURL:     MustURL(RouteVerifyNotice),
	}, log)

	r := chi.NewRouter()
	r.Use(renderer.Middleware)
	require.NoError(t, Mount(r, handlers, authMW))
	app.router = r

	return app
}

// createUser stores a user with testPassword, verified or not.
func (a *testApp) createUser(t *testing.T, email string, verified bool) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Test User", email, testPassword)
	require.NoError(t, err)
	if verified {
		user.MarkVerified(time.Now())
	}
	require.NoError(t, a.users.Create(context.Background(), user))
	return user
}

// session returns a session cookie for user.
func (a *testApp) session(t *testing.T, user *domain.User) *http.Cookie {
	t.Helper()
	token, err := a.jwt.GenerateToken(context.Background(), user)
	require.NoError(t, err)
	return &http.Cookie{Name: testAuthConfig.SessionCookie, Value: token}
}

// verifiedSession returns a session cookie for a fresh verified user.
func (a *testApp) verifiedSession(t *testing.T) *http.Cookie {
	t.Helper()
	return a.session(t, a.createUser(t, "admin@example.com", true))
}

// inertiaRequest builds a request the way the Inertia client sends it.
func inertiaRequest(t *testing.T, method, target string, body any, cookie *http.Cookie) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(inertia.HeaderInertia, "true")
	req.Header.Set(inertia.HeaderVersion, testAssetVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

// jsonRequest builds a request from a plain JSON API client.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// decodePage reads the Inertia page object from an Inertia response.
func decodePage(t *testing.T, rec *httptest.ResponseRecorder) inertia.Page {
	t.Helper()
	require.Equal(t, "true", rec.Header().Get(inertia.HeaderInertia), "body: %s", rec.Body.String())
	var page inertia.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	return page
}

// propAs re-decodes a page prop into out.
func propAs(t *testing.T, page inertia.Page, key string, out any) {
	t.Helper()
	value, ok := page.Props[key]
	require.True(t, ok, "prop %q missing", key)
	raw, err := json.Marshal(value)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

type errorBody struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors"`
}

var errPingFailed = errors.New("connection refused")
