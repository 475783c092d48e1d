package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome_IsPublic(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	rec := app.do(inertiaRequest(t, http.MethodGet, "/", nil, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	page := decodePage(t, rec)
	assert.Equal(t, "Welcome", page.Component)
	assert.Equal(t, true, page.Props["canLogin"])

	var shared struct {
		User any `json:"user"`
	}
	propAs(t, page, "auth", &shared)
	assert.Nil(t, shared.User)
}

func TestHome_SharesSignedInUser(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	cookie := app.session(t, app.createUser(t, "ada@example.com", false))

	rec := app.do(inertiaRequest(t, http.MethodGet, "/", nil, cookie))

	require.Equal(t, http.StatusOK, rec.Code)
	var shared struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	propAs(t, decodePage(t, rec), "auth", &shared)
	assert.Equal(t, "ada@example.com", shared.User.Email)
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	t.Run("guest is rejected before the handler", func(t *testing.T) {
		app := newTestApp(t)

		rec := app.do(inertiaRequest(t, http.MethodGet, "/dashboard", nil, nil))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))

		rec = app.do(jsonRequest(t, http.MethodGet, "/dashboard", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unverified JSON client is forbidden", func(t *testing.T) {
		app := newTestApp(t)
		req := jsonRequest(t, http.MethodGet, "/dashboard", nil)
		req.AddCookie(app.session(t, app.createUser(t, "new@example.com", false)))

		rec := app.do(req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("verified user sees catalogue totals", func(t *testing.T) {
		app := newTestApp(t)
		cookie := app.verifiedSession(t)
		app.categories.Seed("Math", "Physics")
		seedRole(t, app, "Editor")

		rec := app.do(inertiaRequest(t, http.MethodGet, "/dashboard", nil, cookie))

		require.Equal(t, http.StatusOK, rec.Code)
		page := decodePage(t, rec)
		assert.Equal(t, "Dashboard", page.Component)

		var counts map[string]int
		propAs(t, page, "counts", &counts)
		assert.Equal(t, map[string]int{"categories": 2, "lessons": 0, "roles": 1}, counts)
	})
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantDB     string
	}{
		{"database reachable", nil, http.StatusOK, "ok"},
		{"database down", errPingFailed, http.StatusServiceUnavailable, "unreachable"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestAppWithDB(t, pingerFunc(func(context.Context) error { return tc.pingErr }))

			rec := app.do(jsonRequest(t, http.MethodGet, "/health", nil))

			assert.Equal(t, tc.wantStatus, rec.Code)
			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantDB, resp.Database)
		})
	}
}
