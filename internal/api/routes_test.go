package api

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		route   string
		params  []any
		want    string
		wantErr string
	}{
		{"static route", RouteCategoriesIndex, nil, "/categories", ""},
		{"home", RouteHome, nil, "/", ""},
		{"id placeholder", RouteCategoriesEdit, []any{int64(7)}, "/categories/7/edit", ""},
		{"string placeholder", RouteVerifyEmail, []any{"abc.def"}, "/email/verify/abc.def", ""},
		{"unknown name", "categories.archive", nil, "", "unknown route"},
		{"missing parameter", RouteRolesUpdate, nil, "", "missing parameter"},
		{"extra parameter", RouteLessonsIndex, []any{1}, "", "expected 0 parameters"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := URL(tc.route, tc.params...)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMustURL_PanicsOnUnknownRoute(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustURL("nope") })
	assert.Equal(t, "/lessons/3", MustURL(RouteLessonsShow, 3))
}

func TestRoutes_Table(t *testing.T) {
	t.Parallel()

	byKey := map[string]Route{}
	for _, rt := range Routes() {
		key := rt.Method + " " + rt.Pattern
		_, dup := byKey[key]
		require.False(t, dup, "duplicate route %s", key)
		byKey[key] = rt
	}

	assert.Equal(t, GroupPublic, byKey["GET /"].Group)
	assert.Equal(t, RouteHome, byKey["GET /"].Name)
	assert.Equal(t, GroupVerified, byKey["GET /dashboard"].Group)

	for _, resource := range []string{"categories", "lessons", "roles"} {
		want := map[string]string{
			"GET /" + resource:                resource + ".index",
			"GET /" + resource + "/create":    resource + ".create",
			"POST /" + resource:               resource + ".store",
			"GET /" + resource + "/{id}":      resource + ".show",
			"GET /" + resource + "/{id}/edit": resource + ".edit",
			"PUT /" + resource + "/{id}":      resource + ".update",
			"PATCH /" + resource + "/{id}":    resource + ".update",
			"DELETE /" + resource + "/{id}":   resource + ".destroy",
		}
		for key, name := range want {
			rt, ok := byKey[key]
			require.True(t, ok, "missing %s", key)
			assert.Equal(t, name, rt.Name)
			assert.Equal(t, GroupVerified, rt.Group, key)
		}
	}
}

func TestRoutes_ReturnsCopy(t *testing.T) {
	t.Parallel()

	table := Routes()
	table[0].Pattern = "/changed"
	assert.Equal(t, "/", Routes()[0].Pattern)
}

func TestMount_RegistersEveryRoute(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	mux, ok := app.router.(*chi.Mux)
	require.True(t, ok)

	registered := map[string]bool{}
	err := chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	for _, rt := range Routes() {
		assert.True(t, registered[rt.Method+" "+rt.Pattern], "%s %s not mounted", rt.Method, rt.Pattern)
	}
}

