package inertia

import (
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lessonboard/lessonboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	rd, err := NewRenderer(config.ViewConfig{
		AppName:      "Lessonboard",
		AppURL:       "http://localhost:8080",
		AssetVersion: "v1",
	}, nil)
	require.NoError(t, err)
	return rd
}

func decodePage(t *testing.T, body string) Page {
	t.Helper()
	var page Page
	require.NoError(t, json.Unmarshal([]byte(body), &page))
	return page
}

func TestRender_InertiaRequest(t *testing.T) {
	rd := newTestRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/categories?page=2", nil)
	req.Header.Set(HeaderInertia, "true")
	req = req.WithContext(WithSharedProp(req.Context(), "auth", map[string]any{"user": nil}))
	rec := httptest.NewRecorder()

	rd.Render(rec, req, "Categories/Index", Props{"categories": []string{"Math"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Header().Get(HeaderInertia))
	assert.Equal(t, HeaderInertia, rec.Header().Get("Vary"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	page := decodePage(t, rec.Body.String())
	assert.Equal(t, "Categories/Index", page.Component)
	assert.Equal(t, "/categories?page=2", page.URL)
	assert.Equal(t, "v1", page.Version)
	assert.Contains(t, page.Props, "categories")
	assert.Contains(t, page.Props, "auth")
	assert.Equal(t, map[string]any{}, page.Props["errors"])
}

func TestRender_HTMLShell(t *testing.T) {
	rd := newTestRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	rd.Render(rec, req, "Welcome", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Lessonboard</title>")

	start := strings.Index(body, `data-page="`) + len(`data-page="`)
	end := strings.Index(body[start:], `"`) + start
	page := decodePage(t, html.UnescapeString(body[start:end]))
	assert.Equal(t, "Welcome", page.Component)
	assert.Equal(t, "/", page.URL)
}

func TestRenderStatus_PageOverridesSharedProps(t *testing.T) {
	rd := newTestRenderer(t)

	req := httptest.NewRequest(http.MethodPost, "/categories", nil)
	req.Header.Set(HeaderInertia, "true")
	req = req.WithContext(WithSharedProp(req.Context(), "errors", map[string]string{}))
	rec := httptest.NewRecorder()

	rd.RenderStatus(rec, req, http.StatusUnprocessableEntity, "Categories/Create",
		Props{"errors": map[string]string{"name": "The name field is required."}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	page := decodePage(t, rec.Body.String())
	assert.Equal(t, map[string]any{"name": "The name field is required."}, page.Props["errors"])
}

func TestRender_PartialReload(t *testing.T) {
	rd := newTestRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/lessons/create", nil)
	req.Header.Set(HeaderInertia, "true")
	req.Header.Set(HeaderVersion, "v1")
	req.Header.Set(HeaderPartialComponent, "Lessons/Create")
	req.Header.Set(HeaderPartialData, "categories")
	rec := httptest.NewRecorder()

	rd.Render(rec, req, "Lessons/Create", Props{"categories": []int{1}, "other": true})

	page := decodePage(t, rec.Body.String())
	assert.Contains(t, page.Props, "categories")
	assert.Contains(t, page.Props, "errors")
	assert.NotContains(t, page.Props, "other")
}

func TestRedirect(t *testing.T) {
	rd := newTestRenderer(t)

	tests := []struct {
		method  string
		inertia bool
		want    int
	}{
		{http.MethodGet, false, http.StatusFound},
		{http.MethodHead, false, http.StatusFound},
		{http.MethodGet, true, http.StatusFound},
		{http.MethodPost, false, http.StatusSeeOther},
		{http.MethodPost, true, http.StatusSeeOther},
		{http.MethodPut, false, http.StatusSeeOther},
		{http.MethodPut, true, http.StatusSeeOther},
		{http.MethodPatch, true, http.StatusSeeOther},
		{http.MethodDelete, false, http.StatusSeeOther},
		{http.MethodDelete, true, http.StatusSeeOther},
	}
	for _, tt := range tests {
		name := tt.method
		if tt.inertia {
			name += " inertia"
		}
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/categories/1", nil)
			if tt.inertia {
				req.Header.Set(HeaderInertia, "true")
			}
			rec := httptest.NewRecorder()

			rd.Redirect(rec, req, "/categories")

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "/categories", rec.Header().Get("Location"))
		})
	}
}

func TestMiddleware_VersionMismatch(t *testing.T) {
	rd := newTestRenderer(t)
	called := false
	h := rd.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set(HeaderInertia, "true")
	req.Header.Set(HeaderVersion, "stale")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(HeaderLocation))

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set(HeaderInertia, "true")
	req.Header.Set(HeaderVersion, "v1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, called)
}
