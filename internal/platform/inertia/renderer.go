package inertia

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/lessonboard/lessonboard/internal/config"
	"github.com/lessonboard/lessonboard/internal/platform/logger"
)

//go:embed templates/app.html
var templates embed.FS

// Renderer writes Inertia responses.
type Renderer struct {
	appName string
	version string
	root    *template.Template
	logger  *slog.Logger
}

// NewRenderer creates a Renderer from the view configuration.
func NewRenderer(cfg config.ViewConfig, log *slog.Logger) (*Renderer, error) {
	root, err := template.ParseFS(templates, "templates/app.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse root template: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{
		appName: cfg.AppName,
		version: cfg.AssetVersion,
		root:    root,
		logger:  log.With(slog.String("component", "inertia")),
	}, nil
}

// Version returns the current asset version.
func (rd *Renderer) Version() string {
	return rd.version
}

// Render writes component with props and status 200.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, component string, props Props) {
	rd.RenderStatus(w, r, http.StatusOK, component, props)
}

// RenderStatus writes component with props and the given status code.
// Shared props from the request context are merged underneath props, and an
// empty "errors" prop is always present.
func (rd *Renderer) RenderStatus(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	component string,
	props Props,
) {
	page := Page{
		Component: component,
		Props:     rd.buildProps(r, component, props),
		URL:       requestURL(r),
		Version:   rd.version,
	}

	w.Header().Add("Vary", HeaderInertia)

	if IsInertia(r) {
		w.Header().Set(HeaderInertia, "true")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(page); err != nil {
			rd.log(r).Error("failed to encode page", "error", err, "component", component)
		}
		return
	}

	pageJSON, err := json.Marshal(page)
	if err != nil {
		rd.log(r).Error("failed to encode page", "error", err, "component", component)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	err = rd.root.Execute(&buf, struct {
		AppName  string
		Version  string
		PageJSON string
	}{rd.appName, rd.version, string(pageJSON)})
	if err != nil {
		rd.log(r).Error("failed to render root template", "error", err, "component", component)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Redirect sends the client to url.
func (rd *Renderer) Redirect(w http.ResponseWriter, r *http.Request, url string) {
	Redirect(w, r, url)
}

// Location forces a full page visit to url, leaving the Inertia app.
func (rd *Renderer) Location(w http.ResponseWriter, r *http.Request, url string) {
	if IsInertia(r) {
		w.Header().Set(HeaderLocation, url)
		w.WriteHeader(http.StatusConflict)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// Middleware answers Inertia GET requests made with a stale asset version
// with 409 and X-Inertia-Location, making the client reload the page.
func (rd *Renderer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsInertia(r) && r.Method == http.MethodGet &&
			r.Header.Get(HeaderVersion) != rd.version {
			rd.log(r).Debug("asset version changed, forcing reload",
				"client_version", r.Header.Get(HeaderVersion),
				"server_version", rd.version)
			rd.Location(w, r, requestURL(r))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rd *Renderer) buildProps(r *http.Request, component string, props Props) Props {
	merged := Props{"errors": map[string]string{}}
	for k, v := range SharedProps(r.Context()) {
		merged[k] = v
	}
	for k, v := range props {
		merged[k] = v
	}

	keys := partialKeys(r, component)
	if keys == nil {
		return merged
	}
	partial := Props{"errors": merged["errors"]}
	for _, k := range keys {
		if v, ok := merged[k]; ok {
			partial[k] = v
		}
	}
	return partial
}

func (rd *Renderer) log(r *http.Request) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), rd.logger)
}
