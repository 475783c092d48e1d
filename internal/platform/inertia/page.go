package inertia

import (
	"context"
	"net/http"
	"strings"
)

// Protocol headers.
const (
	HeaderInertia          = "X-Inertia"
	HeaderVersion          = "X-Inertia-Version"
	HeaderLocation         = "X-Inertia-Location"
	HeaderPartialComponent = "X-Inertia-Partial-Component"
	HeaderPartialData      = "X-Inertia-Partial-Data"
)

// Props is the data handed to a page component.
type Props map[string]any

// Page is the Inertia page object.
type Page struct {
	Component string `json:"component"`
	Props     Props  `json:"props"`
	URL       string `json:"url"`
	Version   string `json:"version"`
}

type sharedPropsKey struct{}

// WithSharedProp returns a copy of ctx in which key is shared with every page
// rendered for the request. Page props with the same key take precedence.
func WithSharedProp(ctx context.Context, key string, value any) context.Context {
	existing, _ := ctx.Value(sharedPropsKey{}).(Props)
	shared := make(Props, len(existing)+1)
	for k, v := range existing {
		shared[k] = v
	}
	shared[key] = value
	return context.WithValue(ctx, sharedPropsKey{}, shared)
}

// SharedProps returns the props shared through ctx.
func SharedProps(ctx context.Context) Props {
	shared, _ := ctx.Value(sharedPropsKey{}).(Props)
	return shared
}

// IsInertia reports whether r was sent by the Inertia client.
func IsInertia(r *http.Request) bool {
	return r.Header.Get(HeaderInertia) == "true"
}

// requestURL is the path and query the page object reports as its URL.
func requestURL(r *http.Request) string {
	return r.URL.RequestURI()
}

// partialKeys returns the props requested by a partial reload of component,
// or nil when the whole page is wanted.
func partialKeys(r *http.Request, component string) []string {
	if r.Header.Get(HeaderPartialComponent) != component {
		return nil
	}
	data := r.Header.Get(HeaderPartialData)
	if data == "" {
		return nil
	}
	keys := strings.Split(data, ",")
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}
	return keys
}

// Redirect sends the client to url. Redirects answering anything other than
// GET or HEAD use 303 so the follow-up request is a GET.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	status := http.StatusFound
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		status = http.StatusSeeOther
	}
	http.Redirect(w, r, url, status)
}
