package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lessonboard/lessonboard/internal/api/middleware"
)

// Group selects the middleware stack a route runs behind.
type Group string

const (
	// GroupPublic routes are open to everyone; a valid session is attached when present.
	GroupPublic Group = "public"
	// GroupAuthenticated routes require a valid session.
	GroupAuthenticated Group = "authenticated"
	// GroupVerified routes require a valid session and a verified e-mail address.
	GroupVerified Group = "verified"
)

// Route is one entry of the route table.
type Route struct {
	Name    string
	Method  string
	Pattern string
	Group   Group
}

// Route names.
const (
	RouteHome             = "home"
	RouteHealth           = "health"
	RouteLogin            = "login"
	RouteLoginStore       = "login.store"
	RouteRegister         = "register"
	RouteRegisterStore    = "register.store"
	RouteLogout           = "logout"
	RouteTokenRefresh     = "auth.refresh"
	RouteVerifyNotice     = "verification.notice"
	RouteVerifyEmail      = "verification.verify"
	RouteVerifySend       = "verification.send"
	RouteDashboard        = "dashboard"
	RouteCategoriesIndex  = "categories.index"
	RouteCategoriesCreate = "categories.create"
	RouteCategoriesStore  = "categories.store"
	RouteCategoriesShow   = "categories.show"
	RouteCategoriesEdit   = "categories.edit"
	RouteCategoriesUpdate = "categories.update"
	RouteCategoriesDelete = "categories.destroy"
	RouteLessonsIndex     = "lessons.index"
	RouteLessonsCreate    = "lessons.create"
	RouteLessonsStore     = "lessons.store"
	RouteLessonsShow      = "lessons.show"
	RouteLessonsEdit      = "lessons.edit"
	RouteLessonsUpdate    = "lessons.update"
	RouteLessonsDelete    = "lessons.destroy"
	RouteRolesIndex       = "roles.index"
	RouteRolesCreate      = "roles.create"
	RouteRolesStore       = "roles.store"
	RouteRolesShow        = "roles.show"
	RouteRolesEdit        = "roles.edit"
	RouteRolesUpdate      = "roles.update"
	RouteRolesDelete      = "roles.destroy"
)

// routes is the complete route table. Resource bundles list every verb
// explicitly; update answers both PUT and PATCH under one name.
var routes = []Route{
	{RouteHome, http.MethodGet, "/", GroupPublic},
	{RouteHealth, http.MethodGet, "/health", GroupPublic},
	{RouteLogin, http.MethodGet, "/login", GroupPublic},
	{RouteLoginStore, http.MethodPost, "/login", GroupPublic},
	{RouteRegister, http.MethodGet, "/register", GroupPublic},
	{RouteRegisterStore, http.MethodPost, "/register", GroupPublic},
	{RouteTokenRefresh, http.MethodPost, "/auth/refresh", GroupPublic},
	{RouteVerifyEmail, http.MethodGet, "/email/verify/{token}", GroupPublic},

	{RouteLogout, http.MethodPost, "/logout", GroupAuthenticated},
	{RouteVerifyNotice, http.MethodGet, "/email/verify", GroupAuthenticated},
	{RouteVerifySend, http.MethodPost, "/email/verification-notification", GroupAuthenticated},

	{RouteDashboard, http.MethodGet, "/dashboard", GroupVerified},

	{RouteCategoriesIndex, http.MethodGet, "/categories", GroupVerified},
	{RouteCategoriesCreate, http.MethodGet, "/categories/create", GroupVerified},
	{RouteCategoriesStore, http.MethodPost, "/categories", GroupVerified},
	{RouteCategoriesShow, http.MethodGet, "/categories/{id}", GroupVerified},
	{RouteCategoriesEdit, http.MethodGet, "/categories/{id}/edit", GroupVerified},
	{RouteCategoriesUpdate, http.MethodPut, "/categories/{id}", GroupVerified},
	{RouteCategoriesUpdate, http.MethodPatch, "/categories/{id}", GroupVerified},
	{RouteCategoriesDelete, http.MethodDelete, "/categories/{id}", GroupVerified},

	{RouteLessonsIndex, http.MethodGet, "/lessons", GroupVerified},
	{RouteLessonsCreate, http.MethodGet, "/lessons/create", GroupVerified},
	{RouteLessonsStore, http.MethodPost, "/lessons", GroupVerified},
	{RouteLessonsShow, http.MethodGet, "/lessons/{id}", GroupVerified},
	{RouteLessonsEdit, http.MethodGet, "/lessons/{id}/edit", GroupVerified},
	{RouteLessonsUpdate, http.MethodPut, "/lessons/{id}", GroupVerified},
	{RouteLessonsUpdate, http.MethodPatch, "/lessons/{id}", GroupVerified},
	{RouteLessonsDelete, http.MethodDelete, "/lessons/{id}", GroupVerified},

	{RouteRolesIndex, http.MethodGet, "/roles", GroupVerified},
	{RouteRolesCreate, http.MethodGet, "/roles/create", GroupVerified},
	{RouteRolesStore, http.MethodPost, "/roles", GroupVerified},
	{RouteRolesShow, http.MethodGet, "/roles/{id}", GroupVerified},
	{RouteRolesEdit, http.MethodGet, "/roles/{id}/edit", GroupVerified},
	{RouteRolesUpdate, http.MethodPut, "/roles/{id}", GroupVerified},
	{RouteRolesUpdate, http.MethodPatch, "/roles/{id}", GroupVerified},
	{RouteRolesDelete, http.MethodDelete, "/roles/{id}", GroupVerified},
}

// Routes returns a copy of the route table.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// URL builds the path of the named route, filling its {placeholders} from
// params in order.
func URL(name string, params ...any) (string, error) {
	for _, rt := range routes {
		if rt.Name != name {
			continue
		}

		segments := strings.Split(rt.Pattern, "/")
		next := 0
		for i, seg := range segments {
			if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
				continue
			}
			if next >= len(params) {
				return "", fmt.Errorf("route %q: missing parameter %s", name, seg)
			}
			segments[i] = fmt.Sprint(params[next])
			next++
		}
		if next != len(params) {
			return "", fmt.Errorf("route %q: expected %d parameters, got %d", name, next, len(params))
		}
		return strings.Join(segments, "/"), nil
	}
	return "", fmt.Errorf("unknown route %q", name)
}

// MustURL is URL for route names and parameter counts fixed at compile time.
func MustURL(name string, params ...any) string {
	u, err := URL(name, params...)
	if err != nil {
		// ALLOW-PANIC: programming error in a fixed route reference
		panic(err)
	}
	return u
}

// Mount registers every route of the table on r behind its group's
// middleware. It fails if a route has no handler.
func Mount(r chi.Router, h *Handlers, authMW *middleware.AuthMiddleware) error {
	actions := h.actions()

	groups := map[Group]chi.Router{
		GroupPublic:        r.With(authMW.Identify),
		GroupAuthenticated: r.With(authMW.Authenticate, authMW.AuthenticateSession),
		GroupVerified:      r.With(authMW.Authenticate, authMW.AuthenticateSession, authMW.EnsureVerified),
	}

	for _, rt := range routes {
		handler, ok := actions[rt.Name]
		if !ok {
			return fmt.Errorf("no handler registered for route %q", rt.Name)
		}
		groups[rt.Group].Method(rt.Method, rt.Pattern, handler)
	}
	return nil
}
