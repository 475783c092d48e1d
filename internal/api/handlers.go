package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lessonboard/lessonboard/internal/config"
	"github.com/lessonboard/lessonboard/internal/platform/inertia"
	"github.com/lessonboard/lessonboard/internal/service/auth"
	"github.com/lessonboard/lessonboard/internal/store"
)

// Pinger reports database reachability for the health check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Dependencies are the services the HTTP handlers are built from.
type Dependencies struct {
	Categories       store.CategoryStore
	Lessons          store.LessonStore
	Roles            store.RoleStore
	Users            store.UserStore
	Tx               store.Transactor
	JWTService       auth.JWTService
	PasswordVerifier auth.PasswordVerifier
	Renderer         *inertia.Renderer
	DB               Pinger
	AuthConfig       config.AuthConfig
	AppURL           string
	Logger           *slog.Logger
}

// Handlers groups every handler the route table refers to.
type Handlers struct {
	Dashboard  *DashboardHandler
	Auth       *AuthHandler
	Categories *CategoryHandler
	Lessons    *LessonHandler
	Roles      *RoleHandler
}

// NewHandlers builds all handlers from deps.
func NewHandlers(deps Dependencies) *Handlers {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	base := strings.TrimRight(deps.AppURL, "/")

	return &Handlers{
		Dashboard: NewDashboardHandler(deps.Categories, deps.Lessons, deps.Roles,
			deps.DB, deps.Renderer, log),
		Auth: NewAuthHandler(deps.Users, deps.JWTService, deps.PasswordVerifier,
			deps.Renderer, &deps.AuthConfig, base, log),
		Categories: NewCategoryHandler(deps.Categories, deps.Renderer, base, log),
		Lessons:    NewLessonHandler(deps.Lessons, deps.Categories, deps.Tx, deps.Renderer, base, log),
		Roles:      NewRoleHandler(deps.Roles, deps.Renderer, base, log),
	}
}

// actions maps route names to handlers.
func (h *Handlers) actions() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		RouteHome:          h.Dashboard.Index,
		RouteHealth:        h.Dashboard.Health,
		RouteDashboard:     h.Dashboard.Dashboard,
		RouteLogin:         h.Auth.ShowLogin,
		RouteLoginStore:    h.Auth.Login,
		RouteRegister:      h.Auth.ShowRegister,
		RouteRegisterStore: h.Auth.Register,
		RouteLogout:        h.Auth.Logout,
		RouteTokenRefresh:  h.Auth.RefreshToken,
		RouteVerifyNotice:  h.Auth.VerificationNotice,
		RouteVerifyEmail:   h.Auth.VerifyEmail,
		RouteVerifySend:    h.Auth.SendVerification,

		RouteCategoriesIndex:  h.Categories.Index,
		RouteCategoriesCreate: h.Categories.Create,
		RouteCategoriesStore:  h.Categories.Store,
		RouteCategoriesShow:   h.Categories.Show,
		RouteCategoriesEdit:   h.Categories.Edit,
		RouteCategoriesUpdate: h.Categories.Update,
		RouteCategoriesDelete: h.Categories.Destroy,

		RouteLessonsIndex:  h.Lessons.Index,
		RouteLessonsCreate: h.Lessons.Create,
		RouteLessonsStore:  h.Lessons.Store,
		RouteLessonsShow:   h.Lessons.Show,
		RouteLessonsEdit:   h.Lessons.Edit,
		RouteLessonsUpdate: h.Lessons.Update,
		RouteLessonsDelete: h.Lessons.Destroy,

		RouteRolesIndex:  h.Roles.Index,
		RouteRolesCreate: h.Roles.Create,
		RouteRolesStore:  h.Roles.Store,
		RouteRolesShow:   h.Roles.Show,
		RouteRolesEdit:   h.Roles.Edit,
		RouteRolesUpdate: h.Roles.Update,
		RouteRolesDelete: h.Roles.Destroy,
	}
}
