package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/lessonboard/lessonboard/internal/api/shared"
	"github.com/lessonboard/lessonboard/internal/platform/inertia"
	"github.com/lessonboard/lessonboard/internal/platform/logger"
	"github.com/lessonboard/lessonboard/internal/redact"
	"github.com/lessonboard/lessonboard/internal/store"
)

// healthTimeout bounds the database ping of the health check.
const healthTimeout = 2 * time.Second

// DashboardHandler serves the landing page, the dashboard and the health check.
type DashboardHandler struct {
	categories store.CategoryStore
	lessons    store.LessonStore
	roles      store.RoleStore
	db         Pinger
	renderer   *inertia.Renderer
	logger     *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(
	categories store.CategoryStore,
	lessons store.LessonStore,
	roles store.RoleStore,
	db Pinger,
	renderer *inertia.Renderer,
	logger *slog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		categories: categories,
		lessons:    lessons,
		roles:      roles,
		db:         db,
		renderer:   renderer,
		logger:     logger.With(slog.String("handler", "dashboard")),
	}
}

// Index renders the public landing page.
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "Welcome", inertia.Props{
		"canLogin":    true,
		"canRegister": true,
	})
}

// Dashboard renders the signed-in overview with catalogue totals.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counts := map[string]int{}
	for name, count := range map[string]func(context.Context) (int, error){
		"categories": h.categories.Count,
		"lessons":    h.lessons.Count,
		"roles":      h.roles.Count,
	} {
		n, err := count(ctx)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to load dashboard")
			return
		}
		counts[name] = n
	}

	h.renderer.Render(w, r, "Dashboard", inertia.Props{"counts": counts})
}

// Health reports whether the service and its database are reachable.
func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "ok", Time: time.Now().UTC()}
	status := http.StatusOK

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			logger.FromContextOrDefault(r.Context(), h.logger).
				Error("health check database ping failed", "error", redact.Error(err))
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	shared.RespondWithJSON(w, r, status, resp)
}
