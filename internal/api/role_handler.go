package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/lessonboard/lessonboard/internal/api/shared"
	"github.com/lessonboard/lessonboard/internal/domain"
	"github.com/lessonboard/lessonboard/internal/paginate"
	"github.com/lessonboard/lessonboard/internal/platform/inertia"
	"github.com/lessonboard/lessonboard/internal/platform/logger"
	"github.com/lessonboard/lessonboard/internal/store"
)

// RolesPerPage is the page size of the role list.
const RolesPerPage = 25

// RoleHandler serves the role resource routes.
type RoleHandler struct {
	roles    store.RoleStore
	renderer *inertia.Renderer
	baseURL  string
	logger   *slog.Logger
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(
	roles store.RoleStore,
	renderer *inertia.Renderer,
	baseURL string,
	logger *slog.Logger,
) *RoleHandler {
	return &RoleHandler{
		roles:    roles,
		renderer: renderer,
		baseURL:  baseURL,
		logger:   logger.With(slog.String("handler", "role")),
	}
}

// Index lists one page of roles ordered by ID.
func (h *RoleHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := paginate.FromRequest(r, RolesPerPage)

	total, err := h.roles.Count(ctx)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list roles")
		return
	}
	items, err := h.roles.List(ctx, req.Limit(), req.Offset())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list roles")
		return
	}

	page := paginate.New(items, total, req, h.baseURL+MustURL(RouteRolesIndex))
	h.renderer.Render(w, r, "Roles/Index", inertia.Props{"roles": page})
}

// Create shows the empty role form.
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "Roles/Create", nil)
}

// Store inserts a role and returns to the list.
func (h *RoleHandler) Store(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	form := formPage{component: "Roles/Create"}

	var req RoleRequest
	if !bindForm(w, r, h.renderer, &req, form) {
		return
	}

	role, err := domain.NewRole(req.Name, req.Description)
	if err != nil {
		h.failForm(w, r, form, err)
		return
	}
	if err := h.roles.Create(r.Context(), role); err != nil {
		h.failForm(w, r, form, err)
		return
	}

	log.Info("role stored", slog.Int64("role_id", role.ID))
	h.renderer.Redirect(w, r, MustURL(RouteRolesIndex))
}

// Show is a placeholder answering 200 with an empty body.
func (h *RoleHandler) Show(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Edit shows the form for an existing role.
func (h *RoleHandler) Edit(w http.ResponseWriter, r *http.Request) {
	role, ok := h.resolve(w, r)
	if !ok {
		return
	}
	h.renderer.Render(w, r, "Roles/Edit", inertia.Props{"role": role})
}

// Update overwrites an existing role and returns to the list.
func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	role, ok := h.resolve(w, r)
	if !ok {
		return
	}
	form := formPage{component: "Roles/Edit", props: inertia.Props{"role": role}}

	var req RoleRequest
	if !bindForm(w, r, h.renderer, &req, form) {
		return
	}

	if err := role.Update(req.Name, req.Description); err != nil {
		h.failForm(w, r, form, err)
		return
	}
	if err := h.roles.Update(r.Context(), role); err != nil {
		h.failForm(w, r, form, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("role updated", slog.Int64("role_id", role.ID))
	h.renderer.Redirect(w, r, MustURL(RouteRolesIndex))
}

// Destroy removes an existing role and returns to the list.
func (h *RoleHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	role, ok := h.resolve(w, r)
	if !ok {
		return
	}

	if err := h.roles.Delete(r.Context(), role.ID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("role deleted", slog.Int64("role_id", role.ID))
	h.renderer.Redirect(w, r, MustURL(RouteRolesIndex))
}

// resolve loads the role named by the path. On failure a 404 (or other
// error) response has been written.
func (h *RoleHandler) resolve(w http.ResponseWriter, r *http.Request) (*domain.Role, bool) {
	id, err := getPathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "Role not found")
		return nil, false
	}
	role, err := h.roles.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}
	return role, true
}

// failForm re-renders form for validation failures, including a taken role
// name, and maps every other error to its status.
func (h *RoleHandler) failForm(w http.ResponseWriter, r *http.Request, form formPage, err error) {
	if errors.Is(err, store.ErrRoleNameExists) {
		renderFormErrors(w, r, h.renderer, form,
			map[string]string{"name": shared.FieldMessage("name", "unique", "")})
		return
	}
	if fields := domainFieldErrors(err); fields != nil {
		renderFormErrors(w, r, h.renderer, form, fields)
		return
	}
	HandleAPIError(w, r, err, "")
}
