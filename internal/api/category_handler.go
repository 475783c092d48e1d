package api

import (
	"log/slog"
	"net/http"

	"github.com/lessonboard/lessonboard/internal/domain"
	"github.com/lessonboard/lessonboard/internal/paginate"
	"github.com/lessonboard/lessonboard/internal/platform/inertia"
	"github.com/lessonboard/lessonboard/internal/platform/logger"
	"github.com/lessonboard/lessonboard/internal/store"
)

// CategoriesPerPage is the page size of the category list.
const CategoriesPerPage = 25

// CategoryHandler serves the category resource routes.
type CategoryHandler struct {
	categories store.CategoryStore
	renderer   *inertia.Renderer
	baseURL    string
	logger     *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(
	categories store.CategoryStore,
	renderer *inertia.Renderer,
	baseURL string,
	logger *slog.Logger,
) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		renderer:   renderer,
		baseURL:    baseURL,
		logger:     logger.With(slog.String("handler", "category")),
	}
}

// Index lists one page of categories ordered by ID.
func (h *CategoryHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := paginate.FromRequest(r, CategoriesPerPage)

	total, err := h.categories.Count(ctx)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list categories")
		return
	}
	items, err := h.categories.List(ctx, req.Limit(), req.Offset())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list categories")
		return
	}

	page := paginate.New(items, total, req, h.baseURL+MustURL(RouteCategoriesIndex))
	h.renderer.Render(w, r, "Categories/Index", inertia.Props{"categories": page})
}

// Create shows the empty category form.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "Categories/Create", nil)
}

// Store inserts a category and returns to the list.
func (h *CategoryHandler) Store(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	form := formPage{component: "Categories/Create"}

	var req CategoryRequest
	if !bindForm(w, r, h.renderer, &req, form) {
		return
	}

	category, err := domain.NewCategory(req.Name, req.Description)
	if err != nil {
		h.failForm(w, r, form, err)
		return
	}
	if err := h.categories.Create(r.Context(), category); err != nil {
		h.failForm(w, r, form, err)
		return
	}

	log.Info("category stored", slog.Int64("category_id", category.ID))
	h.renderer.Redirect(w, r, MustURL(RouteCategoriesIndex))
}

// Show answers with an empty 200; the resource has no detail page.
func (h *CategoryHandler) Show(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Edit shows the form for an existing category.
func (h *CategoryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	category, ok := h.resolve(w, r)
	if !ok {
		return
	}
	h.renderer.Render(w, r, "Categories/Edit", inertia.Props{"category": category})
}

// Update overwrites an existing category and returns to the list.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	category, ok := h.resolve(w, r)
	if !ok {
		return
	}
	form := formPage{component: "Categories/Edit", props: inertia.Props{"category": category}}

	var req CategoryRequest
	if !bindForm(w, r, h.renderer, &req, form) {
		return
	}

	if err := category.Update(req.Name, req.Description); err != nil {
		h.failForm(w, r, form, err)
		return
	}
	if err := h.categories.Update(r.Context(), category); err != nil {
		h.failForm(w, r, form, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("category updated", slog.Int64("category_id", category.ID))
	h.renderer.Redirect(w, r, MustURL(RouteCategoriesIndex))
}

// Destroy removes an existing category and returns to the list.
func (h *CategoryHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	category, ok := h.resolve(w, r)
	if !ok {
		return
	}

	if err := h.categories.Delete(r.Context(), category.ID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("category deleted", slog.Int64("category_id", category.ID))
	h.renderer.Redirect(w, r, MustURL(RouteCategoriesIndex))
}

// resolve loads the category named by the path. On failure a 404 (or other
// error) response has been written.
func (h *CategoryHandler) resolve(w http.ResponseWriter, r *http.Request) (*domain.Category, bool) {
	id, err := getPathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "Category not found")
		return nil, false
	}
	category, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}
	return category, true
}

// failForm re-renders form for domain validation failures and maps every
// other error to its status.
func (h *CategoryHandler) failForm(w http.ResponseWriter, r *http.Request, form formPage, err error) {
	if fields := domainFieldErrors(err); fields != nil {
		renderFormErrors(w, r, h.renderer, form, fields)
		return
	}
	HandleAPIError(w, r, err, "")
}
