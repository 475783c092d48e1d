package api

import (
	"context"
	"database/sql"
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

// LessonsPerPage is the page size of the lesson list.
const LessonsPerPage = 25

// LessonHandler serves the lesson resource routes. Lesson forms offer the
// existing categories to choose from. Writes check the chosen category and
// save the lesson in one transaction.
type LessonHandler struct {
	lessons    store.LessonStore
	categories store.CategoryStore
	tx         store.Transactor
	renderer   *inertia.Renderer
	baseURL    string
	logger     *slog.Logger
}

// NewLessonHandler creates a new LessonHandler.
func NewLessonHandler(
	lessons store.LessonStore,
	categories store.CategoryStore,
	tx store.Transactor,
	renderer *inertia.Renderer,
	baseURL string,
	logger *slog.Logger,
) *LessonHandler {
	return &LessonHandler{
		lessons:    lessons,
		categories: categories,
		tx:         tx,
		renderer:   renderer,
		baseURL:    baseURL,
		logger:     logger.With(slog.String("handler", "lesson")),
	}
}

// Index lists one page of lessons ordered by ID.
func (h *LessonHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := paginate.FromRequest(r, LessonsPerPage)

	total, err := h.lessons.Count(ctx)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list lessons")
		return
	}
	items, err := h.lessons.List(ctx, req.Limit(), req.Offset())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list lessons")
		return
	}

	page := paginate.New(items, total, req, h.baseURL+MustURL(RouteLessonsIndex))
	h.renderer.Render(w, r, "Lessons/Index", inertia.Props{"lessons": page})
}

// Create shows the empty lesson form.
func (h *LessonHandler) Create(w http.ResponseWriter, r *http.Request) {
	options, err := h.categoryOptions(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load categories")
		return
	}
	h.renderer.Render(w, r, "Lessons/Create", inertia.Props{"categories": options})
}

// Store inserts a lesson and returns to the list.
func (h *LessonHandler) Store(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	options, err := h.categoryOptions(ctx)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load categories")
		return
	}
	form := formPage{component: "Lessons/Create", props: inertia.Props{"categories": options}}

	var req LessonRequest
	if !bindForm(w, r, h.renderer, &req, form) {
		return
	}

	lesson, err := domain.NewLesson(int64(req.CategoryID), req.Title, req.Content)
	if err != nil {
		h.failForm(w, r, form, err)
		return
	}
	err = h.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := h.checkCategory(ctx, tx, lesson.CategoryID); err != nil {
			return err
		}
		return h.lessons.WithTx(tx).Create(ctx, lesson)
	})
	if err != nil {
		h.failForm(w, r, form, err)
		return
	}

	logger.FromContextOrDefault(ctx, h.logger).Info("lesson stored",
		slog.Int64("lesson_id", lesson.ID),
		slog.Int64("category_id", lesson.CategoryID))
	h.renderer.Redirect(w, r, MustURL(RouteLessonsIndex))
}

// Show is a placeholder answering 200 with an empty body.
func (h *LessonHandler) Show(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Edit shows the form for an existing lesson.
func (h *LessonHandler) Edit(w http.ResponseWriter, r *http.Request) {
	lesson, ok := h.resolve(w, r)
	if !ok {
		return
	}
	options, err := h.categoryOptions(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load categories")
		return
	}
	h.renderer.Render(w, r, "Lessons/Edit", inertia.Props{"lesson": lesson, "categories": options})
}

// Update overwrites an existing lesson and returns to the list.
func (h *LessonHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lesson, ok := h.resolve(w, r)
	if !ok {
		return
	}
	options, err := h.categoryOptions(ctx)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load categories")
		return
	}
	form := formPage{
		component: "Lessons/Edit",
		props:     inertia.Props{"lesson": lesson, "categories": options},
	}

	var req LessonRequest
	if !bindForm(w, r, h.renderer, &req, form) {
		return
	}

	if err := lesson.Update(int64(req.CategoryID), req.Title, req.Content); err != nil {
		h.failForm(w, r, form, err)
		return
	}
	err = h.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := h.checkCategory(ctx, tx, lesson.CategoryID); err != nil {
			return err
		}
		return h.lessons.WithTx(tx).Update(ctx, lesson)
	})
	if err != nil {
		h.failForm(w, r, form, err)
		return
	}

	logger.FromContextOrDefault(ctx, h.logger).Info("lesson updated", slog.Int64("lesson_id", lesson.ID))
	h.renderer.Redirect(w, r, MustURL(RouteLessonsIndex))
}

// Destroy removes an existing lesson and returns to the list.
func (h *LessonHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	lesson, ok := h.resolve(w, r)
	if !ok {
		return
	}

	if err := h.lessons.Delete(r.Context(), lesson.ID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("lesson deleted", slog.Int64("lesson_id", lesson.ID))
	h.renderer.Redirect(w, r, MustURL(RouteLessonsIndex))
}

func (h *LessonHandler) resolve(w http.ResponseWriter, r *http.Request) (*domain.Lesson, bool) {
	id, err := getPathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "Lesson not found")
		return nil, false
	}
	lesson, err := h.lessons.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}
	return lesson, true
}

// categoryOptions returns every category for the lesson form's selector.
func (h *LessonHandler) categoryOptions(ctx context.Context) ([]*domain.Category, error) {
	return h.categories.ListAll(ctx)
}

// checkCategory fails with ErrCategoryNotFound when the lesson names a
// category that does not exist.
func (h *LessonHandler) checkCategory(ctx context.Context, tx *sql.Tx, id int64) error {
	_, err := h.categories.WithTx(tx).GetByID(ctx, id)
	return err
}

func (h *LessonHandler) failForm(w http.ResponseWriter, r *http.Request, form formPage, err error) {
	if errors.Is(err, store.ErrCategoryNotFound) {
		renderFormErrors(w, r, h.renderer, form,
			map[string]string{"category_id": shared.FieldMessage("category_id", "exists", "")})
		return
	}
	if fields := domainFieldErrors(err); fields != nil {
		renderFormErrors(w, r, h.renderer, form, fields)
		return
	}
	HandleAPIError(w, r, err, "")
}
