package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lessonboard/lessonboard/internal/domain"
	"github.com/lessonboard/lessonboard/internal/service/auth"
	"github.com/lessonboard/lessonboard/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"wrapped category not found", fmt.Errorf("edit: %w", store.ErrCategoryNotFound), http.StatusNotFound},
		{"malformed id", domain.NewValidationError(IDParam, "has invalid format", domain.ErrInvalidID), http.StatusNotFound},
		{"validation", domain.NewValidationError("name", "is required", nil), http.StatusUnprocessableEntity},
		{"duplicate", store.ErrRoleNameExists, http.StatusConflict},
		{"category in use", store.ErrCategoryInUse, http.StatusConflict},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"stale session", auth.ErrStaleSession, http.StatusUnauthorized},
		{"unverified", domain.ErrUnverified, http.StatusForbidden},
		{"bad verification link", auth.ErrInvalidVerificationToken, http.StatusForbidden},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Category not found", GetSafeErrorMessage(store.ErrCategoryNotFound))
	assert.Equal(t, "Role name already exists", GetSafeErrorMessage(store.ErrRoleNameExists))
	assert.Equal(t, "Token expired", GetSafeErrorMessage(auth.ErrExpiredToken))
	assert.Equal(t, "Unauthenticated.", GetSafeErrorMessage(auth.ErrMissingToken))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "An unexpected error occurred",
		GetSafeErrorMessage(errors.New("pq: password authentication failed for user admin")))
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/categories/1/edit", nil)
	rec := httptest.NewRecorder()

	HandleAPIError(rec, req, fmt.Errorf("load: %w", errors.New("secret=hunter2")), "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "An unexpected error occurred", body.Error)
	assert.NotContains(t, rec.Body.String(), "hunter2")

	rec = httptest.NewRecorder()
	HandleAPIError(rec, req, store.ErrCategoryNotFound, "Nothing here")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Nothing here", decodeError(t, rec).Error)
}
