package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lessonboard/lessonboard/internal/domain"
)

// IDParam is the path parameter naming a resource record.
const IDParam = "id"

// getPathID extracts a positive integer record ID from the URL path.
func getPathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, IDParam)
	if raw == "" {
		return 0, domain.NewValidationError(IDParam, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(IDParam, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}
