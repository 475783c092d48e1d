package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lessonboard/lessonboard/internal/api/shared"
	"github.com/lessonboard/lessonboard/internal/domain"
	"github.com/lessonboard/lessonboard/internal/platform/inertia"
)

// formPage names the page a form submission re-renders when validation fails.
type formPage struct {
	component string
	props     inertia.Props
}

// bindForm decodes and validates the request into req. On failure the
// response has been written and false is returned.
func bindForm(
	w http.ResponseWriter,
	r *http.Request,
	renderer *inertia.Renderer,
	req any,
	page formPage,
) bool {
	if err := shared.Decode(r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		fields := shared.FieldErrors(err)
		if fields == nil {
			HandleAPIError(w, r, err, "")
			return false
		}
		renderFormErrors(w, r, renderer, page, fields)
		return false
	}
	return true
}

// renderFormErrors answers a failed submission with status 422: JSON clients
// receive the field errors, everyone else the form page with an errors prop.
func renderFormErrors(
	w http.ResponseWriter,
	r *http.Request,
	renderer *inertia.Renderer,
	page formPage,
	fields map[string]string,
) {
	if shared.WantsJSON(r) {
		shared.RespondWithValidationErrors(w, r, fields)
		return
	}
	props := inertia.Props{}
	for k, v := range page.props {
		props[k] = v
	}
	props["errors"] = fields
	renderer.RenderStatus(w, r, http.StatusUnprocessableEntity, page.component, props)
}

// domainFieldErrors converts a domain validation failure into form errors.
// It returns nil for any other error.
func domainFieldErrors(err error) map[string]string {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	if verr.Message == "is required" {
		return map[string]string{verr.Field: shared.FieldMessage(verr.Field, "required", "")}
	}
	label := strings.ReplaceAll(verr.Field, "_", " ")
	return map[string]string{verr.Field: fmt.Sprintf("The %s field %s.", label, verr.Message)}
}
