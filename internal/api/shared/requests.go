package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps request bodies read by Decode.
const maxBodyBytes = 1 << 20

// Global validator instance for reuse. Field errors are reported under the
// field's JSON name.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes)).Decode(v)
}

// Decode reads a JSON body, or a URL-encoded / multipart form, into v.
// Form values are matched to v's JSON field names.
func Decode(r *http.Request, v interface{}) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return err
		}
		fields := make(map[string]string, len(r.PostForm))
		for key := range r.PostForm {
			fields[key] = r.PostForm.Get(key)
		}
		body, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		return json.NewDecoder(bytes.NewReader(body)).Decode(v)
	default:
		err := DecodeJSON(r, v)
		if errors.Is(err, io.EOF) {
			// Empty body; leave v zeroed for validation to reject.
			return nil
		}
		return err
	}
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	return validate.Struct(v)
}

// FieldErrors converts a validation error into per-field messages keyed by
// the field's JSON name. It returns nil for other errors.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = FieldMessage(fe.Field(), fe.Tag(), fe.Param())
		}
	}
	return out
}

// FieldMessage renders a human readable message for a failed validation tag.
func FieldMessage(field, tag, param string) string {
	label := strings.ReplaceAll(field, "_", " ")
	switch tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", label, param)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", label, param)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", label)
	case "gt", "exists":
		return fmt.Sprintf("The selected %s is invalid.", label)
	case "unique":
		return fmt.Sprintf("The %s has already been taken.", label)
	case "eqfield":
		return fmt.Sprintf("The %s field confirmation does not match.", label)
	default:
		return fmt.Sprintf("The %s field is invalid.", label)
	}
}

// IntField is an integer request field that accepts both JSON numbers and
// numeric strings, so it decodes from JSON bodies and HTML forms alike.
type IntField int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *IntField) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Left as zero so validation reports the field.
		*f = 0
		return nil
	}
	*f = IntField(n)
	return nil
}
