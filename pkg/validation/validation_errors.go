package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps field keys to the labels used in messages
var FieldLabels = map[string]string{
	FieldName:    "Name",
	FieldEmail:   "Email",
	FieldMessage: "Message",
}

// Errors maps a field key to a human-readable message. A missing key means
// the field is valid.
type Errors map[string]string

func (e Errors) Error() string {
	keys := e.FieldNames()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FieldNames returns the failing fields in sorted order.
func (e Errors) FieldNames() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether field currently carries an error.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Clone returns an independent copy.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) Errors {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return Errors{FieldSubmit: err.Error()}
	}

	out := make(Errors, len(validationErrors))
	for _, e := range validationErrors {
		if _, seen := out[e.Field()]; seen {
			continue
		}
		out[e.Field()] = formatSingleError(e)
	}
	return out
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "not_blank", "required":
		return fmt.Sprintf("%s is required", label)
	case "trimmed_min", "min":
		return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
	case "contact_email", "email":
		return "Please enter a valid email"
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}
