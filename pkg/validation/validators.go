package validation

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Field names used as keys in Errors. FieldSubmit is reserved for
// submission-level failures reported by the contact form.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
	FieldSubmit  = "submit"
)

// Minimum trimmed lengths, counted in characters.
const (
	MinNameLength    = 2
	MinMessageLength = 10
)

// local@domain.tld, no whitespace, exactly one @.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// contactFields carries the rules of a contact submission.
type contactFields struct {
	Name    string `json:"name" validate:"not_blank,trimmed_min=2"`
	Email   string `json:"email" validate:"not_blank,contact_email"`
	Message string `json:"message" validate:"not_blank,trimmed_min=10"`
}

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(jsonFieldName)
		RegisterValidators(validate)
	})
	return validate
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("not_blank", NotBlank)
	_ = v.RegisterValidation("trimmed_min", TrimmedMin)
	_ = v.RegisterValidation("contact_email", ContactEmail)
}

// NotBlank fails on empty or whitespace-only strings.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// TrimmedMin checks the character count of the trimmed value against the tag param.
func TrimmedMin(fl validator.FieldLevel) bool {
	minLen, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= minLen
}

// ContactEmail validates the basic local@domain.tld shape.
func ContactEmail(fl validator.FieldLevel) bool {
	return IsEmail(fl.Field().String())
}

// IsEmail reports whether s looks like local@domain.tld. Surrounding
// whitespace fails the match; the relay trims before validating.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// ValidateContact applies the contact submission rules and returns one
// message per failing field. The result is empty when the input is valid.
func ValidateContact(name, email, message string) Errors {
	err := instance().Struct(contactFields{Name: name, Email: email, Message: message})
	if err == nil {
		return Errors{}
	}
	return FormatValidationErrors(err)
}

// MissingFields lists the fields that are empty after trimming, in form order.
func MissingFields(name, email, message string) []string {
	var missing []string
	for _, f := range []struct{ key, value string }{
		{FieldName, name},
		{FieldEmail, email},
		{FieldMessage, message},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.key)
		}
	}
	return missing
}
