package validation_test

import (
	"testing"

	"portfolio-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
)

func TestValidateContact(t *testing.T) {
	t.Run("Should accept a valid submission", func(t *testing.T) {
		errs := validation.ValidateContact("Jane Doe", "jane@example.com", "Hello, I would like to discuss a project.")
		assert.Empty(t, errs)
	})

	t.Run("Should flag only the empty name", func(t *testing.T) {
		errs := validation.ValidateContact("", "jane@example.com", "Hello there, testing.")
		assert.Equal(t, validation.Errors{"name": "Name is required"}, errs)
	})

	t.Run("Should flag every failing field with its own message", func(t *testing.T) {
		errs := validation.ValidateContact("A", "not-an-email", "Short")
		assert.Equal(t, validation.Errors{
			"name":    "Name must be at least 2 characters",
			"email":   "Please enter a valid email",
			"message": "Message must be at least 10 characters",
		}, errs)
	})

	t.Run("Should treat whitespace as empty", func(t *testing.T) {
		errs := validation.ValidateContact("   ", " ", "\n\t")
		assert.Equal(t, "Name is required", errs["name"])
		assert.Equal(t, "Email is required", errs["email"])
		assert.Equal(t, "Message is required", errs["message"])
	})

	t.Run("Should measure lengths after trimming", func(t *testing.T) {
		errs := validation.ValidateContact("  J  ", "jane@example.com", "   123456789   ")
		assert.True(t, errs.Has("name"))
		assert.True(t, errs.Has("message"))
		assert.False(t, errs.Has("email"))
	})

	t.Run("Should count characters rather than bytes", func(t *testing.T) {
		errs := validation.ValidateContact("Zoë", "zoe@example.com", "héllo wörld")
		assert.Empty(t, errs)
	})
}

func TestIsEmail(t *testing.T) {
	cases := map[string]bool{
		"jane@example.com":       true,
		"jane.doe+x@mail.co.uk":  true,
		" jane@example.com ":     false,
		"not-an-email":           false,
		"jane@example":           false,
		"jane@@example.com":      false,
		"ja ne@example.com":      false,
		"@example.com":           false,
		"jane@.com":              false,
		"":                       false,
	}
	for input, want := range cases {
		assert.Equal(t, want, validation.IsEmail(input), input)
	}
}

func TestMissingFields(t *testing.T) {
	assert.Nil(t, validation.MissingFields("Al", "x", "y"))
	assert.Equal(t, []string{"name", "message"}, validation.MissingFields(" ", "jane@example.com", ""))
}

func TestErrorsError(t *testing.T) {
	errs := validation.Errors{"message": "Message is required", "email": "Email is required"}
	assert.Equal(t, "validation failed: email: Email is required; message: Message is required", errs.Error())

	clone := errs.Clone()
	delete(clone, "email")
	assert.True(t, errs.Has("email"))
}

func TestErrorsFieldNames(t *testing.T) {
	errs := validation.Errors{"message": "x", "email": "y", "name": "z"}
	assert.Equal(t, []string{"email", "message", "name"}, errs.FieldNames())
	assert.Empty(t, validation.Errors{}.FieldNames())
}
