package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	MeetLink string `json:"meet_link" validate:"omitempty,url"`
	Years    *int   `json:"years_experience" validate:"required,gte=0"`
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	v := NewValidator()
	years := -1

	err := v.Validate(sample{Email: "bad", Password: "123", MeetLink: "nope", Years: &years})
	require.Error(t, err)

	fields := v.FormatValidationErrors(err)
	assert.Equal(t, "email must be a valid email address", fields["email"])
	assert.Equal(t, "password must be at least 6 characters", fields["password"])
	assert.Equal(t, "meet_link must be a valid URL", fields["meet_link"])
	assert.Equal(t, "years_experience must be greater than or equal to 0", fields["years_experience"])
}

func TestValidate_ZeroIsAllowedForPointerNumbers(t *testing.T) {
	years := 0
	err := NewValidator().Validate(sample{Email: "a@b.co", Password: "secret", Years: &years})
	assert.NoError(t, err)
}

func TestValidate_MissingPointerIsRequired(t *testing.T) {
	v := NewValidator()
	err := v.Validate(sample{Email: "a@b.co", Password: "secret"})
	require.Error(t, err)
	assert.Equal(t, "years_experience is required", v.FormatValidationErrors(err)["years_experience"])
}
