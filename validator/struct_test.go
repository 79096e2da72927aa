package validator

import (
	"errors"
	"testing"

	"github.com/ncobase/commerce/ecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,password"`
	Phone    string   `json:"phone,omitempty" validate:"omitempty,phone"`
	Roles    []string `json:"roles" validate:"omitempty,dive,role"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(&signup{
		Email:    "nope",
		Password: "short",
		Phone:    "12ab",
		Roles:    []string{"USER", "ROOT"},
	})

	assert.Len(t, errs, 4)
	assert.Equal(t, "The field 'email' must be a valid email address.", errs["email"])
	assert.Contains(t, errs["password"], "at least 8 characters")
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "roles")
}

func TestValidateStructPasses(t *testing.T) {
	errs := ValidateStruct(signup{Email: "a@b.co", Password: "abcdefg1", Phone: "+4915112345678"})
	assert.Empty(t, errs)
	assert.NoError(t, errs.Err())
}

func TestPasswordNeedsDigit(t *testing.T) {
	errs := ValidateStruct(&signup{Email: "a@b.co", Password: "abcdefgh"})
	assert.Contains(t, errs, "password")
}

func TestFieldErrorsErr(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("email", "first")
	errs.Add("email", "second")

	err := errs.Err()
	require.Error(t, err)
	var e *ecode.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "VALIDATION_FAILED", e.Kind)
	assert.Equal(t, map[string]string{"email": "first"}, e.Fields)
}
