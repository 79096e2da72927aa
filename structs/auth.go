package structs

import (
	"strings"

	"github.com/ncobase/commerce/security/token"
	"github.com/ncobase/commerce/validator"
)

// RegisterBody is the payload of POST /api/auth/register
type RegisterBody struct {
	FirstName string `json:"firstName" validate:"required,max=64"`
	LastName  string `json:"lastName" validate:"max=64"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,password,max=128"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,phone"`
}

// Validate validates the register payload
func (b *RegisterBody) Validate() validator.FieldErrors {
	b.Email = NormalizeEmail(b.Email)
	b.FirstName = strings.TrimSpace(b.FirstName)
	b.LastName = strings.TrimSpace(b.LastName)
	errs := validator.ValidateStruct(b)
	if b.Password != "" && strings.EqualFold(b.Password, b.Email) {
		errs.Add("password", "The field 'password' must not equal the email.")
	}
	return errs
}

// LoginBody is the payload of POST /api/auth/login
type LoginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate validates the login payload
func (b *LoginBody) Validate() validator.FieldErrors {
	b.Email = NormalizeEmail(b.Email)
	return validator.ValidateStruct(b)
}

// RefreshBody is the payload of POST /api/auth/refresh
type RefreshBody struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Validate validates the refresh payload
func (b *RefreshBody) Validate() validator.FieldErrors {
	return validator.ValidateStruct(b)
}

// LogoutBody is the optional payload of POST /api/auth/logout
type LogoutBody struct {
	RefreshToken string `json:"refreshToken"`
}

// Validate validates the logout payload
func (b *LogoutBody) Validate() validator.FieldErrors {
	return validator.ValidateStruct(b)
}

// RolesBody is the payload of PUT /api/admin/users/:id/roles
type RolesBody struct {
	Roles []string `json:"roles" validate:"required,min=1,unique,dive,role"`
}

// Validate validates the roles payload
func (b *RolesBody) Validate() validator.FieldErrors {
	for i, r := range b.Roles {
		b.Roles[i] = strings.ToUpper(strings.TrimSpace(r))
	}
	return validator.ValidateStruct(b)
}

// StatusBody is the payload of PUT /api/admin/users/:id/status
type StatusBody struct {
	Active *bool `json:"active" validate:"required"`
}

// Validate validates the status payload
func (b *StatusBody) Validate() validator.FieldErrors {
	return validator.ValidateStruct(b)
}

// AuthResult is returned by register, login and the OAuth2 callback
type AuthResult struct {
	User   *PublicCredential `json:"user"`
	Tokens *token.Pair       `json:"tokens"`
}

// AccessTokenResult is returned by refresh
type AccessTokenResult struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}
