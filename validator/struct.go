package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/ncobase/commerce/ecode"
	"github.com/ncobase/commerce/security/authz"
)

var validate *validator.Validate

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = validate.RegisterValidation("password", validatePassword)
	_ = validate.RegisterValidation("phone", validatePhone)
	_ = validate.RegisterValidation("role", validateRole)
}

// FieldErrors maps JSON field names to messages
type FieldErrors map[string]string

// Add records msg for field unless the field already has a message
func (f FieldErrors) Add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

// Err returns a VALIDATION_FAILED error carrying the fields, or nil when empty
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return ecode.Validation(f)
}

// validatePassword requires at least 8 characters with a letter and a digit
func validatePassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 8 {
		return false
	}
	var letter, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func validateRole(fl validator.FieldLevel) bool {
	return authz.IsKnownRole(fl.Field().String())
}

// errorMessages is a nested map of languages to validation tags to custom error messages.
var errorMessages = map[string]map[string]string{
	"en": {
		"required": "The field '%s' is required.",
		"email":    "The field '%s' must be a valid email address.",
		"min":      "The field '%s' must be at least %s characters long.",
		"max":      "The field '%s' must be no longer than %s characters.",
		"password": "The field '%s' must be at least 8 characters and contain a letter and a digit.",
		"phone":    "The field '%s' must be a valid phone number.",
		"role":     "The field '%s' must be one of USER, ADMIN, MODERATOR, SELLER.",
		"unique":   "The field '%s' must not contain duplicates.",
	},
}

// parseMessage constructs a friendly error message based on the validation tag and custom messages.
func parseMessage(field string, e validator.FieldError, lang ...string) string {
	msgLang := "en"
	if len(lang) > 0 {
		msgLang = lang[0]
	}
	if msgs, exists := errorMessages[msgLang]; exists {
		if msg, exists := msgs[e.Tag()]; exists {
			switch strings.Count(msg, "%s") {
			case 1:
				return fmt.Sprintf(msg, field)
			case 2:
				return fmt.Sprintf(msg, field, e.Param())
			}
		}
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", field, e.Tag())
}

// ValidateStruct validates a struct and returns a map of JSON field names to friendly error messages.
func ValidateStruct(s any, lang ...string) FieldErrors {
	validationErrors := make(FieldErrors)

	err := validate.Struct(s)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, e := range validationErrs {
				field := e.Field()
				if i := strings.IndexByte(field, '['); i > 0 {
					field = field[:i]
				}
				validationErrors.Add(field, parseMessage(field, e, lang...))
			}
		}
	}

	return validationErrors
}
