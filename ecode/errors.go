package ecode

import (
	"errors"
	"fmt"
)

const (
	requiredMsg = "required"
	invalidMsg  = "invalid"
	existMsg    = "already exists"
	notExistMsg = "does not exist"
	expiredMsg  = "expired"
)

// Error is the classified error surfaced to API callers.
type Error struct {
	Code    int
	Kind    string
	Message string
	Fields  map[string]string
	cause   error
}

// New creates an error for code, falling back to the code's default message
func New(code int, message ...string) *Error {
	msg := Text(code)
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	return &Error{Code: code, Kind: Kind(code), Message: msg}
}

// Wrap creates an error for code that keeps cause reachable through errors.Is / errors.As
func Wrap(code int, cause error, message ...string) *Error {
	e := New(code, message...)
	e.cause = cause
	return e
}

// Validation creates a ValidationFailed error carrying field messages
func Validation(fields map[string]string) *Error {
	e := New(ParamErr)
	e.Fields = fields
	return e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// HTTPStatus returns the HTTP status for the error
func (e *Error) HTTPStatus() int {
	return ToHTTPStatus(e.Code)
}

// Is matches another *Error by code
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// From classifies err. Unclassified errors become ServerErr with the generic message.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(ServerErr, err)
}

// FieldIsRequired returns field required message
func FieldIsRequired(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], requiredMsg)
	}
	return requiredMsg
}

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], invalidMsg)
	}
	return invalidMsg
}

// AlreadyExist returns already exist message
func AlreadyExist(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], existMsg)
	}
	return existMsg
}

// NotExist returns not exist message
func NotExist(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], notExistMsg)
	}
	return notExistMsg
}

// Expired returns expired message
func Expired(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], expiredMsg)
	}
	return expiredMsg
}
