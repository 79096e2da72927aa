package ecode

import "net/http"

// Error codes
const (
	OK = 0

	NoLogin              = -101
	AccountDisabled      = -102
	TokenExpired         = -103
	TokenMalformed       = -104
	TokenRevoked         = -107
	InvalidCredentials   = -108
	MissingProviderEmail = -110
	OAuthFailed          = -111

	RequestErr   = -400
	ParamErr     = -401
	AccessDenied = -403
	NotFound     = -404
	Conflict     = -409
	LimitExceed  = -429

	ServerErr          = -500
	ServiceUnavailable = -503
)

type codeInfo struct {
	kind    string
	status  int
	message string
}

var codes = map[int]codeInfo{
	OK:                   {"OK", http.StatusOK, "ok"},
	NoLogin:              {"AUTHENTICATION_REQUIRED", http.StatusUnauthorized, "authentication is required to access this resource"},
	AccountDisabled:      {"ACCOUNT_DISABLED", http.StatusForbidden, "account is disabled"},
	TokenExpired:         {"TOKEN_EXPIRED", http.StatusUnauthorized, "token has expired"},
	TokenMalformed:       {"TOKEN_MALFORMED", http.StatusUnauthorized, "token is malformed"},
	TokenRevoked:         {"TOKEN_REVOKED", http.StatusUnauthorized, "token has been revoked"},
	InvalidCredentials:   {"INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password"},
	MissingProviderEmail: {"MISSING_PROVIDER_EMAIL", http.StatusBadRequest, "email not found from OAuth2 provider"},
	OAuthFailed:          {"OAUTH_FAILED", http.StatusBadGateway, "OAuth2 authentication failed"},
	RequestErr:           {"BAD_REQUEST", http.StatusBadRequest, "bad request"},
	ParamErr:             {"VALIDATION_FAILED", http.StatusBadRequest, "validation failed"},
	AccessDenied:         {"INSUFFICIENT_ROLE", http.StatusForbidden, "insufficient role to access this resource"},
	NotFound:             {"NOT_FOUND", http.StatusNotFound, "resource not found"},
	Conflict:             {"CONFLICT", http.StatusConflict, "resource already exists"},
	LimitExceed:          {"RATE_LIMIT_EXCEEDED", http.StatusTooManyRequests, "too many requests, please try again later"},
	ServerErr:            {"INTERNAL_ERROR", http.StatusInternalServerError, "internal server error"},
	ServiceUnavailable:   {"SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, "service unavailable"},
}

// Text returns the default message of a code
func Text(code int) string {
	if info, ok := codes[code]; ok {
		return info.message
	}
	return codes[ServerErr].message
}

// Kind returns the stable kind identifier of a code
func Kind(code int) string {
	if info, ok := codes[code]; ok {
		return info.kind
	}
	return codes[ServerErr].kind
}

// ToHTTPStatus maps a code to its HTTP status
func ToHTTPStatus(code int) int {
	if info, ok := codes[code]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}
