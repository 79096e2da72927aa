package consts

// AuthorizationKey Authorization header key
const AuthorizationKey string = "Authorization"

// BearerKey Bearer token prefix
const BearerKey string = "Bearer "

// GinContextKey gin context key
const GinContextKey = "gin-context"

// TraceKey global trace id header
const TraceKey string = "X-Trace-ID"

// UserKey global user id
const UserKey string = "x-md-uid"

// RolesKey global user roles
const RolesKey string = "x-md-roles"

// TokenKey global token
const TokenKey string = "x-md-token"

// RuleKey matched authorization rule
const RuleKey string = "x-md-rule"

// Header names used for client identity resolution.
const (
	ForwardedForHeader = "X-Forwarded-For"
	RealIPHeader       = "X-Real-IP"
	RetryAfterHeader   = "Retry-After"
)

// FailureKindKey kind of the error a request was aborted with
const FailureKindKey string = "x-md-failure-kind"
