// Package ecode defines the error codes and error taxonomy surfaced by the API.
//
// Error codes follow the numbering scheme:
//   - 0: Success (OK)
//   - -100 to -199: Authentication errors
//   - -400 to -499: Request, authorization and limit errors
//   - -500+: Server errors
//
// Every code maps to a stable kind string (the "error" field of a response
// body) and an HTTP status:
//
//	err := ecode.New(ecode.TokenExpired, "token has expired")
//	status := err.HTTPStatus() // 401
//	kind := err.Kind           // "TOKEN_EXPIRED"
//
// Errors that are not *ecode.Error are classified as ServerErr by From and
// never leak their message to the caller.
package ecode
