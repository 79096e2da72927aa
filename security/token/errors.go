package token

import (
	"errors"
	"fmt"

	"github.com/ncobase/commerce/ecode"
	"github.com/ncobase/commerce/security/jwt"
)

// Token failures. Returned errors are *ecode.Error values that wrap one of these.
var (
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenBadSignature   = errors.New("token signature invalid")
	ErrTokenMalformed      = errors.New("token malformed")
	ErrTokenRevoked        = errors.New("token revoked")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

func failure(code int, sentinel, cause error) error {
	if cause == nil {
		return ecode.Wrap(code, sentinel)
	}
	return ecode.Wrap(code, fmt.Errorf("%w: %w", sentinel, cause))
}

// classifyParse maps jwt parse failures onto token failures.
// Bad signatures surface as TOKEN_MALFORMED to callers.
func classifyParse(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return failure(ecode.TokenExpired, ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return failure(ecode.TokenMalformed, ErrTokenBadSignature, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return failure(ecode.TokenMalformed, ErrTokenMalformed, err)
	default:
		return fmt.Errorf("failed to parse token: %w", err)
	}
}
