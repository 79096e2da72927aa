package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
	"github.com/ncobase/commerce/nanoid"
)

// TokenError represents JWT token related errors
type TokenError string

func (e TokenError) Error() string {
	return string(e)
}

const (
	DefaultAccessTokenExpire  = time.Hour * 24
	DefaultRefreshTokenExpire = time.Hour * 24 * 7

	ErrNeedTokenProvider     = TokenError("cannot sign token without token provider")
	ErrTokenExpired          = TokenError("token has expired")
	ErrTokenMalformed        = TokenError("token is malformed")
	ErrTokenSignatureInvalid = TokenError("token signature is invalid")
)

// Token kinds, carried in the sub claim
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Claims is the decoded view of a token
type Claims struct {
	ID        string
	Kind      string
	UserID    string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager handles JWT token operations
type TokenManager struct {
	key string
	now func() time.Time
}

// Option configures a TokenManager
type Option func(*TokenManager)

// WithClock sets the time source used for signing and validation
func WithClock(now func() time.Time) Option {
	return func(m *TokenManager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewTokenManager creates a new TokenManager instance
func NewTokenManager(key string, opts ...Option) *TokenManager {
	m := &TokenManager{key: key, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// validateKey validates the token key
func (jtm *TokenManager) validateKey() error {
	if jtm.key == "" {
		return ErrNeedTokenProvider
	}
	return nil
}

// Generate signs a token of kind for userID carrying roles, valid for ttl
func (jtm *TokenManager) Generate(kind, userID string, roles []string, ttl time.Duration) (string, *Claims, error) {
	if err := jtm.validateKey(); err != nil {
		return "", nil, err
	}
	if kind != KindAccess && kind != KindRefresh {
		return "", nil, fmt.Errorf("unknown token kind %q", kind)
	}
	if roles == nil {
		roles = []string{}
	}

	now := jtm.now()
	c := &Claims{
		ID:        nanoid.Must(),
		Kind:      kind,
		UserID:    userID,
		Roles:     roles,
		IssuedAt:  time.Unix(now.Unix(), 0),
		ExpiresAt: time.Unix(now.Add(ttl).Unix(), 0),
	}

	claims := jwtstd.MapClaims{
		"jti": c.ID,
		"sub": c.Kind,
		"iat": c.IssuedAt.Unix(),
		"exp": c.ExpiresAt.Unix(),
		"payload": map[string]any{
			"user_id": c.UserID,
			"roles":   c.Roles,
		},
	}

	t := jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(jtm.key))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, c, nil
}

// Parse verifies signature and expiry. Failures are ErrTokenExpired,
// ErrTokenSignatureInvalid or ErrTokenMalformed.
func (jtm *TokenManager) Parse(tokenString string) (*Claims, error) {
	return jtm.parse(tokenString, jwtstd.WithExpirationRequired())
}

// ParseIgnoringExpiry verifies the signature only
func (jtm *TokenManager) ParseIgnoringExpiry(tokenString string) (*Claims, error) {
	return jtm.parse(tokenString, jwtstd.WithoutClaimsValidation())
}

func (jtm *TokenManager) parse(tokenString string, opts ...jwtstd.ParserOption) (*Claims, error) {
	if err := jtm.validateKey(); err != nil {
		return nil, err
	}

	opts = append(opts,
		jwtstd.WithValidMethods([]string{jwtstd.SigningMethodHS256.Alg()}),
		jwtstd.WithTimeFunc(jtm.now),
	)

	token, err := jwtstd.Parse(tokenString, func(token *jwtstd.Token) (any, error) {
		return []byte(jtm.key), nil
	}, opts...)
	if err != nil {
		return nil, classify(err)
	}

	claims, ok := token.Claims.(jwtstd.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	return decodeClaims(claims)
}

// classify maps library errors onto the package errors
func classify(err error) error {
	switch {
	case errors.Is(err, jwtstd.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case errors.Is(err, jwtstd.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrTokenSignatureInvalid, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}

// decodeClaims converts map claims into Claims, rejecting incomplete tokens
func decodeClaims(claims jwtstd.MapClaims) (*Claims, error) {
	c := &Claims{
		ID:     GetTokenIDFromToken(claims),
		Kind:   GetSubjectFromToken(claims),
		UserID: GetUserIDFromToken(claims),
		Roles:  GetRolesFromToken(claims),
	}
	if c.Kind != KindAccess && c.Kind != KindRefresh {
		return nil, fmt.Errorf("%w: unknown token kind %q", ErrTokenMalformed, c.Kind)
	}
	if c.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrTokenMalformed)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	return c, nil
}
