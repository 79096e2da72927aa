// Package token issues, validates, revokes and rotates bearer tokens.
// Every live token has a pointer in the cache; a token is accepted only
// while it is the pointer's current value and is absent from the blacklist.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/commerce/consts"
	"github.com/ncobase/commerce/data/cache"
	"github.com/ncobase/commerce/ecode"
	"github.com/ncobase/commerce/security/jwt"
)

const tokenType = "Bearer"

// Config holds token signing settings
type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Pair is the token pair handed to clients
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// Claims is the validated content of a token
type Claims struct {
	ID        string
	Kind      string
	SubjectID string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsRefresh reports whether the claims belong to a refresh token
func (c *Claims) IsRefresh() bool {
	return c.Kind == jwt.KindRefresh
}

// Service manages the token lifecycle
type Service struct {
	cfg     *Config
	store   cache.Store
	manager *jwt.TokenManager
	now     func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithClock sets the time source for signing, validation and TTL arithmetic
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a new token service
func NewService(cfg *Config, store cache.Store, opts ...Option) (*Service, error) {
	if cfg == nil || cfg.Secret == "" {
		return nil, jwt.ErrNeedTokenProvider
	}
	if store == nil {
		return nil, errors.New("token service requires a cache store")
	}
	c := *cfg
	if c.AccessTTL <= 0 {
		c.AccessTTL = jwt.DefaultAccessTokenExpire
	}
	if c.RefreshTTL <= 0 {
		c.RefreshTTL = jwt.DefaultRefreshTokenExpire
	}

	s := &Service{cfg: &c, store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.manager = jwt.NewTokenManager(c.Secret, jwt.WithClock(s.now))
	return s, nil
}

func pointerKey(subjectID, kind string) string {
	if kind == jwt.KindRefresh {
		return consts.TokenCachePrefix + subjectID + consts.RefreshCacheSuffix
	}
	return consts.TokenCachePrefix + subjectID
}

func blacklistKey(raw string) string {
	return consts.BlacklistCachePrefix + raw
}

// mint signs a token of kind and points the subject's cache entry at it
func (s *Service) mint(ctx context.Context, kind, subjectID string, roles []string, ttl time.Duration) (string, error) {
	raw, claims, err := s.manager.Generate(kind, subjectID, roles, ttl)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s token: %w", kind, err)
	}
	remaining := claims.ExpiresAt.Sub(s.now())
	if err := s.store.Set(ctx, pointerKey(subjectID, kind), raw, remaining); err != nil {
		return "", fmt.Errorf("failed to store %s token: %w", kind, err)
	}
	return raw, nil
}

// Issue mints an access and refresh token for subjectID.
// Any previously issued tokens of the subject stop validating.
func (s *Service) Issue(ctx context.Context, subjectID string, roles []string) (*Pair, error) {
	if subjectID == "" {
		return nil, errors.New("subject id is required")
	}
	access, err := s.mint(ctx, jwt.KindAccess, subjectID, roles, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.mint(ctx, jwt.KindRefresh, subjectID, roles, s.cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    tokenType,
		ExpiresIn:    int64(s.cfg.AccessTTL / time.Second),
	}, nil
}

// IssueAccess mints a fresh access token for subjectID, replacing the current one
func (s *Service) IssueAccess(ctx context.Context, subjectID string, roles []string) (string, error) {
	return s.mint(ctx, jwt.KindAccess, subjectID, roles, s.cfg.AccessTTL)
}

// Validate checks signature and expiry, then the blacklist, then the subject's pointer
func (s *Service) Validate(ctx context.Context, raw string) (*Claims, error) {
	parsed, err := s.manager.Parse(raw)
	if err != nil {
		return nil, classifyParse(err)
	}

	blacklisted, err := s.store.Exists(ctx, blacklistKey(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to check blacklist: %w", err)
	}
	if blacklisted {
		return nil, failure(ecode.TokenRevoked, ErrTokenRevoked, nil)
	}

	current, err := s.store.Get(ctx, pointerKey(parsed.UserID, parsed.Kind))
	switch {
	case errors.Is(err, cache.ErrNotFound):
		return nil, failure(ecode.TokenRevoked, ErrTokenRevoked, errors.New("no active token for subject"))
	case err != nil:
		return nil, fmt.Errorf("failed to load active token: %w", err)
	case current != raw:
		return nil, failure(ecode.TokenRevoked, ErrTokenRevoked, errors.New("token superseded"))
	}

	return &Claims{
		ID:        parsed.ID,
		Kind:      parsed.Kind,
		SubjectID: parsed.UserID,
		Roles:     parsed.Roles,
		IssuedAt:  parsed.IssuedAt,
		ExpiresAt: parsed.ExpiresAt,
	}, nil
}

// Blacklist rejects raw until it would have expired anyway.
// Tokens that are already expired are left alone.
func (s *Service) Blacklist(ctx context.Context, raw string) error {
	parsed, err := s.manager.ParseIgnoringExpiry(raw)
	if err != nil {
		return classifyParse(err)
	}
	ttl := parsed.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.store.Set(ctx, blacklistKey(raw), "1", ttl); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// Refresh exchanges a valid refresh token for a new access token.
// The refresh token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.Validate(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return "", err
		}
		var e *ecode.Error
		if errors.As(err, &e) {
			return "", ecode.Wrap(e.Code, fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err), "invalid refresh token")
		}
		return "", err
	}
	if !claims.IsRefresh() {
		return "", failure(ecode.TokenMalformed, ErrInvalidRefreshToken, ErrTokenMalformed)
	}
	return s.IssueAccess(ctx, claims.SubjectID, claims.Roles)
}

// RevokeAll drops the subject's access and refresh pointers
func (s *Service) RevokeAll(ctx context.Context, subjectID string) error {
	if err := s.store.Delete(ctx,
		pointerKey(subjectID, jwt.KindAccess),
		pointerKey(subjectID, jwt.KindRefresh),
	); err != nil {
		return fmt.Errorf("failed to revoke tokens of %s: %w", subjectID, err)
	}
	return nil
}
