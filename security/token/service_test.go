package token

import (
	"context"
	"testing"
	"time"

	"github.com/ncobase/commerce/data/cache"
	"github.com/ncobase/commerce/ecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestService(t *testing.T) (*Service, *cache.MemoryStore, *clock) {
	t.Helper()
	clk := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	store := cache.NewMemoryStore(cache.WithClock(clk.now))
	svc, err := NewService(&Config{
		Secret:     "test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}, store, WithClock(clk.now))
	require.NoError(t, err)
	return svc, store, clk
}

func codeOf(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return ecode.From(err).Code
}

func TestIssueThenValidate(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Issue(ctx, "u1", []string{"USER"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	claims, err := svc.Validate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.SubjectID)
	assert.Equal(t, []string{"USER"}, claims.Roles)
	assert.False(t, claims.IsRefresh())

	claims, err = svc.Validate(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, claims.IsRefresh())

	stored, err := store.Get(ctx, "token:u1")
	require.NoError(t, err)
	assert.Equal(t, pair.AccessToken, stored)
	ttl, err := store.TTL(ctx, "token:u1:refresh")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestBlacklistRevokes(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Issue(ctx, "u1", []string{"USER"})
	require.NoError(t, err)
	require.NoError(t, svc.Blacklist(ctx, pair.AccessToken))

	_, err = svc.Validate(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	assert.Equal(t, ecode.TokenRevoked, codeOf(t, err))

	ttl, err := store.TTL(ctx, "blacklist:"+pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	_, err = svc.Validate(ctx, pair.RefreshToken)
	assert.NoError(t, err)
}

func TestBlacklistExpiredTokenIsNoop(t *testing.T) {
	svc, store, clk := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Issue(ctx, "u1", nil)
	require.NoError(t, err)

	clk.advance(2 * time.Hour)
	require.NoError(t, svc.Blacklist(ctx, pair.AccessToken))
	exists, err := store.Exists(ctx, "blacklist:"+pair.AccessToken)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBlacklistRejectsForgedToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	err := svc.Blacklist(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestRevokeAllInvalidatesBoth(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Issue(ctx, "u1", []string{"USER"})
	require.NoError(t, err)
	require.NoError(t, svc.RevokeAll(ctx, "u1"))

	_, err = svc.Validate(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	_, err = svc.Validate(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestReissueSupersedesPreviousTokens(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Issue(ctx, "u1", nil)
	require.NoError(t, err)
	second, err := svc.Issue(ctx, "u1", nil)
	require.NoError(t, err)

	_, err = svc.Validate(ctx, first.AccessToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	_, err = svc.Validate(ctx, second.AccessToken)
	assert.NoError(t, err)
}

func TestRefresh(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Issue(ctx, "u1", []string{"SELLER"})
	require.NoError(t, err)

	clk.advance(90 * time.Minute)
	_, err = svc.Validate(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)

	access, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	claims, err := svc.Validate(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, []string{"SELLER"}, claims.Roles)

	_, err = svc.Validate(ctx, pair.RefreshToken)
	assert.NoError(t, err, "refresh token is not rotated")
}

func TestRefreshExpired(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Issue(ctx, "u1", nil)
	require.NoError(t, err)

	clk.advance(25 * time.Hour)
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrInvalidRefreshToken)
	assert.Equal(t, ecode.TokenExpired, codeOf(t, err))
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Issue(ctx, "u1", nil)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	assert.Equal(t, ecode.TokenMalformed, codeOf(t, err))
}

func TestValidateClassification(t *testing.T) {
	svc, _, _ := newTestService(t)
	other, err := NewService(&Config{Secret: "other"}, cache.NewMemoryStore())
	require.NoError(t, err)
	ctx := context.Background()

	foreign, err := other.Issue(ctx, "u1", nil)
	require.NoError(t, err)

	_, err = svc.Validate(ctx, foreign.AccessToken)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
	assert.Equal(t, ecode.TokenMalformed, codeOf(t, err))

	_, err = svc.Validate(ctx, "abc")
	assert.ErrorIs(t, err, ErrTokenMalformed)
	assert.Equal(t, ecode.TokenMalformed, codeOf(t, err))
}

func TestNewServiceRequiresSecret(t *testing.T) {
	_, err := NewService(&Config{}, cache.NewMemoryStore())
	assert.Error(t, err)

	svc, err := NewService(&Config{Secret: "s"}, cache.NewMemoryStore())
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, svc.cfg.AccessTTL)
}
