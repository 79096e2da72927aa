package jwt

import (
	"strings"
	"testing"
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func clockAt(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}

func TestGenerateAndParse(t *testing.T) {
	now := epoch
	m := NewTokenManager("secret", WithClock(clockAt(&now)))

	raw, issued, err := m.Generate(KindAccess, "u1", []string{"USER", "SELLER"}, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(raw, ".")+1)

	c, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, KindAccess, c.Kind)
	assert.Equal(t, []string{"USER", "SELLER"}, c.Roles)
	assert.Equal(t, issued.ID, c.ID)
	assert.Equal(t, epoch.Add(time.Hour).Unix(), c.ExpiresAt.Unix())
	assert.Equal(t, epoch.Unix(), c.IssuedAt.Unix())
}

func TestParseExpired(t *testing.T) {
	now := epoch
	m := NewTokenManager("secret", WithClock(clockAt(&now)))

	raw, _, err := m.Generate(KindRefresh, "u1", nil, time.Minute)
	require.NoError(t, err)

	now = epoch.Add(time.Minute)
	_, err = m.Parse(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenMalformed)

	c, err := m.ParseIgnoringExpiry(raw)
	require.NoError(t, err)
	assert.Equal(t, KindRefresh, c.Kind)
	assert.Empty(t, c.Roles)
}

func TestParseBadSignature(t *testing.T) {
	m := NewTokenManager("secret")
	other := NewTokenManager("other-secret")

	raw, _, err := other.Generate(KindAccess, "u1", nil, time.Hour)
	require.NoError(t, err)

	_, err = m.Parse(raw)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)

	parts := strings.Split(raw, ".")
	_, err = m.Parse(parts[0] + "." + parts[1] + ".AAAA")
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestParseMalformed(t *testing.T) {
	m := NewTokenManager("secret")

	for _, raw := range []string{"", "garbage", "a.b.c", "a.b"} {
		_, err := m.Parse(raw)
		assert.ErrorIs(t, err, ErrTokenMalformed, raw)
	}
}

func TestParseRejectsForeignClaims(t *testing.T) {
	m := NewTokenManager("secret")

	sign := func(claims jwtstd.MapClaims) string {
		s, err := jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()

	_, err := m.Parse(sign(jwtstd.MapClaims{"sub": "register", "exp": exp, "payload": map[string]any{"user_id": "u1"}}))
	assert.ErrorIs(t, err, ErrTokenMalformed)

	_, err = m.Parse(sign(jwtstd.MapClaims{"sub": "access", "exp": exp}))
	assert.ErrorIs(t, err, ErrTokenMalformed)

	_, err = m.Parse(sign(jwtstd.MapClaims{"sub": "access", "payload": map[string]any{"user_id": "u1"}}))
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	m := NewTokenManager("secret")
	raw, err := jwtstd.NewWithClaims(jwtstd.SigningMethodHS512, jwtstd.MapClaims{
		"sub":     "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
		"payload": map[string]any{"user_id": "u1"},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Parse(raw)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestMissingKey(t *testing.T) {
	m := NewTokenManager("")
	_, _, err := m.Generate(KindAccess, "u1", nil, time.Hour)
	assert.ErrorIs(t, err, ErrNeedTokenProvider)

	_, err = m.Parse("a.b.c")
	assert.ErrorIs(t, err, ErrNeedTokenProvider)
}

func TestHelpers(t *testing.T) {
	claims := map[string]any{
		"jti":     "id-1",
		"sub":     "refresh",
		"payload": map[string]any{"user_id": "u1", "roles": []any{"ADMIN", 3}},
	}
	assert.Equal(t, "id-1", GetTokenIDFromToken(claims))
	assert.Equal(t, "u1", GetUserIDFromToken(claims))
	assert.Equal(t, []string{"ADMIN"}, GetRolesFromToken(claims))
	assert.Equal(t, KindRefresh, GetSubjectFromToken(claims))
	assert.Empty(t, GetRolesFromToken(map[string]any{}))
}
