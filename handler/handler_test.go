package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/commerce/config"
	"github.com/ncobase/commerce/data"
	"github.com/ncobase/commerce/data/cache"
	"github.com/ncobase/commerce/data/repository"
	"github.com/ncobase/commerce/ecode"
	"github.com/ncobase/commerce/logging/logger"
	"github.com/ncobase/commerce/metrics"
	"github.com/ncobase/commerce/middleware"
	"github.com/ncobase/commerce/security/authz"
	"github.com/ncobase/commerce/security/oauth"
	"github.com/ncobase/commerce/security/token"
	"github.com/ncobase/commerce/service"
	"github.com/ncobase/commerce/structs"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryRepo struct {
	mu   sync.Mutex
	byID map[string]structs.Credential
}

func (r *memoryRepo) FindByEmail(_ context.Context, email string) (*structs.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.Email == structs.NormalizeEmail(email) {
			return &c, nil
		}
	}
	return nil, ecode.Wrap(ecode.NotFound, repository.ErrNotFound)
}

func (r *memoryRepo) FindByID(_ context.Context, id string) (*structs.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byID[id]; ok {
		return &c, nil
	}
	return nil, ecode.Wrap(ecode.NotFound, repository.ErrNotFound)
}

func (r *memoryRepo) Create(_ context.Context, c *structs.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.Normalize()
	if c.ID == "" {
		c.ID = "id-" + c.Email
	}
	r.byID[c.ID] = *c
	return nil
}

func (r *memoryRepo) Save(_ context.Context, c *structs.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.Normalize()
	r.byID[c.ID] = *c
	return nil
}

type app struct {
	engine *gin.Engine
	repo   *memoryRepo
	tokens *token.Service
	states *oauth.StateManager
}

func newApp(t *testing.T, providerBase string) *app {
	t.Helper()
	l := logger.NewWithWriter(io.Discard, logrus.ErrorLevel)
	store := cache.NewMemoryStore()
	tokens, err := token.NewService(&token.Config{Secret: "handler-secret"}, store)
	require.NoError(t, err)
	repo := &memoryRepo{byID: map[string]structs.Credential{}}

	oauthCfg := &oauth.Config{Providers: map[string]*oauth.ProviderConfig{}}
	if providerBase != "" {
		oauthCfg.Providers[oauth.ProviderGitHub] = &oauth.ProviderConfig{
			ClientID:    "id",
			RedirectURL: "http://localhost/oauth2/callback/github",
			AuthURL:     providerBase + "/authorize",
			TokenURL:    providerBase + "/token",
			UserInfoURL: providerBase + "/user",
			Enabled:     true,
		}
	}
	states := oauth.NewStateManager("state-secret")
	authSvc := service.NewAuthService(repo, tokens, l)
	m := metrics.NewMetrics("handler_test")

	h := New(
		NewAuthHandler(authSvc, l),
		NewOAuthHandler(oauth.NewClient(oauthCfg), states, service.NewProvisioner(repo, tokens, l),
			&config.Frontend{OAuth2RedirectURL: "http://frontend.test/oauth2/redirect"}, l),
		NewAdminHandler(authSvc, l),
		NewHealthHandler(data.NewWithStore(store), m),
	)

	policy := authz.NewPolicy(nil)
	e := gin.New()
	e.Use(middleware.Authenticate(tokens, policy), middleware.Authorize(policy))
	RegisterRoutes(e, h)

	return &app{engine: e, repo: repo, tokens: tokens, states: states}
}

func (a *app) do(method, path, bearer string, payload any) *httptest.ResponseRecorder {
	var rd io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func registerUser(t *testing.T, a *app, email string) structs.AuthResult {
	t.Helper()
	w := a.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"firstName": "Grace",
		"lastName":  "Hopper",
		"email":     email,
		"password":  "cobol1959",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var res structs.AuthResult
	decode(t, w, &res)
	return res
}

func TestRegisterLoginMe(t *testing.T) {
	a := newApp(t, "")
	reg := registerUser(t, a, "grace@example.com")
	assert.Equal(t, "Bearer", reg.Tokens.TokenType)

	w := a.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "grace@example.com", "password": "cobol1959"})
	require.Equal(t, http.StatusOK, w.Code)
	var login structs.AuthResult
	decode(t, w, &login)

	w = a.do(http.MethodGet, "/api/auth/me", login.Tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me map[string]any
	decode(t, w, &me)
	assert.Equal(t, "grace@example.com", me["email"])
	assert.NotContains(t, me, "password_hash")
	assert.NotContains(t, me, "passwordHash")
}

func TestRegisterValidationBody(t *testing.T) {
	a := newApp(t, "")

	w := a.do(http.MethodPost, "/api/auth/register", "", map[string]any{"email": "bad", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var b map[string]any
	decode(t, w, &b)
	assert.Equal(t, "VALIDATION_FAILED", b["error"])
	fields, ok := b["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestLoginWrongPassword(t *testing.T) {
	a := newApp(t, "")
	registerUser(t, a, "grace@example.com")

	w := a.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "grace@example.com", "password": "nope1234"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var b map[string]any
	decode(t, w, &b)
	assert.Equal(t, "INVALID_CREDENTIALS", b["error"])
}

func TestRefreshAndLogout(t *testing.T) {
	a := newApp(t, "")
	reg := registerUser(t, a, "grace@example.com")

	w := a.do(http.MethodPost, "/api/auth/refresh", "", map[string]any{"refreshToken": reg.Tokens.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)
	var refreshed structs.AccessTokenResult
	decode(t, w, &refreshed)
	require.NotEmpty(t, refreshed.AccessToken)

	w = a.do(http.MethodPost, "/api/auth/logout", refreshed.AccessToken, map[string]any{"refreshToken": reg.Tokens.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/api/auth/me", refreshed.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = a.do(http.MethodPost, "/api/auth/refresh", "", map[string]any{"refreshToken": reg.Tokens.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	a := newApp(t, "")
	ctx := context.Background()
	user := registerUser(t, a, "user@example.com")
	admin := registerUser(t, a, "admin@example.com")

	c, err := a.repo.FindByID(ctx, admin.User.ID)
	require.NoError(t, err)
	c.Roles = []string{authz.RoleAdmin}
	require.NoError(t, a.repo.Save(ctx, c))
	pair, err := a.tokens.Issue(ctx, c.ID, c.Roles)
	require.NoError(t, err)

	w := a.do(http.MethodPut, "/api/admin/users/"+user.User.ID+"/roles", user.Tokens.AccessToken, map[string]any{"roles": []string{"SELLER"}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPut, "/api/admin/users/"+user.User.ID+"/roles", pair.AccessToken, map[string]any{"roles": []string{"SELLER"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = a.do(http.MethodGet, "/api/auth/me", user.Tokens.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPut, "/api/admin/users/"+user.User.ID+"/status", pair.AccessToken, map[string]any{"active": false})
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "user@example.com", "password": "cobol1959"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, "/api/admin/users/missing/revoke", pair.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	a := newApp(t, "")
	w := a.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var b map[string]any
	decode(t, w, &b)
	assert.Equal(t, "healthy", b["status"])

	w = a.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func newProviderServer(t *testing.T, email string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "gh-token", "token_type": "bearer"})
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         99,
			"login":      "jdoe",
			"name":       "Jane Doe",
			"email":      email,
			"avatar_url": "https://avatars.example.com/99",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestOAuthAuthorizeRedirects(t *testing.T) {
	srv := newProviderServer(t, "jane@example.com")
	a := newApp(t, srv.URL)

	w := a.do(http.MethodGet, "/oauth2/authorize/github", "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/authorize", loc.Path)

	sd, err := a.states.ParseState(loc.Query().Get("state"))
	require.NoError(t, err)
	assert.Equal(t, oauth.ProviderGitHub, sd.Provider)

	w = a.do(http.MethodGet, "/oauth2/authorize/google", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOAuthCallbackSuccess(t *testing.T) {
	srv := newProviderServer(t, "jane@example.com")
	a := newApp(t, srv.URL)
	state, err := a.states.GenerateState(oauth.ProviderGitHub, "")
	require.NoError(t, err)

	w := a.do(http.MethodGet, "/oauth2/callback/github?code=abc&state="+url.QueryEscape(state), "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "frontend.test", loc.Host)
	assert.Empty(t, loc.Query().Get("error"))

	claims, err := a.tokens.Validate(context.Background(), loc.Query().Get("token"))
	require.NoError(t, err)
	assert.NotEmpty(t, loc.Query().Get("refreshToken"))

	var user map[string]any
	require.NoError(t, json.Unmarshal([]byte(loc.Query().Get("user")), &user))
	assert.Equal(t, "jane@example.com", user["email"])
	assert.Equal(t, "Jane", user["firstName"])
	assert.Equal(t, claims.SubjectID, user["id"])
	assert.Len(t, a.repo.byID, 1)
}

func TestOAuthCallbackFailures(t *testing.T) {
	srv := newProviderServer(t, "")
	a := newApp(t, srv.URL)

	errorOf := func(w *httptest.ResponseRecorder) string {
		require.Equal(t, http.StatusFound, w.Code)
		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		return loc.Query().Get("error")
	}

	assert.Equal(t, "OAUTH_FAILED", errorOf(a.do(http.MethodGet, "/oauth2/callback/github?code=abc&state=forged", "", nil)))
	assert.Equal(t, "OAUTH_FAILED", errorOf(a.do(http.MethodGet, "/oauth2/callback/github?error=access_denied", "", nil)))

	state, err := a.states.GenerateState(oauth.ProviderGitHub, "")
	require.NoError(t, err)
	assert.Equal(t, "MISSING_PROVIDER_EMAIL", errorOf(a.do(http.MethodGet, "/oauth2/callback/github?code=abc&state="+url.QueryEscape(state), "", nil)))
	assert.Empty(t, a.repo.byID)
}

func TestCallbackFailureKind(t *testing.T) {
	assert.Equal(t, "OAUTH_FAILED", callbackFailureKind(oauth.ErrStateExpired))
	assert.Equal(t, "ACCOUNT_DISABLED", callbackFailureKind(ecode.New(ecode.AccountDisabled)))
	assert.Equal(t, "INTERNAL_ERROR", callbackFailureKind(context.DeadlineExceeded))
}
