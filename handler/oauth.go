package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/commerce/config"
	"github.com/ncobase/commerce/ecode"
	"github.com/ncobase/commerce/logging/logger"
	"github.com/ncobase/commerce/logging/observes"
	"github.com/ncobase/commerce/security/oauth"
	"github.com/ncobase/commerce/security/token"
	"github.com/ncobase/commerce/service"
	"github.com/ncobase/commerce/structs"
)

// OAuthHandler drives the OAuth2 authorization code flow
type OAuthHandler struct {
	client      *oauth.Client
	states      *oauth.StateManager
	provisioner *service.Provisioner
	redirectURL string
	logger      *logger.Logger
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(client *oauth.Client, states *oauth.StateManager, p *service.Provisioner, frontend *config.Frontend, l *logger.Logger) *OAuthHandler {
	return &OAuthHandler{
		client:      client,
		states:      states,
		provisioner: p,
		redirectURL: frontend.OAuth2RedirectURL,
		logger:      l,
	}
}

// Authorize handles GET /oauth2/authorize/:provider
func (h *OAuthHandler) Authorize(c *gin.Context) {
	provider := c.Param("provider")
	if !h.client.Enabled(provider) {
		fail(c, h.logger, ecode.New(ecode.NotFound, "OAuth provider not available"))
		return
	}
	state, err := h.states.GenerateState(provider, c.Query("next"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	target, err := h.client.AuthCodeURL(provider, state)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// Callback handles GET /oauth2/callback/:provider.
// Every outcome is a redirect to the frontend.
func (h *OAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	provider := c.Param("provider")

	if denied := c.Query("error"); denied != "" {
		h.logger.Warn(ctx, "OAuth consent denied", "provider", provider, "reason", denied)
		h.redirectError(c, ecode.Kind(ecode.OAuthFailed))
		return
	}

	cred, pair, next, err := h.complete(ctx, provider, c.Query("code"), c.Query("state"))
	if err != nil {
		kind := callbackFailureKind(err)
		h.logger.Warn(ctx, "OAuth sign-in failed", "provider", provider, "kind", kind, "error", err)
		if kind == ecode.Kind(ecode.ServerErr) {
			observes.CaptureError(ctx, err, c.Request)
		}
		h.redirectError(c, kind)
		return
	}

	user, err := json.Marshal(cred.PublicView())
	if err != nil {
		h.redirectError(c, ecode.Kind(ecode.ServerErr))
		return
	}
	q := url.Values{}
	q.Set("token", pair.AccessToken)
	q.Set("refreshToken", pair.RefreshToken)
	q.Set("user", string(user))
	if next != "" {
		q.Set("next", next)
	}
	h.logger.Info(ctx, "OAuth sign-in", "provider", provider, "user_id", cred.ID)
	c.Redirect(http.StatusFound, h.withQuery(q))
}

func (h *OAuthHandler) complete(ctx context.Context, provider, code, state string) (*structs.Credential, *token.Pair, string, error) {
	sd, err := h.states.ParseState(state)
	if err != nil {
		return nil, nil, "", err
	}
	if sd.Provider != provider {
		return nil, nil, "", oauth.ErrInvalidState
	}
	if code == "" {
		return nil, nil, "", oauth.ErrCodeExchangeFailed
	}

	tok, err := h.client.Exchange(ctx, provider, code)
	if err != nil {
		return nil, nil, "", err
	}
	raw, err := h.client.FetchProfile(ctx, provider, tok)
	if err != nil {
		return nil, nil, "", err
	}
	cred, pair, err := h.provisioner.Provision(ctx, provider, oauth.NormalizeProfile(provider, raw))
	if err != nil {
		return nil, nil, "", err
	}
	return cred, pair, sd.Next, nil
}

// callbackFailureKind maps a callback failure to the error kind sent to the frontend
func callbackFailureKind(err error) string {
	var e *ecode.Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if oauth.IsFlowError(err) {
		return ecode.Kind(ecode.OAuthFailed)
	}
	return ecode.Kind(ecode.ServerErr)
}

func (h *OAuthHandler) redirectError(c *gin.Context, kind string) {
	q := url.Values{}
	q.Set("error", kind)
	c.Redirect(http.StatusFound, h.withQuery(q))
}

// withQuery merges q into the frontend redirect URL
func (h *OAuthHandler) withQuery(q url.Values) string {
	u, err := url.Parse(h.redirectURL)
	if err != nil {
		return h.redirectURL + "?" + q.Encode()
	}
	merged := u.Query()
	for k, vs := range q {
		merged[k] = vs
	}
	u.RawQuery = merged.Encode()
	return u.String()
}
