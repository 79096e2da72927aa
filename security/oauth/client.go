package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
)

// Client performs the authorization code flow against configured providers
type Client struct {
	config     *Config
	httpClient *http.Client

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for token and profile requests
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new OAuth client
func NewClient(config *Config, opts ...ClientOption) *Client {
	if config == nil {
		config = &Config{Providers: map[string]*ProviderConfig{}}
	}
	if config.Breaker == nil {
		config.Breaker = &BreakerConfig{}
	}
	setBreakerDefaults(config.Breaker)

	c := &Client{
		config:   config,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether provider is configured and enabled
func (c *Client) Enabled(provider string) bool {
	_, err := c.providerConfig(provider)
	return err == nil
}

func (c *Client) providerConfig(provider string) (*ProviderConfig, error) {
	if !ValidateProvider(provider) {
		return nil, ErrProviderNotSupported
	}
	pc, ok := c.config.Providers[provider]
	if !ok || !pc.Enabled {
		return nil, ErrProviderNotEnabled
	}
	return pc, nil
}

func (c *Client) oauth2Config(provider string) (*oauth2.Config, *ProviderConfig, error) {
	pc, err := c.providerConfig(provider)
	if err != nil {
		return nil, nil, err
	}
	return &oauth2.Config{
		ClientID:     pc.ClientID,
		ClientSecret: pc.ClientSecret,
		RedirectURL:  pc.RedirectURL,
		Scopes:       pc.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  pc.AuthURL,
			TokenURL: pc.TokenURL,
		},
	}, pc, nil
}

func (c *Client) withHTTPClient(ctx context.Context) context.Context {
	if c.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// breaker returns the circuit breaker of provider, creating it on first use
func (c *Client) breaker(provider string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cb, ok := c.breakers[provider]; ok {
		return cb
	}
	bc := c.config.Breaker
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "oauth-" + provider,
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= bc.MinRequests && failureRatio >= bc.FailureRatio
		},
	})
	c.breakers[provider] = cb
	return cb
}

// AuthCodeURL returns the provider consent page URL carrying state
func (c *Client) AuthCodeURL(provider, state string) (string, error) {
	oc, pc, err := c.oauth2Config(provider)
	if err != nil {
		return "", err
	}
	opts := make([]oauth2.AuthCodeOption, 0, len(pc.ExtraParams))
	for k, v := range pc.ExtraParams {
		opts = append(opts, oauth2.SetAuthURLParam(k, v))
	}
	return oc.AuthCodeURL(state, opts...), nil
}

// Exchange trades an authorization code for a provider token
func (c *Client) Exchange(ctx context.Context, provider, code string) (*oauth2.Token, error) {
	oc, _, err := c.oauth2Config(provider)
	if err != nil {
		return nil, err
	}
	tok, err := oc.Exchange(c.withHTTPClient(ctx), code)
	if err != nil {
		return nil, stageError(provider, "exchange", ErrCodeExchangeFailed, err)
	}
	return tok, nil
}

// FetchProfile loads the userinfo payload of the token owner.
// GitHub accounts with a private email fall back to the emails endpoint.
func (c *Client) FetchProfile(ctx context.Context, provider string, tok *oauth2.Token) (map[string]any, error) {
	oc, pc, err := c.oauth2Config(provider)
	if err != nil {
		return nil, err
	}
	hc := oc.Client(c.withHTTPClient(ctx), tok)

	result, err := c.breaker(provider).Execute(func() (any, error) {
		var raw map[string]any
		if err := getJSON(ctx, hc, pc.UserInfoURL, &raw); err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, errEmptyProfile
		}
		if provider == ProviderGitHub && getString(raw, "email") == "" && pc.EmailsURL != "" {
			var emails []githubEmail
			if err := getJSON(ctx, hc, pc.EmailsURL, &emails); err != nil {
				return nil, err
			}
			if email := primaryEmail(emails); email != "" {
				raw["email"] = email
			}
		}
		return raw, nil
	})
	if err != nil {
		return nil, stageError(provider, "profile", ErrProfileFetchFailed, err)
	}
	return result.(map[string]any), nil
}

var errEmptyProfile = errors.New("empty userinfo payload")

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func primaryEmail(emails []githubEmail) string {
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email
		}
	}
	return ""
}

func getJSON(ctx context.Context, hc *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("GET %s: status %d: %s", url, res.StatusCode, body)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
