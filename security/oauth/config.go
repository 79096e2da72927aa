package oauth

import (
	"time"

	"github.com/spf13/viper"
)

// Provider names
const (
	ProviderGoogle   = "google"
	ProviderGitHub   = "github"
	ProviderFacebook = "facebook"
)

// Config represents OAuth configuration
type Config struct {
	Providers   map[string]*ProviderConfig `json:"providers" yaml:"providers"`
	StateSecret string                     `json:"state_secret" yaml:"state_secret"`
	StateTTL    time.Duration              `json:"state_ttl" yaml:"state_ttl"`
	Breaker     *BreakerConfig             `json:"breaker" yaml:"breaker"`
}

// ProviderConfig represents OAuth provider configuration
type ProviderConfig struct {
	ClientID     string            `json:"client_id" yaml:"client_id"`
	ClientSecret string            `json:"client_secret" yaml:"client_secret"`
	RedirectURL  string            `json:"redirect_url" yaml:"redirect_url"`
	Scopes       []string          `json:"scopes" yaml:"scopes"`
	AuthURL      string            `json:"auth_url" yaml:"auth_url"`
	TokenURL     string            `json:"token_url" yaml:"token_url"`
	UserInfoURL  string            `json:"user_info_url" yaml:"user_info_url"`
	EmailsURL    string            `json:"emails_url" yaml:"emails_url"`
	Enabled      bool              `json:"enabled" yaml:"enabled"`
	ExtraParams  map[string]string `json:"extra_params" yaml:"extra_params"`
}

// BreakerConfig configures the circuit breaker around provider calls
type BreakerConfig struct {
	MaxRequests  uint32        `json:"max_requests" yaml:"max_requests"`
	Interval     time.Duration `json:"interval" yaml:"interval"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
	MinRequests  uint32        `json:"min_requests" yaml:"min_requests"`
	FailureRatio float64       `json:"failure_ratio" yaml:"failure_ratio"`
}

// GetConfig loads OAuth configuration from viper
func GetConfig(v *viper.Viper) *Config {
	config := &Config{
		Providers:   make(map[string]*ProviderConfig),
		StateSecret: v.GetString("oauth.state_secret"),
		StateTTL:    v.GetDuration("oauth.state_ttl"),
		Breaker: &BreakerConfig{
			MaxRequests:  v.GetUint32("oauth.breaker.max_requests"),
			Interval:     v.GetDuration("oauth.breaker.interval"),
			Timeout:      v.GetDuration("oauth.breaker.timeout"),
			MinRequests:  v.GetUint32("oauth.breaker.min_requests"),
			FailureRatio: v.GetFloat64("oauth.breaker.failure_ratio"),
		},
	}
	if config.StateTTL <= 0 {
		config.StateTTL = DefaultStateTTL
	}
	setBreakerDefaults(config.Breaker)

	for _, provider := range GetSupportedProviders() {
		if v.IsSet("oauth." + provider) {
			config.Providers[provider] = getProviderConfig(v, provider)
		}
	}

	return config
}

// getProviderConfig loads provider-specific configuration
func getProviderConfig(v *viper.Viper, provider string) *ProviderConfig {
	prefix := "oauth." + provider

	pc := &ProviderConfig{
		ClientID:     v.GetString(prefix + ".client_id"),
		ClientSecret: v.GetString(prefix + ".client_secret"),
		RedirectURL:  v.GetString(prefix + ".redirect_url"),
		Scopes:       v.GetStringSlice(prefix + ".scopes"),
		AuthURL:      v.GetString(prefix + ".auth_url"),
		TokenURL:     v.GetString(prefix + ".token_url"),
		UserInfoURL:  v.GetString(prefix + ".user_info_url"),
		EmailsURL:    v.GetString(prefix + ".emails_url"),
		Enabled:      true,
		ExtraParams:  v.GetStringMapString(prefix + ".extra_params"),
	}
	if v.IsSet(prefix + ".enabled") {
		pc.Enabled = v.GetBool(prefix + ".enabled")
	}

	setProviderDefaults(provider, pc)

	return pc
}

func setBreakerDefaults(b *BreakerConfig) {
	if b.MaxRequests == 0 {
		b.MaxRequests = 1
	}
	if b.Interval <= 0 {
		b.Interval = time.Minute
	}
	if b.Timeout <= 0 {
		b.Timeout = 30 * time.Second
	}
	if b.MinRequests == 0 {
		b.MinRequests = 5
	}
	if b.FailureRatio <= 0 {
		b.FailureRatio = 0.6
	}
}

// setProviderDefaults sets default URLs and scopes for known providers
func setProviderDefaults(provider string, config *ProviderConfig) {
	switch provider {
	case ProviderGoogle:
		if config.AuthURL == "" {
			config.AuthURL = "https://accounts.google.com/o/oauth2/v2/auth"
		}
		if config.TokenURL == "" {
			config.TokenURL = "https://oauth2.googleapis.com/token"
		}
		if config.UserInfoURL == "" {
			config.UserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
		}
		if len(config.Scopes) == 0 {
			config.Scopes = []string{"openid", "email", "profile"}
		}

	case ProviderGitHub:
		if config.AuthURL == "" {
			config.AuthURL = "https://github.com/login/oauth/authorize"
		}
		if config.TokenURL == "" {
			config.TokenURL = "https://github.com/login/oauth/access_token"
		}
		if config.UserInfoURL == "" {
			config.UserInfoURL = "https://api.github.com/user"
		}
		if config.EmailsURL == "" {
			config.EmailsURL = "https://api.github.com/user/emails"
		}
		if len(config.Scopes) == 0 {
			config.Scopes = []string{"user:email"}
		}

	case ProviderFacebook:
		if config.AuthURL == "" {
			config.AuthURL = "https://www.facebook.com/v18.0/dialog/oauth"
		}
		if config.TokenURL == "" {
			config.TokenURL = "https://graph.facebook.com/v18.0/oauth/access_token"
		}
		if config.UserInfoURL == "" {
			config.UserInfoURL = "https://graph.facebook.com/v18.0/me?fields=id,name,email,picture"
		}
		if len(config.Scopes) == 0 {
			config.Scopes = []string{"email", "public_profile"}
		}
	}
}

// GetSupportedProviders returns list of supported providers
func GetSupportedProviders() []string {
	return []string{ProviderGoogle, ProviderGitHub, ProviderFacebook}
}

// ValidateProvider checks if provider is supported
func ValidateProvider(provider string) bool {
	for _, p := range GetSupportedProviders() {
		if p == provider {
			return true
		}
	}
	return false
}
