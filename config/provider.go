package config

import (
	"github.com/google/wire"
	"github.com/ncobase/commerce/security/authz"
)

// ProviderSet is the wire provider set for the config package.
// It provides the main *Config and extracts sub-configurations for
// other modules to use.
var ProviderSet = wire.NewSet(
	GetConfig,
	ProvideAppName,
	ProvideServerConfig,
	ProvideLoggerConfig,
	ProvideDataConfig,
	ProvideAuthConfig,
	ProvideAuthRules,
	ProvideRateLimitConfig,
	ProvideOAuthConfig,
	ProvideObservesConfig,
	ProvideFrontendConfig,
)

// ProvideAppName provides the application name, used to namespace metrics.
func ProvideAppName(cfg *Config) string {
	return cfg.AppName
}

// ProvideServerConfig provides the http server configuration.
func ProvideServerConfig(cfg *Config) *Server {
	return cfg.Server
}

// ProvideLoggerConfig provides the logger configuration.
func ProvideLoggerConfig(cfg *Config) *Logger {
	return cfg.Logger
}

// ProvideDataConfig provides the data layer configuration.
func ProvideDataConfig(cfg *Config) *Data {
	return cfg.Data
}

// ProvideAuthConfig provides the authentication configuration.
func ProvideAuthConfig(cfg *Config) *Auth {
	return cfg.Auth
}

// ProvideAuthRules provides the authorization rule table.
func ProvideAuthRules(a *Auth) []authz.Rule {
	return a.Rules
}

// ProvideRateLimitConfig provides the rate limiter configuration.
func ProvideRateLimitConfig(cfg *Config) *RateLimit {
	return cfg.RateLimit
}

// ProvideOAuthConfig provides the OAuth configuration.
func ProvideOAuthConfig(cfg *Config) *OAuth {
	return cfg.OAuth
}

// ProvideObservesConfig provides the observability configuration.
func ProvideObservesConfig(cfg *Config) *Observes {
	return cfg.Observes
}

// ProvideFrontendConfig provides the frontend configuration.
func ProvideFrontendConfig(cfg *Config) *Frontend {
	return cfg.Frontend
}
