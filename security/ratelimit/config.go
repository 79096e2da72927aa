package ratelimit

import (
	"time"

	"github.com/spf13/viper"
)

// Window is one fixed-window counter setting
type Window struct {
	Limit  int
	Window time.Duration
}

// Config represents rate limiter configuration
type Config struct {
	Enabled        bool
	Login          Window
	Minute         Window
	Hour           Window
	LoginPaths     []string
	APIPrefix      string
	StaticPrefixes []string
}

// DefaultConfig returns the built-in limits
func DefaultConfig() *Config {
	return &Config{
		Enabled:        true,
		Login:          Window{Limit: 5, Window: 15 * time.Minute},
		Minute:         Window{Limit: 60, Window: time.Minute},
		Hour:           Window{Limit: 1000, Window: time.Hour},
		LoginPaths:     []string{"/api/auth/login", "/api/auth/register"},
		APIPrefix:      "/api/",
		StaticPrefixes: []string{"/static/", "/assets/", "/images/", "/favicon.ico"},
	}
}

// GetConfig loads rate limiter configuration from viper
func GetConfig(v *viper.Viper) *Config {
	c := DefaultConfig()

	if v.IsSet("ratelimit.enabled") {
		c.Enabled = v.GetBool("ratelimit.enabled")
	}
	if n := v.GetInt("ratelimit.login.limit"); n > 0 {
		c.Login.Limit = n
	}
	if d := v.GetDuration("ratelimit.login.window"); d > 0 {
		c.Login.Window = d
	}
	if n := v.GetInt("ratelimit.minute.limit"); n > 0 {
		c.Minute.Limit = n
	}
	if d := v.GetDuration("ratelimit.minute.window"); d > 0 {
		c.Minute.Window = d
	}
	if n := v.GetInt("ratelimit.hour.limit"); n > 0 {
		c.Hour.Limit = n
	}
	if d := v.GetDuration("ratelimit.hour.window"); d > 0 {
		c.Hour.Window = d
	}
	if paths := v.GetStringSlice("ratelimit.login_paths"); len(paths) > 0 {
		c.LoginPaths = paths
	}
	if prefix := v.GetString("ratelimit.api_prefix"); prefix != "" {
		c.APIPrefix = prefix
	}
	if prefixes := v.GetStringSlice("ratelimit.static_prefixes"); len(prefixes) > 0 {
		c.StaticPrefixes = prefixes
	}

	return c
}
