package config

import (
	"github.com/ncobase/commerce/security/ratelimit"
	"github.com/spf13/viper"
)

// RateLimit represents the rate limiter configuration
type RateLimit = ratelimit.Config

// getRateLimitConfig returns the rate limiter configuration
func getRateLimitConfig(v *viper.Viper) *RateLimit {
	return ratelimit.GetConfig(v)
}
