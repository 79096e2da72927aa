package ratelimit

import (
	"github.com/google/wire"
	"github.com/ncobase/commerce/data/cache"
)

// ProviderSet is the wire provider set for the ratelimit package.
var ProviderSet = wire.NewSet(ProvideLimiter)

// ProvideLimiter creates the limiter on the shared store.
func ProvideLimiter(cfg *Config, store cache.Store) *Limiter {
	return NewLimiter(cfg, store)
}
