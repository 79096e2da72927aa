package token

import (
	"github.com/google/wire"
	"github.com/ncobase/commerce/config"
	"github.com/ncobase/commerce/data/cache"
)

// ProviderSet is the wire provider set for the token package.
var ProviderSet = wire.NewSet(ProvideConfig, ProvideService)

// ProvideConfig derives the token settings from the auth configuration.
func ProvideConfig(auth *config.Auth) *Config {
	if auth == nil || auth.JWT == nil {
		return &Config{}
	}
	return &Config{
		Secret:     auth.JWT.Secret,
		AccessTTL:  auth.JWT.AccessExpire,
		RefreshTTL: auth.JWT.RefreshExpire,
	}
}

// ProvideService creates the token service on the shared store.
func ProvideService(cfg *Config, store cache.Store) (*Service, error) {
	return NewService(cfg, store)
}
