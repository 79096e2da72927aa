package oauth

import (
	"github.com/google/wire"
)

// ProviderSet is the wire provider set for the oauth package.
var ProviderSet = wire.NewSet(ProvideClient, ProvideStateManager)

// ProvideClient creates the provider client.
func ProvideClient(cfg *Config) *Client {
	return NewClient(cfg)
}

// ProvideStateManager creates the state manager.
func ProvideStateManager(cfg *Config) *StateManager {
	if cfg == nil {
		return NewStateManager("")
	}
	return NewStateManager(cfg.StateSecret, WithStateTTL(cfg.StateTTL))
}
