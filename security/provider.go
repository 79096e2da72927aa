package security

import (
	"github.com/google/wire"
	"github.com/ncobase/commerce/security/authz"
	"github.com/ncobase/commerce/security/oauth"
	"github.com/ncobase/commerce/security/ratelimit"
	"github.com/ncobase/commerce/security/token"
)

// ProviderSet is the wire provider set for the security core.
// It provides the token service, rate limiter, authorization policy
// and OAuth client.
//
// Usage:
//
//	wire.Build(
//	    config.ProviderSet,
//	    data.ProviderSet,
//	    security.ProviderSet,
//	    // ... other providers
//	)
var ProviderSet = wire.NewSet(
	token.ProviderSet,
	ratelimit.ProviderSet,
	authz.ProviderSet,
	oauth.ProviderSet,
)
