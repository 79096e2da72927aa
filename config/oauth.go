package config

import (
	oc "github.com/ncobase/commerce/security/oauth"
	"github.com/spf13/viper"
)

// OAuth represents the OAuth configuration
type OAuth = oc.Config

// getOAuthConfig returns the OAuth configuration.
// State values are signed with the JWT secret unless oauth.state_secret is set.
func getOAuthConfig(v *viper.Viper) *OAuth {
	c := oc.GetConfig(v)
	if c.StateSecret == "" {
		c.StateSecret = v.GetString("auth.jwt.secret")
	}
	return c
}
