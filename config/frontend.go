package config

import "github.com/spf13/viper"

// Frontend frontend config struct
type Frontend struct {
	OAuth2RedirectURL string
}

// getFrontendConfig returns frontend config
func getFrontendConfig(v *viper.Viper) *Frontend {
	return &Frontend{
		OAuth2RedirectURL: getStringOrDefault(v, "frontend.oauth2_redirect_url", "http://localhost:3000/oauth2/redirect"),
	}
}
