package config

import (
	"time"

	"github.com/ncobase/commerce/security/authz"
	"github.com/spf13/viper"
)

// Auth auth config struct
type Auth struct {
	JWT   *JWT
	Rules []authz.Rule
}

// getAuth returns the auth config.
func getAuth(v *viper.Viper) *Auth {
	return &Auth{
		JWT:   getJWT(v),
		Rules: authz.GetRules(v),
	}
}

// JWT jwt config struct
type JWT struct {
	Secret        string
	AccessExpire  time.Duration
	RefreshExpire time.Duration
}

// getJWT returns the jwt config.
func getJWT(v *viper.Viper) *JWT {
	return &JWT{
		Secret:        v.GetString("auth.jwt.secret"),
		AccessExpire:  getDurationOrDefault(v, "auth.jwt.access_expire", 24*time.Hour),
		RefreshExpire: getDurationOrDefault(v, "auth.jwt.refresh_expire", 7*24*time.Hour),
	}
}
