package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
app_name: shop
run_mode: debug
server:
  port: 9090
auth:
  jwt:
    secret: s3cret
    access_expire: 30m
  rules:
    - pattern: /api/admin/**
      method: "*"
      roles: [ADMIN]
    - pattern: /api/public/**
      permit_all: true
ratelimit:
  login:
    limit: 3
data:
  cache:
    driver: memory
frontend:
  oauth2_redirect_url: https://shop.example.com/oauth2/redirect
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "shop", cfg.AppName)
	assert.True(t, cfg.IsDevelop())
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())

	assert.Equal(t, "s3cret", cfg.Auth.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.JWT.AccessExpire)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.JWT.RefreshExpire)

	require.Len(t, cfg.Auth.Rules, 2)
	assert.Equal(t, "/api/admin/**", cfg.Auth.Rules[0].Pattern)
	assert.Equal(t, []string{"ADMIN"}, cfg.Auth.Rules[0].Roles)
	assert.True(t, cfg.Auth.Rules[1].PermitAll)

	assert.Equal(t, 3, cfg.RateLimit.Login.Limit)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Login.Window)
	assert.Equal(t, 60, cfg.RateLimit.Minute.Limit)
	assert.Equal(t, 1000, cfg.RateLimit.Hour.Limit)

	assert.Equal(t, "memory", cfg.Data.Cache.Driver)
	assert.Equal(t, "https://shop.example.com/oauth2/redirect", cfg.Frontend.OAuth2RedirectURL)
	assert.True(t, cfg.Logger.Desensitization.Enabled)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestProvideAppName(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Equal(t, "shop", ProvideAppName(cfg))
}
