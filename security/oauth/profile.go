package oauth

import (
	"fmt"
	"strconv"
)

// Profile is the provider-independent view of a user profile
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// NormalizeProfile extracts the common fields from a provider userinfo payload
func NormalizeProfile(provider string, raw map[string]any) *Profile {
	p := &Profile{
		ID:    getString(raw, "id"),
		Email: getString(raw, "email"),
		Name:  getString(raw, "name"),
	}

	switch provider {
	case ProviderGitHub:
		p.Picture = getString(raw, "avatar_url")
		if p.Name == "" {
			p.Name = getString(raw, "login")
		}
	case ProviderFacebook:
		if picture, ok := raw["picture"].(map[string]any); ok {
			if data, ok := picture["data"].(map[string]any); ok {
				p.Picture = getString(data, "url")
			}
		}
	default:
		p.Picture = getString(raw, "picture")
	}

	return p
}

// getString safely extracts string value from map
func getString(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
