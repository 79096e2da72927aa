package structs

import (
	"strings"

	"github.com/ncobase/commerce/security/authz"
)

// Provider identifies where a credential was created
type Provider string

const (
	ProviderLocal    Provider = "LOCAL"
	ProviderGoogle   Provider = "GOOGLE"
	ProviderFacebook Provider = "FACEBOOK"
	ProviderGitHub   Provider = "GITHUB"
)

// ProviderFromName maps an OAuth provider name such as "github" to a Provider
func ProviderFromName(name string) Provider {
	return Provider(strings.ToUpper(strings.TrimSpace(name)))
}

// Credential is the identity record owned by the security core
type Credential struct {
	ID           string   `json:"id" bson:"_id"`
	Email        string   `json:"email" bson:"email"`
	PasswordHash string   `json:"-" bson:"password_hash,omitempty"`
	Roles        []string `json:"roles" bson:"roles"`
	Active       bool     `json:"active" bson:"active"`
	Provider     Provider `json:"provider" bson:"provider"`
	ProviderID   string   `json:"provider_id,omitempty" bson:"provider_id,omitempty"`
	FirstName    string   `json:"firstName" bson:"first_name"`
	LastName     string   `json:"lastName" bson:"last_name"`
	Phone        string   `json:"phone,omitempty" bson:"phone,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	CreatedAt    int64    `json:"createdAt" bson:"created_at"`
	UpdatedAt    int64    `json:"updatedAt" bson:"updated_at"`
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Normalize enforces record invariants: a normalized email and a non-empty,
// duplicate-free role set.
func (c *Credential) Normalize() {
	c.Email = NormalizeEmail(c.Email)
	c.Roles = NormalizeRoles(c.Roles)
	if c.Provider == "" {
		c.Provider = ProviderLocal
	}
}

// NormalizeRoles upper-cases roles, drops duplicates and defaults to USER
func NormalizeRoles(roles []string) []string {
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.ToUpper(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	if len(out) == 0 {
		out = append(out, authz.RoleUser)
	}
	return out
}

// HasRole reports whether the credential holds role
func (c *Credential) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// PublicCredential is the client-facing view of a credential
type PublicCredential struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Phone     string   `json:"phone,omitempty"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	Roles     []string `json:"roles"`
	Provider  Provider `json:"provider"`
	Active    bool     `json:"active"`
}

// PublicView returns the client-facing view
func (c *Credential) PublicView() *PublicCredential {
	return &PublicCredential{
		ID:        c.ID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		ImageURL:  c.ImageURL,
		Roles:     c.Roles,
		Provider:  c.Provider,
		Active:    c.Active,
	}
}
