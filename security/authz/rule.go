package authz

import (
	"github.com/spf13/viper"
)

// Role names
const (
	RoleUser      = "USER"
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
	RoleSeller    = "SELLER"
)

// Rule grants access to requests matching Pattern and Method
type Rule struct {
	Pattern   string   `mapstructure:"pattern" json:"pattern" yaml:"pattern"`
	Method    string   `mapstructure:"method" json:"method" yaml:"method"`
	Roles     []string `mapstructure:"roles" json:"roles" yaml:"roles"`
	PermitAll bool     `mapstructure:"permit_all" json:"permit_all" yaml:"permit_all"`
}

func permitAll(method string, patterns ...string) []Rule {
	rules := make([]Rule, 0, len(patterns))
	for _, p := range patterns {
		rules = append(rules, Rule{Pattern: p, Method: method, PermitAll: true})
	}
	return rules
}

func hasRole(method string, roles []string, patterns ...string) []Rule {
	rules := make([]Rule, 0, len(patterns))
	for _, p := range patterns {
		rules = append(rules, Rule{Pattern: p, Method: method, Roles: roles})
	}
	return rules
}

// DefaultRules returns the built-in rule table, most specific first
func DefaultRules() []Rule {
	var rules []Rule
	rules = append(rules, permitAll("*", "/api/auth/login", "/api/auth/register", "/api/auth/refresh")...)
	rules = append(rules, permitAll("*", "/oauth2/**")...)
	rules = append(rules, permitAll("GET", "/health", "/metrics")...)
	rules = append(rules, hasRole("*", []string{RoleAdmin}, "/api/admin/**")...)
	rules = append(rules, permitAll("GET", "/api/products/**", "/api/categories/**")...)
	rules = append(rules, hasRole("*", []string{RoleAdmin, RoleSeller}, "/api/products/**", "/api/categories/**")...)
	rules = append(rules, permitAll("GET", "/api/reviews/**")...)
	rules = append(rules, hasRole("*", []string{RoleAdmin, RoleModerator}, "/api/moderation/**")...)
	rules = append(rules, hasRole("*", []string{RoleAdmin, RoleUser}, "/api/users/**")...)
	return rules
}

// GetRules loads auth.rules from viper, falling back to DefaultRules
func GetRules(v *viper.Viper) []Rule {
	if !v.IsSet("auth.rules") {
		return DefaultRules()
	}
	var rules []Rule
	if err := v.UnmarshalKey("auth.rules", &rules); err != nil || len(rules) == 0 {
		return DefaultRules()
	}
	return rules
}

// KnownRoles lists every role a credential may hold
func KnownRoles() []string {
	return []string{RoleUser, RoleAdmin, RoleModerator, RoleSeller}
}

// IsKnownRole reports whether role is one of KnownRoles
func IsKnownRole(role string) bool {
	for _, r := range KnownRoles() {
		if r == role {
			return true
		}
	}
	return false
}
