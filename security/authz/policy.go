// Package authz decides which roles may call which routes.
package authz

import (
	"strings"
)

// Policy is an ordered rule table evaluated first-match
type Policy struct {
	rules []Rule
}

// NewPolicy creates a policy over rules. An empty table uses DefaultRules.
func NewPolicy(rules []Rule) *Policy {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	compiled := make([]Rule, len(rules))
	for i, r := range rules {
		r.Method = strings.ToUpper(strings.TrimSpace(r.Method))
		compiled[i] = r
	}
	return &Policy{rules: compiled}
}

// Rules returns a copy of the rule table
func (p *Policy) Rules() []Rule {
	out := make([]Rule, len(p.rules))
	copy(out, p.rules)
	return out
}

// Match returns the first rule matching method and path
func (p *Policy) Match(method, path string) (*Rule, bool) {
	method = strings.ToUpper(method)
	for i := range p.rules {
		r := &p.rules[i]
		if r.Method != "" && r.Method != "*" && r.Method != method {
			continue
		}
		if MatchPattern(r.Pattern, path) {
			return r, true
		}
	}
	return nil, false
}

// Allows reports whether a caller holding roles passes the rule.
// A nil rule admits any authenticated caller.
func (r *Rule) Allows(authenticated bool, roles []string) bool {
	if r != nil && r.PermitAll {
		return true
	}
	if !authenticated {
		return false
	}
	if r == nil || len(r.Roles) == 0 {
		return true
	}
	for _, have := range roles {
		for _, want := range r.Roles {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

// MatchPattern matches an ant-style pattern against a path.
// "**" matches zero or more segments, "*" exactly one.
func MatchPattern(pattern, path string) bool {
	return matchSegments(split(pattern), split(path))
}

func split(s string) []string {
	s = strings.Trim(s, "/")
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}

func matchSegments(pattern, path []string) bool {
	for len(pattern) > 0 {
		head := pattern[0]
		if head == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(path); i++ {
				if matchSegments(rest, path[i:]) {
					return true
				}
			}
			return false
		}
		if len(path) == 0 {
			return false
		}
		if head != "*" && head != path[0] {
			return false
		}
		pattern, path = pattern[1:], path[1:]
	}
	return len(path) == 0
}
