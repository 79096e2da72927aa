package metrics

import (
	"strings"

	"github.com/google/wire"
)

// ProviderSet is the wire provider set for the metrics package.
var ProviderSet = wire.NewSet(ProvideMetrics)

// ProvideMetrics creates the collectors namespaced by the application name
func ProvideMetrics(appName string) *Metrics {
	return NewMetrics(Namespace(appName))
}

// Namespace turns name into a valid metric namespace
func Namespace(name string) string {
	ns := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, strings.TrimSpace(name))
	if ns == "" || (ns[0] >= '0' && ns[0] <= '9') {
		ns = "commerce_" + ns
	}
	return strings.TrimRight(ns, "_")
}
