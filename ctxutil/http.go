package ctxutil

import (
	"net"
	"net/http"
	"strings"

	"github.com/ncobase/commerce/consts"
)

// ClientIP resolves the client identity used for rate limiting.
// Order: first X-Forwarded-For entry, X-Real-IP, transport peer address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get(consts.ForwardedForHeader); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}

	if xri := strings.TrimSpace(r.Header.Get(consts.RealIPHeader)); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get(consts.AuthorizationKey)
	if len(header) <= len(consts.BearerKey) || !strings.EqualFold(header[:len(consts.BearerKey)], consts.BearerKey) {
		return ""
	}
	return strings.TrimSpace(header[len(consts.BearerKey):])
}
