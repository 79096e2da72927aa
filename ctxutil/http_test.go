package ctxutil

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"forwarded first entry", "203.0.113.7, 10.0.0.1", "198.51.100.2", "192.0.2.1:4000", "203.0.113.7"},
		{"forwarded single", "203.0.113.8", "", "192.0.2.1:4000", "203.0.113.8"},
		{"real ip fallback", "", "198.51.100.2", "192.0.2.1:4000", "198.51.100.2"},
		{"blank forwarded falls through", " , 10.0.0.1", "198.51.100.3", "192.0.2.1:4000", "198.51.100.3"},
		{"peer address", "", "", "192.0.2.1:4000", "192.0.2.1"},
		{"peer without port", "", "", "192.0.2.9", "192.0.2.9"},
		{"ipv6 peer", "", "", "[2001:db8::1]:443", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/products", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Empty(t, BearerToken(req))

	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", BearerToken(req))

	req.Header.Set("Authorization", "bearer xyz")
	assert.Equal(t, "xyz", BearerToken(req))

	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Empty(t, BearerToken(req))

	req.Header.Set("Authorization", "Bearer ")
	assert.Empty(t, BearerToken(req))
}
