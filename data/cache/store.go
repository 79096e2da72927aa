// Package cache provides the key-value store used for token pointers,
// blacklist entries and rate-limit counters.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get and TTL when the key does not exist or has expired.
var ErrNotFound = errors.New("cache: key not found")

// Store is the key-value contract consumed by the token service and rate limiter.
type Store interface {
	// Get returns the value under key or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key. A ttl of zero stores without expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Incr atomically increments the counter under key and returns the new value.
	// ttl is applied only when the key has no expiry yet, so repeated calls never extend a window.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)
	// TTL returns the remaining lifetime of key, zero when it has no expiry.
	TTL(ctx context.Context, key string) (time.Duration, error)
	// Ping checks the store is reachable.
	Ping(ctx context.Context) error
}
