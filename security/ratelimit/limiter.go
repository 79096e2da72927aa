// Package ratelimit implements fixed-window request limits per client key.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ncobase/commerce/consts"
	"github.com/ncobase/commerce/data/cache"
)

// Policy selects which counters a request is checked against
type Policy string

const (
	PolicyNone    Policy = "none"
	PolicyLogin   Policy = "login"
	PolicyGeneral Policy = "general"
)

// Decision is the outcome of one check
type Decision struct {
	Allowed    bool
	Policy     Policy
	Limit      int
	Count      int64
	RetryAfter time.Duration
}

// Limiter checks and consumes request allowances
type Limiter struct {
	cfg   *Config
	store cache.Store
	now   func() time.Time
}

// Option configures a Limiter
type Option func(*Limiter)

// WithClock sets the time source used to pick windows
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLimiter creates a new Limiter instance
func NewLimiter(cfg *Config, store cache.Store, opts ...Option) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	l := &Limiter{cfg: cfg, store: store, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Enabled reports whether limits are enforced
func (l *Limiter) Enabled() bool {
	return l.cfg.Enabled
}

// PolicyFor selects the policy of a request path. Static assets are never limited.
func (l *Limiter) PolicyFor(path string) Policy {
	for _, prefix := range l.cfg.StaticPrefixes {
		if strings.HasPrefix(path, prefix) {
			return PolicyNone
		}
	}
	for _, p := range l.cfg.LoginPaths {
		if path == p {
			return PolicyLogin
		}
	}
	if strings.HasPrefix(path, l.cfg.APIPrefix) {
		return PolicyGeneral
	}
	return PolicyNone
}

// CheckAndConsume records one request from clientKey under policy
func (l *Limiter) CheckAndConsume(ctx context.Context, clientKey string, policy Policy) (Decision, error) {
	switch policy {
	case PolicyLogin:
		return l.login(ctx, clientKey)
	case PolicyGeneral:
		return l.general(ctx, clientKey)
	default:
		return Decision{Allowed: true, Policy: PolicyNone}, nil
	}
}

// login counts every attempt, so clients that keep retrying stay locked out
// until the window started by their first attempt closes.
func (l *Limiter) login(ctx context.Context, clientKey string) (Decision, error) {
	key := consts.RateLimitPrefix + "login:" + clientKey
	count, err := l.store.Incr(ctx, key, l.cfg.Login.Window)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to count login attempt: %w", err)
	}

	d := Decision{
		Allowed: count <= int64(l.cfg.Login.Limit),
		Policy:  PolicyLogin,
		Limit:   l.cfg.Login.Limit,
		Count:   count,
	}
	if !d.Allowed {
		d.RetryAfter = l.cfg.Login.Window
		if ttl, err := l.store.TTL(ctx, key); err == nil && ttl > 0 {
			d.RetryAfter = ttl
		}
	}
	return d, nil
}

func (l *Limiter) general(ctx context.Context, clientKey string) (Decision, error) {
	now := l.now().Unix()
	minuteSize := windowSize(l.cfg.Minute, time.Minute)
	hourSize := windowSize(l.cfg.Hour, time.Hour)
	minuteKey := windowKey("minute", clientKey, now, minuteSize)
	hourKey := windowKey("hour", clientKey, now, hourSize)

	minute, err := l.count(ctx, minuteKey)
	if err != nil {
		return Decision{}, err
	}
	hour, err := l.count(ctx, hourKey)
	if err != nil {
		return Decision{}, err
	}

	if minute >= int64(l.cfg.Minute.Limit) {
		return Decision{
			Policy:     PolicyGeneral,
			Limit:      l.cfg.Minute.Limit,
			Count:      minute,
			RetryAfter: untilWindowEnd(now, minuteSize),
		}, nil
	}
	if hour >= int64(l.cfg.Hour.Limit) {
		return Decision{
			Policy:     PolicyGeneral,
			Limit:      l.cfg.Hour.Limit,
			Count:      hour,
			RetryAfter: untilWindowEnd(now, hourSize),
		}, nil
	}

	if minute, err = l.store.Incr(ctx, minuteKey, time.Duration(minuteSize)*time.Second); err != nil {
		return Decision{}, fmt.Errorf("failed to count request: %w", err)
	}
	if _, err = l.store.Incr(ctx, hourKey, time.Duration(hourSize)*time.Second); err != nil {
		return Decision{}, fmt.Errorf("failed to count request: %w", err)
	}
	return Decision{Allowed: true, Policy: PolicyGeneral, Limit: l.cfg.Minute.Limit, Count: minute}, nil
}

// windowSize is the window length in whole seconds, falling back to def
// when the configured window is shorter than a second.
func windowSize(w Window, def time.Duration) int64 {
	if size := int64(w.Window / time.Second); size > 0 {
		return size
	}
	return int64(def / time.Second)
}

func (l *Limiter) count(ctx context.Context, key string) (int64, error) {
	raw, err := l.store.Get(ctx, key)
	if errors.Is(err, cache.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter: %w", err)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", key, err)
	}
	return n, nil
}

func windowKey(kind, clientKey string, unix, size int64) string {
	return consts.RateLimitPrefix + kind + ":" + clientKey + ":" + strconv.FormatInt(unix/size, 10)
}

func untilWindowEnd(unix, size int64) time.Duration {
	return time.Duration(size-unix%size) * time.Second
}
