package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/commerce/data/cache"
	"github.com/ncobase/commerce/logging/logger"
	"github.com/ncobase/commerce/metrics"
	"github.com/ncobase/commerce/security/authz"
	"github.com/ncobase/commerce/security/ratelimit"
	"github.com/ncobase/commerce/security/token"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type pipeline struct {
	engine  *gin.Engine
	tokens  *token.Service
	metrics *metrics.Metrics
	clock   *clock
}

func newPipeline(t *testing.T, limits *ratelimit.Config, store cache.Store) *pipeline {
	t.Helper()
	clk := &clock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	if store == nil {
		store = cache.NewMemoryStore(cache.WithClock(clk.now))
	}
	tokens, err := token.NewService(&token.Config{
		Secret:     "pipeline-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}, store, token.WithClock(clk.now))
	require.NoError(t, err)

	if limits == nil {
		limits = ratelimit.DefaultConfig()
		limits.Enabled = false
	}
	limiter := ratelimit.NewLimiter(limits, store, ratelimit.WithClock(clk.now))
	policy := authz.NewPolicy(nil)
	m := metrics.NewMetrics("test")
	l := logger.NewWithWriter(io.Discard, logrus.ErrorLevel)

	e := gin.New()
	e.Use(Pipeline(tokens, policy, limiter, m, l)...)

	ok := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUserID(c)})
	}
	e.POST("/api/auth/login", ok)
	e.GET("/health", ok)
	e.GET("/api/admin/users", ok)
	e.GET("/api/users/me", ok)
	e.GET("/api/products/:id", ok)
	e.POST("/api/products", ok)
	e.GET("/api/orders", ok)
	e.GET("/api/panic", func(*gin.Context) { panic("boom") })

	return &pipeline{engine: e, tokens: tokens, metrics: m, clock: clk}
}

func (p *pipeline) do(method, path, bearer string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "192.0.2.10:4711"
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	p.engine.ServeHTTP(w, req)
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
