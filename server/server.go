// Package server assembles the gin engine and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/commerce/config"
	"github.com/ncobase/commerce/handler"
	"github.com/ncobase/commerce/logging/logger"
	"github.com/ncobase/commerce/metrics"
	"github.com/ncobase/commerce/middleware"
	"github.com/ncobase/commerce/security/authz"
	"github.com/ncobase/commerce/security/ratelimit"
	"github.com/ncobase/commerce/security/token"
)

// Server wraps the HTTP server
type Server struct {
	cfg    *config.Server
	http   *http.Server
	logger *logger.Logger
}

// NewEngine builds the gin engine with the full request pipeline
func NewEngine(
	cfg *config.Config,
	h *handler.Handler,
	tokens *token.Service,
	policy *authz.Policy,
	limiter *ratelimit.Limiter,
	m *metrics.Metrics,
	l *logger.Logger,
) *gin.Engine {
	if cfg.IsDevelop() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	e := gin.New()
	e.Use(middleware.Pipeline(tokens, policy, limiter, m, l)...)
	handler.RegisterRoutes(e, h)
	return e
}

// New creates a new server
func New(cfg *config.Server, engine *gin.Engine, l *logger.Logger) *Server {
	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      engine,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger: l,
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info(context.Background(), "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
