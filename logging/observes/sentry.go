package observes

import (
	"context"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/ncobase/commerce/config"
	"github.com/ncobase/commerce/ctxutil"
)

const sentryFlushTimeout = 2 * time.Second

// NewSentry initializes the Sentry client. An empty endpoint disables reporting.
func NewSentry(cfg *config.Sentry, serverName string) (func(), error) {
	if cfg == nil || cfg.Endpoint == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Endpoint,
		AttachStacktrace: true,
		SampleRate:       cfg.SampleRate,
		ServerName:       serverName,
		Release:          cfg.Release,
		Environment:      cfg.Environment,
	})
	if err != nil {
		return nil, err
	}
	return func() { sentry.Flush(sentryFlushTimeout) }, nil
}

// CaptureError reports err with the request and trace id attached.
// It is a no-op when Sentry is not initialized.
func CaptureError(ctx context.Context, err error, r *http.Request) {
	if err == nil {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		if traceID := ctxutil.GetTraceID(ctx); traceID != "" {
			scope.SetTag("trace_id", traceID)
		}
		if uid := ctxutil.GetUserID(ctx); uid != "" {
			scope.SetUser(sentry.User{ID: uid})
		}
		if r != nil {
			scope.SetRequest(r)
		}
		hub.CaptureException(err)
	})
}

// CaptureRecovered reports a recovered panic value
func CaptureRecovered(ctx context.Context, v any, r *http.Request) {
	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		if traceID := ctxutil.GetTraceID(ctx); traceID != "" {
			scope.SetTag("trace_id", traceID)
		}
		if r != nil {
			scope.SetRequest(r)
		}
		hub.Recover(v)
	})
}
