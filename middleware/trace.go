package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ncobase/commerce/consts"
	"github.com/ncobase/commerce/ctxutil"
	"github.com/ncobase/commerce/logging/observes"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Trace ensures every request carries a trace id and runs inside a span
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx = ctxutil.WithGinContext(ctx, c)

		if id := c.GetHeader(consts.TraceKey); id != "" {
			if _, err := uuid.Parse(id); err == nil {
				ctx = ctxutil.SetTraceID(ctx, id)
			}
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)
		c.Header(consts.TraceKey, traceID)

		ctx, span := observes.Tracer().Start(ctx, fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.target", c.Request.URL.Path),
				attribute.String("trace_id", traceID),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if route := c.FullPath(); route != "" {
			span.SetName(fmt.Sprintf("%s %s", c.Request.Method, route))
		}
		if status >= 500 {
			span.SetStatus(codes.Error, FailureKind(c))
		}
	}
}
