package data

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Health checks all components
func (d *Data) Health(ctx context.Context) map[string]any {
	services := make(map[string]any)
	overallHealthy := true

	if healthy := d.checkCacheHealth(ctx, services); !healthy {
		overallHealthy = false
	}

	if healthy := d.checkMongoHealth(ctx, services); !healthy {
		overallHealthy = false
	}

	health := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services":  services,
		"status":    "healthy",
	}
	if !overallHealthy {
		health["status"] = "degraded"
	}

	return health
}

// checkCacheHealth checks the key-value store
func (d *Data) checkCacheHealth(ctx context.Context, services map[string]any) bool {
	if d.Cache == nil {
		return true
	}

	start := time.Now()
	err := d.Cache.Ping(ctx)
	duration := time.Since(start)

	healthy := err == nil
	services["cache"] = map[string]any{
		"healthy":     healthy,
		"response_ms": duration.Milliseconds(),
		"error":       getErrorString(err),
	}

	return healthy
}

// checkMongoHealth checks MongoDB health
func (d *Data) checkMongoHealth(ctx context.Context, services map[string]any) bool {
	if d.Conn == nil || d.Conn.MG == nil {
		return true
	}

	start := time.Now()
	err := d.Conn.MG.Ping(ctx, readpref.Primary())
	duration := time.Since(start)

	healthy := err == nil
	services["mongodb"] = map[string]any{
		"healthy":     healthy,
		"response_ms": duration.Milliseconds(),
		"error":       getErrorString(err),
	}

	return healthy
}

func getErrorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
