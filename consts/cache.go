package consts

// Cache key prefixes shared by the token service and rate limiter.
const (
	TokenCachePrefix     = "token:"
	RefreshCacheSuffix   = ":refresh"
	BlacklistCachePrefix = "blacklist:"
	RateLimitPrefix      = "rate_limit:"
)
