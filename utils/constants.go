package utils

import "time"

type contextKey string

// Request scoped context keys
const (
	RequestIDKey contextKey = "request_id"
	UserAgentKey contextKey = "user_agent"
	IPAddressKey contextKey = "ip_address"
	EndpointKey  contextKey = "endpoint"
	TimeoutKey   contextKey = "timeout"
)

// Short link defaults
const (
	// ShortKeyLength is the number of characters in a generated short key
	ShortKeyLength = 6

	// StatsTokenLength is the number of characters in a per-link stats token
	StatsTokenLength = 24

	// MaxKeyAttempts bounds the probe loop of the key generator
	MaxKeyAttempts = 3

	// MaxInsertAttempts bounds the retries after a unique constraint conflict on insert
	MaxInsertAttempts = 3
)

// Cache keys (prefixed with CACHE_REDIS_PREFIX at use site)
const (
	LandingPageCacheKey = "landing_page:"
)

// RequestTimeout is the default deadline for store calls made by a handler
const RequestTimeout = 10 * time.Second
