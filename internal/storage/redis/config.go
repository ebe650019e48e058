package redis

import "time"

// Config holds Redis storage configuration
type Config struct {
	// URL is the Redis connection URL (redis://...)
	URL string

	// Connection pool settings
	PoolSize     int
	MinIdleConns int

	// AnonymousGameTTL expires sessions owned by the anonymous group.
	// Games owned by registered users are kept indefinitely.
	AnonymousGameTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis storage
func DefaultConfig() Config {
	return Config{
		URL:              "redis://localhost:6379",
		PoolSize:         10,
		MinIdleConns:     2,
		AnonymousGameTTL: 24 * time.Hour,
	}
}
