package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the anonymous page cache.  It is off
// unless CACHE_ENABLED is set, so every view fetches fresh data by
// default.  Paths lists the route patterns that may be cached.
type CacheConfig struct {
	Enabled      bool
	Paths        map[string]bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the CACHE_* environment variables.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", false),
		Paths:        parseList(getenv("CACHE_PATHS", "/movies")),
		TTL:          parseDur(getenv("CACHE_TTL", "30s")),
		Prefix:       getenv("CACHE_PREFIX", "page"),
		MaxBodyBytes: atoi(getenv("CACHE_MAX_BODY_BYTES", "1048576")),
	}
}

func parseList(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			m[p] = true
		}
	}
	return m
}
