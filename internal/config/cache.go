package config

import (
    "strings"
    "time"
)

// CacheConfig tunes the redis response cache in front of the camp
// catalog endpoints.  The catalog (divisions, subdivisions, resource
// rules) is loaded once at startup and never changes while the process
// runs, so cached responses can live far longer than they would for
// ordinary data; the TTL mostly bounds staleness across a redeploy.
// When Enabled is false or no Redis client is configured the middleware
// passes requests straight through.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool // HTTP methods eligible for caching
    TTL          time.Duration   // entry lifetime
    KeyStrategy  string          // which request parts form the key
    Prefix       string          // redis key namespace
    MaxBodyBytes int             // largest response body worth caching
}

// LoadCacheConfig reads the CACHE_* environment variables.  Methods are
// upper-cased; unset variables fall back to catalog-appropriate
// defaults (GET only, five minutes).
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
        TTL:          envDur("CACHE_TTL", 5*time.Minute),
        KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       envStr("CACHE_PREFIX", "catalog"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}

func parseMethods(s string) map[string]bool {
    m := map[string]bool{}
    for _, p := range strings.Split(s, ",") {
        p = strings.TrimSpace(strings.ToUpper(p))
        if p != "" {
            m[p] = true
        }
    }
    return m
}
