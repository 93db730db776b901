package config

import (
    "os"
    "strconv"
    "time"
)

// RateLimitConfig tunes the per-editor token bucket in front of the
// session endpoints.  The board UI mutates in bursts (dragging one
// activity can fire several assignment calls back to back), so the
// bucket is sized for short bursts with a steady refill rather than a
// flat requests-per-second ceiling.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int           // bucket size; the largest tolerated burst
    RefillTokens   int           // tokens added per interval
    RefillInterval time.Duration // refill cadence
    TTL            time.Duration // idle key expiry in redis
    KeyStrategy    string        // "user", "user_route" or "ip_route"
    Prefix         string        // redis key namespace
    Debug          bool          // expose the computed key and log decisions
}

// LoadRateLimitConfig reads the RATE_LIMIT_* environment variables.
// Session traffic is always authenticated, so the default key is
// user+route: one editor hammering the assignment endpoint cannot starve
// their own board reads and cannot affect other editors at all.
func LoadRateLimitConfig() RateLimitConfig {
    def := RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", true),
        Capacity:       envInt("RATE_LIMIT_CAPACITY", 90),
        RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 3),
        RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            envDur("RATE_LIMIT_TTL", 15*time.Minute),
        KeyStrategy:    envStr("RATE_LIMIT_KEY_STRATEGY", "user_route"),
        Prefix:         envStr("RATE_LIMIT_PREFIX", "rl"),
        Debug:          envBool("RATE_LIMIT_DEBUG", false),
    }
    if b := envInt("RATE_LIMIT_BURST", -1); b > 0 { def.Capacity = b }
    if every := envDur("RATE_LIMIT_REFILL_EVERY", 0); every > 0 {
        def.RefillTokens = 1
        def.RefillInterval = every
    }
    if def.Capacity < 1 { def.Capacity = 1 }
    if def.RefillTokens < 1 { def.RefillTokens = 1 }
    if def.RefillInterval <= 0 { def.RefillInterval = time.Second }
    minTTL := 5 * def.RefillInterval
    if def.TTL < minTTL { def.TTL = minTTL }
    return def
}

func envStr(k, d string) string { if v := os.Getenv(k); v != "" { return v }; return d }
func envBool(k string, d bool) bool {
    v := os.Getenv(k)
    if v == "" { return d }
    switch v {
    case "1","true","TRUE","True","yes","YES","on","ON": return true
    case "0","false","FALSE","False","no","NO","off","OFF": return false
    }
    return d
}
func envInt(k string, d int) int {
    v := os.Getenv(k); if v == "" { return d }
    if n, err := strconv.Atoi(v); err == nil { return n }
    return d
}
func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k); if v == "" { return d }
    if dur, err := time.ParseDuration(v); err == nil { return dur }
    return d
}
