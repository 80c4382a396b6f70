package config

import (
    "strings"
    "time"
)

// CacheConfig controls the Redis response cache. Only GET and HEAD can be
// cached; every route of the API is read-only.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    TTL          time.Duration
    KeyStrategy  string // route, route_query, method_route, method_route_query
    Prefix       string // first segment of every key; purges match on it
    MaxBodyBytes int
}

var cacheKeyStrategies = map[string]bool{
    "route": true, "route_query": true, "method_route": true, "method_route_query": true,
}

// LoadCacheConfig reads CACHE_*. Caching is off unless CACHE_ENABLED is set.
// An unknown key strategy falls back to route_query.
func LoadCacheConfig() CacheConfig {
    cfg := CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", false),
        Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        KeyStrategy:  strings.ToLower(envStr("CACHE_KEY_STRATEGY", "route_query")),
        Prefix:       strings.TrimSuffix(envStr("CACHE_PREFIX", "cache"), ":"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
    if !cacheKeyStrategies[cfg.KeyStrategy] {
        cfg.KeyStrategy = "route_query"
    }
    if cfg.TTL <= 0 {
        cfg.TTL = 30 * time.Second
    }
    return cfg
}

// parseMethods upper-cases a comma list and keeps the safe methods.
func parseMethods(s string) map[string]bool {
    m := map[string]bool{}
    for _, p := range strings.Split(s, ",") {
        p = strings.TrimSpace(strings.ToUpper(p))
        if p == "GET" || p == "HEAD" {
            m[p] = true
        }
    }
    return m
}
