// Package config loads application configuration from environment variables.
// A .env file in the working directory is read first when present; variables
// already set in the process environment win over the file.
package config

import (
    "fmt"
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable.
type Config struct {
    Env             string        // application environment (e.g. "dev", "prod")
    Port            string        // HTTP port to listen on
    DBUser          string        // database username
    DBPass          string        // database password (optional)
    DBHost          string        // database host address
    DBPort          string        // database port number
    DBName          string        // database name
    DBMaxOpenConns  int           // upper bound of pooled connections
    DBMaxIdleConns  int           // idle connections kept in the pool
    DBConnLifetime  time.Duration // maximum lifetime of a pooled connection
    LogLevel        string        // hclog level name (trace, debug, info, warn, error)
    LogJSON         bool          // emit JSON log lines instead of text
    ShutdownTimeout time.Duration // grace period for in-flight requests on shutdown

    Cache        CacheConfig
    RateLimit    RateLimitConfig
    Invalidation InvalidationConfig
}

// Load reads configuration values from the environment and returns a Config.
// Every missing required variable is reported in a single error.
func Load() (Config, error) {
    _ = godotenv.Load()

    var missing []string
    required := func(key string) string {
        v, ok := os.LookupEnv(key)
        if !ok || v == "" {
            missing = append(missing, key)
        }
        return v
    }

    cfg := Config{
        Env:             envStr("APP_ENV", "dev"),
        Port:            envStr("APP_PORT", "8080"),
        DBUser:          required("DB_USER"),
        DBPass:          os.Getenv("DB_PASS"),
        DBHost:          required("DB_HOST"),
        DBPort:          required("DB_PORT"),
        DBName:          required("DB_NAME"),
        DBMaxOpenConns:  envInt("DB_MAX_OPEN_CONNS", 25),
        DBMaxIdleConns:  envInt("DB_MAX_IDLE_CONNS", 25),
        DBConnLifetime:  envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
        LogLevel:        envStr("LOG_LEVEL", "info"),
        LogJSON:         envBool("LOG_JSON", false),
        ShutdownTimeout: envDur("SHUTDOWN_TIMEOUT", 10*time.Second),
        Cache:           LoadCacheConfig(),
        RateLimit:       LoadRateLimitConfig(),
        Invalidation:    LoadInvalidationConfig(),
    }
    if len(missing) > 0 {
        return cfg, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
    }
    return cfg, nil
}

func envStr(k, d string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return d
}

func envBool(k string, d bool) bool {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    switch v {
    case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
        return true
    case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
        return false
    }
    return d
}

func envInt(k string, d int) int {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if n, err := strconv.Atoi(v); err == nil {
        return n
    }
    return d
}

func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if dur, err := time.ParseDuration(v); err == nil {
        return dur
    }
    return d
}
