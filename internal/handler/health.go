package handler // declare the package name; contains HTTP handlers

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
    Ping(ctx context.Context) error
}

// Health returns a health-check endpoint used by load balancers and
// monitoring systems. It answers a plain "ok" with 200 when the database
// answers a ping within two seconds, and 503 otherwise.
func Health(db Pinger) echo.HandlerFunc {
    return func(c echo.Context) error {
        ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
        defer cancel()
        if err := db.Ping(ctx); err != nil {
            return c.String(http.StatusServiceUnavailable, "unavailable")
        }
        return c.String(http.StatusOK, "ok")
    }
}
