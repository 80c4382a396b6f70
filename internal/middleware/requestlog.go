package middleware

import (
    "time"

    "github.com/hashicorp/go-hclog"
    "github.com/labstack/echo/v4"
)

// RequestLog writes one line per request. 5xx responses log at error, 4xx
// at warn, everything else at info.
func RequestLog(log hclog.Logger) echo.MiddlewareFunc {
    log = log.Named("http")
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            if err := next(c); err != nil {
                // let echo render the error now so the final status is known
                c.Error(err)
            }
            res := c.Response()
            args := []any{
                "method", c.Request().Method,
                "path", c.Request().URL.Path,
                "status", res.Status,
                "bytes", res.Size,
                "latency", time.Since(start).String(),
            }
            if cache := res.Header().Get("X-Cache"); cache != "" {
                args = append(args, "cache", cache)
            }
            switch {
            case res.Status >= 500:
                log.Error("response", args...)
            case res.Status >= 400:
                log.Warn("response", args...)
            default:
                log.Info("response", args...)
            }
            return nil
        }
    }
}
