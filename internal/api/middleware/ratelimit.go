package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gatherly/eventhub/internal/api/metrics"
)

// Limiter is the slice of the redis login limiter this middleware needs.
type Limiter interface {
	Allow(ctx context.Context, ip string) (bool, error)
}

// LoginRateLimit throttles a route per client IP. Limiter failures fail
// open: a broken redis must not lock everyone out.
func LoginRateLimit(limiter Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limiter == nil {
				return next(c)
			}

			ip := ClientIP(c.Request())
			allowed, err := limiter.Allow(c.Request().Context(), ip)
			if err != nil {
				log.Warn().Err(err).Str("ip", ip).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.LoginsThrottledTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts, try again later")
			}
			return next(c)
		}
	}
}
