package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/ports"
	"github.com/gatherly/eventhub/internal/pkg/token"
)

// requestContextKey is where Auth stores the assembled domain.RequestContext.
const requestContextKey = "requestContext"

// Auth validates the bearer token, re-checks the account against the store
// and injects a fully populated domain.RequestContext. Deactivated or
// deleted accounts are rejected even when their token is still valid.
func Auth(tokens *token.Manager, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1], time.Now())
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			user, err := users.FindByUsername(c.Request().Context(), claims.Username)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if !user.Active {
				return echo.NewHTTPError(http.StatusUnauthorized, "User account is deactivated")
			}

			permissions := make([]string, 0, len(user.Role.Permissions))
			for _, p := range user.Role.Permissions {
				permissions = append(permissions, p.Name)
			}

			req := c.Request()
			c.Set(requestContextKey, domain.RequestContext{
				Caller: domain.Caller{
					UserID:      user.ID,
					Username:    user.Username,
					Role:        user.Role.Name,
					Permissions: permissions,
				},
				IP:         ClientIP(req),
				UserAgent:  req.UserAgent(),
				DeviceInfo: DeviceInfo(req.UserAgent()),
				SessionID:  uuid.NewString(),
				Token:      parts[1],
			})

			return next(c)
		}
	}
}

// ClientIP resolves the caller's address, preferring proxy headers over the
// socket peer.
func ClientIP(req *http.Request) string {
	for _, header := range []string{"X-Forwarded-For", "Proxy-Client-IP", "WL-Proxy-Client-IP"} {
		ip := req.Header.Get(header)
		if ip == "" || strings.EqualFold(ip, "unknown") {
			continue
		}
		// X-Forwarded-For may carry a chain; the first hop is the client.
		if i := strings.IndexByte(ip, ','); i >= 0 {
			ip = ip[:i]
		}
		return strings.TrimSpace(ip)
	}
	addr := req.RemoteAddr
	if i := strings.LastIndexByte(addr, ':'); i >= 0 {
		addr = addr[:i]
	}
	return strings.Trim(addr, "[]")
}

// DeviceInfo classifies a User-Agent into the coarse device buckets the
// audit trail stores.
func DeviceInfo(userAgent string) string {
	switch {
	case userAgent == "":
		return "Unknown"
	case strings.Contains(userAgent, "Mobile"):
		return "Mobile"
	case strings.Contains(userAgent, "Tablet"):
		return "Tablet"
	default:
		return "Desktop"
	}
}
