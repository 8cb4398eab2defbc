package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/core/domain"
)

const forbiddenMessage = "You don't have permission to access this resource"

// RequestContext extracts the context stored by Auth. The zero value and
// false come back when Auth did not run.
func RequestContext(c echo.Context) (domain.RequestContext, bool) {
	rctx, ok := c.Get(requestContextKey).(domain.RequestContext)
	return rctx, ok
}

// RequireRole allows the request through only when the caller holds one of
// the named roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rctx, ok := RequestContext(c)
			if !ok {
				return domain.Unauthenticated("missing authentication context")
			}
			if !rctx.Caller.HasRole(roles...) {
				return domain.Forbidden(forbiddenMessage)
			}
			return next(c)
		}
	}
}

// RequirePermission allows the request through only when the caller's role
// carries the named permission.
func RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rctx, ok := RequestContext(c)
			if !ok {
				return domain.Unauthenticated("missing authentication context")
			}
			if !rctx.Caller.HasPermission(permission) {
				return domain.Forbidden(forbiddenMessage)
			}
			return next(c)
		}
	}
}
