package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/api/middleware"
	"github.com/gatherly/eventhub/internal/core/domain"
)

// requestContext extracts the context injected by the Auth middleware and
// performs a fast-fail check before any service call: a request reaching a
// protected handler without it means the route is miswired.
func requestContext(c echo.Context) (domain.RequestContext, error) {
	rctx, ok := middleware.RequestContext(c)
	if !ok || rctx.Caller.Username == "" {
		return domain.RequestContext{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return rctx, nil
}

// pathID parses the named numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// pageParams reads 1-based pagination query parameters with defaults.
func pageParams(c echo.Context) (page, size int) {
	page, size = 1, 10
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("size")); err == nil && v > 0 {
		size = v
	}
	return page, size
}
