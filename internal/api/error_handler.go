package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gatherly/eventhub/internal/api/handler"
	"github.com/gatherly/eventhub/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	APIPath      string           `json:"apiPath"`
	ErrorCode    string           `json:"errorCode"`
	ErrorMessage string           `json:"errorMessage"`
	ErrorTime    domain.Timestamp `json:"errorTime"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Renders request validation failures as a {field: message} map.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var fields handler.FieldErrors
		if errors.As(err, &fields) {
			_ = c.JSON(http.StatusBadRequest, fields)
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{
			APIPath:      "uri=" + c.Request().URL.Path,
			ErrorCode:    statusName(code),
			ErrorMessage: msg,
			ErrorTime:    domain.Timestamp(time.Now()),
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var de *domain.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindValidation, domain.KindState, domain.KindConflict:
			return http.StatusBadRequest, de.Message
		case domain.KindNotFound:
			return http.StatusNotFound, de.Message
		case domain.KindUnauthenticated:
			return http.StatusUnauthorized, de.Message
		case domain.KindForbidden:
			return http.StatusForbidden, de.Message
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "An unexpected error occurred"
}

// statusName renders a status code the way the envelope expects it, e.g.
// 400 becomes BAD_REQUEST.
func statusName(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return fmt.Sprintf("STATUS_%d", code)
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
