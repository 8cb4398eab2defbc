package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gatherly/eventhub/internal/api/handler"
	"github.com/gatherly/eventhub/internal/core/domain"
)

func renderError(t *testing.T, err error, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return body
}

func TestErrorHandlerDomainKinds(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantName string
	}{
		{"validation", domain.Validation("Username '%s' is already taken", "bob"), http.StatusBadRequest, "BAD_REQUEST"},
		{"state", domain.ErrAccountDeactivated, http.StatusBadRequest, "BAD_REQUEST"},
		{"conflict", domain.Conflict("duplicate"), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", domain.NotFound("Event not found with id: %d", 9), http.StatusNotFound, "NOT_FOUND"},
		{"unauthenticated", domain.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", domain.Forbidden("You don't have permission to access this resource"), http.StatusForbidden, "FORBIDDEN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := renderError(t, tc.err, "/events/9")
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			body := decodeEnvelope(t, rec)
			if body["apiPath"] != "uri=/events/9" {
				t.Fatalf("unexpected apiPath: %v", body["apiPath"])
			}
			if body["errorCode"] != tc.wantName {
				t.Fatalf("unexpected errorCode: %v", body["errorCode"])
			}
			if body["errorMessage"] != tc.err.Error() {
				t.Fatalf("unexpected errorMessage: %v", body["errorMessage"])
			}
			if body["errorTime"] == "" {
				t.Fatalf("errorTime missing")
			}
		})
	}
}

func TestErrorHandlerUnexpectedError(t *testing.T) {
	rec := renderError(t, errors.New("pq: connection refused"), "/users")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["errorMessage"] != "An unexpected error occurred" {
		t.Fatalf("internal detail leaked: %v", body["errorMessage"])
	}
	if body["errorCode"] != "INTERNAL_SERVER_ERROR" {
		t.Fatalf("unexpected errorCode: %v", body["errorCode"])
	}
}

func TestErrorHandlerEchoError(t *testing.T) {
	rec := renderError(t, echo.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts, try again later"), "/auth/login")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["errorCode"] != "TOO_MANY_REQUESTS" {
		t.Fatalf("unexpected errorCode: %v", body["errorCode"])
	}
}

func TestErrorHandlerFieldErrors(t *testing.T) {
	rec := renderError(t, handler.FieldErrors{
		"username": "Username is required",
		"email":    "Email should be valid",
	}, "/users")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if len(body) != 2 {
		t.Fatalf("expected bare field map, got %v", body)
	}
	if body["username"] != "Username is required" || body["email"] != "Email should be valid" {
		t.Fatalf("unexpected field messages: %v", body)
	}
}
