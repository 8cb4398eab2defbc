package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/api/metrics"
	"github.com/gatherly/eventhub/internal/api/middleware"
	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/ports"
)

type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresIn int64  `json:"expiresIn"`
}

// Login authenticates a user and returns a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Login runs before authentication, so the audit context is assembled
	// from the raw request.
	httpReq := c.Request()
	rctx := domain.RequestContext{
		IP:         middleware.ClientIP(httpReq),
		UserAgent:  httpReq.UserAgent(),
		DeviceInfo: middleware.DeviceInfo(httpReq.UserAgent()),
		SessionID:  uuid.NewString(),
	}

	result, err := h.auth.Login(c.Request().Context(), rctx, ports.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Token:     result.Token,
		Type:      result.Type,
		Username:  result.Username,
		Role:      result.Role,
		ExpiresIn: result.ExpiresIn,
	})
}

// Logout closes the login history row paired with the caller's token.
func (h *AuthHandler) Logout(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.Request().Context(), rctx); err != nil {
		return err
	}
	return c.String(http.StatusOK, "Logged out successfully")
}
