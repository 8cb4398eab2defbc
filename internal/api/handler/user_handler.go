package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/api/metrics"
	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type userRequest struct {
	Username    string      `json:"username" validate:"required,min=3,max=50"`
	Email       string      `json:"email" validate:"required,email"`
	Password    string      `json:"password" validate:"omitempty,min=6"`
	FullName    string      `json:"fullName" validate:"required,max=100"`
	PhoneNumber string      `json:"phoneNumber" validate:"max=20"`
	DateOfBirth domain.Date `json:"dateOfBirth"`
	RoleID      uint        `json:"roleId" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type resetPasswordRequest struct {
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// Create registers a new user. The password is mandatory here even though
// the same payload shape serves updates.
func (h *UserHandler) Create(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Password == "" {
		return FieldErrors{"password": "Password is required"}
	}

	user, err := h.users.Create(c.Request().Context(), rctx, ports.CreateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		Phone:       req.PhoneNumber,
		DateOfBirth: req.DateOfBirth,
		RoleID:      req.RoleID,
	})
	if err != nil {
		return err
	}
	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) GetAll(c echo.Context) error {
	page, size := pageParams(c)
	users, err := h.users.GetAll(c.Request().Context(), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponseList(users))
}

func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) GetByUsername(c echo.Context) error {
	user, err := h.users.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) GetActive(c echo.Context) error {
	users, err := h.users.GetActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponseList(users))
}

func (h *UserHandler) Update(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Update(c.Request().Context(), rctx, id, ports.UpdateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		Phone:       req.PhoneNumber,
		DateOfBirth: req.DateOfBirth,
		RoleID:      req.RoleID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Activate(c echo.Context) error {
	return h.setActive(c, true)
}

func (h *UserHandler) Deactivate(c echo.Context) error {
	return h.setActive(c, false)
}

func (h *UserHandler) setActive(c echo.Context, active bool) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var user *domain.User
	if active {
		user, err = h.users.Activate(c.Request().Context(), rctx, id)
	} else {
		user, err = h.users.Deactivate(c.Request().Context(), rctx, id)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Delete(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), rctx, id); err != nil {
		return err
	}
	return c.String(http.StatusOK, "User deleted successfully")
}

func (h *UserHandler) ChangeMyPassword(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err = h.users.ChangeMyPassword(c.Request().Context(), rctx, ports.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, "Password changed successfully")
}

func (h *UserHandler) ResetPassword(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err = h.users.ResetPassword(c.Request().Context(), rctx, id, ports.ResetPasswordInput{
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, "User password reset successfully")
}

func toUserResponseList(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
