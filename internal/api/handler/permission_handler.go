package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/core/ports"
)

type PermissionHandler struct {
	permissions ports.PermissionService
}

func NewPermissionHandler(permissions ports.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissions: permissions}
}

type permissionRequest struct {
	Permission  string `json:"permission" validate:"required,max=100"`
	Description string `json:"description"`
}

func (h *PermissionHandler) Create(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}

	var req permissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	permission, err := h.permissions.Create(c.Request().Context(), rctx, ports.PermissionInput{
		Name:        req.Permission,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPermissionResponse(permission))
}

func (h *PermissionHandler) GetAll(c echo.Context) error {
	permissions, err := h.permissions.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]permissionResponse, 0, len(permissions))
	for _, p := range permissions {
		out = append(out, toPermissionResponse(p))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PermissionHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	permission, err := h.permissions.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPermissionResponse(permission))
}

func (h *PermissionHandler) GetByName(c echo.Context) error {
	permission, err := h.permissions.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPermissionResponse(permission))
}

func (h *PermissionHandler) Update(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req permissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	permission, err := h.permissions.Update(c.Request().Context(), rctx, id, ports.PermissionInput{
		Name:        req.Permission,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPermissionResponse(permission))
}

func (h *PermissionHandler) Delete(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.permissions.Delete(c.Request().Context(), rctx, id); err != nil {
		return err
	}
	return c.String(http.StatusOK, "Permission deleted successfully")
}
