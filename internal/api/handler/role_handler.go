package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/ports"
)

type RoleHandler struct {
	roles ports.RoleService
}

func NewRoleHandler(roles ports.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

type roleRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description"`
}

type assignPermissionsRequest struct {
	RoleID        uint   `json:"roleId" validate:"required"`
	PermissionIDs []uint `json:"permissionIds" validate:"required,min=1"`
}

func (h *RoleHandler) Create(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}

	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role, err := h.roles.Create(c.Request().Context(), rctx, ports.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRoleResponse(role, false))
}

func (h *RoleHandler) GetAll(c echo.Context) error {
	return h.listRoles(c, false)
}

func (h *RoleHandler) GetAllWithPermissions(c echo.Context) error {
	return h.listRoles(c, true)
}

func (h *RoleHandler) listRoles(c echo.Context, withPermissions bool) error {
	roles, err := h.roles.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRoleResponse(r, withPermissions))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RoleHandler) GetByID(c echo.Context) error {
	return h.getRole(c, false)
}

func (h *RoleHandler) GetByIDWithPermissions(c echo.Context) error {
	return h.getRole(c, true)
}

func (h *RoleHandler) getRole(c echo.Context, withPermissions bool) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	role, err := h.roles.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoleResponse(role, withPermissions))
}

func (h *RoleHandler) GetByName(c echo.Context) error {
	role, err := h.roles.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoleResponse(role, false))
}

func (h *RoleHandler) Update(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role, err := h.roles.Update(c.Request().Context(), rctx, id, ports.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoleResponse(role, false))
}

func (h *RoleHandler) Delete(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.roles.Delete(c.Request().Context(), rctx, id); err != nil {
		return err
	}
	return c.String(http.StatusOK, "Role deleted successfully")
}

// AssignPermissions replaces the role's permission set with the posted ids.
func (h *RoleHandler) AssignPermissions(c echo.Context) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}

	var req assignPermissionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role, err := h.roles.AssignPermissions(c.Request().Context(), rctx, ports.AssignPermissionsInput{
		RoleID:        req.RoleID,
		PermissionIDs: req.PermissionIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoleResponse(role, true))
}

func (h *RoleHandler) AddPermission(c echo.Context) error {
	return h.changePermission(c, true)
}

func (h *RoleHandler) RemovePermission(c echo.Context) error {
	return h.changePermission(c, false)
}

func (h *RoleHandler) changePermission(c echo.Context, add bool) error {
	rctx, err := requestContext(c)
	if err != nil {
		return err
	}
	roleID, err := pathID(c, "roleId")
	if err != nil {
		return err
	}
	permissionID, err := pathID(c, "permissionId")
	if err != nil {
		return err
	}

	var role *domain.Role
	if add {
		role, err = h.roles.AddPermission(c.Request().Context(), rctx, roleID, permissionID)
	} else {
		role, err = h.roles.RemovePermission(c.Request().Context(), rctx, roleID, permissionID)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoleResponse(role, true))
}
