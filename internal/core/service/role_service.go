package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/ports"
)

// RoleService implements role CRUD and role-permission assignment.
type RoleService struct {
	roles       ports.RoleRepository
	permissions ports.PermissionRepository
	users       ports.UserRepository
	activity    ports.ActivityRecorder
	tx          ports.Transactor
	logger      zerolog.Logger
}

func NewRoleService(
	roles ports.RoleRepository,
	permissions ports.PermissionRepository,
	users ports.UserRepository,
	activity ports.ActivityRecorder,
	tx ports.Transactor,
	logger zerolog.Logger,
) *RoleService {
	return &RoleService{
		roles:       roles,
		permissions: permissions,
		users:       users,
		activity:    activity,
		tx:          tx,
		logger:      logger,
	}
}

func (s *RoleService) Create(ctx context.Context, rctx domain.RequestContext, in ports.RoleInput) (*domain.Role, error) {
	if _, err := s.roles.FindByName(ctx, in.Name); err == nil {
		return nil, domain.Validation("Role with name '%s' already exists", in.Name)
	} else if !isNotFound(err) {
		return nil, err
	}

	role := &domain.Role{Name: in.Name, Description: in.Description}

	var created *domain.Role
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		created, txErr = s.roles.Create(ctx, role)
		if txErr != nil {
			return txErr
		}
		return s.activity.RecordEntity(ctx, rctx, domain.ActivityRoleCreate,
			ports.EntityRef{Type: "Role", ID: fmt.Sprintf("%d", created.ID), Name: created.Name},
			fmt.Sprintf("Created role '%s'", created.Name))
	})
	if err != nil {
		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to create role")
		return nil, err
	}
	return created, nil
}

func (s *RoleService) Update(ctx context.Context, rctx domain.RequestContext, id uint, in ports.RoleInput) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != role.Name {
		if _, err := s.roles.FindByName(ctx, in.Name); err == nil {
			return nil, domain.Validation("Role with name '%s' already exists", in.Name)
		} else if !isNotFound(err) {
			return nil, err
		}
	}

	before := *role
	role.Name = in.Name
	role.Description = in.Description

	var updated *domain.Role
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		updated, txErr = s.roles.Update(ctx, role)
		if txErr != nil {
			return txErr
		}
		return s.activity.RecordChange(ctx, rctx, domain.ActivityRoleUpdate,
			ports.EntityRef{Type: "Role", ID: fmt.Sprintf("%d", updated.ID), Name: updated.Name},
			fmt.Sprintf("Updated role '%s'", updated.Name),
			map[string]any{"name": before.Name, "description": before.Description},
			map[string]any{"name": updated.Name, "description": updated.Description})
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("id", id).Msg("failed to update role")
		return nil, err
	}
	return updated, nil
}

func (s *RoleService) Delete(ctx context.Context, rctx domain.RequestContext, id uint) error {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return err
	}

	assigned, err := s.users.CountByRole(ctx, role.ID)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return domain.State("Cannot delete role. %d user(s) are assigned to this role", assigned)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if txErr := s.roles.Delete(ctx, role.ID); txErr != nil {
			return txErr
		}
		return s.activity.RecordEntity(ctx, rctx, domain.ActivityRoleDelete,
			ports.EntityRef{Type: "Role", ID: fmt.Sprintf("%d", role.ID), Name: role.Name},
			fmt.Sprintf("Deleted role '%s'", role.Name))
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("id", id).Msg("failed to delete role")
		return err
	}
	return nil
}

func (s *RoleService) GetByID(ctx context.Context, id uint) (*domain.Role, error) {
	return s.roles.FindByID(ctx, id)
}

func (s *RoleService) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	return s.roles.FindByName(ctx, name)
}

func (s *RoleService) GetAll(ctx context.Context) ([]*domain.Role, error) {
	return s.roles.List(ctx)
}

// AssignPermissions replaces the role's permission set with the given ids.
func (s *RoleService) AssignPermissions(ctx context.Context, rctx domain.RequestContext, in ports.AssignPermissionsInput) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}

	resolved := make([]domain.Permission, 0, len(in.PermissionIDs))
	for _, pid := range in.PermissionIDs {
		perm, err := s.permissions.FindByID(ctx, pid)
		if err != nil {
			if isNotFound(err) {
				return nil, domain.NotFound("Permission not found with id: %d", pid)
			}
			return nil, err
		}
		resolved = append(resolved, *perm)
	}

	before := permissionNames(role.Permissions)
	role.Permissions = resolved

	var updated *domain.Role
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		updated, txErr = s.roles.Update(ctx, role)
		if txErr != nil {
			return txErr
		}
		return s.activity.RecordChange(ctx, rctx, domain.ActivityRoleAssignPermission,
			ports.EntityRef{Type: "Role", ID: fmt.Sprintf("%d", role.ID), Name: role.Name},
			fmt.Sprintf("Replaced permissions of role '%s'", role.Name),
			before, permissionNames(updated.Permissions))
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("role_id", in.RoleID).Msg("failed to assign permissions")
		return nil, err
	}
	return updated, nil
}

func (s *RoleService) AddPermission(ctx context.Context, rctx domain.RequestContext, roleID, permissionID uint) (*domain.Role, error) {
	role, perm, err := s.resolveRolePermission(ctx, roleID, permissionID)
	if err != nil {
		return nil, err
	}

	if role.HasPermission(perm.Name) {
		return role, nil
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if txErr := s.roles.AssignPermission(ctx, role.ID, perm.ID); txErr != nil {
			return txErr
		}
		return s.activity.RecordEntity(ctx, rctx, domain.ActivityRoleAssignPermission,
			ports.EntityRef{Type: "Role", ID: fmt.Sprintf("%d", role.ID), Name: role.Name},
			fmt.Sprintf("Assigned permission '%s' to role '%s'", perm.Name, role.Name))
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("role_id", roleID).Uint("permission_id", permissionID).Msg("failed to add permission")
		return nil, err
	}
	return s.roles.FindByID(ctx, roleID)
}

func (s *RoleService) RemovePermission(ctx context.Context, rctx domain.RequestContext, roleID, permissionID uint) (*domain.Role, error) {
	role, perm, err := s.resolveRolePermission(ctx, roleID, permissionID)
	if err != nil {
		return nil, err
	}

	if !role.HasPermission(perm.Name) {
		return role, nil
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if txErr := s.roles.RemovePermission(ctx, role.ID, perm.ID); txErr != nil {
			return txErr
		}
		return s.activity.RecordEntity(ctx, rctx, domain.ActivityRoleRemovePermission,
			ports.EntityRef{Type: "Role", ID: fmt.Sprintf("%d", role.ID), Name: role.Name},
			fmt.Sprintf("Removed permission '%s' from role '%s'", perm.Name, role.Name))
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("role_id", roleID).Uint("permission_id", permissionID).Msg("failed to remove permission")
		return nil, err
	}
	return s.roles.FindByID(ctx, roleID)
}

func (s *RoleService) resolveRolePermission(ctx context.Context, roleID, permissionID uint) (*domain.Role, *domain.Permission, error) {
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, nil, err
	}
	perm, err := s.permissions.FindByID(ctx, permissionID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, domain.NotFound("Permission not found with id: %d", permissionID)
		}
		return nil, nil, err
	}
	return role, perm, nil
}

func permissionNames(perms []domain.Permission) []string {
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, p.Name)
	}
	return names
}
