package ports

import (
	"context"

	"github.com/gatherly/eventhub/internal/core/domain"
)

type RoleInput struct {
	Name        string
	Description string
}

// AssignPermissionsInput replaces the role's permission set wholesale.
type AssignPermissionsInput struct {
	RoleID        uint
	PermissionIDs []uint
}

type RoleService interface {
	Create(ctx context.Context, rctx domain.RequestContext, in RoleInput) (*domain.Role, error)
	Update(ctx context.Context, rctx domain.RequestContext, id uint, in RoleInput) (*domain.Role, error)
	// Delete fails when any user still holds the role.
	Delete(ctx context.Context, rctx domain.RequestContext, id uint) error

	GetByID(ctx context.Context, id uint) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	GetAll(ctx context.Context) ([]*domain.Role, error)

	AssignPermissions(ctx context.Context, rctx domain.RequestContext, in AssignPermissionsInput) (*domain.Role, error)
	AddPermission(ctx context.Context, rctx domain.RequestContext, roleID, permissionID uint) (*domain.Role, error)
	RemovePermission(ctx context.Context, rctx domain.RequestContext, roleID, permissionID uint) (*domain.Role, error)
}

type PermissionInput struct {
	Name        string
	Description string
}

type PermissionService interface {
	Create(ctx context.Context, rctx domain.RequestContext, in PermissionInput) (*domain.Permission, error)
	Update(ctx context.Context, rctx domain.RequestContext, id uint, in PermissionInput) (*domain.Permission, error)
	Delete(ctx context.Context, rctx domain.RequestContext, id uint) error

	GetByID(ctx context.Context, id uint) (*domain.Permission, error)
	GetByName(ctx context.Context, name string) (*domain.Permission, error)
	GetAll(ctx context.Context) ([]*domain.Permission, error)
}
