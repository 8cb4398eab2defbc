package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/ports"
)

// PermissionService implements permission CRUD.
type PermissionService struct {
	permissions ports.PermissionRepository
	activity    ports.ActivityRecorder
	tx          ports.Transactor
	logger      zerolog.Logger
}

func NewPermissionService(permissions ports.PermissionRepository, activity ports.ActivityRecorder, tx ports.Transactor, logger zerolog.Logger) *PermissionService {
	return &PermissionService{permissions: permissions, activity: activity, tx: tx, logger: logger}
}

func (s *PermissionService) Create(ctx context.Context, rctx domain.RequestContext, in ports.PermissionInput) (*domain.Permission, error) {
	if _, err := s.permissions.FindByName(ctx, in.Name); err == nil {
		return nil, domain.Validation("Permission with name '%s' already exists", in.Name)
	} else if !isNotFound(err) {
		return nil, err
	}

	perm := &domain.Permission{Name: in.Name, Description: in.Description}

	var created *domain.Permission
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		created, txErr = s.permissions.Create(ctx, perm)
		if txErr != nil {
			return txErr
		}
		return s.activity.RecordEntity(ctx, rctx, domain.ActivityPermissionCreate,
			ports.EntityRef{Type: "Permission", ID: fmt.Sprintf("%d", created.ID), Name: created.Name},
			fmt.Sprintf("Created permission '%s'", created.Name))
	})
	if err != nil {
		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to create permission")
		return nil, err
	}
	return created, nil
}

func (s *PermissionService) Update(ctx context.Context, rctx domain.RequestContext, id uint, in ports.PermissionInput) (*domain.Permission, error) {
	perm, err := s.permissions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != perm.Name {
		if _, err := s.permissions.FindByName(ctx, in.Name); err == nil {
			return nil, domain.Validation("Permission with name '%s' already exists", in.Name)
		} else if !isNotFound(err) {
			return nil, err
		}
	}

	before := *perm
	perm.Name = in.Name
	perm.Description = in.Description

	var updated *domain.Permission
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		updated, txErr = s.permissions.Update(ctx, perm)
		if txErr != nil {
			return txErr
		}
		return s.activity.RecordChange(ctx, rctx, domain.ActivityPermissionUpdate,
			ports.EntityRef{Type: "Permission", ID: fmt.Sprintf("%d", updated.ID), Name: updated.Name},
			fmt.Sprintf("Updated permission '%s'", updated.Name),
			map[string]any{"name": before.Name, "description": before.Description},
			map[string]any{"name": updated.Name, "description": updated.Description})
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("id", id).Msg("failed to update permission")
		return nil, err
	}
	return updated, nil
}

func (s *PermissionService) Delete(ctx context.Context, rctx domain.RequestContext, id uint) error {
	perm, err := s.permissions.FindByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if txErr := s.permissions.Delete(ctx, perm.ID); txErr != nil {
			return txErr
		}
		return s.activity.RecordEntity(ctx, rctx, domain.ActivityPermissionDelete,
			ports.EntityRef{Type: "Permission", ID: fmt.Sprintf("%d", perm.ID), Name: perm.Name},
			fmt.Sprintf("Deleted permission '%s'", perm.Name))
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("id", id).Msg("failed to delete permission")
		return err
	}
	return nil
}

func (s *PermissionService) GetByID(ctx context.Context, id uint) (*domain.Permission, error) {
	return s.permissions.FindByID(ctx, id)
}

func (s *PermissionService) GetByName(ctx context.Context, name string) (*domain.Permission, error) {
	return s.permissions.FindByName(ctx, name)
}

func (s *PermissionService) GetAll(ctx context.Context) ([]*domain.Permission, error) {
	return s.permissions.List(ctx)
}
