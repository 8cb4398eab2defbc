package postgres

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/ports"
	"github.com/gatherly/eventhub/internal/pkg/password"
)

type roleSeed struct {
	name        string
	description string
	permissions []string
}

var permissionSeeds = map[string]string{
	"user.read":         "View users",
	"user.write":        "Create and update users",
	"user.delete":       "Delete users",
	"role.read":         "View roles",
	"role.write":        "Create and update roles",
	"role.delete":       "Delete roles",
	"permission.read":   "View permissions",
	"permission.write":  "Create and update permissions",
	"permission.delete": "Delete permissions",
	"event.read":        "View events",
	"event.write":       "Create and update events",
	"event.delete":      "Delete events",
	"history.read":      "View audit history",
}

var roleSeeds = []roleSeed{
	{
		name:        domain.RoleSuperAdmin,
		description: "Full administrative access",
		permissions: []string{
			"user.read", "user.write", "user.delete",
			"role.read", "role.write", "role.delete",
			"permission.read", "permission.write", "permission.delete",
			"event.read", "event.write", "event.delete",
			"history.read",
		},
	},
	{
		name:        domain.RoleAdmin,
		description: "User management and event access",
		permissions: []string{
			"user.read",
			"event.read", "event.write", "event.delete",
			"history.read",
		},
	},
	{
		name:        domain.RoleAttendee,
		description: "Event participation",
		permissions: []string{"event.read", "event.write", "event.delete"},
	},
}

// Seeder ensures the built-in roles, the baseline permission catalogue and
// a first super-admin account exist.
type Seeder struct {
	users       ports.UserRepository
	roles       ports.RoleRepository
	permissions ports.PermissionRepository
	hasher      *password.Hasher
	logger      zerolog.Logger
}

func NewSeeder(users ports.UserRepository, roles ports.RoleRepository, permissions ports.PermissionRepository, hasher *password.Hasher, logger zerolog.Logger) *Seeder {
	return &Seeder{users: users, roles: roles, permissions: permissions, hasher: hasher, logger: logger}
}

// Run is idempotent: existing rows are left alone.
func (s *Seeder) Run(ctx context.Context, adminPassword string) error {
	byName := make(map[string]*domain.Permission, len(permissionSeeds))
	for name, description := range permissionSeeds {
		perm, err := s.permissions.FindByName(ctx, name)
		if err != nil {
			if !isNotFoundErr(err) {
				return err
			}
			perm, err = s.permissions.Create(ctx, &domain.Permission{Name: name, Description: description})
			if err != nil {
				return err
			}
			s.logger.Debug().Str("permission", name).Msg("seeded permission")
		}
		byName[name] = perm
	}

	for _, seed := range roleSeeds {
		role, err := s.roles.FindByName(ctx, seed.name)
		if err != nil {
			if !isNotFoundErr(err) {
				return err
			}
			role = &domain.Role{Name: seed.name, Description: seed.description}
			for _, pname := range seed.permissions {
				role.Permissions = append(role.Permissions, *byName[pname])
			}
			if _, err := s.roles.Create(ctx, role); err != nil {
				return err
			}
			s.logger.Info().Str("role", seed.name).Msg("seeded role")
		}
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	superAdmin, err := s.roles.FindByName(ctx, domain.RoleSuperAdmin)
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(adminPassword)
	if err != nil {
		return err
	}
	if _, err := s.users.Create(ctx, &domain.User{
		Username:     "admin",
		Email:        "admin@localhost",
		PasswordHash: hash,
		FullName:     "System Administrator",
		Active:       true,
		RoleID:       superAdmin.ID,
	}); err != nil {
		return err
	}

	s.logger.Warn().Msg("seeded default super-admin account; change its password immediately")
	return nil
}

func isNotFoundErr(err error) bool {
	derr, ok := err.(*domain.Error)
	return ok && derr.Kind == domain.KindNotFound
}
