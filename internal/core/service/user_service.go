package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/ports"
	"github.com/gatherly/eventhub/internal/pkg/password"
)

// UserService implements user CRUD, activation and the password flows.
type UserService struct {
	users     ports.UserRepository
	roles     ports.RoleRepository
	events    ports.EventRepository
	activity  ports.ActivityRecorder
	passwords ports.PasswordRecorder
	hasher    *password.Hasher
	tx        ports.Transactor
	logger    zerolog.Logger
	now       func() time.Time
}

func NewUserService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	events ports.EventRepository,
	activity ports.ActivityRecorder,
	passwords ports.PasswordRecorder,
	hasher *password.Hasher,
	tx ports.Transactor,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		roles:     roles,
		events:    events,
		activity:  activity,
		passwords: passwords,
		hasher:    hasher,
		tx:        tx,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *UserService) Create(ctx context.Context, rctx domain.RequestContext, in ports.CreateUserInput) (*domain.User, error) {
	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.Validation("Username '%s' is already taken", in.Username)
	} else if !isNotFound(err) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.Validation("Email '%s' is already registered", in.Email)
	} else if !isNotFound(err) {
		return nil, err
	}

	role, err := s.roles.FindByID(ctx, in.RoleID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NotFound("Role not found with id: %d", in.RoleID)
		}
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.Internal(err, "failed to hash password")
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Phone:        in.Phone,
		DateOfBirth:  in.DateOfBirth,
		Active:       true,
		RoleID:       role.ID,
		Role:         *role,
	}

	var created *domain.User
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		created, txErr = s.users.Create(ctx, user)
		if txErr != nil {
			return txErr
		}
		// The initial hash goes into the password trail with no previous
		// value to pair it with.
		if txErr = s.passwords.RecordPasswordChange(ctx, created, rctx.Caller.Username, "", created.PasswordHash); txErr != nil {
			return txErr
		}
		return s.activity.RecordEntity(ctx, rctx, domain.ActivityUserCreate,
			ports.EntityRef{Type: "User", ID: fmt.Sprintf("%d", created.ID), Name: created.Username},
			fmt.Sprintf("Created user '%s' with role %s", created.Username, role.Name))
	})
	if err != nil {
		s.logger.Error().Err(err).Str("username", in.Username).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Uint("id", created.ID).Msg("user created")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, rctx domain.RequestContext, id uint, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != user.Username {
		if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
			return nil, domain.Validation("Username '%s' is already taken", in.Username)
		} else if !isNotFound(err) {
			return nil, err
		}
	}
	if in.Email != user.Email {
		if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
			return nil, domain.Validation("Email '%s' is already registered", in.Email)
		} else if !isNotFound(err) {
			return nil, err
		}
	}

	role, err := s.roles.FindByID(ctx, in.RoleID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NotFound("Role not found with id: %d", in.RoleID)
		}
		return nil, err
	}

	before := *user
	oldHash := user.PasswordHash

	user.Username = in.Username
	user.Email = in.Email
	user.FullName = in.FullName
	user.Phone = in.Phone
	user.DateOfBirth = in.DateOfBirth
	user.RoleID = role.ID
	user.Role = *role

	passwordChanged := false
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, domain.Internal(err, "failed to hash password")
		}
		user.PasswordHash = hash
		passwordChanged = true
	}

	var updated *domain.User
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		updated, txErr = s.users.Update(ctx, user)
		if txErr != nil {
			return txErr
		}
		if passwordChanged {
			if txErr = s.passwords.RecordPasswordChange(ctx, updated, rctx.Caller.Username, oldHash, updated.PasswordHash); txErr != nil {
				return txErr
			}
		}
		return s.activity.RecordChange(ctx, rctx, domain.ActivityUserUpdate,
			ports.EntityRef{Type: "User", ID: fmt.Sprintf("%d", updated.ID), Name: updated.Username},
			fmt.Sprintf("Updated user '%s'", updated.Username),
			userSnapshot(&before), userSnapshot(updated))
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("id", id).Msg("failed to update user")
		return nil, err
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, rctx domain.RequestContext, id uint) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	organized, err := s.events.ListByOrganizer(ctx, user.ID)
	if err != nil {
		return err
	}
	now := s.now()
	for _, e := range organized {
		if !e.HasEnded(now) {
			return domain.State("Cannot delete user '%s': user organizes upcoming events", user.Username)
		}
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if txErr := s.users.Delete(ctx, user.ID); txErr != nil {
			return txErr
		}
		return s.activity.RecordEntity(ctx, rctx, domain.ActivityUserDelete,
			ports.EntityRef{Type: "User", ID: fmt.Sprintf("%d", user.ID), Name: user.Username},
			fmt.Sprintf("Deleted user '%s'", user.Username))
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("id", id).Msg("failed to delete user")
		return err
	}

	s.logger.Info().Str("username", user.Username).Msg("user deleted")
	return nil
}

func (s *UserService) Activate(ctx context.Context, rctx domain.RequestContext, id uint) (*domain.User, error) {
	return s.setActive(ctx, rctx, id, true, domain.ActivityUserActivate)
}

func (s *UserService) Deactivate(ctx context.Context, rctx domain.RequestContext, id uint) (*domain.User, error) {
	return s.setActive(ctx, rctx, id, false, domain.ActivityUserDeactivate)
}

func (s *UserService) setActive(ctx context.Context, rctx domain.RequestContext, id uint, active bool, activityType domain.ActivityType) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Active = active
	var updated *domain.User
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		updated, txErr = s.users.Update(ctx, user)
		if txErr != nil {
			return txErr
		}
		return s.activity.RecordEntity(ctx, rctx, activityType,
			ports.EntityRef{Type: "User", ID: fmt.Sprintf("%d", user.ID), Name: user.Username},
			fmt.Sprintf("%s user '%s'", activityType.Name(), user.Username))
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("id", id).Bool("active", active).Msg("failed to change user active state")
		return nil, err
	}
	return updated, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

func (s *UserService) GetAll(ctx context.Context, page, size int) ([]*domain.User, error) {
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return paginate(all, page, size), nil
}

func (s *UserService) GetActive(ctx context.Context) ([]*domain.User, error) {
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]*domain.User, 0, len(all))
	for _, u := range all {
		if u.Active {
			active = append(active, u)
		}
	}
	return active, nil
}

func (s *UserService) ChangeMyPassword(ctx context.Context, rctx domain.RequestContext, in ports.ChangePasswordInput) error {
	user, err := s.users.FindByUsername(ctx, rctx.Caller.Username)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(in.CurrentPassword, user.PasswordHash) {
		return domain.Validation("Current password is incorrect")
	}
	if in.NewPassword != in.ConfirmPassword {
		return domain.Validation("New password and confirm password do not match")
	}
	if in.NewPassword == in.CurrentPassword {
		return domain.Validation("New password must be different from current password")
	}

	return s.replacePassword(ctx, rctx, user, in.NewPassword, domain.ActivityPasswordChange)
}

func (s *UserService) ResetPassword(ctx context.Context, rctx domain.RequestContext, id uint, in ports.ResetPasswordInput) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if in.NewPassword != in.ConfirmPassword {
		return domain.Validation("New password and confirm password do not match")
	}

	return s.replacePassword(ctx, rctx, user, in.NewPassword, domain.ActivityPasswordReset)
}

func (s *UserService) replacePassword(ctx context.Context, rctx domain.RequestContext, user *domain.User, newPassword string, activityType domain.ActivityType) error {
	oldHash := user.PasswordHash
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return domain.Internal(err, "failed to hash password")
	}
	user.PasswordHash = hash

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		updated, txErr := s.users.Update(ctx, user)
		if txErr != nil {
			return txErr
		}
		if txErr = s.passwords.RecordPasswordChange(ctx, updated, rctx.Caller.Username, oldHash, updated.PasswordHash); txErr != nil {
			return txErr
		}
		return s.activity.RecordEntity(ctx, rctx, activityType,
			ports.EntityRef{Type: "User", ID: fmt.Sprintf("%d", user.ID), Name: user.Username},
			fmt.Sprintf("%s for user '%s'", activityType.Name(), user.Username))
	})
	if err != nil {
		s.logger.Error().Err(err).Str("username", user.Username).Msg("failed to replace password")
		return err
	}

	s.logger.Info().Str("username", user.Username).Str("type", string(activityType)).Msg("password replaced")
	return nil
}

// userSnapshot strips the hash before a user lands in old/new audit values.
func userSnapshot(u *domain.User) map[string]any {
	return map[string]any{
		"username":    u.Username,
		"email":       u.Email,
		"fullName":    u.FullName,
		"phone":       u.Phone,
		"dateOfBirth": u.DateOfBirth.String(),
		"active":      u.Active,
		"role":        u.Role.Name,
	}
}

// paginate slices one 1-based page out of items. Page or size values below
// one fall back to the full list.
func paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return items
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
