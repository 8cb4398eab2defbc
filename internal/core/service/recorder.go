package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/ports"
)

// ActivityRecorder writes user activity audit rows. It is called by the
// other services inside their transactions.
type ActivityRecorder struct {
	repo   ports.ActivityRepository
	logger zerolog.Logger
}

func NewActivityRecorder(repo ports.ActivityRepository, logger zerolog.Logger) *ActivityRecorder {
	return &ActivityRecorder{repo: repo, logger: logger}
}

func (r *ActivityRecorder) Record(ctx context.Context, rctx domain.RequestContext, activityType domain.ActivityType) error {
	return r.RecordEntity(ctx, rctx, activityType, ports.EntityRef{}, "")
}

func (r *ActivityRecorder) RecordEntity(ctx context.Context, rctx domain.RequestContext, activityType domain.ActivityType, entity ports.EntityRef, description string) error {
	return r.RecordChange(ctx, rctx, activityType, entity, description, nil, nil)
}

func (r *ActivityRecorder) RecordChange(ctx context.Context, rctx domain.RequestContext, activityType domain.ActivityType, entity ports.EntityRef, description string, oldValues, newValues any) error {
	record := &domain.ActivityRecord{
		UserID:       rctx.Caller.Username,
		UserGroup:    rctx.Caller.Role,
		ActivityType: activityType,
		Username:     rctx.Caller.Username,
		DeviceID:     rctx.UserAgent,
		SessionID:    rctx.SessionID,
		IPAddress:    rctx.IP,
		EntityType:   entity.Type,
		EntityID:     entity.ID,
		EntityName:   entity.Name,
		Description:  description,
		OldValues:    serializeValues(oldValues),
		NewValues:    serializeValues(newValues),
		CreatedBy:    rctx.Caller.Username,
	}
	return r.RecordAs(ctx, record)
}

func (r *ActivityRecorder) RecordAs(ctx context.Context, record *domain.ActivityRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if err := r.repo.Create(ctx, record); err != nil {
		r.logger.Error().Err(err).
			Str("activity_type", string(record.ActivityType)).
			Str("username", record.Username).
			Msg("failed to record activity")
		return err
	}
	return nil
}

func serializeValues(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

// LoginRecorder writes login/logout session rows.
type LoginRecorder struct {
	repo   ports.LoginRepository
	logger zerolog.Logger
}

func NewLoginRecorder(repo ports.LoginRepository, logger zerolog.Logger) *LoginRecorder {
	return &LoginRecorder{repo: repo, logger: logger}
}

func (r *LoginRecorder) RecordLogin(ctx context.Context, user *domain.User, rctx domain.RequestContext, token string) error {
	return r.record(ctx, user, rctx, token, domain.LoginStatusSuccess)
}

func (r *LoginRecorder) RecordFailedLogin(ctx context.Context, user *domain.User, rctx domain.RequestContext) error {
	return r.record(ctx, user, rctx, "", domain.LoginStatusFailed)
}

func (r *LoginRecorder) record(ctx context.Context, user *domain.User, rctx domain.RequestContext, token, status string) error {
	record := &domain.LoginRecord{
		UserID:      fmt.Sprintf("%d", user.ID),
		Token:       token,
		UserType:    user.Role.Name,
		RequestFrom: rctx.UserAgent,
		RequestIP:   rctx.IP,
		DeviceInfo:  rctx.DeviceInfo,
		LoginTime:   time.Now(),
		LoginStatus: status,
	}
	if err := r.repo.Create(ctx, record); err != nil {
		r.logger.Error().Err(err).Str("user_id", record.UserID).Msg("failed to record login")
		return err
	}
	return nil
}

// RecordLogout closes the row paired with the token. Best-effort: a token
// with no open row is ignored.
func (r *LoginRecorder) RecordLogout(ctx context.Context, token string) error {
	record, err := r.repo.FindOpenSession(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	now := time.Now()
	record.LogoutTime = &now
	if err := r.repo.Update(ctx, record); err != nil {
		r.logger.Error().Err(err).Str("user_id", record.UserID).Msg("failed to record logout")
		return err
	}
	return nil
}

// PasswordRecorder writes password change rows. Hashes only.
type PasswordRecorder struct {
	repo   ports.PasswordRepository
	logger zerolog.Logger
}

func NewPasswordRecorder(repo ports.PasswordRepository, logger zerolog.Logger) *PasswordRecorder {
	return &PasswordRecorder{repo: repo, logger: logger}
}

func (r *PasswordRecorder) RecordPasswordChange(ctx context.Context, user *domain.User, changedBy, oldHash, newHash string) error {
	record := &domain.PasswordRecord{
		UserID:     fmt.Sprintf("%d", user.ID),
		ChangedBy:  changedBy,
		ChangeDate: time.Now(),
		OldHash:    oldHash,
		NewHash:    newHash,
	}
	if err := r.repo.Create(ctx, record); err != nil {
		r.logger.Error().Err(err).Str("username", user.Username).Msg("failed to record password change")
		return err
	}
	return nil
}
