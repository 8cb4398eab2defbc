package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/ports"
)

const redacted = "[PROTECTED]"

// HistoryService exposes the three audit trails. Password hashes and raw
// tokens are redacted before anything leaves this service.
type HistoryService struct {
	activities ports.ActivityRepository
	logins     ports.LoginRepository
	passwords  ports.PasswordRepository
	users      ports.UserRepository
	logger     zerolog.Logger
}

func NewHistoryService(activities ports.ActivityRepository, logins ports.LoginRepository, passwords ports.PasswordRepository, users ports.UserRepository, logger zerolog.Logger) *HistoryService {
	return &HistoryService{
		activities: activities,
		logins:     logins,
		passwords:  passwords,
		users:      users,
		logger:     logger,
	}
}

func (s *HistoryService) MyActivities(ctx context.Context, rctx domain.RequestContext) ([]*domain.ActivityRecord, error) {
	return s.activities.ListByUsername(ctx, rctx.Caller.Username)
}

func (s *HistoryService) MyLogins(ctx context.Context, rctx domain.RequestContext) ([]*domain.LoginRecord, error) {
	// Login rows key on the numeric user id, so the caller's username has
	// to be resolved first.
	user, err := s.users.FindByUsername(ctx, rctx.Caller.Username)
	if err != nil {
		return nil, err
	}
	return s.LoginsByUserID(ctx, fmt.Sprintf("%d", user.ID))
}

func (s *HistoryService) MyPasswordChanges(ctx context.Context, rctx domain.RequestContext) ([]*domain.PasswordRecord, error) {
	user, err := s.users.FindByUsername(ctx, rctx.Caller.Username)
	if err != nil {
		return nil, err
	}
	return s.PasswordChangesByUserID(ctx, fmt.Sprintf("%d", user.ID))
}

func (s *HistoryService) ActivitiesByUsername(ctx context.Context, username string) ([]*domain.ActivityRecord, error) {
	return s.activities.ListByUsername(ctx, username)
}

func (s *HistoryService) ActivitiesByType(ctx context.Context, code string) ([]*domain.ActivityRecord, error) {
	return s.activities.ListByType(ctx, domain.ActivityType(code))
}

func (s *HistoryService) LoginsByUserID(ctx context.Context, userID string) ([]*domain.LoginRecord, error) {
	records, err := s.logins.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.LoginRecord, 0, len(records))
	for _, r := range records {
		clone := *r
		clone.Token = redacted
		out = append(out, &clone)
	}
	return out, nil
}

func (s *HistoryService) PasswordChangesByUserID(ctx context.Context, userID string) ([]*domain.PasswordRecord, error) {
	records, err := s.passwords.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.PasswordRecord, 0, len(records))
	for _, r := range records {
		clone := *r
		clone.OldHash = redacted
		clone.NewHash = redacted
		out = append(out, &clone)
	}
	return out, nil
}
