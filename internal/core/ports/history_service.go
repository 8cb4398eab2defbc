package ports

import (
	"context"

	"github.com/gatherly/eventhub/internal/core/domain"
)

type HistoryService interface {
	MyActivities(ctx context.Context, rctx domain.RequestContext) ([]*domain.ActivityRecord, error)
	MyLogins(ctx context.Context, rctx domain.RequestContext) ([]*domain.LoginRecord, error)
	MyPasswordChanges(ctx context.Context, rctx domain.RequestContext) ([]*domain.PasswordRecord, error)

	ActivitiesByUsername(ctx context.Context, username string) ([]*domain.ActivityRecord, error)
	ActivitiesByType(ctx context.Context, code string) ([]*domain.ActivityRecord, error)
	LoginsByUserID(ctx context.Context, userID string) ([]*domain.LoginRecord, error)
	PasswordChangesByUserID(ctx context.Context, userID string) ([]*domain.PasswordRecord, error)
}
