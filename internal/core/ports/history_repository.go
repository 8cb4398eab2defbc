package ports

import (
	"context"

	"github.com/gatherly/eventhub/internal/core/domain"
)

// ActivityRepository stores and queries the user activity audit trail.
// List results come back newest first.
type ActivityRepository interface {
	Create(ctx context.Context, record *domain.ActivityRecord) error
	ListByUsername(ctx context.Context, username string) ([]*domain.ActivityRecord, error)
	ListByType(ctx context.Context, activityType domain.ActivityType) ([]*domain.ActivityRecord, error)
	List(ctx context.Context) ([]*domain.ActivityRecord, error)
}

// LoginRepository stores login sessions. FindOpenSession returns the record
// holding the given token with no logout time, or a domain.NotFound error.
type LoginRepository interface {
	Create(ctx context.Context, record *domain.LoginRecord) error
	Update(ctx context.Context, record *domain.LoginRecord) error
	FindOpenSession(ctx context.Context, token string) (*domain.LoginRecord, error)
	ListByUserID(ctx context.Context, userID string) ([]*domain.LoginRecord, error)
	List(ctx context.Context) ([]*domain.LoginRecord, error)
}

// PasswordRepository stores password change records, keyed by the numeric
// user id rendered as a string.
type PasswordRepository interface {
	Create(ctx context.Context, record *domain.PasswordRecord) error
	ListByUserID(ctx context.Context, userID string) ([]*domain.PasswordRecord, error)
	List(ctx context.Context) ([]*domain.PasswordRecord, error)
}
