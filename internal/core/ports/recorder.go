package ports

import (
	"context"

	"github.com/gatherly/eventhub/internal/core/domain"
)

// EntityRef names the domain object an audit entry is about.
type EntityRef struct {
	Type string
	ID   string
	Name string
}

// ActivityRecorder appends audit entries. Callers invoke it inside the same
// transaction as the domain change so both commit or roll back together.
type ActivityRecorder interface {
	// Record writes a minimal entry attributed to the authenticated caller.
	Record(ctx context.Context, rctx domain.RequestContext, activityType domain.ActivityType) error
	// RecordEntity adds the affected entity and a free-form description.
	RecordEntity(ctx context.Context, rctx domain.RequestContext, activityType domain.ActivityType, entity EntityRef, description string) error
	// RecordChange additionally captures before/after snapshots, serialized
	// as structured text.
	RecordChange(ctx context.Context, rctx domain.RequestContext, activityType domain.ActivityType, entity EntityRef, description string, oldValues, newValues any) error
	// RecordAs writes an entry with explicit identity overrides, for
	// system-initiated actions with no authenticated caller.
	RecordAs(ctx context.Context, record *domain.ActivityRecord) error
}

// LoginRecorder persists login/logout session rows.
type LoginRecorder interface {
	RecordLogin(ctx context.Context, user *domain.User, rctx domain.RequestContext, token string) error
	// RecordFailedLogin appends a FAILED row for a known user whose password
	// did not match. No token is stored.
	RecordFailedLogin(ctx context.Context, user *domain.User, rctx domain.RequestContext) error
	// RecordLogout closes the open session paired with the given token.
	// Missing open sessions are not an error.
	RecordLogout(ctx context.Context, token string) error
}

// PasswordRecorder persists password change rows. Hashes only, never
// plaintext.
type PasswordRecorder interface {
	RecordPasswordChange(ctx context.Context, user *domain.User, changedBy, oldHash, newHash string) error
}
