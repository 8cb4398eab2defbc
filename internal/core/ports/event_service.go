package ports

import (
	"context"

	"github.com/gatherly/eventhub/internal/core/domain"
)

// EventInput carries all data needed to create or fully update an event.
// The caller becomes (or must already be) the organizer.
type EventInput struct {
	Title          string
	Description    string
	Location       string
	EventDate      domain.Date
	StartTime      domain.TimeOfDay
	EndTime        domain.TimeOfDay
	EventType      domain.EventType
	InvitedUserIDs []uint
}

// InviteInput targets one private event with a batch of user ids. Both
// invite and remove are idempotent.
type InviteInput struct {
	EventID uint
	UserIDs []uint
}

type EventService interface {
	Create(ctx context.Context, rctx domain.RequestContext, in EventInput) (*domain.Event, error)
	Update(ctx context.Context, rctx domain.RequestContext, id uint, in EventInput) (*domain.Event, error)
	Delete(ctx context.Context, rctx domain.RequestContext, id uint) error

	// GetByID enforces visibility: private events are visible only to the
	// organizer and invitees.
	GetByID(ctx context.Context, rctx domain.RequestContext, id uint) (*domain.Event, error)
	// GetAll returns one page of the caller's accessible events ordered by
	// (eventDate, startTime). Page is 1-based.
	GetAll(ctx context.Context, rctx domain.RequestContext, page, size int) ([]*domain.Event, error)
	GetAllPublic(ctx context.Context) ([]*domain.Event, error)
	GetMyOrganized(ctx context.Context, rctx domain.RequestContext) ([]*domain.Event, error)
	GetMyInvited(ctx context.Context, rctx domain.RequestContext) ([]*domain.Event, error)
	GetUpcoming(ctx context.Context, rctx domain.RequestContext) ([]*domain.Event, error)
	GetPast(ctx context.Context, rctx domain.RequestContext) ([]*domain.Event, error)
	GetToday(ctx context.Context, rctx domain.RequestContext) ([]*domain.Event, error)
	SearchByLocation(ctx context.Context, rctx domain.RequestContext, location string) ([]*domain.Event, error)

	Invite(ctx context.Context, rctx domain.RequestContext, in InviteInput) (*domain.Event, error)
	Remove(ctx context.Context, rctx domain.RequestContext, in InviteInput) (*domain.Event, error)
}
