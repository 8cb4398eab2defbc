package ports

import (
	"context"

	"github.com/gatherly/eventhub/internal/core/domain"
)

// EventRepository defines persistence operations for events and their
// invitee lists.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*domain.Event, error)
	FindByTitle(ctx context.Context, title string) (*domain.Event, error)
	// List returns all events ordered by (event_date, start_time).
	List(ctx context.Context) ([]*domain.Event, error)
	ListByOrganizer(ctx context.Context, organizerID uint) ([]*domain.Event, error)
	ListByInvitee(ctx context.Context, userID uint) ([]*domain.Event, error)
}
