package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/ports"
)

const (
	minEventDuration = 30 * time.Minute
	maxEventDuration = 24 * time.Hour
)

// EventService implements the event lifecycle and visibility rules.
type EventService struct {
	events   ports.EventRepository
	users    ports.UserRepository
	activity ports.ActivityRecorder
	tx       ports.Transactor
	logger   zerolog.Logger
	now      func() time.Time
}

func NewEventService(events ports.EventRepository, users ports.UserRepository, activity ports.ActivityRecorder, tx ports.Transactor, logger zerolog.Logger) *EventService {
	return &EventService{
		events:   events,
		users:    users,
		activity: activity,
		tx:       tx,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *EventService) Create(ctx context.Context, rctx domain.RequestContext, in ports.EventInput) (*domain.Event, error) {
	organizer, err := s.users.FindByUsername(ctx, rctx.Caller.Username)
	if err != nil {
		return nil, err
	}

	if err := s.validateFields(ctx, in, 0); err != nil {
		return nil, err
	}

	invitees, err := s.resolveInvitees(ctx, in, organizer)
	if err != nil {
		return nil, err
	}

	eventType := in.EventType
	if eventType == "" {
		eventType = domain.EventPublic
	}

	event := &domain.Event{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		EventDate:   in.EventDate,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		EventType:   eventType,
		OrganizerID: organizer.ID,
		Organizer:   *organizer,
		Invitees:    invitees,
	}

	var created *domain.Event
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		created, txErr = s.events.Create(ctx, event)
		if txErr != nil {
			return txErr
		}
		return s.activity.RecordEntity(ctx, rctx, domain.ActivityEventCreate,
			ports.EntityRef{Type: "Event", ID: fmt.Sprintf("%d", created.ID), Name: created.Title},
			fmt.Sprintf("Created %s event '%s' on %s", created.EventType, created.Title, created.EventDate))
	})
	if err != nil {
		s.logger.Error().Err(err).Str("title", in.Title).Msg("failed to create event")
		return nil, err
	}

	s.logger.Info().Str("title", created.Title).Str("organizer", organizer.Username).Msg("event created")
	return created, nil
}

func (s *EventService) Update(ctx context.Context, rctx domain.RequestContext, id uint, in ports.EventInput) (*domain.Event, error) {
	var updated *domain.Event
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// Load and guard inside the transaction so a concurrent organizer
		// or schedule change cannot race past the checks.
		event, err := s.events.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !event.IsOrganizer(rctx.Caller.UserID) {
			return domain.Forbidden("Only the event organizer can update this event")
		}
		if event.HasEnded(s.now()) {
			return domain.State("Cannot update event that has already ended")
		}

		if err := s.validateFields(ctx, in, event.ID); err != nil {
			return err
		}

		organizer := event.Organizer
		if organizer.ID == 0 {
			loaded, err := s.users.FindByID(ctx, event.OrganizerID)
			if err != nil {
				return err
			}
			organizer = *loaded
		}

		invitees, err := s.resolveInvitees(ctx, in, &organizer)
		if err != nil {
			return err
		}

		before := eventSnapshot(event)

		event.Title = in.Title
		event.Description = in.Description
		event.Location = in.Location
		event.EventDate = in.EventDate
		event.StartTime = in.StartTime
		event.EndTime = in.EndTime
		if in.EventType != "" {
			event.EventType = in.EventType
		}
		if event.EventType == domain.EventPublic {
			event.Invitees = nil
		} else {
			event.Invitees = invitees
		}

		updated, err = s.events.Update(ctx, event)
		if err != nil {
			return err
		}
		return s.activity.RecordChange(ctx, rctx, domain.ActivityEventUpdate,
			ports.EntityRef{Type: "Event", ID: fmt.Sprintf("%d", updated.ID), Name: updated.Title},
			fmt.Sprintf("Updated event '%s'", updated.Title),
			before, eventSnapshot(updated))
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, rctx domain.RequestContext, id uint) error {
	var title string
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// The time-state guards read the row inside the transaction; a
		// reschedule committed in between cannot slip an ongoing event past
		// them.
		event, err := s.events.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !event.IsOrganizer(rctx.Caller.UserID) {
			return domain.Forbidden("Only the event organizer can delete this event")
		}
		now := s.now()
		if event.HasEnded(now) {
			return domain.State("Cannot delete event that has already ended")
		}
		if event.HasStarted(now) {
			return domain.State("Cannot delete an ongoing event")
		}
		title = event.Title

		if err := s.events.Delete(ctx, event.ID); err != nil {
			return err
		}
		return s.activity.RecordEntity(ctx, rctx, domain.ActivityEventDelete,
			ports.EntityRef{Type: "Event", ID: fmt.Sprintf("%d", event.ID), Name: event.Title},
			fmt.Sprintf("Deleted event '%s'", event.Title))
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("title", title).Msg("event deleted")
	return nil
}

func (s *EventService) GetByID(ctx context.Context, rctx domain.RequestContext, id uint) (*domain.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.CanAccess(rctx.Caller.UserID) {
		return nil, domain.Forbidden("You don't have permission to view this private event")
	}
	return event, nil
}

func (s *EventService) GetAll(ctx context.Context, rctx domain.RequestContext, page, size int) ([]*domain.Event, error) {
	accessible, err := s.listAccessible(ctx, rctx)
	if err != nil {
		return nil, err
	}
	return paginate(accessible, page, size), nil
}

func (s *EventService) GetAllPublic(ctx context.Context) ([]*domain.Event, error) {
	all, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	public := make([]*domain.Event, 0, len(all))
	for _, e := range all {
		if e.EventType == domain.EventPublic {
			public = append(public, e)
		}
	}
	return public, nil
}

func (s *EventService) GetMyOrganized(ctx context.Context, rctx domain.RequestContext) ([]*domain.Event, error) {
	return s.events.ListByOrganizer(ctx, rctx.Caller.UserID)
}

func (s *EventService) GetMyInvited(ctx context.Context, rctx domain.RequestContext) ([]*domain.Event, error) {
	return s.events.ListByInvitee(ctx, rctx.Caller.UserID)
}

func (s *EventService) GetUpcoming(ctx context.Context, rctx domain.RequestContext) ([]*domain.Event, error) {
	accessible, err := s.listAccessible(ctx, rctx)
	if err != nil {
		return nil, err
	}
	today := domain.DateOf(s.now())
	upcoming := make([]*domain.Event, 0, len(accessible))
	for _, e := range accessible {
		if !e.EventDate.Before(today) {
			upcoming = append(upcoming, e)
		}
	}
	return upcoming, nil
}

// GetPast returns all past events without a visibility filter, matching the
// long-standing behavior callers rely on.
func (s *EventService) GetPast(ctx context.Context, rctx domain.RequestContext) ([]*domain.Event, error) {
	all, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	today := domain.DateOf(s.now())
	past := make([]*domain.Event, 0, len(all))
	for _, e := range all {
		if e.EventDate.Before(today) {
			past = append(past, e)
		}
	}
	return past, nil
}

func (s *EventService) GetToday(ctx context.Context, rctx domain.RequestContext) ([]*domain.Event, error) {
	accessible, err := s.listAccessible(ctx, rctx)
	if err != nil {
		return nil, err
	}
	today := domain.DateOf(s.now())
	result := make([]*domain.Event, 0, len(accessible))
	for _, e := range accessible {
		if e.EventDate == today {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *EventService) SearchByLocation(ctx context.Context, rctx domain.RequestContext, location string) ([]*domain.Event, error) {
	accessible, err := s.listAccessible(ctx, rctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(location)
	matched := make([]*domain.Event, 0, len(accessible))
	for _, e := range accessible {
		if strings.Contains(strings.ToLower(e.Location), needle) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (s *EventService) Invite(ctx context.Context, rctx domain.RequestContext, in ports.InviteInput) (*domain.Event, error) {
	return s.changeInvitees(ctx, rctx, in, true)
}

func (s *EventService) Remove(ctx context.Context, rctx domain.RequestContext, in ports.InviteInput) (*domain.Event, error) {
	return s.changeInvitees(ctx, rctx, in, false)
}

func (s *EventService) changeInvitees(ctx context.Context, rctx domain.RequestContext, in ports.InviteInput, add bool) (*domain.Event, error) {
	var updated *domain.Event
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// Organizer and type checks run against the row as this transaction
		// sees it.
		event, err := s.events.FindByID(ctx, in.EventID)
		if err != nil {
			return err
		}
		if !event.IsOrganizer(rctx.Caller.UserID) {
			return domain.Forbidden("Only the event organizer can manage invitations")
		}
		if event.EventType != domain.EventPrivate {
			return domain.Validation("Only PRIVATE events can have invitations")
		}

		changed := false
		for _, uid := range in.UserIDs {
			if uid == event.OrganizerID {
				if add {
					return domain.Validation("Cannot invite yourself as organizer to your own event")
				}
				// The organizer is never in the invitee set; removing is a
				// no-op like any other absent id.
				continue
			}
			if add {
				if event.IsInvited(uid) {
					continue
				}
				user, err := s.users.FindByID(ctx, uid)
				if err != nil {
					if isNotFound(err) {
						return domain.NotFound("User not found with id: %d", uid)
					}
					return err
				}
				event.Invitees = append(event.Invitees, *user)
				changed = true
			} else {
				if !event.IsInvited(uid) {
					continue
				}
				kept := event.Invitees[:0]
				for _, u := range event.Invitees {
					if u.ID != uid {
						kept = append(kept, u)
					}
				}
				event.Invitees = kept
				changed = true
			}
		}

		if !changed {
			updated = event
			return nil
		}

		verb := "Invited users to"
		if !add {
			verb = "Removed users from"
		}

		updated, err = s.events.Update(ctx, event)
		if err != nil {
			return err
		}
		return s.activity.RecordEntity(ctx, rctx, domain.ActivityEventUpdate,
			ports.EntityRef{Type: "Event", ID: fmt.Sprintf("%d", event.ID), Name: event.Title},
			fmt.Sprintf("%s event '%s'", verb, event.Title))
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("event_id", in.EventID).Msg("failed to change invitees")
		return nil, err
	}
	return updated, nil
}

// validateFields runs the create-time constraint chain. selfID is zero on
// create and the event's own id on update, so the title uniqueness check
// can skip the row being updated.
func (s *EventService) validateFields(ctx context.Context, in ports.EventInput, selfID uint) error {
	existing, err := s.events.FindByTitle(ctx, in.Title)
	if err == nil && existing.ID != selfID {
		return domain.Validation("Event with title '%s' already exists", in.Title)
	} else if err != nil && !isNotFound(err) {
		return err
	}

	if strings.TrimSpace(in.Location) == "" {
		return domain.Validation("Event location is required")
	}

	now := s.now()
	today := domain.DateOf(now)
	if in.EventDate.Before(today) {
		return domain.Validation("Event date cannot be in the past")
	}
	if in.EventDate == today && in.StartTime.Before(domain.TimeOfDayOf(now)) {
		return domain.Validation("Event start time cannot be in the past for today's event")
	}

	if in.EndTime.Before(in.StartTime) {
		return domain.Validation("Event end time must be after start time")
	}
	if in.EndTime == in.StartTime {
		return domain.Validation("Event end time must be different from start time")
	}

	duration := in.EndTime.Sub(in.StartTime)
	if duration < minEventDuration {
		return domain.Validation("Event duration must be at least 30 minutes")
	}
	if duration > maxEventDuration {
		return domain.Validation("Event duration cannot exceed 24 hours (single day event)")
	}

	if in.EventType == domain.EventPrivate && len(in.InvitedUserIDs) == 0 {
		return domain.Validation("PRIVATE events must have at least one invited user")
	}

	return nil
}

func (s *EventService) resolveInvitees(ctx context.Context, in ports.EventInput, organizer *domain.User) ([]domain.User, error) {
	if in.EventType != domain.EventPrivate {
		return nil, nil
	}
	invitees := make([]domain.User, 0, len(in.InvitedUserIDs))
	seen := make(map[uint]bool, len(in.InvitedUserIDs))
	for _, uid := range in.InvitedUserIDs {
		if uid == organizer.ID {
			return nil, domain.Validation("Cannot invite yourself as organizer to your own event")
		}
		if seen[uid] {
			continue
		}
		seen[uid] = true
		user, err := s.users.FindByID(ctx, uid)
		if err != nil {
			if isNotFound(err) {
				return nil, domain.NotFound("User not found with id: %d", uid)
			}
			return nil, err
		}
		invitees = append(invitees, *user)
	}
	return invitees, nil
}

// listAccessible returns the caller's visible events ordered by
// (eventDate, startTime).
func (s *EventService) listAccessible(ctx context.Context, rctx domain.RequestContext) ([]*domain.Event, error) {
	all, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	accessible := make([]*domain.Event, 0, len(all))
	for _, e := range all {
		if e.CanAccess(rctx.Caller.UserID) {
			accessible = append(accessible, e)
		}
	}
	sort.SliceStable(accessible, func(i, j int) bool {
		if accessible[i].EventDate != accessible[j].EventDate {
			return accessible[i].EventDate.Before(accessible[j].EventDate)
		}
		return accessible[i].StartTime.Before(accessible[j].StartTime)
	})
	return accessible, nil
}

func eventSnapshot(e *domain.Event) map[string]any {
	return map[string]any{
		"title":     e.Title,
		"location":  e.Location,
		"eventDate": e.EventDate.String(),
		"startTime": e.StartTime.String(),
		"endTime":   e.EndTime.String(),
		"eventType": string(e.EventType),
		"invitees":  len(e.Invitees),
	}
}
