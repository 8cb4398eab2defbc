package domain

import "time"

type EventType string

const (
	EventPublic  EventType = "PUBLIC"
	EventPrivate EventType = "PRIVATE"
)

func (t EventType) Valid() bool {
	return t == EventPublic || t == EventPrivate
}

// Event references its organizer and invitees by id; invitee rows live in
// the event_invitations join table.
type Event struct {
	ID          uint
	Title       string
	Description string
	Location    string
	EventDate   Date
	StartTime   TimeOfDay
	EndTime     TimeOfDay
	EventType   EventType
	OrganizerID uint
	Organizer   User
	Invitees    []User
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (e Event) StartsAt() time.Time { return e.EventDate.At(e.StartTime) }

func (e Event) EndsAt() time.Time { return e.EventDate.At(e.EndTime) }

func (e Event) HasStarted(now time.Time) bool { return !now.Before(e.StartsAt()) }

func (e Event) HasEnded(now time.Time) bool { return !now.Before(e.EndsAt()) }

func (e Event) IsOrganizer(userID uint) bool { return e.OrganizerID == userID }

func (e Event) IsInvited(userID uint) bool {
	for _, u := range e.Invitees {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// CanAccess reports whether the user may view the event: public events are
// open to everyone, private events only to the organizer and invitees.
func (e Event) CanAccess(userID uint) bool {
	if e.EventType == EventPublic {
		return true
	}
	return e.IsOrganizer(userID) || e.IsInvited(userID)
}
