package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/ports"
)

// fixedNow keeps the clock stable so date/time boundary checks are exact.
var fixedNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.Local)

type eventFixture struct {
	svc      *EventService
	events   *stubEventRepo
	users    *stubUserRepo
	activity *stubActivityRepo
}

func newEventFixture(t *testing.T) *eventFixture {
	t.Helper()

	users := newStubUserRepo()
	role := domain.Role{ID: 1, Name: domain.RoleAttendee}
	users.add(domain.User{ID: 1, Username: "alice", Email: "alice@example.com", Active: true, RoleID: 1, Role: role})
	users.add(domain.User{ID: 2, Username: "bob", Email: "bob@example.com", Active: true, RoleID: 1, Role: role})
	users.add(domain.User{ID: 3, Username: "carol", Email: "carol@example.com", Active: true, RoleID: 1, Role: role})

	events := newStubEventRepo()
	activity := &stubActivityRepo{}
	recorder := NewActivityRecorder(activity, zerolog.Nop())

	svc := NewEventService(events, users, recorder, &stubTx{}, zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }

	return &eventFixture{svc: svc, events: events, users: users, activity: activity}
}

func validEventInput() ports.EventInput {
	return ports.EventInput{
		Title:       "Team Offsite",
		Description: "Quarterly planning",
		Location:    "Lisbon",
		EventDate:   domain.NewDate(2026, time.June, 20),
		StartTime:   domain.NewTimeOfDay(10, 0, 0),
		EndTime:     domain.NewTimeOfDay(12, 0, 0),
		EventType:   domain.EventPublic,
	}
}

func wantValidation(t *testing.T, err error, fragment string) {
	t.Helper()
	var derr *domain.Error
	if !errors.As(err, &derr) {
		t.Fatalf("err = %v, want domain error", err)
	}
	if derr.Kind != domain.KindValidation {
		t.Fatalf("kind = %v, want KindValidation (%v)", derr.Kind, err)
	}
	if !strings.Contains(derr.Message, fragment) {
		t.Errorf("message %q does not contain %q", derr.Message, fragment)
	}
}

func wantKind(t *testing.T, err error, kind domain.Kind) {
	t.Helper()
	var derr *domain.Error
	if !errors.As(err, &derr) {
		t.Fatalf("err = %v, want domain error", err)
	}
	if derr.Kind != kind {
		t.Fatalf("kind = %v, want %v (%v)", derr.Kind, kind, err)
	}
}

func TestCreateEvent(t *testing.T) {
	f := newEventFixture(t)
	rctx := requestContext(1, "alice", domain.RoleAttendee)

	created, err := f.svc.Create(context.Background(), rctx, validEventInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.OrganizerID != 1 {
		t.Errorf("OrganizerID = %d, want 1", created.OrganizerID)
	}
	if len(f.activity.records) != 1 || f.activity.records[0].ActivityType != domain.ActivityEventCreate {
		t.Error("expected one EVENT_CREATE activity record")
	}
}

func TestCreateEventFieldConstraints(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ports.EventInput)
		fragment string
	}{
		{
			"blank location",
			func(in *ports.EventInput) { in.Location = "   " },
			"location is required",
		},
		{
			"date in the past",
			func(in *ports.EventInput) { in.EventDate = domain.NewDate(2026, time.June, 14) },
			"date cannot be in the past",
		},
		{
			"today with start already passed",
			func(in *ports.EventInput) {
				in.EventDate = domain.NewDate(2026, time.June, 15)
				in.StartTime = domain.NewTimeOfDay(11, 59, 59)
				in.EndTime = domain.NewTimeOfDay(13, 0, 0)
			},
			"start time cannot be in the past",
		},
		{
			"end before start",
			func(in *ports.EventInput) {
				in.StartTime = domain.NewTimeOfDay(12, 0, 0)
				in.EndTime = domain.NewTimeOfDay(10, 0, 0)
			},
			"end time must be after start time",
		},
		{
			"end equals start",
			func(in *ports.EventInput) {
				in.StartTime = domain.NewTimeOfDay(10, 0, 0)
				in.EndTime = domain.NewTimeOfDay(10, 0, 0)
			},
			"end time must be different from start time",
		},
		{
			"29 minute duration",
			func(in *ports.EventInput) {
				in.StartTime = domain.NewTimeOfDay(10, 0, 0)
				in.EndTime = domain.NewTimeOfDay(10, 29, 0)
			},
			"at least 30 minutes",
		},
		{
			"private with no invitees",
			func(in *ports.EventInput) { in.EventType = domain.EventPrivate },
			"at least one invited user",
		},
		{
			"organizer invites self",
			func(in *ports.EventInput) {
				in.EventType = domain.EventPrivate
				in.InvitedUserIDs = []uint{1, 2}
			},
			"Cannot invite yourself",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newEventFixture(t)
			in := validEventInput()
			tc.mutate(&in)

			_, err := f.svc.Create(context.Background(), requestContext(1, "alice", domain.RoleAttendee), in)
			wantValidation(t, err, tc.fragment)
		})
	}
}

func TestCreateEventDurationBoundaries(t *testing.T) {
	f := newEventFixture(t)
	rctx := requestContext(1, "alice", domain.RoleAttendee)

	// Exactly 30 minutes is allowed.
	in := validEventInput()
	in.EndTime = domain.NewTimeOfDay(10, 30, 0)
	if _, err := f.svc.Create(context.Background(), rctx, in); err != nil {
		t.Fatalf("30 minute event rejected: %v", err)
	}

	// Exactly 24 hours is allowed.
	in = validEventInput()
	in.Title = "All Day"
	in.StartTime = domain.NewTimeOfDay(0, 0, 0)
	in.EndTime = domain.NewTimeOfDay(23, 59, 59)
	if _, err := f.svc.Create(context.Background(), rctx, in); err != nil {
		t.Fatalf("full day event rejected: %v", err)
	}
}

func TestCreateEventDuplicateTitle(t *testing.T) {
	f := newEventFixture(t)
	rctx := requestContext(1, "alice", domain.RoleAttendee)

	if _, err := f.svc.Create(context.Background(), rctx, validEventInput()); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := f.svc.Create(context.Background(), rctx, validEventInput())
	wantValidation(t, err, "already exists")
}

func TestCreateEventStartOfTodayAllowed(t *testing.T) {
	f := newEventFixture(t)

	in := validEventInput()
	in.EventDate = domain.NewDate(2026, time.June, 15)
	in.StartTime = domain.NewTimeOfDay(12, 0, 0)
	in.EndTime = domain.NewTimeOfDay(13, 0, 0)

	if _, err := f.svc.Create(context.Background(), requestContext(1, "alice", domain.RoleAttendee), in); err != nil {
		t.Fatalf("event starting now rejected: %v", err)
	}
}

func TestCreatePrivateEventResolvesInvitees(t *testing.T) {
	f := newEventFixture(t)
	rctx := requestContext(1, "alice", domain.RoleAttendee)

	in := validEventInput()
	in.EventType = domain.EventPrivate
	in.InvitedUserIDs = []uint{2, 3}

	created, err := f.svc.Create(context.Background(), rctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created.Invitees) != 2 {
		t.Fatalf("invitees = %d, want 2", len(created.Invitees))
	}

	in.Title = "Another"
	in.InvitedUserIDs = []uint{99}
	_, err = f.svc.Create(context.Background(), rctx, in)
	wantKind(t, err, domain.KindNotFound)
}

func TestUpdateEventOrganizerOnly(t *testing.T) {
	f := newEventFixture(t)

	created, err := f.svc.Create(context.Background(), requestContext(1, "alice", domain.RoleAttendee), validEventInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = f.svc.Update(context.Background(), requestContext(2, "bob", domain.RoleAttendee), created.ID, validEventInput())
	wantKind(t, err, domain.KindForbidden)
}

func TestUpdateEndedEventRejected(t *testing.T) {
	f := newEventFixture(t)

	// Seed an already-ended event directly; Create would reject it.
	f.events.add(domain.Event{
		ID:          10,
		Title:       "Past Meetup",
		Location:    "Porto",
		EventDate:   domain.NewDate(2026, time.June, 14),
		StartTime:   domain.NewTimeOfDay(9, 0, 0),
		EndTime:     domain.NewTimeOfDay(10, 0, 0),
		EventType:   domain.EventPublic,
		OrganizerID: 1,
	})

	_, err := f.svc.Update(context.Background(), requestContext(1, "alice", domain.RoleAttendee), 10, validEventInput())
	wantKind(t, err, domain.KindState)
}

func TestUpdatePrivateToPublicClearsInvitees(t *testing.T) {
	f := newEventFixture(t)
	rctx := requestContext(1, "alice", domain.RoleAttendee)

	in := validEventInput()
	in.EventType = domain.EventPrivate
	in.InvitedUserIDs = []uint{2}
	created, err := f.svc.Create(context.Background(), rctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	in.EventType = domain.EventPublic
	in.InvitedUserIDs = nil
	updated, err := f.svc.Update(context.Background(), rctx, created.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.Invitees) != 0 {
		t.Errorf("invitees = %d, want 0 after switch to PUBLIC", len(updated.Invitees))
	}
}

func TestDeleteEventRules(t *testing.T) {
	f := newEventFixture(t)
	rctx := requestContext(1, "alice", domain.RoleAttendee)

	future := f.events.add(domain.Event{
		Title: "Future", Location: "x", EventType: domain.EventPublic, OrganizerID: 1,
		EventDate: domain.NewDate(2026, time.June, 20),
		StartTime: domain.NewTimeOfDay(10, 0, 0), EndTime: domain.NewTimeOfDay(11, 0, 0),
	})
	ongoing := f.events.add(domain.Event{
		Title: "Ongoing", Location: "x", EventType: domain.EventPublic, OrganizerID: 1,
		EventDate: domain.NewDate(2026, time.June, 15),
		StartTime: domain.NewTimeOfDay(11, 0, 0), EndTime: domain.NewTimeOfDay(13, 0, 0),
	})
	past := f.events.add(domain.Event{
		Title: "Past", Location: "x", EventType: domain.EventPublic, OrganizerID: 1,
		EventDate: domain.NewDate(2026, time.June, 14),
		StartTime: domain.NewTimeOfDay(9, 0, 0), EndTime: domain.NewTimeOfDay(10, 0, 0),
	})

	if err := f.svc.Delete(context.Background(), rctx, future.ID); err != nil {
		t.Errorf("deleting future event: %v", err)
	}
	wantKind(t, f.svc.Delete(context.Background(), rctx, ongoing.ID), domain.KindState)
	wantKind(t, f.svc.Delete(context.Background(), rctx, past.ID), domain.KindState)

	wantKind(t, f.svc.Delete(context.Background(), requestContext(2, "bob", domain.RoleAttendee), ongoing.ID), domain.KindForbidden)
}

func TestGetByIDVisibility(t *testing.T) {
	f := newEventFixture(t)
	rctx := requestContext(1, "alice", domain.RoleAttendee)

	in := validEventInput()
	in.EventType = domain.EventPrivate
	in.InvitedUserIDs = []uint{2}
	created, err := f.svc.Create(context.Background(), rctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := f.svc.GetByID(context.Background(), rctx, created.ID); err != nil {
		t.Errorf("organizer access: %v", err)
	}
	if _, err := f.svc.GetByID(context.Background(), requestContext(2, "bob", domain.RoleAttendee), created.ID); err != nil {
		t.Errorf("invitee access: %v", err)
	}
	_, err = f.svc.GetByID(context.Background(), requestContext(3, "carol", domain.RoleAttendee), created.ID)
	wantKind(t, err, domain.KindForbidden)
}

func TestListQueriesFilterVisibility(t *testing.T) {
	f := newEventFixture(t)
	alice := requestContext(1, "alice", domain.RoleAttendee)
	carol := requestContext(3, "carol", domain.RoleAttendee)

	pub := validEventInput()
	if _, err := f.svc.Create(context.Background(), alice, pub); err != nil {
		t.Fatalf("Create public: %v", err)
	}

	priv := validEventInput()
	priv.Title = "Private Dinner"
	priv.EventType = domain.EventPrivate
	priv.InvitedUserIDs = []uint{2}
	if _, err := f.svc.Create(context.Background(), alice, priv); err != nil {
		t.Fatalf("Create private: %v", err)
	}

	all, err := f.svc.GetAll(context.Background(), carol, 1, 10)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("carol sees %d events, want 1", len(all))
	}

	bobInvited, err := f.svc.GetMyInvited(context.Background(), requestContext(2, "bob", domain.RoleAttendee))
	if err != nil {
		t.Fatalf("GetMyInvited: %v", err)
	}
	if len(bobInvited) != 1 || bobInvited[0].Title != "Private Dinner" {
		t.Errorf("bob invited = %v", bobInvited)
	}

	organized, err := f.svc.GetMyOrganized(context.Background(), alice)
	if err != nil {
		t.Fatalf("GetMyOrganized: %v", err)
	}
	if len(organized) != 2 {
		t.Errorf("alice organized = %d, want 2", len(organized))
	}
}

func TestGetPastSkipsVisibilityFilter(t *testing.T) {
	f := newEventFixture(t)

	f.events.add(domain.Event{
		Title: "Secret Gala", Location: "x", EventType: domain.EventPrivate, OrganizerID: 1,
		EventDate: domain.NewDate(2026, time.June, 1),
		StartTime: domain.NewTimeOfDay(9, 0, 0), EndTime: domain.NewTimeOfDay(10, 0, 0),
	})

	past, err := f.svc.GetPast(context.Background(), requestContext(3, "carol", domain.RoleAttendee))
	if err != nil {
		t.Fatalf("GetPast: %v", err)
	}
	if len(past) != 1 {
		t.Errorf("past = %d, want 1 (unfiltered)", len(past))
	}
}

func TestSearchByLocation(t *testing.T) {
	f := newEventFixture(t)
	rctx := requestContext(1, "alice", domain.RoleAttendee)

	if _, err := f.svc.Create(context.Background(), rctx, validEventInput()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := f.svc.SearchByLocation(context.Background(), rctx, "LISB")
	if err != nil {
		t.Fatalf("SearchByLocation: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("matches = %d, want 1", len(got))
	}
}

func TestInviteAndRemove(t *testing.T) {
	f := newEventFixture(t)
	rctx := requestContext(1, "alice", domain.RoleAttendee)

	in := validEventInput()
	in.EventType = domain.EventPrivate
	in.InvitedUserIDs = []uint{2}
	created, err := f.svc.Create(context.Background(), rctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Inviting an already-invited user is a no-op; carol gets added.
	updated, err := f.svc.Invite(context.Background(), rctx, ports.InviteInput{EventID: created.ID, UserIDs: []uint{2, 3}})
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if len(updated.Invitees) != 2 {
		t.Errorf("invitees = %d, want 2", len(updated.Invitees))
	}

	// Re-inviting everyone changes nothing.
	again, err := f.svc.Invite(context.Background(), rctx, ports.InviteInput{EventID: created.ID, UserIDs: []uint{2, 3}})
	if err != nil {
		t.Fatalf("repeat Invite: %v", err)
	}
	if len(again.Invitees) != 2 {
		t.Errorf("invitees after repeat = %d, want 2", len(again.Invitees))
	}

	// Removing a non-invitee is a no-op too.
	afterRemove, err := f.svc.Remove(context.Background(), rctx, ports.InviteInput{EventID: created.ID, UserIDs: []uint{3, 42}})
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(afterRemove.Invitees) != 1 {
		t.Errorf("invitees after remove = %d, want 1", len(afterRemove.Invitees))
	}
}

func TestInviteGuardrails(t *testing.T) {
	f := newEventFixture(t)
	rctx := requestContext(1, "alice", domain.RoleAttendee)

	pub, err := f.svc.Create(context.Background(), rctx, validEventInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = f.svc.Invite(context.Background(), rctx, ports.InviteInput{EventID: pub.ID, UserIDs: []uint{2}})
	wantValidation(t, err, "PRIVATE")

	in := validEventInput()
	in.Title = "Private Party"
	in.EventType = domain.EventPrivate
	in.InvitedUserIDs = []uint{2}
	priv, err := f.svc.Create(context.Background(), rctx, in)
	if err != nil {
		t.Fatalf("Create private: %v", err)
	}

	_, err = f.svc.Invite(context.Background(), rctx, ports.InviteInput{EventID: priv.ID, UserIDs: []uint{1}})
	wantValidation(t, err, "Cannot invite yourself")

	_, err = f.svc.Invite(context.Background(), requestContext(2, "bob", domain.RoleAttendee), ports.InviteInput{EventID: priv.ID, UserIDs: []uint{3}})
	wantKind(t, err, domain.KindForbidden)
}

func TestRemoveOrganizerIDIsNoOp(t *testing.T) {
	f := newEventFixture(t)
	rctx := requestContext(1, "alice", domain.RoleAttendee)

	in := validEventInput()
	in.EventType = domain.EventPrivate
	in.InvitedUserIDs = []uint{2}
	created, err := f.svc.Create(context.Background(), rctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The organizer id is never in the invitee set, so listing it in a
	// remove request subtracts nothing; bob is still removed.
	after, err := f.svc.Remove(context.Background(), rctx, ports.InviteInput{EventID: created.ID, UserIDs: []uint{1, 2}})
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(after.Invitees) != 0 {
		t.Errorf("invitees = %d, want 0", len(after.Invitees))
	}
}

// rescheduleTx mutates the stored event just before the transactional
// closure runs, standing in for a schedule change committed by another
// session between the caller's request and the transaction start.
type rescheduleTx struct {
	before func()
}

func (t *rescheduleTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if t.before != nil {
		t.before()
	}
	return fn(ctx)
}

func TestDeleteGuardsAgainstConcurrentReschedule(t *testing.T) {
	f := newEventFixture(t)
	rctx := requestContext(1, "alice", domain.RoleAttendee)

	ev := f.events.add(domain.Event{
		Title: "Future", Location: "x", EventType: domain.EventPublic, OrganizerID: 1,
		EventDate: domain.NewDate(2026, time.June, 20),
		StartTime: domain.NewTimeOfDay(10, 0, 0), EndTime: domain.NewTimeOfDay(11, 0, 0),
	})

	// Another organizer session moves the event to run right now; the
	// delete transaction must see the rescheduled row and refuse.
	f.svc.tx = &rescheduleTx{before: func() {
		stored := f.events.events[ev.ID]
		stored.EventDate = domain.NewDate(2026, time.June, 15)
		stored.StartTime = domain.NewTimeOfDay(11, 0, 0)
		stored.EndTime = domain.NewTimeOfDay(13, 0, 0)
	}}

	err := f.svc.Delete(context.Background(), rctx, ev.ID)
	wantKind(t, err, domain.KindState)
	if _, ferr := f.events.FindByID(context.Background(), ev.ID); ferr != nil {
		t.Errorf("event should survive the rejected delete: %v", ferr)
	}
}
