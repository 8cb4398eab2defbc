package domain

import (
	"testing"
	"time"
)

func TestEventCanAccess(t *testing.T) {
	event := Event{
		EventType:   EventPrivate,
		OrganizerID: 1,
		Invitees:    []User{{ID: 2, Username: "bob"}},
	}

	tests := []struct {
		name      string
		eventType EventType
		userID    uint
		want      bool
	}{
		{"public open to anyone", EventPublic, 99, true},
		{"private organizer", EventPrivate, 1, true},
		{"private invitee", EventPrivate, 2, true},
		{"private outsider", EventPrivate, 3, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			event.EventType = tc.eventType
			if got := event.CanAccess(tc.userID); got != tc.want {
				t.Errorf("CanAccess(%d) = %v, want %v", tc.userID, got, tc.want)
			}
		})
	}
}

func TestEventTimeState(t *testing.T) {
	event := Event{
		EventDate: NewDate(2026, time.March, 10),
		StartTime: NewTimeOfDay(10, 0, 0),
		EndTime:   NewTimeOfDay(12, 0, 0),
	}

	before := time.Date(2026, time.March, 10, 9, 59, 59, 0, time.Local)
	during := time.Date(2026, time.March, 10, 11, 0, 0, 0, time.Local)
	after := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)

	if event.HasStarted(before) {
		t.Error("event should not have started before start time")
	}
	if !event.HasStarted(during) {
		t.Error("event should have started during the event")
	}
	if event.HasEnded(during) {
		t.Error("event should not have ended while still running")
	}
	if !event.HasEnded(after) {
		t.Error("event should have ended at the end time")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-28")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year != 2026 || d.Month != time.August || d.Day != 28 {
		t.Errorf("ParseDate = %v", d)
	}
	if d.String() != "2026-08-28" {
		t.Errorf("String = %q", d.String())
	}

	if _, err := ParseDate("28/08/2026"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30:00")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}
	if tod.Hour != 9 || tod.Minute != 30 || tod.Second != 0 {
		t.Errorf("ParseTimeOfDay = %v", tod)
	}

	if _, err := ParseTimeOfDay("9:30"); err == nil {
		t.Error("expected error for malformed time")
	}
}

func TestTimeOfDaySub(t *testing.T) {
	start := NewTimeOfDay(10, 0, 0)
	end := NewTimeOfDay(10, 30, 0)
	if got := end.Sub(start); got != 30*time.Minute {
		t.Errorf("Sub = %v, want 30m", got)
	}
}

func TestUserAge(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  Date
		want int
	}{
		{"birthday passed this year", NewDate(1990, time.March, 1), 36},
		{"birthday today", NewDate(1990, time.August, 28), 36},
		{"birthday upcoming", NewDate(1990, time.December, 1), 35},
		{"unset", Date{}, 0},
		{"future", NewDate(2030, time.January, 1), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := User{DateOfBirth: tc.dob}
			if got := u.Age(now); got != tc.want {
				t.Errorf("Age = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestErrorKinds(t *testing.T) {
	err := NotFound("user %q not found", "ghost")
	if err.Kind != KindNotFound {
		t.Errorf("Kind = %v, want KindNotFound", err.Kind)
	}
	if err.Error() != `user "ghost" not found` {
		t.Errorf("Error = %q", err.Error())
	}
}
