package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatherly/eventhub/internal/core/domain"
)

func newHistoryFixture(t *testing.T) (*HistoryService, *stubActivityRepo, *stubLoginRepo, *stubPasswordRepo) {
	t.Helper()

	users := newStubUserRepo()
	users.add(domain.User{ID: 7, Username: "alice", Email: "alice@example.com"})

	activities := &stubActivityRepo{}
	logins := &stubLoginRepo{}
	passwords := &stubPasswordRepo{}

	svc := NewHistoryService(activities, logins, passwords, users, zerolog.Nop())
	return svc, activities, logins, passwords
}

func TestMyLoginsResolvesUserIDAndRedactsToken(t *testing.T) {
	svc, _, logins, _ := newHistoryFixture(t)

	logins.Create(context.Background(), &domain.LoginRecord{
		UserID: "7", Token: "raw-jwt-token", LoginTime: time.Now(),
	})
	logins.Create(context.Background(), &domain.LoginRecord{
		UserID: "8", Token: "someone-elses", LoginTime: time.Now(),
	})

	records, err := svc.MyLogins(context.Background(), requestContext(7, "alice", domain.RoleAttendee))
	if err != nil {
		t.Fatalf("MyLogins: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Token != redacted {
		t.Errorf("token = %q, want redacted", records[0].Token)
	}
}

func TestPasswordChangesRedactHashes(t *testing.T) {
	svc, _, _, passwords := newHistoryFixture(t)

	passwords.Create(context.Background(), &domain.PasswordRecord{
		UserID: "7", OldHash: "$2a$old", NewHash: "$2a$new", ChangeDate: time.Now(),
	})

	records, err := svc.MyPasswordChanges(context.Background(), requestContext(7, "alice", domain.RoleAttendee))
	if err != nil {
		t.Fatalf("MyPasswordChanges: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].OldHash != redacted || records[0].NewHash != redacted {
		t.Errorf("hashes not redacted: %+v", records[0])
	}

	// The stored rows keep the real hashes.
	if passwords.records[0].OldHash != "$2a$old" {
		t.Error("redaction must not mutate stored records")
	}
}

func TestActivitiesByTypeAndUsername(t *testing.T) {
	svc, activities, _, _ := newHistoryFixture(t)

	activities.Create(context.Background(), &domain.ActivityRecord{
		Username: "alice", UserID: "alice", ActivityType: domain.ActivityEventCreate,
	})
	activities.Create(context.Background(), &domain.ActivityRecord{
		Username: "bob", UserID: "bob", ActivityType: domain.ActivityEventCreate,
	})
	activities.Create(context.Background(), &domain.ActivityRecord{
		Username: "alice", UserID: "alice", ActivityType: domain.ActivityUserUpdate,
	})

	byUser, err := svc.ActivitiesByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ActivitiesByUsername: %v", err)
	}
	if len(byUser) != 2 {
		t.Errorf("alice activities = %d, want 2", len(byUser))
	}

	byType, err := svc.ActivitiesByType(context.Background(), "EVENT_CREATE")
	if err != nil {
		t.Fatalf("ActivitiesByType: %v", err)
	}
	if len(byType) != 2 {
		t.Errorf("EVENT_CREATE activities = %d, want 2", len(byType))
	}
}

func TestActivityTypeCatalogue(t *testing.T) {
	if got := domain.ActivityPasswordReset.Name(); got != "Password Reset" {
		t.Errorf("Name = %q", got)
	}
	if got := domain.ActivityType("WEIRD").Name(); got != "WEIRD" {
		t.Errorf("unknown type Name = %q", got)
	}
	if len(domain.ActivityTypes()) != 18 {
		t.Errorf("catalogue size = %d, want 18", len(domain.ActivityTypes()))
	}
}
