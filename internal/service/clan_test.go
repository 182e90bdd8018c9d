package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

var clanNow = time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)

func newTestClanService(users *fakeUsers) (*ClanService, *fakeClans, *fakeActivity) {
	clans := newFakeClans()
	activity := &fakeActivity{}

	s := NewClanService(clans, activity, users, zap.NewNop())
	s.now = fixedClock(clanNow)

	return s, clans, activity
}

func TestClanServiceCreateAndJoin(t *testing.T) {
	s, clans, _ := newTestClanService(newFakeUsers())
	ctx := context.Background()

	if err := s.Create(ctx, " Батырлар ", "Leader@Example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clan := clans.clans["Батырлар"]
	if clan.Leader != "leader@example.com" || len(clan.Members) != 1 {
		t.Errorf("unexpected clan %+v", clan)
	}

	if err := s.Create(ctx, "Батырлар", "other@example.com"); !errors.Is(err, ErrClanExists) {
		t.Errorf("expected ErrClanExists, got %v", err)
	}

	if err := s.Join(ctx, "Батырлар", "member@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Join(ctx, "Батырлар", "member@example.com"); err != nil {
		t.Fatalf("joining twice must succeed: %v", err)
	}
	if got := len(clans.clans["Батырлар"].Members); got != 2 {
		t.Errorf("members = %d, want 2", got)
	}

	if err := s.Join(ctx, "Жоқ", "member@example.com"); !errors.Is(err, ErrClanNotFound) {
		t.Errorf("expected ErrClanNotFound, got %v", err)
	}

	for _, args := range [][2]string{{"", "a@b.kz"}, {"Батырлар", " "}} {
		if err := s.Create(ctx, args[0], args[1]); !errors.Is(err, ErrMissingFields) {
			t.Errorf("Create(%q, %q) error = %v, want ErrMissingFields", args[0], args[1], err)
		}
		if err := s.Join(ctx, args[0], args[1]); !errors.Is(err, ErrMissingFields) {
			t.Errorf("Join(%q, %q) error = %v, want ErrMissingFields", args[0], args[1], err)
		}
	}
}

func TestClanServiceTrackActivity(t *testing.T) {
	s, _, activity := newTestClanService(newFakeUsers())

	if err := s.TrackActivity(context.Background(), "A@B.kz", true, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(activity.tracked) != 1 {
		t.Fatalf("tracked %d records, want 1", len(activity.tracked))
	}
	got := activity.tracked[0]
	if got.Email != "a@b.kz" || !got.MissionCompleted || got.MissionSkipped || !got.Day.Equal(clanNow) {
		t.Errorf("unexpected activity %+v", got)
	}

	if err := s.TrackActivity(context.Background(), "", true, false); !errors.Is(err, ErrMissingFields) {
		t.Errorf("expected ErrMissingFields, got %v", err)
	}
}

func TestClanServiceTrackActivityCompletionWins(t *testing.T) {
	s, _, activity := newTestClanService(newFakeUsers())
	ctx := context.Background()

	if err := s.TrackActivity(ctx, "a@b.kz", true, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := activity.tracked[0]; !got.MissionCompleted || got.MissionSkipped {
		t.Errorf("completed and skipped in one report: %+v", got)
	}

	// A skip reported earlier the same day is cleared by a completion.
	_ = s.TrackActivity(ctx, "b@b.kz", false, true)
	_ = s.TrackActivity(ctx, "b@b.kz", true, false)
	_ = s.TrackActivity(ctx, "b@b.kz", false, true)

	day := activity.days["b@b.kz|"+clanNow.Format(time.DateOnly)]
	if !day.MissionCompleted || day.MissionSkipped {
		t.Errorf("day = %+v, want completed only", day)
	}
}

func TestClanServiceMembersStatus(t *testing.T) {
	member := entities.NewWebUser("user-1", "Asel", "asel@example.com", "hash", clanNow)
	member.Clan = "Батырлар"
	loner := entities.NewWebUser("user-2", "Bolat", "bolat@example.com", "hash", clanNow)

	s, clans, _ := newTestClanService(newFakeUsers(member, loner))
	clans.members = []entities.MemberStatus{{Email: "asel@example.com", XP: 10, MissionCompleted: true, HasActivityToday: true}}

	status, err := s.MembersStatus(context.Background(), "asel@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.ClanName != "Батырлар" || status.Day != "2025-03-10" || len(status.Members) != 1 {
		t.Errorf("unexpected status %+v", status)
	}
	if !clans.day.Equal(clanNow) {
		t.Errorf("queried day %v, want %v", clans.day, clanNow)
	}

	tests := []struct {
		email   string
		wantErr error
	}{
		{"bolat@example.com", ErrNotInClan},
		{"ghost@example.com", ErrUserNotFound},
		{"", ErrMissingFields},
	}
	for _, tt := range tests {
		if _, err := s.MembersStatus(context.Background(), tt.email); !errors.Is(err, tt.wantErr) {
			t.Errorf("MembersStatus(%q) error = %v, want %v", tt.email, err, tt.wantErr)
		}
	}
}

func TestContactServiceSubmit(t *testing.T) {
	repo := &fakeContacts{}
	s := NewContactService(repo)
	s.now = fixedClock(clanNow)

	tests := []struct {
		name    string
		msg     entities.ContactMessage
		wantErr error
	}{
		{"missing message", entities.ContactMessage{Name: "Asel", Email: "a@b.kz"}, ErrMissingFields},
		{"short name", entities.ContactMessage{Name: "A", Email: "a@b.kz", Message: "hi"}, ErrNameTooShort},
		{"bad email", entities.ContactMessage{Name: "Asel", Email: "a@b", Message: "hi"}, ErrInvalidEmail},
		{"valid", entities.ContactMessage{Name: " Asel ", Email: "a@b.kz", Message: " Сәлем ", IP: "10.0.0.1"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Submit(context.Background(), tt.msg); !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if len(repo.saved) != 1 {
		t.Fatalf("saved %d messages, want 1", len(repo.saved))
	}
	saved := repo.saved[0]
	if saved.Name != "Asel" || saved.Message != "Сәлем" || saved.IP != "10.0.0.1" || !saved.CreatedAt.Equal(clanNow) {
		t.Errorf("unexpected saved message %+v", saved)
	}
}

func TestDuelServiceChallenge(t *testing.T) {
	s := NewDuelService(zap.NewNop())

	msg, err := s.Challenge("asel@example.com", "Bolat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Вызов брошен пользователю Bolat!" {
		t.Errorf("message = %q", msg)
	}

	if _, err := s.Challenge("asel@example.com", " "); !errors.Is(err, ErrMissingFields) {
		t.Errorf("expected ErrMissingFields, got %v", err)
	}
}
