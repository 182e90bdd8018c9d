package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/storage"
)

var authNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestAuthService(users *fakeUsers) (*AuthService, *storage.MemorySessionStore) {
	sessions := storage.NewMemorySessionStore()

	s := NewAuthService(users, sessions, 24*time.Hour, zap.NewNop())
	s.hashCost = bcrypt.MinCost
	s.now = fixedClock(authNow)

	return s, sessions
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	s, _ := newTestAuthService(newFakeUsers())

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"missing name", "", "a@b.kz", "secret1", ErrMissingFields},
		{"missing password", "Asel", "a@b.kz", "", ErrMissingFields},
		{"short name", "A", "a@b.kz", "secret1", ErrNameTooShort},
		{"short password", "Asel", "a@b.kz", "12345", ErrPasswordTooShort},
		{"bad email", "Asel", "not-an-email", "secret1", ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Register(context.Background(), tt.userName, tt.email, tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthServiceRegister(t *testing.T) {
	users := newFakeUsers()
	s, _ := newTestAuthService(users)

	user, err := s.Register(context.Background(), " Asel ", "Asel@Example.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Email != "asel@example.com" || user.Name != "Asel" {
		t.Errorf("unexpected user %+v", user)
	}
	if user.Level != 1 || user.Energy != entities.DefaultEnergy || user.XP != 0 {
		t.Errorf("unexpected starting stats %+v", user)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")) != nil {
		t.Error("password is not hashed with bcrypt")
	}

	if _, err := s.Register(context.Background(), "Other", "asel@example.com", "secret2"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthServiceLogin(t *testing.T) {
	users := newFakeUsers()
	s, sessions := newTestAuthService(users)

	if _, err := s.Register(context.Background(), "Asel", "asel@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"unknown user", "nobody@example.com", "secret1", ErrInvalidCredentials},
		{"wrong password", "asel@example.com", "wrong!", ErrInvalidCredentials},
		{"missing password", "asel@example.com", "", ErrMissingFields},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := s.Login(context.Background(), tt.email, tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	user, session, err := s.Login(context.Background(), "ASEL@example.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "asel@example.com" || session.Email != user.Email {
		t.Errorf("session %+v does not belong to %q", session, user.Email)
	}
	if _, err := sessions.Get(context.Background(), session.ID); err != nil {
		t.Errorf("session not stored: %v", err)
	}
}

func TestAuthServiceLoginMigratesLegacyPassword(t *testing.T) {
	legacy := entities.NewWebUser("user-1", "Bolat", "bolat@example.com", "", authNow)
	legacy.LegacyPassword = "plain123"
	users := newFakeUsers(legacy)
	s, _ := newTestAuthService(users)

	if _, _, err := s.Login(context.Background(), "bolat@example.com", "plain123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := users.GetByEmail(context.Background(), "bolat@example.com")
	if stored.LegacyPassword != "" {
		t.Error("plaintext password was kept")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("plain123")) != nil {
		t.Error("password was not migrated to a hash")
	}
}

func TestAuthServiceCheckSession(t *testing.T) {
	users := newFakeUsers()
	s, sessions := newTestAuthService(users)

	if _, err := s.Register(context.Background(), "Asel", "asel@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, session, err := s.Login(context.Background(), "asel@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, _, err := s.CheckSession(context.Background(), ""); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("empty id: expected ErrSessionInvalid, got %v", err)
	}
	if _, _, err := s.CheckSession(context.Background(), "missing"); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("unknown id: expected ErrSessionInvalid, got %v", err)
	}

	s.now = fixedClock(authNow.Add(time.Hour))
	user, got, err := s.CheckSession(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "asel@example.com" || !got.LastActivity.Equal(authNow.Add(time.Hour)) {
		t.Errorf("unexpected session %+v", got)
	}

	s.now = fixedClock(authNow.Add(25 * time.Hour))
	if _, _, err := s.CheckSession(context.Background(), session.ID); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("expired: expected ErrSessionInvalid, got %v", err)
	}
	if _, err := sessions.Get(context.Background(), session.ID); !errors.Is(err, storage.ErrSessionNotFound) {
		t.Errorf("expired session was not removed: %v", err)
	}
}

func TestAuthServiceUpdateProfile(t *testing.T) {
	users := newFakeUsers(entities.NewWebUser("user-2", "Dana", "dana@example.com", "hash", authNow))
	s, _ := newTestAuthService(users)

	if _, err := s.Register(context.Background(), "Asel", "asel@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, session, err := s.Login(context.Background(), "asel@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	tests := []struct {
		name    string
		upd     ProfileUpdate
		wantErr error
	}{
		{"missing name", ProfileUpdate{SessionID: session.ID}, ErrMissingFields},
		{"short name", ProfileUpdate{SessionID: session.ID, Name: "A"}, ErrNameTooShort},
		{"bad new email", ProfileUpdate{SessionID: session.ID, Name: "Asel", NewEmail: "bad"}, ErrInvalidEmail},
		{"taken email", ProfileUpdate{SessionID: session.ID, Name: "Asel", NewEmail: "dana@example.com"}, ErrEmailTaken},
		{"no identity", ProfileUpdate{Name: "Asel"}, ErrMissingFields},
		{"unknown email", ProfileUpdate{Email: "ghost@example.com", Name: "Asel"}, ErrUserNotFound},
		{"bad session", ProfileUpdate{SessionID: "nope", Name: "Asel"}, ErrSessionInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.UpdateProfile(context.Background(), tt.upd); !errors.Is(err, tt.wantErr) {
				t.Errorf("UpdateProfile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	user, err := s.UpdateProfile(context.Background(), ProfileUpdate{
		SessionID: session.ID,
		Name:      "Asel K.",
		NewEmail:  "asel.k@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Asel K." || user.Email != "asel.k@example.com" {
		t.Errorf("unexpected user %+v", user)
	}

	// The session follows the new email.
	owner, _, err := s.CheckSession(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("session lost after email change: %v", err)
	}
	if owner.ID != user.ID {
		t.Errorf("session owner = %q, want %q", owner.ID, user.ID)
	}
}

func TestAuthServiceCompleteMission(t *testing.T) {
	users := newFakeUsers()
	s, _ := newTestAuthService(users)

	if _, err := s.Register(context.Background(), "Asel", "asel@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, session, err := s.Login(context.Background(), "asel@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	user, err := s.CompleteMission(context.Background(), session.ID, "abylai-1", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Capped mission XP plus the first mission achievement.
	if user.XP != maxMissionXP+5 {
		t.Errorf("xp = %d, want %d", user.XP, maxMissionXP+5)
	}
	if user.Streak != 1 || len(user.CompletedMissions) != 1 {
		t.Errorf("unexpected user %+v", user)
	}

	if _, err := s.CompleteMission(context.Background(), "bad", "abylai-1", 5); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestAuthServiceSweepSessions(t *testing.T) {
	s, sessions := newTestAuthService(newFakeUsers())

	_ = sessions.Save(context.Background(), entities.NewSession("old", "a@b.kz", authNow.Add(-48*time.Hour)))
	_ = sessions.Save(context.Background(), entities.NewSession("new", "a@b.kz", authNow))

	active, err := s.SweepSessions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active != 1 {
		t.Errorf("active = %d, want 1", active)
	}
}
