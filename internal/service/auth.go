package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/repository"
	"github.com/aliskhannn/batyr-bol/internal/storage"
)

const (
	minNameLength     = 2
	minPasswordLength = 6
	maxMissionXP      = 50
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// AuthService registers web users and manages their sessions.
type AuthService struct {
	users    UserRepository
	sessions SessionStore
	ttl      time.Duration
	hashCost int
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService creates a new AuthService. Sessions live for ttl from login.
func NewAuthService(users UserRepository, sessions SessionStore, ttl time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		hashCost: bcrypt.DefaultCost,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates a web account.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*entities.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	switch {
	case name == "" || email == "" || password == "":
		return nil, ErrMissingFields
	case utf8.RuneCountInString(name) < minNameLength:
		return nil, ErrNameTooShort
	case utf8.RuneCountInString(password) < minPasswordLength:
		return nil, ErrPasswordTooShort
	case !ValidEmail(email):
		return nil, ErrInvalidEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := entities.NewWebUser(uuid.NewString(), name, email, string(hash), s.now().UTC())
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))

	return user, nil
}

// Login checks the password and opens a session. Accounts imported with a
// plaintext password are migrated to a bcrypt hash on the first login.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, *entities.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, nil, ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !s.checkPassword(user, password) {
		return nil, nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if user.PasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
		if err != nil {
			return nil, nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
		user.LegacyPassword = ""
	}
	user.LastLogin = now

	if err := s.users.Update(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("update user: %w", err)
	}

	session := entities.NewSession(uuid.NewString(), user.Email, now)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("save session: %w", err)
	}

	return user, session, nil
}

func (s *AuthService) checkPassword(user *entities.User, password string) bool {
	if user.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
	}
	return user.LegacyPassword != "" && user.LegacyPassword == password
}

// CheckSession returns the session owner. Expired sessions are removed.
func (s *AuthService) CheckSession(ctx context.Context, id string) (*entities.User, *entities.Session, error) {
	if id == "" {
		return nil, nil, ErrSessionInvalid
	}

	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, nil, ErrSessionInvalid
		}
		return nil, nil, err
	}

	now := s.now().UTC()
	if session.Expired(now, s.ttl) {
		if err := s.sessions.Delete(ctx, id); err != nil {
			s.logger.Warn("failed to delete expired session", zap.Error(err))
		}
		return nil, nil, ErrSessionInvalid
	}

	user, err := s.users.GetByEmail(ctx, session.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrSessionInvalid
		}
		return nil, nil, err
	}

	session.LastActivity = now
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("save session: %w", err)
	}

	return user, session, nil
}

// Logout deletes the session.
func (s *AuthService) Logout(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// ProfileUpdate identifies the user by session id or, failing that, by email.
type ProfileUpdate struct {
	SessionID string
	Email     string
	Name      string
	NewEmail  string
}

// UpdateProfile changes the name and optionally the email of a user.
func (s *AuthService) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*entities.User, error) {
	name := strings.TrimSpace(upd.Name)
	newEmail := strings.ToLower(strings.TrimSpace(upd.NewEmail))

	if name == "" {
		return nil, ErrMissingFields
	}
	if utf8.RuneCountInString(name) < minNameLength {
		return nil, ErrNameTooShort
	}
	if newEmail != "" && !ValidEmail(newEmail) {
		return nil, ErrInvalidEmail
	}

	user, err := s.resolveUser(ctx, upd)
	if err != nil {
		return nil, err
	}

	oldEmail := user.Email
	user.Name = name
	if newEmail != "" && newEmail != oldEmail {
		if _, err := s.users.GetByEmail(ctx, newEmail); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		user.Email = newEmail
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if user.Email != oldEmail {
		if err := s.sessions.RenameEmail(ctx, oldEmail, user.Email); err != nil {
			return nil, fmt.Errorf("move sessions: %w", err)
		}
	}

	return user, nil
}

func (s *AuthService) resolveUser(ctx context.Context, upd ProfileUpdate) (*entities.User, error) {
	if upd.SessionID != "" {
		user, _, err := s.CheckSession(ctx, upd.SessionID)
		return user, err
	}

	email := strings.ToLower(strings.TrimSpace(upd.Email))
	if email == "" {
		return nil, ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SweepSessions removes expired sessions and returns how many remain.
func (s *AuthService) SweepSessions(ctx context.Context) (int, error) {
	return s.sessions.Sweep(ctx, s.now().UTC(), s.ttl)
}

// CompleteMission awards XP for a mission finished in the web game. XP is
// capped at maxMissionXP per call.
func (s *AuthService) CompleteMission(ctx context.Context, sessionID, mission string, xp int) (*entities.User, error) {
	user, _, err := s.CheckSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	user.TouchDay(s.now().UTC())
	if xp > 0 {
		user.AddXP(min(xp, maxMissionXP))
	}
	user.CompleteMission(mission)

	for _, a := range CheckAchievements(user, nil) {
		user.Achievements = append(user.Achievements, a.Code)
		user.AddXP(a.XPReward)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}
