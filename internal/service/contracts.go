package service

import (
	"context"
	"time"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, u *entities.User) error
	EnsureTelegramUser(ctx context.Context, u *entities.User) (*entities.User, error)
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*entities.User, error)
	Update(ctx context.Context, u *entities.User) error
	TopByXP(ctx context.Context, limit int) ([]*entities.User, error)
}

type AnswerRepository interface {
	Append(ctx context.Context, rec entities.AnswerRecord) error
	ListByUser(ctx context.Context, userID string) ([]entities.AnswerRecord, error)
}

// MissionStore keeps the active bot mission per Telegram user.
type MissionStore interface {
	Store(telegramID int64, mission *entities.Mission)
	Get(telegramID int64) (*entities.Mission, bool)
	Delete(telegramID int64)
}

// SessionStore persists web sessions.
type SessionStore interface {
	Save(ctx context.Context, s *entities.Session) error
	Get(ctx context.Context, id string) (*entities.Session, error)
	Delete(ctx context.Context, id string) error
	RenameEmail(ctx context.Context, oldEmail, newEmail string) error
	Sweep(ctx context.Context, now time.Time, ttl time.Duration) (int, error)
}

type ClanRepository interface {
	Create(ctx context.Context, clan entities.Clan) error
	AddMember(ctx context.Context, clanName, email string, now time.Time) error
	List(ctx context.Context) ([]entities.Clan, error)
	Leaderboard(ctx context.Context) ([]entities.ClanStanding, error)
	MembersStatus(ctx context.Context, clanName string, day time.Time) ([]entities.MemberStatus, error)
}

type ActivityRepository interface {
	Track(ctx context.Context, a entities.DailyActivity) error
}

type ContactRepository interface {
	Save(ctx context.Context, m entities.ContactMessage) error
}

// FallbackSource serves offline content when no language model answers.
type FallbackSource interface {
	Lesson(topic string) (*entities.LearningContent, bool)
	DefaultTopics(level int) []string
	DefaultCharacter() string
	Mission(character string) entities.MissionChoice
	Scenario(character string, number int, locale string) entities.Scenario
}

// SourceFetcher downloads official texts for lesson generation.
type SourceFetcher interface {
	Fetch(ctx context.Context, urls []string) ([]string, []string)
}
