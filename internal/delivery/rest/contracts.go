package rest

import (
	"context"
	"time"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*entities.User, error)
	Login(ctx context.Context, email, password string) (*entities.User, *entities.Session, error)
	CheckSession(ctx context.Context, id string) (*entities.User, *entities.Session, error)
	Logout(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, upd service.ProfileUpdate) (*entities.User, error)
	CompleteMission(ctx context.Context, sessionID, mission string, xp int) (*entities.User, error)
}

type ContentService interface {
	Generate(ctx context.Context, topic string, level int, sourceURLs []string) (*entities.LearningContent, error)
	GenerateOpenAI(ctx context.Context, topic string, level int) (*entities.LearningContent, error)
	Translate(ctx context.Context, textKZ string) (string, error)
}

type MissionGenService interface {
	GenerateChoice(ctx context.Context, level int, previous []string, character string) service.ChoiceResult
	GenerateScenario(ctx context.Context, req service.ScenarioRequest) (service.ScenarioResult, error)
	Personalized(ctx context.Context, req service.PersonalizedRequest) (*entities.LearningContent, error)
}

type GradingService interface {
	Check(ctx context.Context, req service.GradeRequest) (entities.AnswerGrade, error)
}

type ClanService interface {
	Create(ctx context.Context, name, email string) error
	Join(ctx context.Context, name, email string) error
	List(ctx context.Context) ([]entities.Clan, error)
	Leaderboard(ctx context.Context) ([]entities.ClanStanding, error)
	TrackActivity(ctx context.Context, email string, completed, skipped bool) error
	MembersStatus(ctx context.Context, email string) (*service.ClanStatus, error)
}

type ContactService interface {
	Submit(ctx context.Context, m entities.ContactMessage) error
}

type DuelService interface {
	Challenge(from, to string) (string, error)
}

type RateLimiter interface {
	Allow(key string, limit int, window time.Duration, now time.Time) (bool, time.Duration)
}
