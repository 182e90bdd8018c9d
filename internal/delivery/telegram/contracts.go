package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/service"
	"github.com/aliskhannn/batyr-bol/internal/storage"
)

// Bot is the part of *tgbotapi.BotAPI used by the handler.
type Bot interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type MissionService interface {
	EnsureUser(ctx context.Context, telegramID int64, name string) (*entities.User, error)
	SetLanguage(ctx context.Context, telegramID int64, lang entities.Language) error
	Profile(ctx context.Context, telegramID int64) (*entities.User, error)
	StartMission(ctx context.Context, telegramID int64) (*entities.Mission, error)
	Answer(ctx context.Context, telegramID int64, number int, answer string) (*service.AnswerResult, error)
	Leaderboard(ctx context.Context, limit int) ([]*entities.User, error)
	Recommendations(ctx context.Context, telegramID int64) ([]service.Recommendation, error)
}

type MessageStorage interface {
	UpsertAndGetPrev(userID int64, chatID int64, messageID int) (storage.MissionMessage, bool)
	Get(userID int64) (storage.MissionMessage, bool)
	Delete(userID int64)
}
