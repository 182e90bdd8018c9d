package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/metrics"
)

const leaderboardSize = 10

type Handler struct {
	bot      Bot
	logger   *zap.Logger
	missions MissionService
	messages MessageStorage
}

func NewHandler(bot Bot, logger *zap.Logger, missions MissionService, messages MessageStorage) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		missions: missions,
		messages: messages,
	}
}

// Run polls updates until ctx is cancelled.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		metrics.BotUpdatesTotal.WithLabelValues("callback").Inc()
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		metrics.BotUpdatesTotal.WithLabelValues("other").Inc()
		return
	}

	msg := update.Message
	from := msg.From
	chatID := msg.Chat.ID
	lang := h.ensureUser(ctx, from)

	if !msg.IsCommand() {
		metrics.BotUpdatesTotal.WithLabelValues("text").Inc()
		if strings.TrimSpace(msg.Text) == "" {
			return
		}
		_ = h.withErrorHandling(lang, h.handleAnswer(from.ID, lang, 1, msg.Text))(ctx, chatID)
		return
	}

	metrics.BotUpdatesTotal.WithLabelValues("command").Inc()
	h.logger.Debug("command received",
		zap.Int64("chat_id", chatID),
		zap.String("command", msg.Command()),
	)

	var fn HandlerFunc
	switch msg.Command() {
	case "start":
		fn = h.handleStart()
	case "kz":
		fn = h.handleSetLanguage(from.ID, entities.LanguageKZ)
	case "ru":
		fn = h.handleSetLanguage(from.ID, entities.LanguageRU)
	case "missions":
		fn = h.handleMissions(from.ID, lang)
	case "answer":
		fn = h.handleAnswerCommand(from.ID, lang, msg.CommandArguments())
	case "profile":
		fn = h.handleProfile(from.ID, lang)
	case "leaderboard":
		fn = h.handleLeaderboard(lang)
	case "recommendations":
		fn = h.handleRecommendations(from.ID, lang)
	default: // help and unknown commands
		fn = h.handleHelp(lang)
	}

	_ = h.withErrorHandling(lang, fn)(ctx, chatID)
}

// ensureUser registers the sender and returns their interface language.
func (h *Handler) ensureUser(ctx context.Context, from *tgbotapi.User) entities.Language {
	user, err := h.missions.EnsureUser(ctx, from.ID, displayName(from))
	if err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
		return entities.LanguageKZ
	}
	return user.Language
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message", zap.Error(err))
		return err
	}
	return nil
}
