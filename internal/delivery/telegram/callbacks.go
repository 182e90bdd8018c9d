package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock".
	defer func() {
		if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			h.logger.Debug("callback answer error", zap.Error(err))
		}
	}()

	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	lang := h.ensureUser(ctx, cb.From)
	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionLanguage:
		if len(data.Params) != 1 {
			return
		}
		chosen := entities.ParseLanguage(data.Params[0])
		_ = h.withErrorHandling(chosen, h.languageCallback(cb, chosen))(ctx, chatID)

	case actionAnswer:
		question, option, ok := parseAnswerCallback(data)
		if !ok {
			h.logger.Warn("invalid answer callback", zap.String("data", cb.Data))
			return
		}
		_ = h.withErrorHandling(lang, h.handleAnswer(cb.From.ID, lang, question, strconv.Itoa(option)))(ctx, chatID)

	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}
}

// languageCallback stores the language and replaces the welcome message.
func (h *Handler) languageCallback(cb *tgbotapi.CallbackQuery, lang entities.Language) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.missions.SetLanguage(ctx, cb.From.ID, lang); err != nil {
			return err
		}

		edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, textFor(lang).languageSet)
		return h.send(edit)
	}
}
