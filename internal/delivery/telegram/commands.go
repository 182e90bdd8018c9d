package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/service"
)

func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newPlainMessage(chatID, msgWelcome)
		msg.ReplyMarkup = buildLanguageKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleSetLanguage(userID int64, lang entities.Language) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.missions.SetLanguage(ctx, userID, lang); err != nil {
			return fmt.Errorf("set language: %w", err)
		}
		return h.send(newPlainMessage(chatID, textFor(lang).languageSet))
	}
}

// handleMissions starts a new mission and removes the answer buttons from
// the previous one.
func (h *Handler) handleMissions(userID int64, lang entities.Language) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		mission, err := h.missions.StartMission(ctx, userID)
		if err != nil {
			if errors.Is(err, service.ErrNoContent) {
				return h.send(newPlainMessage(chatID, textFor(lang).noContent))
			}
			return fmt.Errorf("start mission: %w", err)
		}

		msg := newPlainMessage(chatID, formatMission(mission))
		if kb := buildMissionKeyboard(mission); kb != nil {
			msg.ReplyMarkup = *kb
		}

		sent, err := h.bot.Send(msg)
		if err != nil {
			return fmt.Errorf("send mission: %w", err)
		}

		prev, hadPrev := h.messages.UpsertAndGetPrev(userID, chatID, sent.MessageID)
		if hadPrev {
			h.removeKeyboard(prev.ChatID, prev.MessageID)
		}

		return nil
	}
}

func (h *Handler) removeKeyboard(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := h.bot.Request(edit); err != nil {
		h.logger.Debug("failed to remove mission keyboard",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err),
		)
	}
}

// parseAnswerArgs splits "/answer <n> <text>" arguments. It returns the
// message to show when the arguments are malformed.
func parseAnswerArgs(lang entities.Language, args string) (int, string, string) {
	t := textFor(lang)

	numStr, answer, found := strings.Cut(strings.TrimSpace(args), " ")
	answer = strings.TrimSpace(answer)
	if !found || numStr == "" || answer == "" {
		return 0, "", t.answerFormat
	}

	num, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, "", t.questionNotNumber
	}
	if num < 1 {
		return 0, "", t.invalidQuestion
	}

	return num, answer, ""
}

func (h *Handler) handleAnswerCommand(userID int64, lang entities.Language, args string) HandlerFunc {
	num, answer, problem := parseAnswerArgs(lang, args)
	if problem != "" {
		return func(ctx context.Context, chatID int64) error {
			return h.send(newPlainMessage(chatID, problem))
		}
	}
	return h.handleAnswer(userID, lang, num, answer)
}

func (h *Handler) handleAnswer(userID int64, lang entities.Language, num int, answer string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, err := h.answer(ctx, userID, lang, num, answer)
		if err != nil {
			return err
		}
		return h.send(newPlainMessage(chatID, text))
	}
}

// answer evaluates the answer and returns the reply for the user.
func (h *Handler) answer(ctx context.Context, userID int64, lang entities.Language, num int, answer string) (string, error) {
	t := textFor(lang)

	res, err := h.missions.Answer(ctx, userID, num, strings.ToLower(answer))
	switch {
	case errors.Is(err, service.ErrNoActiveMission):
		return t.needMission, nil
	case errors.Is(err, service.ErrInvalidQuestionNumber):
		return t.invalidQuestion, nil
	case err != nil:
		return "", fmt.Errorf("answer: %w", err)
	}

	h.logger.Debug("answer evaluated",
		zap.Int64("user_id", userID),
		zap.Int("question", num),
		zap.Bool("correct", res.Correct),
	)

	text := formatAnswerResult(lang, res)
	if res.Completed {
		h.finishMission(userID)
		text += "\n\n" + t.missionComplete
	}

	return text, nil
}

// finishMission removes the answer buttons of a completed mission.
func (h *Handler) finishMission(userID int64) {
	msg, ok := h.messages.Get(userID)
	if !ok {
		return
	}
	h.removeKeyboard(msg.ChatID, msg.MessageID)
	h.messages.Delete(userID)
}

func (h *Handler) handleProfile(userID int64, lang entities.Language) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		user, err := h.missions.Profile(ctx, userID)
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		return h.send(newPlainMessage(chatID, formatProfile(user)))
	}
}

func (h *Handler) handleLeaderboard(lang entities.Language) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		users, err := h.missions.Leaderboard(ctx, leaderboardSize)
		if err != nil {
			return fmt.Errorf("get leaderboard: %w", err)
		}
		return h.send(newPlainMessage(chatID, formatLeaderboard(lang, users)))
	}
}

func (h *Handler) handleRecommendations(userID int64, lang entities.Language) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		recs, err := h.missions.Recommendations(ctx, userID)
		if err != nil {
			return fmt.Errorf("get recommendations: %w", err)
		}
		return h.send(newPlainMessage(chatID, formatRecommendations(lang, recs)))
	}
}

func (h *Handler) handleHelp(lang entities.Language) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, textFor(lang).help))
	}
}
