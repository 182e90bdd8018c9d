package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

const maxButtonLabel = 40

// buildLanguageKeyboard builds keyboard for choosing the interface language.
func buildLanguageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇰🇿 Қазақша", buildLanguageCallback(entities.LanguageKZ)),
			tgbotapi.NewInlineKeyboardButtonData("🇷🇺 Русский", buildLanguageCallback(entities.LanguageRU)),
		),
	)
}

// buildMissionKeyboard adds one button per option of every choice question.
// It returns nil when no question has options to pick from.
func buildMissionKeyboard(m *entities.Mission) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, q := range m.Questions {
		if q.Type != entities.QuestionChoice || !q.HasOptions() {
			continue
		}
		for j, option := range q.Options {
			label := truncate(fmt.Sprintf("%d. %s", i+1, option), maxButtonLabel)
			button := tgbotapi.NewInlineKeyboardButtonData(label, buildAnswerCallback(i+1, j+1))
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
		}
	}

	if len(rows) == 0 {
		return nil
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}
