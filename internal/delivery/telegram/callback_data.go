package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

// Callback action constants.
const (
	actionLanguage = "lang"
	actionAnswer   = "ans"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildLanguageCallback(lang entities.Language) string {
	return callbackData{
		Action: actionLanguage,
		Params: []string{string(lang)},
	}.encode()
}

// buildAnswerCallback builds callback data for picking an option.
// Both numbers are 1-based.
func buildAnswerCallback(question, option int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{strconv.Itoa(question), strconv.Itoa(option)},
	}.encode()
}

// parseAnswerCallback returns the question and option numbers of an ans callback.
func parseAnswerCallback(cd callbackData) (question, option int, ok bool) {
	if cd.Action != actionAnswer || len(cd.Params) != 2 {
		return 0, 0, false
	}

	question, err1 := strconv.Atoi(cd.Params[0])
	option, err2 := strconv.Atoi(cd.Params[1])
	if err1 != nil || err2 != nil || question < 1 || option < 1 {
		return 0, 0, false
	}

	return question, option, true
}
