package entities

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidStructure = errors.New("invalid content structure")
)

// OptionsPerQuestion is the number of answer options in generated lessons.
const OptionsPerQuestion = 4

// LearningContent is a generated lesson in Kazakh with multiple choice questions.
type LearningContent struct {
	TextKZ         string     `json:"text_kz"`
	QuestionsKZ    []string   `json:"questions_kz"`
	OptionsKZ      [][]string `json:"options_kz"`
	CorrectAnswers []int      `json:"correct_answers"`
	TextRU         string     `json:"text_ru,omitempty"`
	QuestionsRU    []string   `json:"questions_ru,omitempty"`
	Topic          string     `json:"topic,omitempty"`
	Level          int        `json:"level,omitempty"`
	Sources        []string   `json:"sources,omitempty"`
	AIGenerated    bool       `json:"ai_generated,omitempty"`
	Model          string     `json:"model,omitempty"`
	Personalized   bool       `json:"personalized,omitempty"`
}

// Validate checks the required fields. When questions is positive the lesson
// must contain exactly that many questions, option rows and answers.
func (c *LearningContent) Validate(questions int) error {
	switch {
	case c.TextKZ == "":
		return fmt.Errorf("%w: text_kz", ErrMissingField)
	case c.QuestionsKZ == nil:
		return fmt.Errorf("%w: questions_kz", ErrMissingField)
	case c.OptionsKZ == nil:
		return fmt.Errorf("%w: options_kz", ErrMissingField)
	case c.CorrectAnswers == nil:
		return fmt.Errorf("%w: correct_answers", ErrMissingField)
	}

	if questions <= 0 {
		return nil
	}

	if len(c.QuestionsKZ) != questions {
		return fmt.Errorf("%w: questions_kz must be a list of %d questions", ErrInvalidStructure, questions)
	}
	if len(c.OptionsKZ) != questions {
		return fmt.Errorf("%w: options_kz must be a list of %d options arrays", ErrInvalidStructure, questions)
	}
	for _, options := range c.OptionsKZ {
		if len(options) != OptionsPerQuestion {
			return fmt.Errorf("%w: each options array must contain %d options", ErrInvalidStructure, OptionsPerQuestion)
		}
	}
	if len(c.CorrectAnswers) != questions {
		return fmt.Errorf("%w: correct_answers must be a list of %d integers", ErrInvalidStructure, questions)
	}
	for _, idx := range c.CorrectAnswers {
		if idx < 0 || idx >= OptionsPerQuestion {
			return fmt.Errorf("%w: correct answer index %d out of range", ErrInvalidStructure, idx)
		}
	}

	return nil
}

// MissionChoice is a short game decision with one historically correct option.
type MissionChoice struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Valid reports whether a generated mission can be shown to players.
func (m *MissionChoice) Valid() bool {
	return len([]rune(m.Text)) > 10 &&
		len(m.Options) >= 3 &&
		m.CorrectIndex >= 0 &&
		m.CorrectIndex < len(m.Options)
}

// ScenarioOption is one choice inside a scenario.
type ScenarioOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Scenario is one step of a character story mission.
type Scenario struct {
	Scenario           int              `json:"scenario"`
	Text               string           `json:"text"`
	Options            []ScenarioOption `json:"options"`
	CorrectAnswer      string           `json:"correctAnswer"`
	WrongConsequence   string           `json:"wrongConsequence"`
	CorrectConsequence string           `json:"correctConsequence"`
	HistoricalContext  string           `json:"historicalContext,omitempty"`
	NextScenarioSetup  string           `json:"nextScenarioSetup,omitempty"`
}

// ScenarioRequiredFields are the keys a generated scenario must contain.
var ScenarioRequiredFields = []string{
	"scenario", "text", "options", "correctAnswer", "wrongConsequence", "correctConsequence",
}

// AnswerGrade is the result of checking a free-text answer.
type AnswerGrade struct {
	IsCorrect   bool   `json:"is_correct"`
	Score       int    `json:"score"`
	Feedback    string `json:"feedback"`
	Suggestions string `json:"suggestions"`
	Explanation string `json:"explanation"`
}
