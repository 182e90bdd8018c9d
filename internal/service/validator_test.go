package service

import (
	"testing"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

func TestAnswerValidatorValidate(t *testing.T) {
	v := NewAnswerValidator()

	tests := []struct {
		name    string
		answer  string
		correct string
		want    bool
	}{
		{"exact", "Абылай хан", "Абылай хан", true},
		{"case and spaces", "  абылай   ХАН ", "Абылай хан", true},
		{"typo", "Абылай хн", "Абылай хан", true},
		{"yo folded", "ёлка", "елка", true},
		{"different", "Кенесары", "Абылай хан", false},
		{"empty", "", "Абылай хан", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Validate(tt.answer, tt.correct); got != tt.want {
				t.Errorf("Validate(%q, %q) = %v, want %v", tt.answer, tt.correct, got, tt.want)
			}
		})
	}
}

func TestAnswerValidatorKeywordMatch(t *testing.T) {
	v := NewAnswerValidator()

	tests := []struct {
		name    string
		correct string
		answer  string
		want    bool
	}{
		{"shared keyword", "Казахское ханство основано", "ханство было", true},
		{"four letter word", "Абай", "я думаю это абай", true},
		{"year", "в 1465 г", "1465", true},
		{"short words ignored", "в г до", "в г до", false},
		{"no overlap", "Казахское ханство", "не знаю", false},
		{"empty answer", "Казахское ханство", " ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.KeywordMatch(tt.correct, tt.answer); got != tt.want {
				t.Errorf("KeywordMatch(%q, %q) = %v, want %v", tt.correct, tt.answer, got, tt.want)
			}
		})
	}
}

func TestAnswerValidatorScore(t *testing.T) {
	v := NewAnswerValidator()

	if got := v.Score("Казахское ханство основано", "ханство основано"); got != 66 {
		t.Errorf("Score = %d, want 66", got)
	}
	if got := v.Score("Казахское ханство основано", ""); got != 0 {
		t.Errorf("Score for empty answer = %d, want 0", got)
	}
	if got := v.Score("да", "Да"); got != 100 {
		t.Errorf("Score without keywords = %d, want 100", got)
	}
}

func TestAnswerValidatorCheckChoice(t *testing.T) {
	v := NewAnswerValidator()
	q := entities.Question{
		Type:          entities.QuestionChoice,
		Options:       []string{"Событие произошло позже", "1465 год", "Это другой исторический период", "Персонаж не связан с этим событием"},
		CorrectAnswer: "1465 год",
	}

	tests := []struct {
		answer string
		want   bool
	}{
		{"2", true},
		{"2)", true},
		{"1", false},
		{"1465 год", true},
		{"5", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			if got := v.Check(q, tt.answer); got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

func TestAnswerValidatorCheckOrdering(t *testing.T) {
	v := NewAnswerValidator()
	q := entities.Question{
		Type:         entities.QuestionOrdering,
		Options:      []string{"третий", "второй", "первый"},
		CorrectOrder: []string{"первый", "второй", "третий"},
	}

	tests := []struct {
		answer string
		want   bool
	}{
		{"3 2 1", true},
		{"3,2,1", true},
		{"1 2 3", false},
		{"3 3 1", false},
		{"сначала первый", true},
		{"не помню", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			if got := v.Check(q, tt.answer); got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}
