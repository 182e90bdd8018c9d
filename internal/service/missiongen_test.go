package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const validChoice = `{"text": "Жоңғарлар шекараға жақындады. Не істейсіз?", "options": ["Шабуыл", "Келіссөз", "Шегіну"], "correctIndex": 1, "explanation": "Дипломатия"}`

func TestGenerateChoice(t *testing.T) {
	tests := []struct {
		name         string
		completer    *fakeCompleter
		wantFallback bool
		wantAttempt  int
		wantCalls    int
	}{
		{
			name:        "first attempt",
			completer:   &fakeCompleter{configured: true, responses: []completion{{text: validChoice}}},
			wantAttempt: 1,
			wantCalls:   1,
		},
		{
			name: "second attempt after invalid mission",
			completer: &fakeCompleter{configured: true, responses: []completion{
				{text: `{"text": "short", "options": ["a"], "correctIndex": 0}`},
				{text: validChoice},
			}},
			wantAttempt: 2,
			wantCalls:   2,
		},
		{
			name:         "all attempts fail",
			completer:    &fakeCompleter{configured: true, responses: []completion{{err: errors.New("rate limited")}}},
			wantFallback: true,
			wantCalls:    missionAttempts,
		},
		{
			name:         "not configured",
			completer:    &fakeCompleter{},
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMissionGenService(tt.completer, &fakeClient{}, newTestFallbacks(), zap.NewNop())

			res := s.GenerateChoice(context.Background(), 2, nil, "Абай")

			if res.Fallback != tt.wantFallback || res.Attempt != tt.wantAttempt {
				t.Errorf("fallback/attempt = %v/%d, want %v/%d", res.Fallback, res.Attempt, tt.wantFallback, tt.wantAttempt)
			}
			if len(tt.completer.prompts) != tt.wantCalls {
				t.Errorf("model called %d times, want %d", len(tt.completer.prompts), tt.wantCalls)
			}
			if tt.wantFallback && res.Mission.Text != "Offline mission for Абай" {
				t.Errorf("fallback mission = %q", res.Mission.Text)
			}
		})
	}
}

func TestGenerateChoiceUnknownCharacter(t *testing.T) {
	s := NewMissionGenService(&fakeCompleter{}, &fakeClient{}, newTestFallbacks(), zap.NewNop())

	res := s.GenerateChoice(context.Background(), 1, nil, "Unknown")
	if res.Mission.Text != "Offline mission for Абылай хан" {
		t.Errorf("mission = %q, want the default character", res.Mission.Text)
	}
}

func TestGenerateScenario(t *testing.T) {
	const complete = `{"scenario": 2, "text": "Абылай хан", "options": [{"id": "a", "text": "x", "isCorrect": true}], "correctAnswer": "a", "wrongConsequence": "w", "correctConsequence": "c"}`
	const partial = `{"scenario": 2, "text": "Абылай хан", "options": []}`

	req := ScenarioRequest{Character: "Абылай хан", Level: 2, Number: 2, Prompt: "story", Language: "ru"}

	t.Run("generated", func(t *testing.T) {
		client := &fakeClient{configured: true, text: complete}
		s := NewMissionGenService(&fakeCompleter{}, client, newTestFallbacks(), zap.NewNop())

		res, err := s.GenerateScenario(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Fallback || res.Scenario.CorrectAnswer != "a" || len(res.Scenario.Options) != 1 {
			t.Errorf("unexpected result %+v", res)
		}
		if client.prompts[0].User != "story" || client.prompts[0].System == "" {
			t.Errorf("unexpected prompt %+v", client.prompts[0])
		}
	})

	t.Run("missing fields falls back", func(t *testing.T) {
		client := &fakeClient{configured: true, text: partial}
		s := NewMissionGenService(&fakeCompleter{}, client, newTestFallbacks(), zap.NewNop())

		res, err := s.GenerateScenario(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Fallback || res.Scenario.Text != "offline ru" || res.Scenario.Scenario != 2 {
			t.Errorf("unexpected result %+v", res)
		}
	})

	t.Run("provider error falls back", func(t *testing.T) {
		client := &fakeClient{configured: true, err: errors.New("timeout")}
		s := NewMissionGenService(&fakeCompleter{}, client, newTestFallbacks(), zap.NewNop())

		res, err := s.GenerateScenario(context.Background(), ScenarioRequest{Character: "Абай", Prompt: "p", Language: "kz"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Fallback || res.Scenario.Text != "offline kk" {
			t.Errorf("unexpected result %+v", res)
		}
	})

	t.Run("not configured", func(t *testing.T) {
		s := NewMissionGenService(&fakeCompleter{}, &fakeClient{}, newTestFallbacks(), zap.NewNop())

		if _, err := s.GenerateScenario(context.Background(), req); !errors.Is(err, ErrAIUnavailable) {
			t.Errorf("expected ErrAIUnavailable, got %v", err)
		}
	})

	t.Run("missing prompt", func(t *testing.T) {
		s := NewMissionGenService(&fakeCompleter{}, &fakeClient{configured: true}, newTestFallbacks(), zap.NewNop())

		if _, err := s.GenerateScenario(context.Background(), ScenarioRequest{Character: "Абай"}); !errors.Is(err, ErrMissingFields) {
			t.Errorf("expected ErrMissingFields, got %v", err)
		}
	})
}

func TestPersonalized(t *testing.T) {
	const lesson = `{"text_kz": "мәтін", "questions_kz": ["a", "b", "c"], "options_kz": [["1","2","3","4"],["1","2","3","4"],["1","2","3","4"]], "correct_answers": [0, 1, 2], "topic": "Абай"}`

	t.Run("generated", func(t *testing.T) {
		client := &fakeClient{configured: true, text: lesson}
		s := NewMissionGenService(&fakeCompleter{}, client, newTestFallbacks(), zap.NewNop())

		content, err := s.Personalized(context.Background(), PersonalizedRequest{
			Level:     3,
			Completed: []string{"m1", "m2", "m3", "m4", "m5", "m6"},
			WeakAreas: []string{"w1", "w2", "w3", "w4"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !content.AIGenerated || !content.Personalized || content.Model != "gpt-4o-mini" || content.Level != 3 {
			t.Errorf("unexpected flags %+v", content)
		}

		prompt := client.prompts[0].User
		if !strings.Contains(prompt, "m1, m2, m3, m4, m5") || strings.Contains(prompt, "m6") {
			t.Error("prompt must list the first five completed missions")
		}
		if !strings.Contains(prompt, "w1, w2, w3") || strings.Contains(prompt, "w4") {
			t.Error("prompt must list the first three weak areas")
		}
	})

	t.Run("defaults in prompt", func(t *testing.T) {
		client := &fakeClient{configured: true, text: lesson}
		s := NewMissionGenService(&fakeCompleter{}, client, newTestFallbacks(), zap.NewNop())

		if _, err := s.Personalized(context.Background(), PersonalizedRequest{Level: 1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		prompt := client.prompts[0].User
		if !strings.Contains(prompt, noCompleted) || !strings.Contains(prompt, defaultFocus) {
			t.Error("prompt misses the defaults for an empty profile")
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name    string
			client  *fakeClient
			level   int
			wantErr error
		}{
			{"invalid level", &fakeClient{configured: true, text: lesson}, 9, ErrInvalidLevel},
			{"not configured", &fakeClient{}, 2, ErrAIUnavailable},
			{"provider error", &fakeClient{configured: true, err: errors.New("boom")}, 2, ErrAIUnavailable},
			{"bad json", &fakeClient{configured: true, text: "oops"}, 2, ErrAIUnavailable},
			{"missing fields", &fakeClient{configured: true, text: `{"text_kz": "x"}`}, 2, ErrAIUnavailable},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := NewMissionGenService(&fakeCompleter{}, tt.client, newTestFallbacks(), zap.NewNop())
				if _, err := s.Personalized(context.Background(), PersonalizedRequest{Level: tt.level}); !errors.Is(err, tt.wantErr) {
					t.Errorf("Personalized() error = %v, want %v", err, tt.wantErr)
				}
			})
		}
	})
}
