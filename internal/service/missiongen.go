package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/llm"
)

const (
	missionAttempts   = 3
	maxPreviousInList = 5
	maxWeakAreas      = 3
	noCompleted       = "жоқ"
	defaultFocus      = "Қазақстан тарихы жалпы"
)

// MissionGenService generates game missions: choice decisions, story
// scenarios and personalized lessons.
type MissionGenService struct {
	chain     Completer
	openai    llm.Client
	fallbacks FallbackSource
	logger    *zap.Logger
}

// NewMissionGenService creates a new MissionGenService. Scenarios and
// personalized lessons use openai only, choice missions use the whole chain.
func NewMissionGenService(chain Completer, openai llm.Client, fallbacks FallbackSource, logger *zap.Logger) *MissionGenService {
	return &MissionGenService{
		chain:     chain,
		openai:    openai,
		fallbacks: fallbacks,
		logger:    logger,
	}
}

// ChoiceResult is a generated or offline choice mission.
type ChoiceResult struct {
	Mission  entities.MissionChoice
	Attempt  int // successful attempt, 0 for fallback
	Fallback bool
}

// GenerateChoice asks the model for a decision mission up to three times and
// falls back to the offline mission of the character.
func (s *MissionGenService) GenerateChoice(ctx context.Context, level int, previous []string, character string) ChoiceResult {
	character = strings.TrimSpace(character)
	cc, ok := characterContexts[character]
	if !ok {
		character = s.fallbacks.DefaultCharacter()
		cc = characterContexts[character]
	}

	prompt := llm.Prompt{
		User:        missionPrompt(character, cc, level, previous),
		Temperature: 0.7,
		MaxTokens:   500,
		JSON:        true,
	}

	if s.chain.Configured() {
		for attempt := 1; attempt <= missionAttempts; attempt++ {
			text, _, err := s.chain.CompleteWithModel(ctx, prompt)
			if err != nil {
				s.logger.Warn("mission generation attempt failed", zap.Int("attempt", attempt), zap.Error(err))
				if ctx.Err() != nil {
					break
				}
				continue
			}

			var mission entities.MissionChoice
			if err := llm.DecodeJSON(text, &mission); err != nil || !mission.Valid() {
				s.logger.Warn("invalid generated mission", zap.Int("attempt", attempt), zap.Error(err))
				continue
			}

			return ChoiceResult{Mission: mission, Attempt: attempt}
		}
	}

	return ChoiceResult{Mission: s.fallbacks.Mission(character), Fallback: true}
}

// ScenarioRequest describes one step of a character story.
type ScenarioRequest struct {
	Character string
	Level     int
	Number    int
	Prompt    string
	Language  string
}

// ScenarioResult is a generated or offline scenario step.
type ScenarioResult struct {
	Scenario entities.Scenario
	Fallback bool
}

// GenerateScenario runs the client supplied prompt. Invalid or failed
// generations are replaced with the offline scenario.
func (s *MissionGenService) GenerateScenario(ctx context.Context, req ScenarioRequest) (ScenarioResult, error) {
	req.Character = strings.TrimSpace(req.Character)
	if req.Character == "" || strings.TrimSpace(req.Prompt) == "" {
		return ScenarioResult{}, ErrMissingFields
	}
	if !s.openai.Configured() {
		return ScenarioResult{}, ErrAIUnavailable
	}

	locale := entities.ParseLanguage(req.Language).Locale()

	fallback := ScenarioResult{
		Scenario: s.fallbacks.Scenario(req.Character, req.Number, locale),
		Fallback: true,
	}

	text, err := s.openai.Complete(ctx, llm.Prompt{
		System:      scenarioSystemPrompt,
		User:        req.Prompt,
		Temperature: 0.7,
		MaxTokens:   2000,
		JSON:        true,
	})
	if err != nil {
		s.logger.Warn("scenario generation failed", zap.String("character", req.Character), zap.Error(err))
		return fallback, nil
	}

	raw, err := llm.ExtractJSON(text)
	if err != nil {
		return fallback, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return fallback, nil
	}
	for _, f := range entities.ScenarioRequiredFields {
		if _, ok := fields[f]; !ok {
			s.logger.Warn("generated scenario misses a field", zap.String("field", f))
			return fallback, nil
		}
	}

	var scenario entities.Scenario
	if err := json.Unmarshal([]byte(raw), &scenario); err != nil {
		return fallback, nil
	}

	return ScenarioResult{Scenario: scenario}, nil
}

// PersonalizedRequest is the learner profile used for a personalized lesson.
type PersonalizedRequest struct {
	Level     int
	Completed []string
	WeakAreas []string
	Language  string
}

// Personalized generates a lesson that avoids completed missions and focuses
// on weak areas. There is no offline fallback.
func (s *MissionGenService) Personalized(ctx context.Context, req PersonalizedRequest) (*entities.LearningContent, error) {
	if !entities.ValidLevel(req.Level) {
		return nil, ErrInvalidLevel
	}

	avoid := noCompleted
	if len(req.Completed) > 0 {
		avoid = strings.Join(req.Completed[:min(len(req.Completed), maxPreviousInList)], ", ")
	}
	focus := defaultFocus
	if len(req.WeakAreas) > 0 {
		focus = strings.Join(req.WeakAreas[:min(len(req.WeakAreas), maxWeakAreas)], ", ")
	}

	text, err := s.openai.Complete(ctx, llm.Prompt{
		User:        personalizedPrompt(req.Level, avoid, focus),
		Temperature: 0.7,
		MaxTokens:   1500,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	var content entities.LearningContent
	if err := llm.DecodeJSON(text, &content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	if err := content.Validate(0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	content.Level = req.Level
	content.AIGenerated = true
	content.Model = s.openai.Model()
	content.Personalized = true

	return &content, nil
}
