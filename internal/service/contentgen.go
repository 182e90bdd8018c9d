package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/llm"
)

const (
	maxTopicLength     = 120
	maxTranslateLength = 4000
	generatedQuestions = 4
	translationPrefix  = "Перевод: "
)

// Completer is a language model chain that reports the answering model.
type Completer interface {
	Configured() bool
	CompleteWithModel(ctx context.Context, p llm.Prompt) (string, string, error)
}

// ContentService generates Kazakh lessons with multiple choice questions.
type ContentService struct {
	llm       Completer
	openai    Completer
	fallbacks FallbackSource
	fetcher   SourceFetcher
	logger    *zap.Logger
}

// NewContentService creates a new ContentService.
func NewContentService(completer Completer, fallbacks FallbackSource, fetcher SourceFetcher, logger *zap.Logger) *ContentService {
	return &ContentService{
		llm:       completer,
		fallbacks: fallbacks,
		fetcher:   fetcher,
		logger:    logger,
	}
}

// WithOpenAI sets the completer used by GenerateOpenAI.
func (s *ContentService) WithOpenAI(c Completer) *ContentService {
	s.openai = c
	return s
}

// Generate returns a lesson on topic for the level. Texts from sourceURLs on
// official sites ground the lesson. When no model produces a valid lesson the
// offline lesson for the topic is returned, or ErrAIUnavailable if there is none.
func (s *ContentService) Generate(ctx context.Context, topic string, level int, sourceURLs []string) (*entities.LearningContent, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		if defaults := s.fallbacks.DefaultTopics(level); len(defaults) > 0 {
			topic = defaults[rand.Intn(len(defaults))]
		}
	}

	switch {
	case topic == "":
		return nil, ErrTopicRequired
	case utf8.RuneCountInString(topic) > maxTopicLength:
		return nil, ErrTopicTooLong
	case !entities.ValidLevel(level):
		return nil, ErrInvalidLevel
	}

	var texts, used []string
	if len(sourceURLs) > 0 {
		texts, used = s.fetcher.Fetch(ctx, sourceURLs)
	}

	content, err := s.generate(ctx, s.llm, topic, level, texts)
	if err == nil {
		content.Sources = used
		return content, nil
	}

	s.logger.Warn("content generation failed, using fallback",
		zap.String("topic", topic),
		zap.Int("level", level),
		zap.Error(err),
	)

	if lesson, ok := s.fallbacks.Lesson(topic); ok {
		lesson.Topic = topic
		lesson.Level = level
		return lesson, nil
	}

	return nil, ErrAIUnavailable
}

// GenerateOpenAI returns a lesson generated by OpenAI alone. There is no
// offline fallback.
func (s *ContentService) GenerateOpenAI(ctx context.Context, topic string, level int) (*entities.LearningContent, error) {
	topic = strings.TrimSpace(topic)
	switch {
	case topic == "":
		return nil, ErrTopicRequired
	case utf8.RuneCountInString(topic) > maxTopicLength:
		return nil, ErrTopicTooLong
	case !entities.ValidLevel(level):
		return nil, ErrInvalidLevel
	case s.openai == nil || !s.openai.Configured():
		return nil, ErrAIUnavailable
	}

	content, err := s.generate(ctx, s.openai, topic, level, nil)
	if err != nil {
		s.logger.Warn("openai content generation failed",
			zap.String("topic", topic),
			zap.Int("level", level),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	return content, nil
}

func (s *ContentService) generate(ctx context.Context, completer Completer, topic string, level int, sources []string) (*entities.LearningContent, error) {
	text, model, err := completer.CompleteWithModel(ctx, llm.Prompt{
		System:      contentSystemPrompt,
		User:        contentPrompt(topic, level, sources),
		Temperature: 0.7,
		MaxTokens:   2000,
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}

	var content entities.LearningContent
	if err := llm.DecodeJSON(text, &content); err != nil {
		return nil, err
	}
	if err := content.Validate(generatedQuestions); err != nil {
		return nil, fmt.Errorf("validate generated content: %w", err)
	}

	content.Topic = topic
	content.Level = level
	content.AIGenerated = true
	content.Model = model

	return &content, nil
}

// Translate translates a Kazakh text to Russian. When no model answers the
// text is returned with a "Перевод: " prefix.
func (s *ContentService) Translate(ctx context.Context, textKZ string) (string, error) {
	textKZ = strings.TrimSpace(textKZ)
	switch {
	case textKZ == "":
		return "", ErrMissingFields
	case utf8.RuneCountInString(textKZ) > maxTranslateLength:
		return "", ErrTextTooLong
	}

	text, _, err := s.llm.CompleteWithModel(ctx, llm.Prompt{
		User:        fmt.Sprintf(translatePrompt, textKZ),
		Temperature: 0.3,
		MaxTokens:   2000,
	})
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			s.logger.Warn("translation failed", zap.Error(err))
		}
		return translationPrefix + textKZ, nil
	}

	return text, nil
}
