package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/llm"
)

const (
	maxGradeFieldLength = 600
	passingScore        = 50
)

// GradeRequest is a free-text answer to check.
type GradeRequest struct {
	Question      string
	UserAnswer    string
	CorrectAnswer string // optional reference answer
	Context       string // optional lesson text
}

// GradingService grades free-text answers with a language model and falls
// back to keyword overlap.
type GradingService struct {
	llm       Completer
	validator *AnswerValidator
	logger    *zap.Logger
}

// NewGradingService creates a new GradingService.
func NewGradingService(completer Completer, validator *AnswerValidator, logger *zap.Logger) *GradingService {
	return &GradingService{
		llm:       completer,
		validator: validator,
		logger:    logger,
	}
}

// Check grades the answer.
func (s *GradingService) Check(ctx context.Context, req GradeRequest) (entities.AnswerGrade, error) {
	req.Question = strings.TrimSpace(req.Question)
	req.UserAnswer = strings.TrimSpace(req.UserAnswer)

	switch {
	case req.Question == "" || req.UserAnswer == "":
		return entities.AnswerGrade{}, ErrMissingFields
	case utf8.RuneCountInString(req.Question) > maxGradeFieldLength,
		utf8.RuneCountInString(req.UserAnswer) > maxGradeFieldLength:
		return entities.AnswerGrade{}, ErrTextTooLong
	}

	if s.llm.Configured() {
		grade, err := s.gradeWithModel(ctx, req)
		if err == nil {
			return grade, nil
		}
		s.logger.Warn("answer grading failed, using keyword overlap", zap.Error(err))
	}

	return s.gradeByKeywords(req), nil
}

func (s *GradingService) gradeWithModel(ctx context.Context, req GradeRequest) (entities.AnswerGrade, error) {
	text, _, err := s.llm.CompleteWithModel(ctx, llm.Prompt{
		System:      gradingSystemPrompt,
		User:        gradingPrompt(req.Question, req.UserAnswer, req.CorrectAnswer, req.Context),
		Temperature: 0.2,
		MaxTokens:   600,
		JSON:        true,
	})
	if err != nil {
		return entities.AnswerGrade{}, err
	}

	var grade entities.AnswerGrade
	if err := llm.DecodeJSON(text, &grade); err != nil {
		return entities.AnswerGrade{}, err
	}
	grade.Score = min(max(grade.Score, 0), 100)

	return grade, nil
}

// gradeByKeywords compares the answer with the reference answer, the context
// or, when neither is given, the question itself.
func (s *GradingService) gradeByKeywords(req GradeRequest) entities.AnswerGrade {
	reference := strings.TrimSpace(req.CorrectAnswer)
	if reference == "" {
		reference = strings.TrimSpace(req.Context)
	}
	if reference == "" {
		reference = req.Question
	}

	score := s.validator.Score(reference, req.UserAnswer)
	correct := score >= passingScore || s.validator.Validate(req.UserAnswer, reference)
	if correct && score < passingScore {
		score = 100
	}

	grade := entities.AnswerGrade{
		IsCorrect:   correct,
		Score:       score,
		Explanation: reference,
	}
	if correct {
		grade.Feedback = "Жауап қабылданды / Ответ принят"
		grade.Suggestions = "Оқуды жалғастырыңыз / Продолжайте обучение"
	} else {
		grade.Feedback = "Жауап толық емес / Ответ неполный"
		grade.Suggestions = "Мәтінді қайта оқып шығыңыз / Перечитайте текст"
	}

	return grade
}
