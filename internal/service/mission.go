package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/metrics"
)

const (
	QuestionsPerMission = 3
	xpRegular           = 1
	xpAdvanced          = 2
)

var (
	ErrNoActiveMission       = errors.New("no active mission")
	ErrInvalidQuestionNumber = errors.New("invalid question number")
)

var missionTopics = []entities.ContentType{entities.ContentHistory, entities.ContentLanguage}

// MissionService runs bot missions: lessons with questions, answers, XP and
// adaptive difficulty.
type MissionService struct {
	users    UserRepository
	answers  AnswerRepository
	missions MissionStore
	learning *LearningService
	logger   *zap.Logger
	now      func() time.Time
}

// NewMissionService creates a new MissionService.
func NewMissionService(
	users UserRepository,
	answers AnswerRepository,
	missions MissionStore,
	learning *LearningService,
	logger *zap.Logger,
) *MissionService {
	return &MissionService{
		users:    users,
		answers:  answers,
		missions: missions,
		learning: learning,
		logger:   logger,
		now:      time.Now,
	}
}

// EnsureUser registers the Telegram user on first contact.
func (s *MissionService) EnsureUser(ctx context.Context, telegramID int64, name string) (*entities.User, error) {
	u := entities.NewTelegramUser(uuid.NewString(), telegramID, name, s.now().UTC())

	user, err := s.users.EnsureTelegramUser(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	return user, nil
}

// SetLanguage stores the interface language of the user.
func (s *MissionService) SetLanguage(ctx context.Context, telegramID int64, lang entities.Language) error {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return err
	}

	user.Language = lang
	return s.users.Update(ctx, user)
}

// Profile returns the user record.
func (s *MissionService) Profile(ctx context.Context, telegramID int64) (*entities.User, error) {
	return s.users.GetByTelegramID(ctx, telegramID)
}

// StartMission picks a lesson for the user's skill level and stores a new
// set of questions, replacing any active mission.
func (s *MissionService) StartMission(ctx context.Context, telegramID int64) (*entities.Mission, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if user.TouchDay(now) {
		// Completed missions count per day in the bot.
		user.CompletedMissions = nil
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	history, err := s.answers.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	skill := user.Skill
	if len(history) == 0 {
		skill = entities.SkillFromXP(user.XP)
	}

	topic := missionTopics[rand.Intn(len(missionTopics))]
	item, err := s.learning.PickContent(skill, topic)
	if err != nil {
		return nil, err
	}

	mission := &entities.Mission{
		Content:   item,
		Questions: s.learning.GenerateQuestions(item, skill, QuestionsPerMission, user.Language.Locale()),
		Language:  user.Language,
		Skill:     skill,
		IssuedAt:  now,
	}
	s.missions.Store(telegramID, mission)

	s.logger.Debug("mission started",
		zap.Int64("telegram_id", telegramID),
		zap.String("title", item.Title),
		zap.String("skill", string(skill)),
	)

	return mission, nil
}

// ActiveMission returns the stored mission of the user.
func (s *MissionService) ActiveMission(telegramID int64) (*entities.Mission, bool) {
	return s.missions.Get(telegramID)
}

// AnswerResult is what the user is told after answering.
type AnswerResult struct {
	Correct      bool
	Feedback     string
	XPGained     int
	Hint         string // correct answer, set for wrong answers
	Achievements []entities.Achievement
	User         *entities.User
	Completed    bool // every question of the mission is answered
}

// Answer evaluates the answer to the 1-based question number of the active
// mission, records it and awards XP.
func (s *MissionService) Answer(ctx context.Context, telegramID int64, number int, answer string) (*AnswerResult, error) {
	mission, ok := s.missions.Get(telegramID)
	if !ok {
		return nil, ErrNoActiveMission
	}

	question, ok := mission.Question(number)
	if !ok {
		return nil, ErrInvalidQuestionNumber
	}

	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	history, err := s.answers.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	eval := s.learning.Evaluate(question, answer, history)

	rec := entities.AnswerRecord{
		UserID:     user.ID,
		QuestionID: question.ID,
		UserAnswer: answer,
		Correct:    eval.Correct,
		Level:      user.Skill,
		Topic:      mission.Content.Topic,
		Difficulty: question.Difficulty,
		AnsweredAt: s.now().UTC(),
	}
	if err := s.answers.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("append answer: %w", err)
	}
	history = append(history, rec)

	user.Skill = eval.NewLevel

	result := &AnswerResult{
		Correct:  eval.Correct,
		Feedback: eval.Feedback,
		User:     user,
	}

	if eval.Correct {
		metrics.AnswersTotal.WithLabelValues("correct").Inc()

		result.XPGained = xpRegular
		if question.Difficulty == entities.SkillAdvanced {
			result.XPGained = xpAdvanced
		}
		user.AddXP(result.XPGained)
		user.CompleteMission(mission.Content.Title)
	} else {
		metrics.AnswersTotal.WithLabelValues("incorrect").Inc()
		result.Hint = question.CorrectAnswer
	}

	for _, a := range CheckAchievements(user, history) {
		user.Achievements = append(user.Achievements, a.Code)
		user.AddXP(a.XPReward)
		result.Achievements = append(result.Achievements, a)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if mission.MarkAnswered(number) {
		s.missions.Delete(telegramID)
		result.Completed = true
	}

	return result, nil
}

// Leaderboard returns the users with the most XP.
func (s *MissionService) Leaderboard(ctx context.Context, limit int) ([]*entities.User, error) {
	return s.users.TopByXP(ctx, limit)
}

// Recommendations suggests lessons based on the user's answers.
func (s *MissionService) Recommendations(ctx context.Context, telegramID int64) ([]Recommendation, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	history, err := s.answers.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	return s.learning.Recommendations(history), nil
}
