package service

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

var ErrNoContent = errors.New("no content available")

// ContentSource provides hand-authored lessons.
type ContentSource interface {
	ByType(t entities.ContentType) []entities.ContentItem
	All() []entities.ContentItem
}

// LearningService is the rule-based adaptive learning model: it picks
// lessons, builds questions from templates and adapts the skill level.
type LearningService struct {
	content   ContentSource
	validator *AnswerValidator
	options   *OptionGenerator
}

// NewLearningService creates a new LearningService.
func NewLearningService(content ContentSource, validator *AnswerValidator) *LearningService {
	return &LearningService{
		content:   content,
		validator: validator,
		options:   NewOptionGenerator(distractors),
	}
}

// PickContent returns a random lesson of the type matching the level, or any
// lesson of the type when none matches.
func (s *LearningService) PickContent(level entities.SkillLevel, t entities.ContentType) (entities.ContentItem, error) {
	items := s.content.ByType(t)
	if len(items) == 0 {
		return entities.ContentItem{}, ErrNoContent
	}

	var matching []entities.ContentItem
	for _, item := range items {
		if item.Difficulty == level {
			matching = append(matching, item)
		}
	}
	if len(matching) == 0 {
		matching = items
	}

	return matching[rand.Intn(len(matching))], nil
}

// GenerateQuestions builds up to n questions for the lesson. Template
// questions come first, followed by one level specific test question.
func (s *LearningService) GenerateQuestions(
	item entities.ContentItem, level entities.SkillLevel, n int, locale string,
) []entities.Question {
	templates := questionTemplates[level]
	if templates == nil {
		level = entities.SkillBeginner
		templates = questionTemplates[level]
	}

	questions := make([]entities.Question, 0, n+1)
	for i := 0; i < min(n, len(templates)); i++ {
		tmpl := templates[i]
		correct := correctAnswer(item, tmpl.ru)

		q := entities.Question{
			ID:             uuid.NewString(),
			Text:           tmpl.text(locale),
			Type:           entities.QuestionChoice,
			CorrectAnswer:  correct,
			Difficulty:     level,
			RelatedContent: item.Title,
			Locale:         locale,
		}
		if level == entities.SkillAdvanced {
			q.Type = entities.QuestionOpen
		} else {
			q.Options, _ = s.options.GenerateOptions(correct)
		}

		questions = append(questions, q)
	}

	if q, ok := testQuestion(item, level, locale); ok {
		questions = append(questions, q)
	}

	if len(questions) > n {
		questions = questions[:n]
	}

	return questions
}

// correctAnswer derives the expected answer from the Russian template.
func correctAnswer(item entities.ContentItem, template string) string {
	lower := strings.ToLower(template)
	switch {
	case strings.Contains(lower, "когда"):
		if len(item.KeyFacts) > 0 {
			return item.KeyFacts[0]
		}
		return genericAnswerFact
	case strings.Contains(lower, "кто"):
		if len(item.Keywords) > 0 {
			return item.Keywords[0]
		}
		return genericAnswerKeyword
	default:
		return genericAnswer
	}
}

func testQuestion(item entities.ContentItem, level entities.SkillLevel, locale string) (entities.Question, bool) {
	q := entities.Question{
		ID:             uuid.NewString(),
		Difficulty:     level,
		RelatedContent: item.Title,
		Locale:         locale,
	}

	switch level {
	case entities.SkillBeginner:
		if len(item.KeyFacts) == 0 {
			return q, false
		}
		q.Text = topicQuestion(item.Title, locale)
		q.Type = entities.QuestionChoice
		q.CorrectAnswer = item.KeyFacts[0]
		q.Options = append(slices.Clone(item.KeyFacts), notRelatedOption(locale))

	case entities.SkillIntermediate:
		if len(item.KeyFacts) == 0 {
			return q, false
		}
		q.Text = orderingQuestion(locale)
		q.Type = entities.QuestionOrdering
		q.CorrectOrder = slices.Clone(item.KeyFacts)
		q.CorrectAnswer = strings.Join(item.KeyFacts, "; ")
		q.Options = slices.Clone(item.KeyFacts)
		slices.Reverse(q.Options)

	case entities.SkillAdvanced:
		q.Text = analysisQuestion(item.Title, locale)
		q.Type = entities.QuestionOpen
		q.CorrectAnswer = analysisAnswer(locale)

	default:
		return q, false
	}

	return q, true
}

// Evaluation is the outcome of checking one answer.
type Evaluation struct {
	Correct  bool
	Feedback string
	NewLevel entities.SkillLevel
}

// Evaluate checks the answer against the question. history holds the answers
// given before this one.
func (s *LearningService) Evaluate(q entities.Question, answer string, history []entities.AnswerRecord) Evaluation {
	correct := s.validator.Check(q, answer)

	return Evaluation{
		Correct:  correct,
		Feedback: Feedback(correct, history, q.Locale),
		NewLevel: AdjustLevel(history, correct),
	}
}

// Feedback picks a random message: positive for a correct answer, encouraging
// after more than two mistakes, constructive otherwise.
func Feedback(correct bool, history []entities.AnswerRecord, locale string) string {
	messages, ok := feedbackMessages[locale]
	if !ok {
		messages = feedbackMessages["ru"]
	}

	kind := feedbackPositive
	if !correct {
		kind = feedbackConstructive

		var incorrect int
		for _, rec := range history {
			if !rec.Correct {
				incorrect++
			}
		}
		if incorrect > 2 {
			kind = feedbackEncouraging
		}
	}

	list := messages[kind]
	return list[rand.Intn(len(list))]
}

// AdjustLevel moves the skill level one step up after a correct answer when
// accuracy is above 80% and one step down after a mistake when it is below 50%.
func AdjustLevel(history []entities.AnswerRecord, lastCorrect bool) entities.SkillLevel {
	if len(history) == 0 {
		return entities.SkillBeginner
	}

	var correct int
	for _, rec := range history {
		if rec.Correct {
			correct++
		}
	}
	accuracy := float64(correct) / float64(len(history))

	current := entities.ParseSkillLevel(string(history[len(history)-1].Level))

	switch {
	case accuracy > 0.8 && lastCorrect:
		next, _ := current.Next()
		return next
	case accuracy < 0.5 && !lastCorrect:
		prev, _ := current.Prev()
		return prev
	default:
		return current
	}
}

// Performance is the accuracy on one slice of the history.
type Performance struct {
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"` // percent
}

// ErrorAnalysis summarises a user's answer history.
type ErrorAnalysis struct {
	TotalAttempts         int                    `json:"total_attempts"`
	CorrectAnswers        int                    `json:"correct_answers"`
	IncorrectAnswers      int                    `json:"incorrect_answers"`
	TopicPerformance      map[string]Performance `json:"topic_performance"`
	DifficultyPerformance map[string]Performance `json:"difficulty_performance"`
}

// AnalyzeErrors computes totals and per topic and difficulty accuracy.
func AnalyzeErrors(history []entities.AnswerRecord) ErrorAnalysis {
	analysis := ErrorAnalysis{
		TotalAttempts:         len(history),
		TopicPerformance:      make(map[string]Performance),
		DifficultyPerformance: make(map[string]Performance),
	}

	for _, rec := range history {
		topic := string(rec.Topic)
		if topic == "" {
			topic = "unknown"
		}
		difficulty := string(rec.Difficulty)
		if difficulty == "" {
			difficulty = string(entities.SkillBeginner)
		}

		tp := analysis.TopicPerformance[topic]
		dp := analysis.DifficultyPerformance[difficulty]
		tp.Total++
		dp.Total++

		if rec.Correct {
			analysis.CorrectAnswers++
			tp.Correct++
			dp.Correct++
		} else {
			analysis.IncorrectAnswers++
		}

		analysis.TopicPerformance[topic] = tp
		analysis.DifficultyPerformance[difficulty] = dp
	}

	for k, p := range analysis.TopicPerformance {
		p.Accuracy = float64(p.Correct) / float64(p.Total) * 100
		analysis.TopicPerformance[k] = p
	}
	for k, p := range analysis.DifficultyPerformance {
		p.Accuracy = float64(p.Correct) / float64(p.Total) * 100
		analysis.DifficultyPerformance[k] = p
	}

	return analysis
}

// Recommendation types.
const (
	RecommendReview    = "review"
	RecommendEasier    = "easier_content"
	RecommendChallenge = "challenge"

	maxRecommendations = 3
	weakAccuracy       = 70.0
)

// Recommendation suggests a lesson to study next.
type Recommendation struct {
	Type    string               `json:"type"`
	Content entities.ContentItem `json:"content"`
	Reason  string               `json:"reason"`
}

// Recommendations suggests at most three lessons based on weak topics,
// struggling with advanced material and overall accuracy.
func (s *LearningService) Recommendations(history []entities.AnswerRecord) []Recommendation {
	if len(history) == 0 {
		return nil
	}

	analysis := AnalyzeErrors(history)
	var recs []Recommendation

	topics := make([]string, 0, len(analysis.TopicPerformance))
	for topic := range analysis.TopicPerformance {
		topics = append(topics, topic)
	}
	slices.Sort(topics)

	for _, topic := range topics {
		if analysis.TopicPerformance[topic].Accuracy >= weakAccuracy {
			continue
		}
		if item, ok := s.findContent(func(c entities.ContentItem) bool {
			return string(c.Topic) == topic ||
				strings.Contains(strings.ToLower(c.Title), strings.ToLower(topic)) ||
				slices.Contains(c.Keywords, topic)
		}); ok {
			recs = append(recs, Recommendation{Type: RecommendReview, Content: item, Reason: fmt.Sprintf(reasonReview, topic)})
		}
	}

	var weakDifficulties []string
	for difficulty, p := range analysis.DifficultyPerformance {
		if p.Accuracy < weakAccuracy {
			weakDifficulties = append(weakDifficulties, difficulty)
		}
	}
	if slices.Contains(weakDifficulties, string(entities.SkillAdvanced)) && len(weakDifficulties) > 1 {
		if item, ok := s.findContent(func(c entities.ContentItem) bool {
			return c.Difficulty == entities.SkillIntermediate
		}); ok {
			recs = append(recs, Recommendation{Type: RecommendEasier, Content: item, Reason: reasonEasier})
		}
	}

	if float64(analysis.CorrectAnswers) > float64(analysis.TotalAttempts)*0.8 {
		current := entities.ParseSkillLevel(string(history[len(history)-1].Level))
		if target, ok := current.Next(); ok {
			if item, ok := s.findContent(func(c entities.ContentItem) bool {
				return c.Difficulty == target
			}); ok {
				recs = append(recs, Recommendation{Type: RecommendChallenge, Content: item, Reason: reasonChallenge})
			}
		}
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}

	return recs
}

func (s *LearningService) findContent(match func(entities.ContentItem) bool) (entities.ContentItem, bool) {
	for _, item := range s.content.All() {
		if match(item) {
			return item, true
		}
	}
	return entities.ContentItem{}, false
}

// Achievement thresholds.
const (
	voiceMasterAnswers   = 10
	historyExpertAnswers = 20
	languageProAnswers   = 20
	streakChampionDays   = 7
)

// CheckAchievements returns achievements the user has just earned.
func CheckAchievements(user *entities.User, history []entities.AnswerRecord) []entities.Achievement {
	correctByTopic := make(map[entities.ContentType]int)
	for _, rec := range history {
		if rec.Correct {
			correctByTopic[rec.Topic]++
		}
	}

	earned := map[string]bool{
		entities.AchievementFirstMission:   user.XP > 0,
		entities.AchievementVoiceMaster:    correctByTopic[entities.ContentVoice] >= voiceMasterAnswers,
		entities.AchievementHistoryExpert:  correctByTopic[entities.ContentHistory] >= historyExpertAnswers,
		entities.AchievementLanguagePro:    correctByTopic[entities.ContentLanguage] >= languageProAnswers,
		entities.AchievementStreakChampion: user.Streak >= streakChampionDays,
	}

	var achievements []entities.Achievement
	for _, a := range entities.Achievements {
		if earned[a.Code] && !user.HasAchievement(a.Code) {
			achievements = append(achievements, a)
		}
	}

	return achievements
}
