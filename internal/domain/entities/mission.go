package entities

import "time"

// Mission is one quiz round: a lesson and the questions generated for it.
type Mission struct {
	Content   ContentItem
	Questions []Question
	Language  Language
	Skill     SkillLevel
	IssuedAt  time.Time
	Answered  map[int]bool // 1-based question numbers
}

// Question returns the question by its 1-based number.
func (m *Mission) Question(number int) (Question, bool) {
	if m == nil || number < 1 || number > len(m.Questions) {
		return Question{}, false
	}
	return m.Questions[number-1], true
}

// MarkAnswered records an answer to the question and reports whether every
// question of the mission has been answered.
func (m *Mission) MarkAnswered(number int) bool {
	if m.Answered == nil {
		m.Answered = make(map[int]bool, len(m.Questions))
	}
	m.Answered[number] = true
	return len(m.Answered) >= len(m.Questions)
}

// AnswerRecord is one evaluated answer kept in the user's history.
type AnswerRecord struct {
	UserID     string
	QuestionID string
	UserAnswer string
	Correct    bool
	Level      SkillLevel  // user's skill level when answering
	Topic      ContentType // lesson subject
	Difficulty SkillLevel  // question difficulty
	AnsweredAt time.Time
}
