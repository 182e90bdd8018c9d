package entities

// QuestionType defines how a question is answered.
type QuestionType string

const (
	QuestionChoice   QuestionType = "choice"   // pick one of the options
	QuestionOpen     QuestionType = "open"     // free text
	QuestionOrdering QuestionType = "ordering" // put the options into the right order
)

// Question is generated on the fly for a lesson and never persisted.
type Question struct {
	ID             string       `json:"id"`
	Text           string       `json:"text"`
	Type           QuestionType `json:"type"`
	Options        []string     `json:"options,omitempty"`
	CorrectAnswer  string       `json:"correct_answer"`
	CorrectOrder   []string     `json:"correct_order,omitempty"` // ordering questions only
	Difficulty     SkillLevel   `json:"difficulty"`
	RelatedContent string       `json:"related_content"` // lesson title
	Locale         string       `json:"language"`
}

// HasOptions reports whether the question should be rendered with numbered options.
func (q Question) HasOptions() bool {
	return len(q.Options) > 0
}
