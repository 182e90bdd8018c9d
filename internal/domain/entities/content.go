package entities

// ContentType is the subject area of a lesson or an answer.
type ContentType string

const (
	ContentHistory  ContentType = "history"
	ContentLanguage ContentType = "language"
	ContentVoice    ContentType = "voice"
)

// Language is the interface language chosen by a user.
type Language string

const (
	LanguageKZ Language = "kz"
	LanguageRU Language = "ru"
)

// ParseLanguage accepts both "kz" and the ISO code "kk"; anything else but
// "ru" becomes Kazakh.
func ParseLanguage(s string) Language {
	if s == string(LanguageRU) {
		return LanguageRU
	}
	return LanguageKZ
}

// Locale returns the ISO 639-1 code used for question texts.
func (l Language) Locale() string {
	if l == LanguageRU {
		return "ru"
	}
	return "kk"
}

// ContentItem is a hand-authored lesson passage.
type ContentItem struct {
	Title      string      `json:"title"`
	Text       string      `json:"text"`
	Topic      ContentType `json:"topic"`
	Difficulty SkillLevel  `json:"difficulty"`
	KeyFacts   []string    `json:"key_facts"`
	Keywords   []string    `json:"keywords"`
}
