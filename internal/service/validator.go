package service

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

// minKeywordLength is the shortest word of a correct answer that counts as a keyword.
const minKeywordLength = 4

// AnswerValidator validates user answers with fuzzy matching support.
type AnswerValidator struct {
	threshold float64 // Similarity threshold (0.0 - 1.0)
}

// NewAnswerValidator creates a new AnswerValidator.
func NewAnswerValidator() *AnswerValidator {
	return &AnswerValidator{
		threshold: 0.8, // 80% similarity required
	}
}

// Check decides whether answer is correct for the question.
func (v *AnswerValidator) Check(q entities.Question, answer string) bool {
	switch q.Type {
	case entities.QuestionChoice:
		if n, ok := optionNumber(answer, len(q.Options)); ok {
			return v.normalize(q.Options[n-1]) == v.normalize(q.CorrectAnswer)
		}
		return v.Validate(answer, q.CorrectAnswer) || v.KeywordMatch(q.CorrectAnswer, answer)

	case entities.QuestionOrdering:
		if order, ok := optionSequence(answer, len(q.Options)); ok {
			if len(order) != len(q.CorrectOrder) {
				return false
			}
			for i, n := range order {
				if v.normalize(q.Options[n-1]) != v.normalize(q.CorrectOrder[i]) {
					return false
				}
			}
			return true
		}
		return v.KeywordMatch(strings.Join(q.CorrectOrder, " "), answer)

	default:
		return v.Validate(answer, q.CorrectAnswer) || v.KeywordMatch(q.CorrectAnswer, answer)
	}
}

// Validate checks if the user's answer matches the correct answer.
func (v *AnswerValidator) Validate(userAnswer, correctAnswer string) bool {
	user := v.normalize(userAnswer)
	correct := v.normalize(correctAnswer)

	if user == "" {
		return false
	}

	if user == correct {
		return true
	}

	// Fuzzy match using Levenshtein distance
	return v.similarity(user, correct) >= v.threshold
}

// KeywordMatch reports whether any keyword of correct occurs in answer.
func (v *AnswerValidator) KeywordMatch(correct, answer string) bool {
	user := v.normalize(answer)
	if user == "" {
		return false
	}

	for _, word := range v.keywords(correct) {
		if strings.Contains(user, word) {
			return true
		}
	}
	return false
}

// Score returns the share of keywords of correct found in answer, 0..100.
func (v *AnswerValidator) Score(correct, answer string) int {
	user := v.normalize(answer)
	if user == "" {
		return 0
	}

	words := v.keywords(correct)
	if len(words) == 0 {
		if user == v.normalize(correct) {
			return 100
		}
		return 0
	}

	var found int
	for _, word := range words {
		if strings.Contains(user, word) {
			found++
		}
	}

	return found * 100 / len(words)
}

func (v *AnswerValidator) keywords(s string) []string {
	var words []string
	for _, word := range strings.Fields(v.normalize(s)) {
		word = strings.TrimFunc(word, unicode.IsPunct)
		if utf8.RuneCountInString(word) >= minKeywordLength {
			words = append(words, word)
		}
	}
	return words
}

// normalize normalizes a string for comparison.
func (v *AnswerValidator) normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "ё", "е")

	// Remove extra whitespace
	return strings.Join(strings.Fields(s), " ")
}

// similarity calculates the similarity between two strings using Levenshtein distance.
func (v *AnswerValidator) similarity(s1, s2 string) float64 {
	distance := levenshteinDistance(s1, s2)
	maxLen := max(utf8.RuneCountInString(s1), utf8.RuneCountInString(s2))

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

// optionNumber parses a reply like "2" or "2)" into a 1-based option number.
func optionNumber(answer string, options int) (int, bool) {
	answer = strings.TrimRight(strings.TrimSpace(answer), ".)")
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > options {
		return 0, false
	}
	return n, true
}

// optionSequence parses replies like "3 1 2" or "3,1,2" into option numbers.
// Every option must appear exactly once.
func optionSequence(answer string, options int) ([]int, bool) {
	parts := strings.FieldsFunc(answer, func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	if options == 0 || len(parts) != options {
		return nil, false
	}

	seen := make(map[int]bool, options)
	order := make([]int, 0, options)
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > options || seen[n] {
			return nil, false
		}
		seen[n] = true
		order = append(order, n)
	}

	return order, true
}

// levenshteinDistance calculates the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	rows := len(r1) + 1
	cols := len(r2) + 1

	// Use two rows instead of full matrix for space optimization
	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i < rows; i++ {
		curr[0] = i

		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			curr[j] = min(
				curr[j-1]+1,    // Insertion
				prev[j]+1,      // Deletion
				prev[j-1]+cost, // Substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[cols-1]
}
