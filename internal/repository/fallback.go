package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

// FallbackRepository holds the offline lessons, missions and scenarios served
// when no language model answers.
type FallbackRepository struct {
	data fallbackData
}

type fallbackData struct {
	DefaultCharacter string                                    `json:"default_character"`
	DefaultTopics    map[string][]string                       `json:"default_topics"`
	Lessons          map[string]entities.LearningContent       `json:"lessons"`
	Missions         map[string]entities.MissionChoice         `json:"missions"`
	Scenarios        map[string]map[string][]entities.Scenario `json:"scenarios"` // character -> locale -> steps
}

// NewFallbackRepository loads the fallback catalog from the JSON file at path.
func NewFallbackRepository(path string) (*FallbackRepository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data fallbackData
	if err = json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fallbacks JSON: %w", err)
	}

	return newFallbackRepository(data)
}

func newFallbackRepository(data fallbackData) (*FallbackRepository, error) {
	if _, ok := data.Missions[data.DefaultCharacter]; !ok {
		return nil, fmt.Errorf("fallbacks: no mission for default character %q", data.DefaultCharacter)
	}
	if _, ok := data.Scenarios[data.DefaultCharacter]; !ok {
		return nil, fmt.Errorf("fallbacks: no scenarios for default character %q", data.DefaultCharacter)
	}
	// Kazakh steps back every other locale.
	for character, byLocale := range data.Scenarios {
		if len(byLocale["kk"]) == 0 {
			return nil, fmt.Errorf("fallbacks: no kk scenarios for %q", character)
		}
	}

	return &FallbackRepository{data: data}, nil
}

// Lesson returns a copy of the offline lesson for topic.
func (r *FallbackRepository) Lesson(topic string) (*entities.LearningContent, bool) {
	lesson, ok := r.data.Lessons[topic]
	if !ok {
		return nil, false
	}
	return &lesson, true
}

// DefaultTopics returns topics used when a level-specific request has no topic.
func (r *FallbackRepository) DefaultTopics(level int) []string {
	return r.data.DefaultTopics[strconv.Itoa(level)]
}

// DefaultCharacter is used for unknown characters.
func (r *FallbackRepository) DefaultCharacter() string {
	return r.data.DefaultCharacter
}

// Mission returns the offline decision mission for character, or the default
// character's mission.
func (r *FallbackRepository) Mission(character string) entities.MissionChoice {
	if m, ok := r.data.Missions[character]; ok {
		return m
	}
	return r.data.Missions[r.data.DefaultCharacter]
}

// Scenario returns the offline scenario step for character. Numbers past the
// last step return the last step. Unknown locales use Kazakh.
func (r *FallbackRepository) Scenario(character string, number int, locale string) entities.Scenario {
	byLocale, ok := r.data.Scenarios[character]
	if !ok {
		byLocale = r.data.Scenarios[r.data.DefaultCharacter]
	}

	steps := byLocale[locale]
	if len(steps) == 0 {
		steps = byLocale["kk"]
	}

	idx := min(max(number, 1), len(steps)) - 1
	return steps[idx]
}
