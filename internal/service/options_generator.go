package service

import (
	"math/rand"
	"slices"
)

// OptionGenerator generates multiple choice options for template questions.
type OptionGenerator struct {
	distractors []string
}

// NewOptionGenerator creates a new option generator over the distractor pool.
func NewOptionGenerator(distractors []string) *OptionGenerator {
	return &OptionGenerator{
		distractors: distractors,
	}
}

// GenerateOptions creates 4 multiple choice options including the correct answer.
// Returns: options slice and the index of the correct answer (0-3).
func (g *OptionGenerator) GenerateOptions(correct string) ([]string, int) {
	options := make([]string, 4)

	// Generate 3 wrong options
	wrongOptions := g.generateWrongOptions(correct, 3)

	// Randomly place the correct answer
	correctIndex := rand.Intn(4)

	wrongIdx := 0
	for i := 0; i < 4; i++ {
		if i == correctIndex {
			options[i] = correct
		} else {
			options[i] = wrongOptions[wrongIdx]
			wrongIdx++
		}
	}

	return options, correctIndex
}

// generateWrongOptions picks distinct distractors that differ from the correct answer.
func (g *OptionGenerator) generateWrongOptions(correct string, count int) []string {
	candidates := slices.Clone(g.distractors)
	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	wrongOptions := make([]string, 0, count)
	for _, candidate := range candidates {
		if len(wrongOptions) >= count {
			break
		}
		if candidate == correct || slices.Contains(wrongOptions, candidate) {
			continue
		}
		wrongOptions = append(wrongOptions, candidate)
	}

	// If we couldn't find enough unique options, add generic ones
	for len(wrongOptions) < count {
		wrongOptions = append(wrongOptions, "Вариант "+string(rune('A'+len(wrongOptions))))
	}

	return wrongOptions
}
