package service

import (
	"math/rand"

	"github.com/aliskhannn/termquiz/internal/domain/entities"
)

// OptionGenerator generates multiple choice options for quiz questions.
type OptionGenerator struct {
	rng *rand.Rand
}

// NewOptionGenerator creates a new option generator. A nil rng is replaced by a time-seeded one.
func NewOptionGenerator(rng *rand.Rand) *OptionGenerator {
	if rng == nil {
		rng = newRand()
	}
	return &OptionGenerator{rng: rng}
}

// GenerateOptions builds the answer set for a question at the given difficulty:
// the three wrong answers of the difficulty window plus the correct answer, shuffled.
func (g *OptionGenerator) GenerateOptions(
	q entities.Question,
	difficulty entities.Difficulty,
) (entities.Variant, error) {
	distractors, err := difficulty.WrongAnswerWindow(q)
	if err != nil {
		return entities.Variant{}, err
	}

	options, correctIndex := g.buildOptionsWithCorrect(q.CorrectAnswer, distractors)

	return entities.Variant{
		Prompt:        q.Prompt,
		Options:       options,
		CorrectIndex:  correctIndex,
		CorrectAnswer: q.CorrectAnswer,
	}, nil
}

func (g *OptionGenerator) buildOptionsWithCorrect(correct string, distractors []string) ([]string, int) {
	options := make([]string, 0, 1+len(distractors))
	options = append(options, correct)
	options = append(options, distractors...)

	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correctIndex := 0
	for i, opt := range options {
		if opt == correct {
			correctIndex = i
			break
		}
	}

	return options, correctIndex
}
