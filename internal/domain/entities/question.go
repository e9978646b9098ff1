// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"fmt"
	"strings"
)

const (
	WrongAnswersCount = 5 // positions 0..2 are easy, 3 is medium, 4 is hard
	OptionsPerVariant = 4 // options shown to the player in one round
)

var (
	ErrInvalidQuestion   = errors.New("invalid question")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

// Question represents a single trivia item as it is stored in the questions file.
// WrongAnswers are ordered by difficulty: three easy, one medium, one hard.
type Question struct {
	Prompt        string   `json:"name"`      // question shown to the player
	CorrectAnswer string   `json:"answ_good"` // the single right answer
	WrongAnswers  []string `json:"answ_bad"`  // exactly five distinct wrong answers
}

// Validate checks the invariants that cannot be expressed by the JSON schema alone.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return fmt.Errorf("%w: empty correct answer", ErrInvalidQuestion)
	}
	if len(q.WrongAnswers) != WrongAnswersCount {
		return fmt.Errorf("%w: expected %d wrong answers, got %d",
			ErrInvalidQuestion, WrongAnswersCount, len(q.WrongAnswers))
	}

	seen := make(map[string]struct{}, len(q.WrongAnswers))
	for i, answer := range q.WrongAnswers {
		if strings.TrimSpace(answer) == "" {
			return fmt.Errorf("%w: empty wrong answer %d", ErrInvalidQuestion, i+1)
		}
		if answer == q.CorrectAnswer {
			return fmt.Errorf("%w: wrong answer %d equals the correct answer", ErrInvalidQuestion, i+1)
		}
		if _, ok := seen[answer]; ok {
			return fmt.Errorf("%w: duplicate wrong answer %q", ErrInvalidQuestion, answer)
		}
		seen[answer] = struct{}{}
	}

	return nil
}

// Difficulty is the game level chosen for a whole round.
type Difficulty int

const (
	DifficultyEasy   Difficulty = 1
	DifficultyMedium Difficulty = 2
	DifficultyHard   Difficulty = 3
)

// MaxDifficulty is the highest selectable level.
const MaxDifficulty = DifficultyHard

// Valid reports whether d is one of the supported levels.
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// WrongAnswerWindow returns the three wrong answers offered at this difficulty:
// a sliding window WrongAnswers[d-1 : d+2].
func (d Difficulty) WrongAnswerWindow(q Question) ([]string, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDifficulty, d)
	}
	if len(q.WrongAnswers) != WrongAnswersCount {
		return nil, fmt.Errorf("%w: expected %d wrong answers, got %d",
			ErrInvalidQuestion, WrongAnswersCount, len(q.WrongAnswers))
	}

	start := int(d) - 1
	window := make([]string, OptionsPerVariant-1)
	copy(window, q.WrongAnswers[start:start+OptionsPerVariant-1])
	return window, nil
}

// Variant is the answer set presented in one round: the prompt and four
// shuffled options, one of which is the correct answer.
type Variant struct {
	Prompt        string
	Options       []string // multiple choice, already shuffled
	CorrectIndex  int      // 0-based position of CorrectAnswer in Options
	CorrectAnswer string
}

// IsCorrect reports whether the option at the 0-based index holds the correct answer.
func (v Variant) IsCorrect(index int) bool {
	if index < 0 || index >= len(v.Options) {
		return false
	}
	return v.Options[index] == v.CorrectAnswer
}
