package service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aliskhannn/termquiz/internal/domain/entities"
)

// QuitCommand ends a play session early.
const QuitCommand = "quit"

var ErrInvalidAnswer = errors.New("invalid answer")

// Answer is a parsed answer token.
type Answer struct {
	Choice int  // 1-based option number, 0 when Quit is set
	Quit   bool // the player asked to stop the game
}

// AnswerValidator validates answers typed during a round.
type AnswerValidator struct {
	options int
}

// NewAnswerValidator creates a new AnswerValidator for variants with the standard number of options.
func NewAnswerValidator() *AnswerValidator {
	return &AnswerValidator{
		options: entities.OptionsPerVariant,
	}
}

// Parse accepts "1".."4" and "quit", case-insensitively and ignoring surrounding spaces.
func (v *AnswerValidator) Parse(input string) (Answer, error) {
	token := v.normalize(input)
	if token == QuitCommand {
		return Answer{Quit: true}, nil
	}

	// Only a bare digit is an option: "+1" or "01" are rejected.
	if len(token) != 1 {
		return Answer{}, ErrInvalidAnswer
	}
	choice, err := strconv.Atoi(token)
	if err != nil || choice < 1 || choice > v.options {
		return Answer{}, ErrInvalidAnswer
	}

	return Answer{Choice: choice}, nil
}

// normalize normalizes a string for comparison.
func (v *AnswerValidator) normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
