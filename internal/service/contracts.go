package service

import (
	"context"

	"github.com/aliskhannn/termquiz/internal/domain/entities"
)

// QuestionRepository loads and persists the question collection.
type QuestionRepository interface {
	Load(ctx context.Context) ([]entities.Question, error)
	Save(ctx context.Context, questions []entities.Question) error
}

// RoundUI is the console side of a play session.
type RoundUI interface {
	// ShowQuestion presents the variant for the given round.
	ShowQuestion(round, total int, variant entities.Variant)
	// ReadAnswer blocks until the player enters one line.
	ReadAnswer(ctx context.Context) (string, error)
	// ShowAnswerHint is called after input that is not an option number or "quit".
	ShowAnswerHint()
	// ShowFeedback reports the outcome of the round.
	ShowFeedback(isCorrect bool, correctAnswer string)
}

// Prompter collects free-text fields while a question is authored.
type Prompter interface {
	Ask(ctx context.Context, label string) (string, error)
	// Reject is called when a non-empty value was refused; the field is asked again.
	Reject(label string, err error)
}

// Confirmer asks the user to confirm the deletion of a question.
type Confirmer interface {
	ConfirmDelete(ctx context.Context, number int, question entities.Question) (bool, error)
}
