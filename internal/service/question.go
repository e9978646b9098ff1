package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/termquiz/internal/domain/entities"
)

var (
	ErrEmptyValue      = errors.New("empty value")
	ErrDuplicateAnswer = errors.New("answer already added")
	ErrOutOfRange      = errors.New("question number out of range")
	ErrNotConfirmed    = errors.New("deletion not confirmed")
	ErrNotSaved        = errors.New("questions not saved")
)

// OutOfRangeError reports a question number outside [1, Max].
type OutOfRangeError struct {
	Number int
	Max    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("question number %d is outside 1..%d", e.Number, e.Max)
}

// BelowMinimum reports whether the number was below the first question.
func (e *OutOfRangeError) BelowMinimum() bool {
	return e.Number < 1
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

type fieldKind int

const (
	fieldPrompt fieldKind = iota
	fieldCorrectAnswer
	fieldWrongAnswer
)

type questionField struct {
	label string
	kind  fieldKind
}

// questionFields lists the inputs of the authoring flow in the order they are asked.
var questionFields = []questionField{
	{label: "Question", kind: fieldPrompt},
	{label: "Correct answer", kind: fieldCorrectAnswer},
	{label: "First incorrect easy answer", kind: fieldWrongAnswer},
	{label: "Second incorrect easy answer", kind: fieldWrongAnswer},
	{label: "Third incorrect easy answer", kind: fieldWrongAnswer},
	{label: "Incorrect medium answer", kind: fieldWrongAnswer},
	{label: "Incorrect hard answer", kind: fieldWrongAnswer},
}

// QuestionService lists, authors and deletes stored questions.
type QuestionService struct {
	repository QuestionRepository
	logger     *zap.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(repository QuestionRepository, logger *zap.Logger) *QuestionService {
	return &QuestionService{repository: repository, logger: logger}
}

// List returns all questions in stored order; position i has number i+1.
func (s *QuestionService) List(ctx context.Context) ([]entities.Question, error) {
	questions, err := s.repository.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i, q := range questions {
		s.logger.Debug("question",
			zap.Int("number", i+1),
			zap.String("correct_answer", q.CorrectAnswer),
			zap.Strings("wrong_answers", q.WrongAnswers),
		)
	}

	return questions, nil
}

// Add collects a new question through prompter, appends it to the freshly
// loaded collection and saves the result.
func (s *QuestionService) Add(ctx context.Context, prompter Prompter) (*entities.Question, error) {
	question, err := s.collectQuestion(ctx, prompter)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("new question collected",
		zap.String("prompt", question.Prompt),
		zap.String("correct_answer", question.CorrectAnswer),
		zap.Strings("wrong_answers", question.WrongAnswers),
	)

	questions, err := s.repository.Load(ctx)
	if err != nil {
		return nil, err
	}
	questions = append(questions, *question)

	if err := s.repository.Save(ctx, questions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotSaved, err)
	}

	s.logger.Info("question added", zap.String("prompt", question.Prompt), zap.Int("number", len(questions)))
	return question, nil
}

func (s *QuestionService) collectQuestion(ctx context.Context, prompter Prompter) (*entities.Question, error) {
	question := &entities.Question{
		WrongAnswers: make([]string, 0, entities.WrongAnswersCount),
	}

	for _, field := range questionFields {
		for {
			value, err := s.askField(ctx, prompter, field.label)
			if errors.Is(err, ErrEmptyValue) {
				s.logger.Debug("empty value", zap.String("field", field.label))
				continue
			}
			if err != nil {
				return nil, err
			}

			if field.kind == fieldWrongAnswer {
				if err := checkWrongAnswer(question, value); err != nil {
					prompter.Reject(field.label, err)
					continue
				}
			}

			switch field.kind {
			case fieldPrompt:
				question.Prompt = value
			case fieldCorrectAnswer:
				question.CorrectAnswer = value
			case fieldWrongAnswer:
				question.WrongAnswers = append(question.WrongAnswers, value)
			}
			break
		}
	}

	return question, nil
}

func (s *QuestionService) askField(ctx context.Context, prompter Prompter, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	value, err := prompter.Ask(ctx, label)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrEmptyValue
	}
	return value, nil
}

// checkWrongAnswer rejects a wrong answer equal to the correct answer or to one already accepted.
func checkWrongAnswer(question *entities.Question, value string) error {
	if value == question.CorrectAnswer || slices.Contains(question.WrongAnswers, value) {
		return fmt.Errorf("%w: %q", ErrDuplicateAnswer, value)
	}
	return nil
}

// Delete removes the question with the given 1-based number after confirmation.
// Later questions move down by one position.
func (s *QuestionService) Delete(ctx context.Context, number int, confirmer Confirmer) (*entities.Question, error) {
	questions, err := s.repository.Load(ctx)
	if err != nil {
		return nil, err
	}

	if number < 1 || number > len(questions) {
		s.logger.Debug("question number out of range",
			zap.Int("number", number),
			zap.Int("max", len(questions)),
		)
		return nil, &OutOfRangeError{Number: number, Max: len(questions)}
	}

	target := questions[number-1]
	confirmed, err := confirmer.ConfirmDelete(ctx, number, target)
	if err != nil {
		return nil, fmt.Errorf("confirm deletion: %w", err)
	}
	if !confirmed {
		return nil, ErrNotConfirmed
	}

	remaining := slices.Delete(slices.Clone(questions), number-1, number)
	if err := s.repository.Save(ctx, remaining); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotSaved, err)
	}

	s.logger.Info("question deleted", zap.Int("number", number), zap.String("prompt", target.Prompt))
	return &target, nil
}
