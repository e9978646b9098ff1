package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aliskhannn/termquiz/internal/domain/entities"
)

func testQuestion(n int) entities.Question {
	return entities.Question{
		Prompt:        fmt.Sprintf("Question %d?", n),
		CorrectAnswer: fmt.Sprintf("Right %d", n),
		WrongAnswers: []string{
			fmt.Sprintf("Wrong %d.1", n),
			fmt.Sprintf("Wrong %d.2", n),
			fmt.Sprintf("Wrong %d.3", n),
			fmt.Sprintf("Wrong %d.4", n),
			fmt.Sprintf("Wrong %d.5", n),
		},
	}
}

func testQuestions(count int) []entities.Question {
	questions := make([]entities.Question, 0, count)
	for i := 1; i <= count; i++ {
		questions = append(questions, testQuestion(i))
	}
	return questions
}

// fakeRepository keeps the collection in memory.
type fakeRepository struct {
	questions []entities.Question
	loadErr   error
	saveErr   error
	saves     int
}

func (r *fakeRepository) Load(_ context.Context) ([]entities.Question, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return slices.Clone(r.questions), nil
}

func (r *fakeRepository) Save(_ context.Context, questions []entities.Question) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.questions = slices.Clone(questions)
	return nil
}

// answerFunc returns the input typed for a round.
type answerFunc func(round int, variant entities.Variant) string

// fakeRoundUI records what a session shows and answers from a script.
type fakeRoundUI struct {
	answer   answerFunc
	inputs   []string // consumed before answer is asked
	readErr  error
	round    int
	variants []entities.Variant
	rounds   []int
	hints    int
	feedback []bool
}

func (u *fakeRoundUI) ShowQuestion(round, _ int, variant entities.Variant) {
	u.round = round
	u.rounds = append(u.rounds, round)
	u.variants = append(u.variants, variant)
}

func (u *fakeRoundUI) ReadAnswer(_ context.Context) (string, error) {
	if u.readErr != nil {
		return "", u.readErr
	}
	if len(u.inputs) > 0 {
		input := u.inputs[0]
		u.inputs = u.inputs[1:]
		return input, nil
	}
	return u.answer(u.round, u.variants[len(u.variants)-1]), nil
}

func (u *fakeRoundUI) ShowAnswerHint() {
	u.hints++
}

func (u *fakeRoundUI) ShowFeedback(isCorrect bool, _ string) {
	u.feedback = append(u.feedback, isCorrect)
}

func correctChoice(_ int, variant entities.Variant) string {
	return fmt.Sprint(variant.CorrectIndex + 1)
}

func wrongChoice(_ int, variant entities.Variant) string {
	return fmt.Sprint((variant.CorrectIndex+1)%entities.OptionsPerVariant + 1)
}

// fakePrompter answers fields from a fixed list of values.
type fakePrompter struct {
	values   []string
	labels   []string
	rejected []string
}

func (p *fakePrompter) Ask(_ context.Context, label string) (string, error) {
	p.labels = append(p.labels, label)
	if len(p.values) == 0 {
		return "", errors.New("no more input")
	}
	value := p.values[0]
	p.values = p.values[1:]
	return value, nil
}

func (p *fakePrompter) Reject(label string, _ error) {
	p.rejected = append(p.rejected, label)
}

// fakeConfirmer returns a fixed decision.
type fakeConfirmer struct {
	confirm bool
	asked   []entities.Question
}

func (c *fakeConfirmer) ConfirmDelete(_ context.Context, _ int, question entities.Question) (bool, error) {
	c.asked = append(c.asked, question)
	return c.confirm, nil
}
