package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/aliskhannn/termquiz/internal/domain/entities"
)

var ErrNotEnoughQuestions = errors.New("not enough questions")

// QuizService runs play sessions. It only reads the question collection.
type QuizService struct {
	questionRepo QuestionRepository
	selector     *QuestionSelector
	options      *OptionGenerator
	validator    *AnswerValidator
	logger       *zap.Logger
	rounds       int
}

// NewQuizService creates a new QuizService. Question draws and option shuffles
// share rng; a nil rng is replaced by a time-seeded one.
func NewQuizService(
	questionRepo QuestionRepository,
	logger *zap.Logger,
	rng *rand.Rand,
) *QuizService {
	if rng == nil {
		rng = newRand()
	}
	return &QuizService{
		questionRepo: questionRepo,
		selector:     NewQuestionSelector(rng),
		options:      NewOptionGenerator(rng),
		validator:    NewAnswerValidator(),
		logger:       logger,
		rounds:       entities.RoundsPerGame,
	}
}

// Play runs one session of ten rounds at the given difficulty. It returns the
// result when all rounds are played or the player quits.
func (s *QuizService) Play(
	ctx context.Context,
	difficulty entities.Difficulty,
	ui RoundUI,
) (*entities.QuizResult, error) {
	if !difficulty.Valid() {
		return nil, fmt.Errorf("%w: %d", entities.ErrInvalidDifficulty, difficulty)
	}

	questions, err := s.questionRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(questions) < s.rounds {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrNotEnoughQuestions, s.rounds, len(questions))
	}

	session := entities.NewQuizSession(difficulty, s.rounds)
	s.logger.Info("starting quiz session",
		zap.Stringer("session_id", session.ID),
		zap.Int("difficulty", int(difficulty)),
		zap.Int("questions", len(questions)),
	)

	pool := questions
	for session.Active() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var question entities.Question
		question, pool, _ = s.selector.Draw(pool)

		variant, err := s.options.GenerateOptions(question, difficulty)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", session.CurrentQuestionNum, err)
		}

		ui.ShowQuestion(session.CurrentQuestionNum, session.TotalQuestions, variant)
		s.logger.Debug("question drawn",
			zap.Stringer("session_id", session.ID),
			zap.Int("round", session.CurrentQuestionNum),
			zap.String("prompt", variant.Prompt),
			zap.Int("correct_option", variant.CorrectIndex+1),
		)

		answer, err := s.readAnswer(ctx, ui)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", session.CurrentQuestionNum, err)
		}
		if answer.Quit {
			s.logger.Info("quiz session quit",
				zap.Stringer("session_id", session.ID),
				zap.Int("round", session.CurrentQuestionNum),
				zap.Int("score", session.CorrectAnswers),
			)
			session.Quit()
			break
		}

		isCorrect := variant.IsCorrect(answer.Choice - 1)
		session.RecordAnswer(isCorrect)
		ui.ShowFeedback(isCorrect, variant.CorrectAnswer)

		s.logger.Info("round answered",
			zap.Stringer("session_id", session.ID),
			zap.Bool("correct", isCorrect),
			zap.Int("score", session.CorrectAnswers),
		)
	}

	return session.Result(), nil
}

// readAnswer asks until the player enters a valid option or quits.
func (s *QuizService) readAnswer(ctx context.Context, ui RoundUI) (Answer, error) {
	for {
		input, err := ui.ReadAnswer(ctx)
		if err != nil {
			return Answer{}, fmt.Errorf("read answer: %w", err)
		}

		answer, err := s.validator.Parse(input)
		if err == nil {
			return answer, nil
		}

		s.logger.Debug("invalid answer", zap.String("input", input))
		ui.ShowAnswerHint()
	}
}
