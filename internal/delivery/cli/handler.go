package cli

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/aliskhannn/termquiz/internal/domain/entities"
	"github.com/aliskhannn/termquiz/internal/service"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type QuizService interface {
	Play(ctx context.Context, difficulty entities.Difficulty, ui service.RoundUI) (*entities.QuizResult, error)
}

type QuestionService interface {
	List(ctx context.Context) ([]entities.Question, error)
	Add(ctx context.Context, prompter service.Prompter) (*entities.Question, error)
	Delete(ctx context.Context, number int, confirmer service.Confirmer) (*entities.Question, error)
}

// Options tune console output.
type Options struct {
	NoColor bool // never style output, even on a terminal
}

// Handler dispatches command-line arguments to the quiz services.
type Handler struct {
	logger          *zap.Logger
	quizService     QuizService
	questionService QuestionService
	console         *Console
	stdout          io.Writer
	stderr          io.Writer
	palette         palette
}

func NewHandler(
	logger *zap.Logger,
	quizService QuizService,
	questionService QuestionService,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	opts Options,
) *Handler {
	p := paletteFor(stdout, opts.NoColor)
	return &Handler{
		logger:          logger,
		quizService:     quizService,
		questionService: questionService,
		console:         NewConsole(stdin, stdout, p),
		stdout:          stdout,
		stderr:          stderr,
		palette:         p,
	}
}

// Run executes the command named by args and returns the process exit code.
// With no arguments the game starts at the easiest level.
func (h *Handler) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		args = []string{cmdPlay}
	}

	name := args[0]
	if isHelpArg(name) {
		h.printUsage(h.stdout)
		return ExitOK
	}

	cmd, ok := h.findCommand(name)
	if !ok {
		h.logger.Debug("unknown command", zap.String("command", name))
		h.printUsage(h.stderr)
		h.usageError("invalid choice: '%s' (choose from %s)", name, commandChoices())
		return ExitUsage
	}

	h.logger.Debug("command received", zap.String("command", cmd.Name), zap.Strings("args", args[1:]))
	return cmd.Run(ctx, args[1:])
}
