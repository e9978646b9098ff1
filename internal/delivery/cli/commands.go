package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/aliskhannn/termquiz/internal/domain/entities"
	"github.com/aliskhannn/termquiz/internal/repository"
	"github.com/aliskhannn/termquiz/internal/service"
)

const (
	programName = "quiz"
	description = "A simple quiz game"

	cmdPlay   = "play"
	cmdList   = "list"
	cmdAdd    = "add"
	cmdDelete = "delete"
)

// Command describes a subcommand and its runner.
type Command struct {
	Name  string
	Usage string
	Run   func(ctx context.Context, args []string) int
}

var commandSummaries = []struct {
	name    string
	summary string
}{
	{cmdPlay, "Play the game and optionally specify a level (default 1)"},
	{cmdList, "List all the questions in the game"},
	{cmdAdd, "Add a question to the game"},
	{cmdDelete, "Delete a question from the game"},
}

func commandChoices() string {
	names := make([]string, 0, len(commandSummaries))
	for _, c := range commandSummaries {
		names = append(names, "'"+c.name+"'")
	}
	return strings.Join(names, ", ")
}

func (h *Handler) findCommand(name string) (*Command, bool) {
	switch name {
	case cmdPlay:
		return &Command{Name: cmdPlay, Usage: "[-h] [-l {1,2,3}]", Run: h.runPlay}, true
	case cmdList:
		return &Command{Name: cmdList, Usage: "[-h]", Run: h.runList}, true
	case cmdAdd:
		return &Command{Name: cmdAdd, Usage: "[-h]", Run: h.runAdd}, true
	case cmdDelete:
		return &Command{Name: cmdDelete, Usage: "[-h] question_no", Run: h.runDelete}, true
	}
	return nil, false
}

func isHelpArg(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}

func (h *Handler) printUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s [-h] {%s,%s,%s,%s} ...\n\n", programName, cmdPlay, cmdList, cmdAdd, cmdDelete)
	fmt.Fprintf(w, "%s\n\n", description)
	fmt.Fprintln(w, "commands:")
	for _, c := range commandSummaries {
		fmt.Fprintf(w, "  %-8s  %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "options:")
	fmt.Fprintln(w, "  -h, --help  show this help message and exit")
}

func (h *Handler) printCommandUsage(w io.Writer, name, usage string, flags *pflag.FlagSet, positional string) {
	fmt.Fprintf(w, "usage: %s %s %s\n", programName, name, usage)
	if positional != "" {
		fmt.Fprintf(w, "\npositional arguments:\n%s\n", positional)
	}
	fmt.Fprintf(w, "\noptions:\n  -h, --help  show this help message and exit\n")
	if flags != nil {
		fmt.Fprint(w, flags.FlagUsages())
	}
}

func (h *Handler) usageError(format string, args ...any) {
	fmt.Fprintf(h.stderr, "%s: error: %s\n", programName, fmt.Sprintf(format, args...))
}

// newFlagSet returns a flag set that leaves help and error printing to the caller.
func newFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}
	flags.SortFlags = false
	return flags
}

// parseFlags parses args and reports whether the command should go on.
// When it should not, code holds the exit status.
func (h *Handler) parseFlags(cmd *Command, flags *pflag.FlagSet, args []string, positional string) (code int, ok bool) {
	err := flags.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		h.printCommandUsage(h.stdout, cmd.Name, cmd.Usage, flags, positional)
		return ExitOK, false
	}
	if err != nil {
		h.printCommandUsage(h.stderr, cmd.Name, cmd.Usage, nil, "")
		h.usageError("%v", err)
		return ExitUsage, false
	}
	return ExitOK, true
}

func (h *Handler) runPlay(ctx context.Context, args []string) int {
	cmd, _ := h.findCommand(cmdPlay)
	flags := newFlagSet(cmdPlay)
	level := flags.IntP("level", "l", int(entities.DifficultyEasy), "Game level: 1(easy) - 3(hard)")

	if code, ok := h.parseFlags(cmd, flags, args, ""); !ok {
		return code
	}
	if flags.NArg() > 0 {
		h.printCommandUsage(h.stderr, cmd.Name, cmd.Usage, nil, "")
		h.usageError("unrecognized arguments: %s", strings.Join(flags.Args(), " "))
		return ExitUsage
	}

	difficulty := entities.Difficulty(*level)
	if !difficulty.Valid() {
		h.printCommandUsage(h.stderr, cmd.Name, cmd.Usage, nil, "")
		h.usageError("argument -l/--level: invalid choice: %d (choose from 1, 2, 3)", *level)
		return ExitUsage
	}

	return h.withErrorHandling(cmdPlay, func(ctx context.Context) error {
		return h.play(ctx, difficulty)
	})(ctx)
}

func (h *Handler) play(ctx context.Context, difficulty entities.Difficulty) error {
	result, err := h.quizService.Play(ctx, difficulty, h.console)
	if err != nil {
		return err
	}

	fmt.Fprint(h.stdout, renderSummary(h.palette, result))
	if result.Reason == entities.EndReasonQuit {
		fmt.Fprintln(h.stdout, msgGameEnded)
	}

	h.logger.Info("game finished",
		zap.Stringer("session_id", result.SessionID),
		zap.Int("score", result.Score),
		zap.Int("rounds_played", result.RoundsPlayed),
		zap.Int("difficulty", int(result.Difficulty)),
	)
	return nil
}

func (h *Handler) runList(ctx context.Context, args []string) int {
	cmd, _ := h.findCommand(cmdList)
	flags := newFlagSet(cmdList)
	if code, ok := h.parseFlags(cmd, flags, args, ""); !ok {
		return code
	}
	if flags.NArg() > 0 {
		h.printCommandUsage(h.stderr, cmd.Name, cmd.Usage, nil, "")
		h.usageError("unrecognized arguments: %s", strings.Join(flags.Args(), " "))
		return ExitUsage
	}

	return h.withErrorHandling(cmdList, h.list)(ctx)
}

func (h *Handler) list(ctx context.Context) error {
	questions, err := h.questionService.List(ctx)
	if err != nil {
		return err
	}
	for i, q := range questions {
		fmt.Fprintln(h.stdout, renderQuestionLine(h.palette, i+1, q))
	}
	return nil
}

func (h *Handler) runAdd(ctx context.Context, args []string) int {
	cmd, _ := h.findCommand(cmdAdd)
	flags := newFlagSet(cmdAdd)
	if code, ok := h.parseFlags(cmd, flags, args, ""); !ok {
		return code
	}
	if flags.NArg() > 0 {
		h.printCommandUsage(h.stderr, cmd.Name, cmd.Usage, nil, "")
		h.usageError("unrecognized arguments: %s", strings.Join(flags.Args(), " "))
		return ExitUsage
	}

	return h.withErrorHandling(cmdAdd, h.add)(ctx)
}

func (h *Handler) add(ctx context.Context) error {
	fmt.Fprintln(h.stdout, msgAddIntro)

	question, err := h.questionService.Add(ctx, h.console)
	switch {
	case errors.Is(err, service.ErrNotSaved) && errors.Is(err, repository.ErrSchemaViolation):
		h.printError(msgElementNotValidated)
		h.printError(msgFatal)
		fmt.Fprintln(h.stdout, msgQuestionNotAdded)
		return reported(err)
	case errors.Is(err, service.ErrNotSaved):
		fmt.Fprintln(h.stdout, msgQuestionNotAdded)
		return err
	case errors.Is(err, io.EOF):
		fmt.Fprintln(h.stdout)
		fmt.Fprintln(h.stdout, msgQuestionNotAdded)
		return reported(err)
	case err != nil:
		return err
	}

	fmt.Fprintln(h.stdout, h.palette.success(msgQuestionAdded))
	h.logger.Debug("question saved", zap.String("prompt", question.Prompt))
	return nil
}

func (h *Handler) runDelete(ctx context.Context, args []string) int {
	const positional = "  question_no  Question number to delete (first list questions)"

	cmd, _ := h.findCommand(cmdDelete)
	flags := newFlagSet(cmdDelete)
	flagArgs, numbers := splitNegativeNumbers(args)
	if code, ok := h.parseFlags(cmd, flags, flagArgs, positional); !ok {
		return code
	}
	rest := append(flags.Args(), numbers...)

	switch {
	case len(rest) == 0:
		h.printCommandUsage(h.stderr, cmd.Name, cmd.Usage, nil, "")
		h.usageError("the following arguments are required: question_no")
		return ExitUsage
	case len(rest) > 1:
		h.printCommandUsage(h.stderr, cmd.Name, cmd.Usage, nil, "")
		h.usageError("unrecognized arguments: %s", strings.Join(rest[1:], " "))
		return ExitUsage
	}

	number, err := strconv.Atoi(rest[0])
	if err != nil {
		h.printCommandUsage(h.stderr, cmd.Name, cmd.Usage, nil, "")
		h.usageError("argument question_no: invalid int value: '%s'", rest[0])
		return ExitUsage
	}

	return h.withErrorHandling(cmdDelete, func(ctx context.Context) error {
		return h.delete(ctx, number)
	})(ctx)
}

func (h *Handler) delete(ctx context.Context, number int) error {
	deleted, err := h.questionService.Delete(ctx, number, h.console)
	switch {
	case errors.Is(err, service.ErrNotConfirmed):
		fmt.Fprintln(h.stdout, msgQuestionNotDelete)
		return nil
	case errors.Is(err, service.ErrNotSaved) && errors.Is(err, repository.ErrSchemaViolation):
		h.printError(msgElementNotValidated)
		h.printError(msgFatal)
		fmt.Fprintln(h.stdout, msgQuestionNotDelete)
		return reported(err)
	case errors.Is(err, service.ErrNotSaved):
		fmt.Fprintln(h.stdout, msgQuestionNotDelete)
		return err
	case err != nil:
		return err
	}

	fmt.Fprintln(h.stdout, h.palette.success(msgQuestionDeleted))
	h.logger.Debug("question removed", zap.Int("number", number), zap.String("prompt", deleted.Prompt))
	return nil
}

// splitNegativeNumbers separates arguments like "-3" so the flag parser does
// not read them as shorthand flags.
func splitNegativeNumbers(args []string) (flagArgs, numbers []string) {
	for _, arg := range args {
		if len(arg) > 1 && arg[0] == '-' {
			if _, err := strconv.Atoi(arg); err == nil {
				numbers = append(numbers, arg)
				continue
			}
		}
		flagArgs = append(flagArgs, arg)
	}
	return flagArgs, numbers
}
