package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aliskhannn/termquiz/internal/domain/entities"
	"github.com/aliskhannn/termquiz/internal/service"
)

// Console talks to the player over line-oriented input and output.
// It serves the play rounds, the authoring prompts and delete confirmations.
type Console struct {
	reader  *bufio.Reader
	out     io.Writer
	palette palette
}

// NewConsole creates a new Console reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer, p palette) *Console {
	return &Console{
		reader:  bufio.NewReader(in),
		out:     out,
		palette: p,
	}
}

// readLine reads one line without its line ending. A final line without a
// newline is returned as is; io.EOF is returned only when nothing was read.
func (c *Console) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) ShowQuestion(round, total int, variant entities.Variant) {
	fmt.Fprint(c.out, renderQuestion(c.palette, round, total, variant))
}

func (c *Console) ReadAnswer(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.out, msgAnswerPrompt)
	return c.readLine()
}

func (c *Console) ShowAnswerHint() {
	fmt.Fprintln(c.out, c.palette.muted(msgAnswerHint))
}

func (c *Console) ShowFeedback(isCorrect bool, correctAnswer string) {
	if isCorrect {
		fmt.Fprintln(c.out, c.palette.success(msgGoodJob))
		return
	}
	fmt.Fprintln(c.out, c.palette.failure(msgWrongAnswer(correctAnswer)))
}

// Ask prints "label: " and reads the value.
func (c *Console) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(c.out, "%s: ", label)
	return c.readLine()
}

func (c *Console) Reject(_ string, err error) {
	if errors.Is(err, service.ErrDuplicateAnswer) {
		fmt.Fprintln(c.out, c.palette.failure(msgAlreadyAdded))
		return
	}
	fmt.Fprintln(c.out, c.palette.failure(err.Error()))
}

// ConfirmDelete shows the question and accepts exactly "y" or "yes". Any
// other response, including end of input, declines.
func (c *Console) ConfirmDelete(ctx context.Context, number int, question entities.Question) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Fprint(c.out, renderDeleteTarget(number, question))
	fmt.Fprint(c.out, msgConfirmDelete)

	line, err := c.readLine()
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(c.out)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch line {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
