package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/aliskhannn/termquiz/internal/domain/entities"
)

// writerIsTTY is swapped in tests that need a terminal.
var writerIsTTY = func(w io.Writer) bool {
	fd, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fd.Fd()))
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// palette applies styles only when the output is an interactive terminal.
type palette struct {
	enabled bool
}

// paletteFor styles w only when it is a terminal and neither the options
// nor the environment (NO_COLOR, TERM=dumb) turn colors off.
func paletteFor(w io.Writer, noColor bool) palette {
	if noColor || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return palette{}
	}
	return palette{enabled: writerIsTTY(w)}
}

func (p palette) stylize(text string, style lipgloss.Style) string {
	if !p.enabled {
		return text
	}
	return style.Render(text)
}

func (p palette) header(text string) string  { return p.stylize(text, headerStyle) }
func (p palette) success(text string) string { return p.stylize(text, successStyle) }
func (p palette) failure(text string) string { return p.stylize(text, failureStyle) }
func (p palette) muted(text string) string   { return p.stylize(text, mutedStyle) }

// renderQuestion renders the round header, the prompt and the numbered options.
func renderQuestion(p palette, round, total int, variant entities.Variant) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(p.header(fmt.Sprintf("Question %d/%d", round, total)))
	b.WriteString("\n")
	b.WriteString(variant.Prompt)
	b.WriteString("\n")
	for i, option := range variant.Options {
		fmt.Fprintf(&b, "(%d) %s\n", i+1, option)
	}
	return b.String()
}

// renderSummary renders the final score block.
func renderSummary(p palette, result *entities.QuizResult) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(p.header(fmt.Sprintf("Final score: %d", result.Score)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Difficulty level: %d/%d\n", result.Difficulty, entities.MaxDifficulty)
	b.WriteString(remarkText(result.Remark()))
	b.WriteString("\n")
	return b.String()
}

// renderQuestionLine renders one entry of the question list.
func renderQuestionLine(p palette, number int, q entities.Question) string {
	return fmt.Sprintf("%s - %s", p.muted(fmt.Sprintf("%4d", number)), q.Prompt)
}

// renderDeleteTarget renders the confirmation header for a deletion.
func renderDeleteTarget(number int, q entities.Question) string {
	return fmt.Sprintf("%s\n  %s\n", msgDeleteTarget(number), strings.TrimRight(q.Prompt, "?"))
}
