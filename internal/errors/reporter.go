package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"gorpl/internal/scan"
)

// Reporter renders compiler errors with the offending source line and a
// caret marker underneath, in the style of modern compiler diagnostics.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter creates a reporter for one source file.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// Report formats err for terminal output. Lexical and syntax errors get the
// full source-context treatment; anything else is rendered on a single line.
func (r *Reporter) Report(err error) string {
	var lexErr *LexError
	var synErr *SyntaxError

	switch {
	case stderrors.As(err, &lexErr):
		return r.format(lexErr.Message, lexErr.Pos, 1)
	case stderrors.As(err, &synErr):
		length := len(synErr.Lexeme)
		if length == 0 {
			length = 1
		}
		return r.format(synErr.Message, synErr.Pos, length)
	default:
		red := color.New(color.FgRed).SprintFunc()
		return fmt.Sprintf("%s: %v\n", red("error"), err)
	}
}

func (r *Reporter) format(message string, pos scan.Position, length int) string {
	var lineContent string
	if pos.Line-1 >= 0 && pos.Line-1 < len(r.lines) {
		lineContent = r.lines[pos.Line-1]
	}

	marker := strings.Repeat(" ", max(0, pos.Column-1)) +
		strings.Repeat("^", max(1, length))

	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	lineNumberWidth := len(fmt.Sprintf("%d", pos.Line))
	if lineNumberWidth < 3 {
		lineNumberWidth = 3
	}
	indent := strings.Repeat(" ", lineNumberWidth)

	return fmt.Sprintf(
		"%s: %s\n%s┌─ %s:%d:%d\n%s│\n%3d│%s\n%s│%s\n\n",
		red("error"),
		message,
		indent,
		r.filename, pos.Line, pos.Column,
		indent,
		pos.Line, lineContent,
		indent,
		bold(marker),
	)
}
