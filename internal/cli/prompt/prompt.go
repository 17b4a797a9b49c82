// Package prompt provides interactive CLI prompts for user input.
//
// Operations receive a [Prompter] instead of reading stdin directly, so the
// same code path runs interactively, in tests, and in scripted use.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aoatridge/cortex/internal/errors"
)

// Choice is the answer to Choose. Index is -1 when the user typed a value
// that is not one of the options, and Value is "" when the user skipped.
type Choice struct {
	Index int
	Value string
}

// Skipped reports whether the user gave no answer.
func (c Choice) Skipped() bool {
	return c.Value == ""
}

// Prompter asks the user questions.
type Prompter interface {
	// Confirm asks a yes/no question. Only "y" and "yes" count as yes.
	Confirm(question string) (bool, error)

	// Ask reads a free-form line, trimmed of surrounding whitespace.
	Ask(question string) (string, error)

	// Choose offers numbered options. The user may answer with a number,
	// with free-form text, or with nothing to skip.
	Choose(question string, options []string) (Choice, error)
}

// Terminal prompts on line-oriented input and output. End of input is
// treated as an empty answer.
type Terminal struct {
	reader *bufio.Reader
	writer io.Writer
}

var _ Prompter = (*Terminal)(nil)

// NewTerminal creates a Terminal using stdin and stdout.
func NewTerminal() *Terminal {
	return NewTerminalWithIO(os.Stdin, os.Stdout)
}

// NewTerminalWithIO creates a Terminal with custom reader and writer for testing.
func NewTerminalWithIO(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "reading input")
	}
	return strings.TrimSpace(line), nil
}

// Confirm implements Prompter.
func (t *Terminal) Confirm(question string) (bool, error) {
	fmt.Fprintf(t.writer, "%s [y/N]: ", question)
	answer, err := t.readLine()
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// Ask implements Prompter.
func (t *Terminal) Ask(question string) (string, error) {
	fmt.Fprintf(t.writer, "%s: ", question)
	return t.readLine()
}

// Choose implements Prompter.
func (t *Terminal) Choose(question string, options []string) (Choice, error) {
	for i, opt := range options {
		fmt.Fprintf(t.writer, "  %d. %s\n", i+1, opt)
	}
	fmt.Fprintf(t.writer, "%s: ", question)

	answer, err := t.readLine()
	if err != nil {
		return Choice{Index: -1}, err
	}
	return parseChoice(answer, options), nil
}

func parseChoice(answer string, options []string) Choice {
	if answer == "" {
		return Choice{Index: -1}
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return Choice{Index: n - 1, Value: options[n-1]}
	}
	return Choice{Index: -1, Value: answer}
}

// Scripted answers without reading input. Confirm returns Yes; Ask and
// Choose always skip.
type Scripted struct {
	Yes bool
}

var _ Prompter = Scripted{}

// Confirm implements Prompter.
func (s Scripted) Confirm(string) (bool, error) { return s.Yes, nil }

// Ask implements Prompter.
func (Scripted) Ask(string) (string, error) { return "", nil }

// Choose implements Prompter.
func (Scripted) Choose(string, []string) (Choice, error) { return Choice{Index: -1}, nil }
