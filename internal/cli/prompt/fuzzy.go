package prompt

import (
	"os"

	"github.com/ktr0731/go-fuzzyfinder"
	"golang.org/x/term"

	"github.com/aoatridge/cortex/internal/errors"
)

// manualEntry is appended to fuzzy options to allow typing a value.
const manualEntry = "Enter a path manually..."

// Fuzzy uses a full-screen fuzzy finder for Choose and falls back to the
// embedded Terminal for everything else.
type Fuzzy struct {
	*Terminal
}

var _ Prompter = (*Fuzzy)(nil)

// NewFuzzy creates a Fuzzy prompter on stdin and stdout.
func NewFuzzy() *Fuzzy {
	return &Fuzzy{Terminal: NewTerminal()}
}

// Choose implements Prompter. Aborting the finder (Esc, Ctrl+C) skips.
func (f *Fuzzy) Choose(question string, options []string) (Choice, error) {
	items := append(append([]string{}, options...), manualEntry)

	idx, err := fuzzyfinder.Find(
		items,
		func(i int) string { return items[i] },
		fuzzyfinder.WithHeader(question),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return Choice{Index: -1}, nil
		}
		return Choice{Index: -1}, errors.Wrap(err, "interactive selection failed")
	}

	if idx == len(options) {
		answer, err := f.Ask(question)
		if err != nil {
			return Choice{Index: -1}, err
		}
		return Choice{Index: -1, Value: answer}, nil
	}
	return Choice{Index: idx, Value: options[idx]}, nil
}

// Interactive reports whether stdin and stdout are both terminals.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Default returns the fuzzy prompter on a terminal and a line prompter otherwise.
func Default() Prompter {
	if Interactive() {
		return NewFuzzy()
	}
	return NewTerminal()
}
