package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// colourEnabled reports whether w is a terminal that should get ANSI
// colours. NO_COLOR (any value) and TERM=dumb turn colours off.
func colourEnabled(w io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
