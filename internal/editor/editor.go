// Package editor launches the user's preferred text editor on a file.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// Streams are the terminal streams handed to the editor process.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Open runs the user's editor on path and waits for it to exit.
// The editor is taken from $EDITOR, then $VISUAL, then nano, then vi.
// Values such as "code --wait" are split into command and arguments.
func Open(ctx context.Context, path string, s Streams) error {
	name, args := split(Detect())
	cmd := exec.CommandContext(ctx, name, append(args, path)...)
	cmd.Stdin = s.In
	cmd.Stdout = s.Out
	cmd.Stderr = s.Err

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", name)
	}
	return nil
}

// Detect returns the editor command line to use.
func Detect() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}

func split(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "vi", nil
	}
	return fields[0], fields[1:]
}
