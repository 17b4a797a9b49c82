// Package main is the entry point for the cortex CLI.
package main

import (
	"os"

	"github.com/aoatridge/cortex/cmd/cortex/commands"
	"github.com/aoatridge/cortex/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
