// Package errors provides error handling conventions for the cortex CLI.
//
// This package defines sentinel errors for common failure conditions,
// an ExitError type for CLI exit code handling, and exit code constants
// following standard Unix conventions. The wrapping helpers (New, Wrap,
// Wrapf, Is, As) are thin aliases of github.com/cockroachdb/errors.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully or was a benign no-op
//   - ExitUser (1): Issue requiring user action (not installed, invalid config, ...)
//   - ExitSystem (2): System-related error (I/O, permissions, ...)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion:
//
//	err := cortexerrors.NewUserError(err, "Run: cortex init")
//	var exitErr *cortexerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    if exitErr.Suggestion != "" {
//	        fmt.Println("Suggestion:", exitErr.Suggestion)
//	    }
//	    os.Exit(exitErr.Code)
//	}
package errors
