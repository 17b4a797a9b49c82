// Package logging provides structured logging for the cortex CLI using slog.
//
// Loggers are built by [New] from the root command's -v count, --log-format
// and --log-file flags. The primary output is either the one-line text
// [Handler] or JSON; a log file always receives JSON.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(logging.Verbosity(verbosity)),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("configured MCP server", "server", "obsidian", "vault", vault)
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Redaction
//
// Every output masks attribute values whose key looks secret
// ("token", "api_key", ...) or whose value starts with a known token
// prefix, so MCP arguments echoed at debug level never leak credentials.
//
// # Quiet Mode
//
// Use [NewDiscard] when log output should be suppressed entirely:
//
//	logger := logging.NewDiscard()
package logging
