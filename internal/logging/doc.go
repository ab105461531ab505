// Package logging provides structured logging for the matter CLI using slog.
//
// The package supports text and JSON output, verbosity-driven levels,
// fan-out to several destinations, and helpers for carrying a logger in a
// context and for tests. All loggers are based on [log/slog].
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("loaded", "path", "content/post.md")
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging
