// Package errors provides error handling conventions for the matter CLI.
//
// It defines sentinel errors shared across commands and provides an
// [ExitError] type that carries a process exit code and an optional
// suggestion for the user. Wrapping and inspection use
// [github.com/cockroachdb/errors] directly.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions:
//
//	if errors.Is(err, matterrors.ErrNotFound) {
//	    // handle not found case
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid content, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion.
// It supports unwrapping, so errors.As finds it anywhere in a chain:
//
//	err := matterrors.NewUserError(matterrors.ErrInvalidConfig, "Check your config file")
//	var exitErr *matterrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
