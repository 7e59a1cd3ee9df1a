// Package errors provides error handling conventions for the provsync CLI.
//
// It re-exports the cockroachdb/errors constructors used throughout the
// codebase, defines sentinel errors for the failure taxonomy of the sync
// engine, and an ExitError type carrying an exit code plus an optional
// suggestion for the user.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific conditions using
// [Is]:
//
//	if errors.Is(err, errors.ErrProviderNotFound) {
//	    // handle missing provider
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): command completed successfully
//   - ExitUser (1): user-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): system-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := errors.NewUserError(errors.ErrInvalidPayload, "Check the provider settings")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
