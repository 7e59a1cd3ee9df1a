package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrProviderNotFound indicates the requested provider id is absent
	// from the client's provider map.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrProviderExists indicates a provider with the same id already exists.
	ErrProviderExists = errors.New("provider already exists")

	// ErrClientUnknown indicates the client identifier is not recognized.
	ErrClientUnknown = errors.New("unknown client")

	// ErrInvalidPayload indicates a stored settings payload fails the
	// client-specific shape contract (e.g. missing auth object).
	ErrInvalidPayload = errors.New("invalid settings payload")

	// ErrMcpValidation indicates an MCP server entry fails type or field checks.
	ErrMcpValidation = errors.New("invalid MCP server definition")

	// ErrLegacyConfig indicates the on-disk store uses the retired
	// single-profile layout that must be migrated by hand.
	ErrLegacyConfig = errors.New("unsupported legacy config format")
)

// Re-exports so callers use a single errors package throughout.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Mark   = errors.Mark
)

// ExitError wraps an error with an exit code and optional suggestion for CLI
// applications. It implements the error interface and supports unwrapping.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewLegacyConfigError creates the dedicated rejection error for the retired
// single-profile store layout. No automatic migration is attempted, so the
// message embeds concrete remediation steps.
func NewLegacyConfigError(path string) *ExitError {
	err := errors.Wrapf(ErrLegacyConfig, "%s uses the retired single-profile layout", path)
	return &ExitError{
		Err:  err,
		Code: ExitUser,
		Suggestion: `Migrate the file by hand: wrap the existing "providers" map and ` +
			`"current" key in a per-client object ({"version": 2, "claude": {"providers": ..., ` +
			`"current": ...}, "mcp": {}}) or move the file aside to start fresh.`,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
