package errors

import (
	"testing"
)

func TestExitError_Error(t *testing.T) {
	err := NewExitError(New("boom"), ExitSystem)
	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", err.Error(), "boom")
	}

	nilErr := NewExitError(nil, ExitUser)
	if nilErr.Error() != "exit code 1" {
		t.Errorf("Error() = %q, want %q", nilErr.Error(), "exit code 1")
	}
}

func TestExitError_Unwrap(t *testing.T) {
	wrapped := Wrap(ErrProviderNotFound, "switching codex")
	err := NewUserError(wrapped, "run 'provsync provider list codex'")

	if !Is(err, ErrProviderNotFound) {
		t.Error("expected errors.Is to find ErrProviderNotFound through ExitError")
	}

	var exitErr *ExitError
	if !As(err, &exitErr) {
		t.Fatal("expected errors.As to find ExitError")
	}
	if exitErr.Code != ExitUser {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitUser)
	}
	if exitErr.Suggestion == "" {
		t.Error("expected a suggestion")
	}
}

func TestNewLegacyConfigError(t *testing.T) {
	err := NewLegacyConfigError("/home/u/.provsync/config.json")

	if !Is(err, ErrLegacyConfig) {
		t.Error("expected errors.Is to match ErrLegacyConfig")
	}
	if err.Suggestion == "" {
		t.Error("legacy error must carry remediation steps")
	}
	if err.Code != ExitUser {
		t.Errorf("Code = %d, want %d", err.Code, ExitUser)
	}
}
