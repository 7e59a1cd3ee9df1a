package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("hello", "client", "codex")

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "client=codex") {
		t.Errorf("output missing attribute: %q", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatJSON,
		Output: &buf,
	})

	logger.Info("hello")

	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelWarn,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info message should have been filtered")
	}
	if !strings.Contains(out, "kept") {
		t.Error("warn message should have been logged")
	}
}

func TestHandler_MasksSensitiveAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("loaded provider", "api_key", "sk-ant-supersecretvalue")

	out := buf.String()
	if strings.Contains(out, "supersecretvalue") {
		t.Errorf("secret leaked into log output: %q", out)
	}
	if !strings.Contains(out, "****") {
		t.Errorf("expected masked value in output: %q", out)
	}
}

func TestHandler_MasksTokenValues(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: &buf,
	})

	// Key is innocuous but the value carries a token prefix.
	logger.Info("backfill", "content", "url=x token=sk-abcdef123456")

	if strings.Contains(buf.String(), "abcdef123456") {
		t.Errorf("token value leaked: %q", buf.String())
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{0, slog.LevelInfo},
		{1, slog.LevelDebug},
		{2, slog.LevelDebug - 4},
		{5, slog.LevelDebug - 4},
	}

	for _, tt := range tests {
		got := LevelFromVerbosity(tt.verbosity)
		if got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger := NewDiscard()
	ctx := NewContext(context.Background(), logger)

	if FromContext(ctx) != logger {
		t.Error("FromContext did not return the attached logger")
	}

	// Without an attached logger, the slog default is returned.
	if FromContext(context.Background()) == nil {
		t.Error("FromContext on a bare context must not return nil")
	}
}

func TestMaskValue(t *testing.T) {
	if got := MaskValue("ab"); got != "****" {
		t.Errorf("MaskValue(short) = %q", got)
	}
	got := MaskValue("sk-abcdef")
	if !strings.HasPrefix(got, "sk-a") || strings.Contains(got, "bcdef") {
		t.Errorf("MaskValue = %q", got)
	}
}
