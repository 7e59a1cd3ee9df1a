package paths

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidClient(t *testing.T) {
	for _, c := range Clients() {
		if !ValidClient(c) {
			t.Errorf("ValidClient(%q) = false, want true", c)
		}
	}
	if ValidClient("cursor") {
		t.Error("ValidClient(cursor) = true, want false")
	}
}

func TestResolver_Defaults(t *testing.T) {
	r := NewResolver()

	if !strings.HasSuffix(r.StorePath(), filepath.Join("provsync", "config.json")) {
		t.Errorf("StorePath() = %q", r.StorePath())
	}
	if filepath.Dir(r.BackupDir()) != r.DataDir() {
		t.Errorf("BackupDir() = %q not under DataDir() = %q", r.BackupDir(), r.DataDir())
	}

	if !strings.HasSuffix(r.ClaudeSettingsPath(), filepath.Join(".claude", "settings.json")) {
		t.Errorf("ClaudeSettingsPath() = %q", r.ClaudeSettingsPath())
	}
	if !strings.HasSuffix(r.CodexAuthPath(), filepath.Join(".codex", "auth.json")) {
		t.Errorf("CodexAuthPath() = %q", r.CodexAuthPath())
	}
	if !strings.HasSuffix(r.CodexConfigPath(), filepath.Join(".codex", "config.toml")) {
		t.Errorf("CodexConfigPath() = %q", r.CodexConfigPath())
	}
	if !strings.HasSuffix(r.GeminiEnvPath(), filepath.Join(".gemini", ".env")) {
		t.Errorf("GeminiEnvPath() = %q", r.GeminiEnvPath())
	}
}

func TestResolver_Overrides(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(
		WithDataDir(dir),
		WithClientDir(ClientCodex, filepath.Join(dir, "codex-home")),
	)

	if r.StorePath() != filepath.Join(dir, "config.json") {
		t.Errorf("StorePath() = %q", r.StorePath())
	}
	if r.CodexConfigPath() != filepath.Join(dir, "codex-home", "config.toml") {
		t.Errorf("CodexConfigPath() = %q", r.CodexConfigPath())
	}
	// Other clients keep their defaults.
	if strings.HasPrefix(r.ClaudeSettingsPath(), dir) {
		t.Errorf("claude path unexpectedly overridden: %q", r.ClaudeSettingsPath())
	}
}

func TestResolver_UnknownClient(t *testing.T) {
	r := NewResolver()
	if got := r.ClientDir("cursor"); got != "" {
		t.Errorf("ClientDir(unknown) = %q, want empty", got)
	}
}
