package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mpratt/provsync/internal/config"
)

// setupCommandTest points the loaded settings at temp directories so command
// runs never touch the real home directory.
func setupCommandTest(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	appConfig = &config.Config{
		DataDir: filepath.Join(dir, "provsync"),
		Clients: map[string]config.ClientOverride{
			"claude": {ConfigDir: filepath.Join(dir, "claude")},
			"codex":  {ConfigDir: filepath.Join(dir, "codex")},
			"gemini": {ConfigDir: filepath.Join(dir, "gemini")},
		},
	}
	t.Cleanup(func() { appConfig = nil })
}

func TestRootCommand_Metadata(t *testing.T) {
	if rootCmd.Use != "provsync" {
		t.Errorf("Use = %q, want %q", rootCmd.Use, "provsync")
	}
	if !rootCmd.SilenceUsage || !rootCmd.SilenceErrors {
		t.Error("root command must control its own error output")
	}
	for _, flag := range []string{"verbose", "quiet", "log-format", "log-file"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("--%s flag should be defined", flag)
		}
	}
}

func TestUseCommand_RejectsUnknownClient(t *testing.T) {
	setupCommandTest(t)

	var buf bytes.Buffer
	err := runUse([]string{"cursor", "anything"}, &buf)
	if err == nil {
		t.Fatal("expected an error for an unknown client")
	}
	if !strings.Contains(err.Error(), "cursor") {
		t.Errorf("error should name the offending client, got %v", err)
	}
}

func TestProviderList_EmptyState(t *testing.T) {
	setupCommandTest(t)

	var buf bytes.Buffer
	if err := runProviderList("codex", &buf); err != nil {
		t.Fatalf("runProviderList() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No providers configured") {
		t.Errorf("output should indicate the empty state, got %q", buf.String())
	}
}

func TestProviderAddThenListAndShow(t *testing.T) {
	setupCommandTest(t)
	addID, addCategory = "", ""
	addSettingsFile = ""

	var buf bytes.Buffer
	if err := runProviderAdd("codex", "Work Relay", &buf); err != nil {
		t.Fatalf("runProviderAdd() error = %v", err)
	}

	buf.Reset()
	if err := runProviderList("codex", &buf); err != nil {
		t.Fatalf("runProviderList() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "work-relay") || !strings.Contains(out, "Work Relay") {
		t.Errorf("list should show the added provider, got %q", out)
	}

	buf.Reset()
	if err := runProviderShow("codex", "work-relay", &buf); err != nil {
		t.Fatalf("runProviderShow() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Work Relay") {
		t.Errorf("show should print the display name, got %q", buf.String())
	}
}

func TestMCPAddListSync(t *testing.T) {
	setupCommandTest(t)
	mcpAddCommand, mcpAddURL = "uvx", ""
	mcpAddArgs = []string{"mcp-server-fetch"}
	mcpAddDisabled = false
	t.Cleanup(func() {
		mcpAddCommand, mcpAddArgs = "", nil
	})

	var buf bytes.Buffer
	if err := runMCPAdd("claude", "fetch", &buf); err != nil {
		t.Fatalf("runMCPAdd() error = %v", err)
	}

	buf.Reset()
	if err := runMCPList("claude", &buf); err != nil {
		t.Fatalf("runMCPList() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "fetch") || !strings.Contains(out, "uvx mcp-server-fetch") {
		t.Errorf("list should show the catalogued server, got %q", out)
	}

	buf.Reset()
	if err := runMCPSync("claude", &buf); err != nil {
		t.Fatalf("runMCPSync() error = %v", err)
	}
	if !strings.Contains(buf.String(), "claude") {
		t.Errorf("sync should report the client, got %q", buf.String())
	}
}

func TestMCPAdd_RequiresExactlyOneTransport(t *testing.T) {
	setupCommandTest(t)
	mcpAddCommand, mcpAddURL = "", ""

	var buf bytes.Buffer
	if err := runMCPAdd("claude", "x", &buf); err == nil {
		t.Error("expected an error when neither --command nor --url is given")
	}

	mcpAddCommand, mcpAddURL = "uvx", "https://mcp.example.com"
	t.Cleanup(func() { mcpAddCommand, mcpAddURL = "", "" })
	if err := runMCPAdd("claude", "x", &buf); err == nil {
		t.Error("expected an error when both --command and --url are given")
	}
}

func TestBackupCreateAndList(t *testing.T) {
	setupCommandTest(t)

	var buf bytes.Buffer
	if err := runBackupCreate(&buf); err != nil {
		t.Fatalf("runBackupCreate() error = %v", err)
	}
	if !strings.Contains(buf.String(), "nothing to snapshot") {
		t.Errorf("no store yet, expected the empty message, got %q", buf.String())
	}

	// A provider add persists the store; the next manual snapshot succeeds.
	addSettingsFile, addID = "", ""
	if err := runProviderAdd("gemini", "Default", &buf); err != nil {
		t.Fatalf("runProviderAdd() error = %v", err)
	}

	buf.Reset()
	if err := runBackupCreate(&buf); err != nil {
		t.Fatalf("runBackupCreate() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Snapshot") {
		t.Errorf("expected a snapshot confirmation, got %q", buf.String())
	}

	buf.Reset()
	if err := runBackupList(&buf); err != nil {
		t.Fatalf("runBackupList() error = %v", err)
	}
	if !strings.Contains(buf.String(), "backup_") {
		t.Errorf("list should show the snapshot id, got %q", buf.String())
	}
}

func TestStatusOutput(t *testing.T) {
	setupCommandTest(t)

	var buf bytes.Buffer
	if err := runStatus(&buf); err != nil {
		t.Fatalf("runStatus() error = %v", err)
	}
	out := buf.String()
	for _, client := range []string{"claude", "codex", "gemini"} {
		if !strings.Contains(out, client) {
			t.Errorf("status should list %s, got %q", client, out)
		}
	}
	if !strings.Contains(out, "n/a") {
		t.Error("gemini's MCP column should read n/a")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a-very-long-string", 10, "a-very-..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
