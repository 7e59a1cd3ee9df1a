package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpratt/provsync/internal/errors"
	"github.com/mpratt/provsync/internal/logging"
	"github.com/mpratt/provsync/internal/mcp"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "config.json"),
		WithLogger(logging.ForTest(t)))
	require.NoError(t, err)
	return s
}

func TestOpen_MissingFileYieldsDefaultRoot(t *testing.T) {
	s := openTestStore(t)

	s.Read(func(root *Root) {
		assert.Equal(t, CurrentVersion, root.Version)
		for _, client := range []string{"claude", "codex", "gemini"} {
			assert.NotNil(t, root.Clients[client], client)
			assert.NotNil(t, root.MCP[client], client)
		}
	})
}

func TestOpen_RejectsLegacyLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	legacy := `{"providers": {"default": {"id": "default", "name": "Default"}}, "current": "default"}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	_, err := Open(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrLegacyConfig))

	var exitErr *errors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.NotEmpty(t, exitErr.Suggestion, "legacy rejection must carry remediation steps")
}

func TestOpen_RejectsWrongVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1, "claude": {"providers": {}, "current": ""}}`), 0o600))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestRoot_JSONRoundTrip(t *testing.T) {
	root := NewRoot()
	root.Client("codex").Providers["work"] = &Provider{
		ID:       "work",
		Name:     "Work",
		Settings: map[string]any{"auth": map[string]any{"OPENAI_API_KEY": "sk-x"}},
		Category: "official",
	}
	root.Client("codex").Current = "work"
	root.Servers("claude")["fetch"] = &mcp.ServerEntry{
		ID:      "fetch",
		Enabled: true,
		Server:  &mcp.ServerSpec{Type: mcp.TypeStdio, Command: "uvx", Args: []string{"mcp-fetch"}},
	}

	data, err := json.Marshal(root)
	require.NoError(t, err)

	// The document form is flat: client partitions at top level.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "version")
	assert.Contains(t, raw, "codex")
	assert.Contains(t, raw, "mcp")

	var back Root
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, root.Version, back.Version)
	assert.Equal(t, "work", back.Client("codex").Current)
	require.NotNil(t, back.Client("codex").Provider("work"))
	assert.Equal(t, root.Client("codex").Provider("work").Settings,
		back.Client("codex").Provider("work").Settings)
	require.NotNil(t, back.Servers("claude")["fetch"])
	assert.Equal(t, "uvx", back.Servers("claude")["fetch"].Server.Command)
}

func TestPersist_CreatesBackupOfExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	s, err := Open(path, WithLogger(logging.ForTest(t)))
	require.NoError(t, err)

	// First persist: no file yet, so no snapshot.
	require.NoError(t, s.Persist())
	entries, _ := os.ReadDir(filepath.Join(dir, "backups"))
	assert.Empty(t, entries)

	// Second persist: previous file gets snapshotted first.
	require.NoError(t, s.Persist())
	entries, err = os.ReadDir(filepath.Join(dir, "backups"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUpdate_NoPersistOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	s, err := Open(path, WithLogger(logging.ForTest(t)))
	require.NoError(t, err)

	wantErr := errors.New("boom")
	err = s.Update(func(root *Root) (bool, error) {
		root.Client("claude").Current = "leaked"
		return true, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("store file must not be written when the mutation fails")
	}
}

func TestProviderCRUD(t *testing.T) {
	s := openTestStore(t)

	err := s.AddProvider("codex", &Provider{Name: "My Relay"})
	require.NoError(t, err)

	p, err := s.GetProvider("codex", "my-relay")
	require.NoError(t, err)
	assert.Equal(t, "my-relay", p.ID, "id is derived from the display name")
	assert.NotZero(t, p.CreatedAt)

	// Duplicate ids are rejected.
	err = s.AddProvider("codex", &Provider{ID: "my-relay", Name: "Other"})
	assert.ErrorIs(t, err, errors.ErrProviderExists)

	// Reload from disk: the add persisted.
	s2, err := Open(s.Path())
	require.NoError(t, err)
	_, err = s2.GetProvider("codex", "my-relay")
	assert.NoError(t, err)

	require.NoError(t, s.RemoveProvider("codex", "my-relay"))
	_, err = s.GetProvider("codex", "my-relay")
	assert.ErrorIs(t, err, errors.ErrProviderNotFound)

	err = s.RemoveProvider("codex", "my-relay")
	assert.ErrorIs(t, err, errors.ErrProviderNotFound)
}

func TestUpdateProvider(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.AddProvider("claude", &Provider{ID: "a", Name: "A"}))

	require.NoError(t, s.UpdateProvider("claude", "a", func(p *Provider) {
		p.Name = "Renamed"
		p.ID = "sneaky" // ignored, the slot key wins
	}))

	p, err := s.GetProvider("claude", "a")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Name)
	assert.Equal(t, "a", p.ID)

	err = s.UpdateProvider("claude", "missing", func(*Provider) {})
	assert.ErrorIs(t, err, errors.ErrProviderNotFound)
}

func TestRemoveProvider_ClearsCurrent(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.AddProvider("claude", &Provider{ID: "a", Name: "A"}))
	require.NoError(t, s.Update(func(root *Root) (bool, error) {
		root.Client("claude").Current = "a"
		return true, nil
	}))

	require.NoError(t, s.RemoveProvider("claude", "a"))
	assert.Empty(t, s.Current("claude"))
}

func TestListProviders_Sorted(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.AddProvider("gemini", &Provider{ID: "b", Name: "Beta", SortIndex: 2}))
	require.NoError(t, s.AddProvider("gemini", &Provider{ID: "a", Name: "Alpha", SortIndex: 1}))

	list := s.ListProviders("gemini")
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
}

func TestSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"My Relay", "my-relay"},
		{"  Spaced  Out  ", "spaced-out"},
		{"API (v2)!", "api-v2"},
		{"ößé", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
