package client

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mpratt/provsync/internal/errors"
	"github.com/mpratt/provsync/internal/mcp"
	"github.com/mpratt/provsync/internal/paths"
	"github.com/mpratt/provsync/pkg/fileutil"
)

// mcpServersKey is the sub-key of the claude settings document that holds
// the server map. The tool owns this sub-structure exclusively, so the
// projector replaces it wholesale.
const mcpServersKey = "mcpServers"

// Claude adapts the claude client: one JSON settings file, read and written
// as a whole document.
type Claude struct {
	path string
}

// NewClaude creates the claude adapter.
func NewClaude(resolver *paths.Resolver) *Claude {
	return &Claude{path: resolver.ClaudeSettingsPath()}
}

// ID implements Adapter.
func (c *Claude) ID() string { return paths.ClientClaude }

// SettingsPath returns the live settings file location.
func (c *Claude) SettingsPath() string { return c.path }

// LiveExists implements Adapter.
func (c *Claude) LiveExists() (bool, error) {
	return fileExists(c.path)
}

// ReadLive implements Adapter.
func (c *Claude) ReadLive() (Payload, error) {
	return readJSONObject(c.path)
}

// ValidatePayload implements Adapter. Any JSON object is acceptable; the
// payload stays forward-compatible with fields this tool does not know.
func (c *Claude) ValidatePayload(settings Payload) error {
	if settings == nil {
		return errors.Wrap(errors.ErrInvalidPayload, "claude settings must be a JSON object")
	}
	return nil
}

// WriteLive implements Adapter.
func (c *Claude) WriteLive(settings Payload) error {
	if err := c.ValidatePayload(settings); err != nil {
		return err
	}
	if err := paths.EnsureDir(filepath.Dir(c.path), 0); err != nil {
		return errors.Wrap(err, "creating claude config directory")
	}
	return errors.Wrapf(fileutil.AtomicWriteJSON(c.path, settings), "writing %s", c.path)
}

// SupportsMCP implements Adapter.
func (c *Claude) SupportsMCP() bool { return true }

// ProjectServers implements Adapter. The whole mcpServers block is replaced
// with the given set; everything else in the document is untouched.
func (c *Claude) ProjectServers(entries []*mcp.ServerEntry) error {
	doc, err := readJSONObject(c.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		doc = make(Payload)
	}

	servers := make(map[string]any, len(entries))
	for _, entry := range entries {
		servers[entry.ID] = entry.Server.Native()
	}
	doc[mcpServersKey] = servers

	return c.WriteLive(doc)
}

// ReadServers implements Adapter.
func (c *Claude) ReadServers() (map[string]map[string]any, error) {
	doc, err := readJSONObject(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	block, ok := objectField(doc, mcpServersKey)
	if !ok {
		return nil, nil
	}

	out := make(map[string]map[string]any, len(block))
	for id, v := range block {
		if m, ok := v.(map[string]any); ok {
			out[id] = m
		}
	}
	return out, nil
}

// EndpointURL implements Adapter: claude keeps its endpoint in
// env.ANTHROPIC_BASE_URL.
func (c *Claude) EndpointURL(settings Payload) string {
	env, ok := objectField(settings, "env")
	if !ok {
		return ""
	}
	url, _ := env["ANTHROPIC_BASE_URL"].(string)
	return url
}

// fileExists reports whether path names an existing file.
func fileExists(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, "stat %s", path)
}

// readJSONObject reads and parses a JSON object document.
func readJSONObject(path string) (map[string]any, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return doc, nil
}
