package client

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/mpratt/provsync/internal/errors"
	"github.com/mpratt/provsync/internal/mcp"
	"github.com/mpratt/provsync/internal/paths"
	"github.com/mpratt/provsync/internal/tomledit"
	"github.com/mpratt/provsync/pkg/fileutil"
)

// Payload keys for the codex client. The payload mirrors both live files:
// the parsed auth.json object and the raw config.toml text.
const (
	codexAuthKey   = "auth"
	codexConfigKey = "config"
)

// The two legacy-compatible table shapes the MCP projector recognizes in
// config.toml. Exactly one is rebuilt; the other is removed if present.
const (
	codexFlatTable   = "mcp_servers"
	codexNestedTable = "mcp.servers"
	codexNestedRoot  = "mcp"
)

// Codex adapts the codex client: a credentials JSON file plus a TOML
// settings file edited with layout preservation.
type Codex struct {
	authPath   string
	configPath string
}

// NewCodex creates the codex adapter.
func NewCodex(resolver *paths.Resolver) *Codex {
	return &Codex{
		authPath:   resolver.CodexAuthPath(),
		configPath: resolver.CodexConfigPath(),
	}
}

// ID implements Adapter.
func (c *Codex) ID() string { return paths.ClientCodex }

// AuthPath returns the live credentials file location.
func (c *Codex) AuthPath() string { return c.authPath }

// ConfigPath returns the live TOML settings file location.
func (c *Codex) ConfigPath() string { return c.configPath }

// LiveExists implements Adapter.
func (c *Codex) LiveExists() (bool, error) {
	for _, p := range []string{c.authPath, c.configPath} {
		ok, err := fileExists(p)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// ReadLive implements Adapter. Missing individual files read as empty: a
// half-provisioned codex install still backfills what is there.
func (c *Codex) ReadLive() (Payload, error) {
	settings := make(Payload)

	auth, err := readJSONObject(c.authPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		auth = make(map[string]any)
	}
	settings[codexAuthKey] = auth

	data, err := fileutil.ReadFileWithLimit(c.configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		data = nil
	}
	settings[codexConfigKey] = string(data)

	return settings, nil
}

// ValidatePayload implements Adapter: the payload must contain an auth
// object, and the config text, when present, must be a string of valid TOML.
func (c *Codex) ValidatePayload(settings Payload) error {
	if settings == nil {
		return errors.Wrap(errors.ErrInvalidPayload, "codex settings must be a JSON object")
	}
	if _, ok := objectField(settings, codexAuthKey); !ok {
		return errors.Wrap(errors.ErrInvalidPayload, "codex settings require an auth object")
	}
	if _, present := settings[codexConfigKey]; present {
		text, ok := stringField(settings, codexConfigKey)
		if !ok {
			return errors.Wrap(errors.ErrInvalidPayload, "codex config must be a TOML string")
		}
		if _, err := tomledit.Parse([]byte(text)); err != nil {
			return errors.Wrap(errors.ErrInvalidPayload, err.Error())
		}
	}
	return nil
}

// WriteLive implements Adapter: auth.json and config.toml are each written
// atomically.
func (c *Codex) WriteLive(settings Payload) error {
	if err := c.ValidatePayload(settings); err != nil {
		return err
	}

	auth, _ := objectField(settings, codexAuthKey)
	if err := paths.EnsureDir(filepath.Dir(c.authPath), 0); err != nil {
		return errors.Wrap(err, "creating codex config directory")
	}
	if err := fileutil.AtomicWriteJSON(c.authPath, auth); err != nil {
		return errors.Wrapf(err, "writing %s", c.authPath)
	}

	text, _ := stringField(settings, codexConfigKey)
	if !strings.HasSuffix(text, "\n") && text != "" {
		text += "\n"
	}
	return errors.Wrapf(fileutil.AtomicWriteFile(c.configPath, []byte(text), 0o600),
		"writing %s", c.configPath)
}

// SupportsMCP implements Adapter.
func (c *Codex) SupportsMCP() bool { return true }

// ProjectServers implements Adapter. The projector locates which of the two
// table shapes the document already uses and rebuilds only that one,
// identifier-sorted; the other shape is removed to avoid duplicate
// definitions, and an empty set removes the table instead of leaving an
// empty one. Everything else in the document, comments included, stays
// byte-for-byte intact.
func (c *Codex) ProjectServers(entries []*mcp.ServerEntry) error {
	data, err := fileutil.ReadFileWithLimit(c.configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		data = nil
	}

	doc, err := tomledit.Parse(data)
	if err != nil {
		return errors.Wrapf(err, "refusing to rewrite %s", c.configPath)
	}

	hasFlat := doc.HasTable(codexFlatTable)
	hasNested := doc.HasTable(codexNestedTable)

	if len(entries) == 0 {
		removed := doc.RemoveTable(codexFlatTable)
		if doc.RemoveTable(codexNestedTable) {
			removed = true
		}
		if !removed {
			// Nothing to do; leave the file untouched.
			return nil
		}
		return c.writeConfig(doc.Bytes())
	}

	// Prefer the shape already present; default to the flat table.
	target := codexFlatTable
	if hasNested && !hasFlat {
		target = codexNestedTable
	}

	content, err := marshalServerTables(target, entries)
	if err != nil {
		return err
	}

	if target == codexFlatTable {
		doc.RemoveTable(codexNestedTable)
	} else {
		doc.RemoveTable(codexFlatTable)
	}
	doc.ReplaceTable(target, content)

	return c.writeConfig(doc.Bytes())
}

func (c *Codex) writeConfig(data []byte) error {
	if err := paths.EnsureDir(filepath.Dir(c.configPath), 0); err != nil {
		return errors.Wrap(err, "creating codex config directory")
	}
	return errors.Wrapf(fileutil.AtomicWriteFile(c.configPath, data, 0o600),
		"writing %s", c.configPath)
}

// marshalServerTables renders the enabled set as TOML tables under the given
// dotted prefix. go-toml sorts map keys, which yields the identifier order
// the projector promises.
func marshalServerTables(prefix string, entries []*mcp.ServerEntry) ([]byte, error) {
	servers := make(map[string]any, len(entries))
	for _, entry := range entries {
		servers[entry.ID] = entry.Server.Native()
	}

	// Build the nesting for the prefix path.
	var root any = servers
	parts := strings.Split(prefix, ".")
	for i := len(parts) - 1; i >= 0; i-- {
		root = map[string]any{parts[i]: root}
	}

	out, err := toml.Marshal(root)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling server tables")
	}

	// Drop the bare ancestor headers ([mcp_servers], [mcp], ...) the
	// marshaller emits: they carry no keys, and inserting them could collide
	// with headers already present elsewhere in the document.
	bare := make(map[string]bool, len(parts))
	for i := range parts {
		bare["["+strings.Join(parts[:i+1], ".")+"]"] = true
	}

	var kept []string
	for line := range strings.Lines(string(out)) {
		if bare[strings.TrimSpace(line)] {
			continue
		}
		kept = append(kept, strings.TrimSuffix(line, "\n"))
	}

	// Trim leading blank lines left by dropped headers.
	for len(kept) > 0 && strings.TrimSpace(kept[0]) == "" {
		kept = kept[1:]
	}

	return []byte(strings.Join(kept, "\n") + "\n"), nil
}

// ReadServers implements Adapter: both table shapes are consulted, the flat
// one first.
func (c *Codex) ReadServers() (map[string]map[string]any, error) {
	data, err := fileutil.ReadFileWithLimit(c.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var parsed map[string]any
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", c.configPath)
	}

	block, ok := parsed[codexFlatTable].(map[string]any)
	if !ok {
		if nested, isMap := parsed[codexNestedRoot].(map[string]any); isMap {
			block, _ = nested["servers"].(map[string]any)
		}
	}
	if block == nil {
		return nil, nil
	}

	out := make(map[string]map[string]any, len(block))
	for id, v := range block {
		if m, isMap := v.(map[string]any); isMap {
			out[id] = m
		}
	}
	return out, nil
}

// EndpointURL implements Adapter: the relay endpoint travels in the auth
// object when a provider uses an OpenAI-compatible relay.
func (c *Codex) EndpointURL(settings Payload) string {
	auth, ok := objectField(settings, codexAuthKey)
	if !ok {
		return ""
	}
	url, _ := auth["OPENAI_BASE_URL"].(string)
	return url
}
