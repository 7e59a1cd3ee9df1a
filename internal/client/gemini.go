package client

import (
	"fmt"
	"path/filepath"

	"github.com/mpratt/provsync/internal/errors"
	"github.com/mpratt/provsync/internal/mcp"
	"github.com/mpratt/provsync/internal/paths"
	"github.com/mpratt/provsync/pkg/fileutil"
)

// geminiEnvKey is the single payload key for the gemini client: an object of
// environment variable names to scalar values.
const geminiEnvKey = "env"

// Gemini adapts the gemini client: a flat .env file. The format has no place
// for MCP server definitions, so projection is a no-op.
type Gemini struct {
	path string
}

// NewGemini creates the gemini adapter.
func NewGemini(resolver *paths.Resolver) *Gemini {
	return &Gemini{path: resolver.GeminiEnvPath()}
}

// ID implements Adapter.
func (g *Gemini) ID() string { return paths.ClientGemini }

// EnvPath returns the live .env file location.
func (g *Gemini) EnvPath() string { return g.path }

// LiveExists implements Adapter.
func (g *Gemini) LiveExists() (bool, error) {
	return fileExists(g.path)
}

// ReadLive implements Adapter. Comments in the live file are not preserved:
// the capture is the effective variable set.
func (g *Gemini) ReadLive() (Payload, error) {
	data, err := fileutil.ReadFileWithLimit(g.path)
	if err != nil {
		return nil, err
	}

	env := make(map[string]any)
	for k, v := range ParseEnv(data) {
		env[k] = v
	}
	return Payload{geminiEnvKey: env}, nil
}

// ValidatePayload implements Adapter: the env object must hold only scalar
// values, since nested structures have no .env representation.
func (g *Gemini) ValidatePayload(settings Payload) error {
	if settings == nil {
		return errors.Wrap(errors.ErrInvalidPayload, "gemini settings must be a JSON object")
	}
	env, ok := objectField(settings, geminiEnvKey)
	if !ok {
		return errors.Wrap(errors.ErrInvalidPayload, "gemini settings require an env object")
	}
	for k, v := range env {
		switch v.(type) {
		case string, bool, float64, int, int64, nil:
		default:
			return errors.Wrapf(errors.ErrInvalidPayload,
				"gemini env value %q must be scalar", k)
		}
	}
	return nil
}

// WriteLive implements Adapter: the variable set is rendered sorted and
// written atomically.
func (g *Gemini) WriteLive(settings Payload) error {
	if err := g.ValidatePayload(settings); err != nil {
		return err
	}

	env, _ := objectField(settings, geminiEnvKey)
	flat := make(map[string]string, len(env))
	for k, v := range env {
		if v == nil {
			continue
		}
		flat[k] = fmt.Sprintf("%v", v)
	}

	if err := paths.EnsureDir(filepath.Dir(g.path), 0); err != nil {
		return errors.Wrap(err, "creating gemini config directory")
	}
	return errors.Wrapf(fileutil.AtomicWriteFile(g.path, SerializeEnv(flat), 0o600),
		"writing %s", g.path)
}

// SupportsMCP implements Adapter.
func (g *Gemini) SupportsMCP() bool { return false }

// ProjectServers implements Adapter as a no-op.
func (g *Gemini) ProjectServers([]*mcp.ServerEntry) error { return nil }

// ReadServers implements Adapter: nothing to read.
func (g *Gemini) ReadServers() (map[string]map[string]any, error) { return nil, nil }

// EndpointURL implements Adapter.
func (g *Gemini) EndpointURL(settings Payload) string {
	env, ok := objectField(settings, geminiEnvKey)
	if !ok {
		return ""
	}
	url, _ := env["GOOGLE_GEMINI_BASE_URL"].(string)
	return url
}
