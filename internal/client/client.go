// Package client implements the per-client live-file adapters: the codecs
// that read and write each downstream tool's configuration files in their
// native format, plus the MCP projection into those formats.
//
// Three formats are covered: generic JSON with whole-document replacement
// (claude), a credentials JSON sibling plus a layout-preserving TOML
// document (codex), and flat KEY=VALUE text (gemini).
package client

import (
	"github.com/mpratt/provsync/internal/errors"
	"github.com/mpratt/provsync/internal/mcp"
	"github.com/mpratt/provsync/internal/paths"
)

// Payload is the schemaless settings value a provider stores: exactly what
// the client's live file should contain. Shape is checked at the point of
// use, never at rest.
type Payload = map[string]any

// Adapter reads and writes one client's live configuration files.
type Adapter interface {
	// ID returns the client identifier (claude, codex, gemini).
	ID() string

	// LiveExists reports whether any of the client's live files are present.
	LiveExists() (bool, error)

	// ReadLive captures the current on-disk content as a settings payload.
	ReadLive() (Payload, error)

	// ValidatePayload applies the client's minimal shape contract to a
	// payload about to be written.
	ValidatePayload(settings Payload) error

	// WriteLive replaces the live file content with the payload, atomically.
	WriteLive(settings Payload) error

	// SupportsMCP reports whether the client's format can carry MCP server
	// definitions.
	SupportsMCP() bool

	// ProjectServers rewrites the live MCP server block to exactly the given
	// enabled entries. No-op for clients without MCP support.
	ProjectServers(entries []*mcp.ServerEntry) error

	// ReadServers parses the server definitions present in the live file,
	// keyed by identifier, in the client's native map form.
	ReadServers() (map[string]map[string]any, error)

	// EndpointURL extracts the endpoint base URL from a payload, best
	// effort; empty when the payload carries none.
	EndpointURL(settings Payload) string
}

// For returns the adapter for a client id.
func For(client string, resolver *paths.Resolver) (Adapter, error) {
	switch client {
	case paths.ClientClaude:
		return NewClaude(resolver), nil
	case paths.ClientCodex:
		return NewCodex(resolver), nil
	case paths.ClientGemini:
		return NewGemini(resolver), nil
	default:
		return nil, errors.Wrapf(errors.ErrClientUnknown, "%q", client)
	}
}

// All returns adapters for every supported client, in stable order.
func All(resolver *paths.Resolver) []Adapter {
	adapters := make([]Adapter, 0, len(paths.Clients()))
	for _, id := range paths.Clients() {
		a, _ := For(id, resolver)
		adapters = append(adapters, a)
	}
	return adapters
}

// objectField returns settings[key] as a map when present and object-shaped.
func objectField(settings Payload, key string) (map[string]any, bool) {
	v, ok := settings[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// stringField returns settings[key] as a string when present.
func stringField(settings Payload, key string) (string, bool) {
	v, ok := settings[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
