package mcp

import (
	"encoding/json"
	"maps"
	"slices"
)

// Server type constants for MCP server communication.
const (
	// TypeStdio indicates a local process spawned by the client and spoken
	// to over stdin/stdout. This is the default when a Command is present.
	TypeStdio = "stdio"

	// TypeHTTP indicates a remote MCP server reached over HTTP.
	TypeHTTP = "http"
)

// ServerSpec is the tagged connection definition of one MCP server.
// Exactly one of the two families of fields is meaningful, selected by Type:
// stdio servers carry Command/Args/Cwd/Env, http servers carry URL/Headers.
type ServerSpec struct {
	// Type is "stdio" or "http".
	Type string `json:"type"`

	// Command is the executable path for stdio servers.
	Command string `json:"command,omitempty"`

	// Args are command-line arguments passed to Command.
	Args []string `json:"args,omitempty"`

	// Cwd is the working directory for the spawned process.
	Cwd string `json:"cwd,omitempty"`

	// Env contains environment variables passed to the server process.
	Env map[string]string `json:"env,omitempty"`

	// URL is the server endpoint for http servers.
	URL string `json:"url,omitempty"`

	// Headers contains HTTP headers sent with http transport connections.
	Headers map[string]string `json:"headers,omitempty"`

	// unknownFields stores JSON fields not explicitly defined in this struct.
	// This keeps client-specific extensions intact across a round trip.
	unknownFields map[string]json.RawMessage
}

// MarshalJSON implements json.Marshaler to include unknown fields in output.
func (s *ServerSpec) MarshalJSON() ([]byte, error) {
	result := make(map[string]any)

	// Copy unknown fields first so known fields take precedence.
	for k, v := range s.unknownFields {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, err
		}
		result[k] = val
	}

	result["type"] = s.Type
	if s.Command != "" {
		result["command"] = s.Command
	}
	if len(s.Args) > 0 {
		result["args"] = s.Args
	}
	if s.Cwd != "" {
		result["cwd"] = s.Cwd
	}
	if len(s.Env) > 0 {
		result["env"] = s.Env
	}
	if s.URL != "" {
		result["url"] = s.URL
	}
	if len(s.Headers) > 0 {
		result["headers"] = s.Headers
	}

	return json.Marshal(result)
}

// UnmarshalJSON implements json.Unmarshaler to capture unknown fields.
func (s *ServerSpec) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := map[string]any{
		"type":    &s.Type,
		"command": &s.Command,
		"args":    &s.Args,
		"cwd":     &s.Cwd,
		"env":     &s.Env,
		"url":     &s.URL,
		"headers": &s.Headers,
	}
	for key, dst := range fields {
		if v, ok := raw[key]; ok {
			if err := json.Unmarshal(v, dst); err != nil {
				return err
			}
			delete(raw, key)
		}
	}

	if len(raw) > 0 {
		s.unknownFields = raw
	}

	return nil
}

// Native returns the generic map representation used when projecting the
// spec into a client's live configuration. Unknown fields are carried over;
// the "type" tag is emitted only for http servers, matching the convention
// of the downstream tools (stdio entries are identified by "command").
func (s *ServerSpec) Native() map[string]any {
	result := make(map[string]any)

	for k, v := range s.unknownFields {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			continue
		}
		result[k] = val
	}

	if s.Type == TypeHTTP {
		result["type"] = TypeHTTP
		result["url"] = s.URL
		if len(s.Headers) > 0 {
			result["headers"] = s.Headers
		}
		return result
	}

	result["command"] = s.Command
	if len(s.Args) > 0 {
		result["args"] = s.Args
	}
	if s.Cwd != "" {
		result["cwd"] = s.Cwd
	}
	if len(s.Env) > 0 {
		result["env"] = s.Env
	}
	return result
}

// ServerEntry is one catalogued MCP server: its connection spec plus
// display metadata and the enabled flag for the owning client partition.
type ServerEntry struct {
	ID          string      `json:"id"`
	Enabled     bool        `json:"enabled"`
	Server      *ServerSpec `json:"server"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Homepage    string      `json:"homepage,omitempty"`
	Docs        string      `json:"docs,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
}

// Config maps server identifiers to entries for one client.
type Config map[string]*ServerEntry

// Root partitions server maps per client identifier.
type Root map[string]Config

// Enabled returns the enabled entries sorted by identifier.
func (c Config) Enabled() []*ServerEntry {
	var entries []*ServerEntry
	for _, id := range slices.Sorted(maps.Keys(c)) {
		if e := c[id]; e.Enabled && e.Server != nil {
			entries = append(entries, e)
		}
	}
	return entries
}
