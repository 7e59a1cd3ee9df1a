package store

import (
	"encoding/json"
	"time"

	"github.com/mpratt/provsync/internal/mcp"
	"github.com/mpratt/provsync/internal/paths"
)

// CurrentVersion is the store schema generation. Older generations are
// rejected at load time; there is no runtime migration.
const CurrentVersion = 2

// EndpointUsage stamps one previously-used endpoint URL.
type EndpointUsage struct {
	URL       string    `json:"url"`
	FirstUsed time.Time `json:"firstUsed"`
	LastUsed  time.Time `json:"lastUsed"`
}

// ProviderMeta holds bookkeeping that is not part of the settings payload.
type ProviderMeta struct {
	// Endpoints maps endpoint URLs to their usage stamps.
	Endpoints map[string]*EndpointUsage `json:"endpoints,omitempty"`
}

// Provider is a named bundle of credential/endpoint settings for one client.
//
// Settings is schemaless on purpose: it mirrors exactly what the client's
// live file should contain, including fields this tool does not understand.
// Its shape is validated only when used as a live-file write source.
type Provider struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Settings   map[string]any `json:"settings"`
	WebsiteURL string         `json:"websiteUrl,omitempty"`
	Category   string         `json:"category,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	CreatedAt  int64          `json:"createdAt,omitempty"`
	SortIndex  int            `json:"sortIndex,omitempty"`
	Meta       *ProviderMeta  `json:"meta,omitempty"`
}

// TouchEndpoint stamps url as used now, creating the usage record on first
// sight.
func (p *Provider) TouchEndpoint(url string, now time.Time) {
	if url == "" {
		return
	}
	if p.Meta == nil {
		p.Meta = &ProviderMeta{}
	}
	if p.Meta.Endpoints == nil {
		p.Meta.Endpoints = make(map[string]*EndpointUsage)
	}
	usage, ok := p.Meta.Endpoints[url]
	if !ok {
		p.Meta.Endpoints[url] = &EndpointUsage{URL: url, FirstUsed: now, LastUsed: now}
		return
	}
	usage.LastUsed = now
}

// Manager holds the provider map and the active selection for one client.
// Current is a plain identifier looked up in Providers on use; it may be
// empty ("none selected") or transiently stale after external edits.
type Manager struct {
	Providers map[string]*Provider `json:"providers"`
	Current   string               `json:"current"`
}

// NewManager returns an empty provider manager.
func NewManager() *Manager {
	return &Manager{Providers: make(map[string]*Provider)}
}

// Provider returns the provider for id, or nil when absent.
func (m *Manager) Provider(id string) *Provider {
	if m == nil {
		return nil
	}
	return m.Providers[id]
}

// Root is the canonical configuration document: a versioned set of per-client
// provider managers plus the MCP server catalogue partitioned per client.
type Root struct {
	Version int
	Clients map[string]*Manager
	MCP     mcp.Root
}

// NewRoot returns a fresh default root with empty managers and MCP
// partitions for every supported client.
func NewRoot() *Root {
	root := &Root{
		Version: CurrentVersion,
		Clients: make(map[string]*Manager),
		MCP:     make(mcp.Root),
	}
	for _, client := range paths.Clients() {
		root.Clients[client] = NewManager()
		root.MCP[client] = make(mcp.Config)
	}
	return root
}

// Client returns the provider manager for a client, creating it on first use
// so hand-edited documents missing a partition stay usable.
func (r *Root) Client(client string) *Manager {
	m, ok := r.Clients[client]
	if !ok {
		m = NewManager()
		r.Clients[client] = m
	}
	return m
}

// Servers returns the MCP server map for a client, creating it on first use.
func (r *Root) Servers(client string) mcp.Config {
	if r.MCP == nil {
		r.MCP = make(mcp.Root)
	}
	cfg, ok := r.MCP[client]
	if !ok {
		cfg = make(mcp.Config)
		r.MCP[client] = cfg
	}
	return cfg
}

// MarshalJSON flattens the client partitions to top-level keys:
// {"version": 2, "claude": {...}, "codex": {...}, "mcp": {...}}.
func (r *Root) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(r.Clients)+2)
	doc["version"] = r.Version
	for client, manager := range r.Clients {
		doc[client] = manager
	}
	doc["mcp"] = r.MCP
	return json.Marshal(doc)
}

// UnmarshalJSON reads the flattened document form produced by MarshalJSON.
func (r *Root) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["version"]; ok {
		if err := json.Unmarshal(v, &r.Version); err != nil {
			return err
		}
		delete(raw, "version")
	}

	r.MCP = make(mcp.Root)
	if v, ok := raw["mcp"]; ok {
		if err := json.Unmarshal(v, &r.MCP); err != nil {
			return err
		}
		delete(raw, "mcp")
	}

	r.Clients = make(map[string]*Manager, len(raw))
	for client, v := range raw {
		var m Manager
		if err := json.Unmarshal(v, &m); err != nil {
			return err
		}
		if m.Providers == nil {
			m.Providers = make(map[string]*Provider)
		}
		r.Clients[client] = &m
	}

	return nil
}
