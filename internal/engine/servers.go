package engine

import (
	"slices"
	"strings"

	"github.com/mpratt/provsync/internal/errors"
	"github.com/mpratt/provsync/internal/mcp"
	"github.com/mpratt/provsync/internal/store"
)

// AddServer registers a server entry in a client's catalogue and re-projects
// the live file when the entry arrives enabled.
func (e *Engine) AddServer(clientID string, entry *mcp.ServerEntry) error {
	adapter, err := e.adapter(clientID)
	if err != nil {
		return err
	}
	if err := mcp.ValidateEntry(entry); err != nil {
		return err
	}

	return e.store.Update(func(root *store.Root) (bool, error) {
		cfg := root.Servers(clientID)
		mcp.Repair(cfg, e.logger)

		if _, exists := cfg[entry.ID]; exists {
			return false, errors.Newf("server %q already exists for client %s", entry.ID, clientID)
		}
		cfg[entry.ID] = entry

		if entry.Enabled {
			if err := e.projectLocked(root, clientID, adapter); err != nil {
				return false, err
			}
		}
		return true, nil
	})
}

// RemoveServer deletes a server entry and re-projects the live file so the
// definition disappears from disk as well.
func (e *Engine) RemoveServer(clientID, id string) error {
	adapter, err := e.adapter(clientID)
	if err != nil {
		return err
	}

	return e.store.Update(func(root *store.Root) (bool, error) {
		cfg := root.Servers(clientID)
		mcp.Repair(cfg, e.logger)

		entry, ok := cfg[id]
		if !ok {
			return false, errors.Newf("server %q not found for client %s", id, clientID)
		}
		delete(cfg, id)

		if entry.Enabled {
			if err := e.projectLocked(root, clientID, adapter); err != nil {
				return false, err
			}
		}
		return true, nil
	})
}

// SetServerEnabled flips one entry's enabled flag and re-projects the live
// file. Setting the flag to its current value is a persisted no-op only when
// the repair pass touched entries.
func (e *Engine) SetServerEnabled(clientID, id string, enabled bool) error {
	adapter, err := e.adapter(clientID)
	if err != nil {
		return err
	}

	return e.store.Update(func(root *store.Root) (bool, error) {
		cfg := root.Servers(clientID)
		repaired := mcp.Repair(cfg, e.logger)

		entry, ok := cfg[id]
		if !ok {
			return false, errors.Newf("server %q not found for client %s", id, clientID)
		}

		if entry.Enabled == enabled {
			return repaired > 0, nil
		}
		entry.Enabled = enabled

		if err := e.projectLocked(root, clientID, adapter); err != nil {
			return false, err
		}
		return true, nil
	})
}

// ListServers returns a client's catalogue entries sorted by identifier.
func (e *Engine) ListServers(clientID string) []*mcp.ServerEntry {
	var out []*mcp.ServerEntry
	e.store.Read(func(root *store.Root) {
		cfg := root.Servers(clientID)
		for _, entry := range cfg {
			out = append(out, entry)
		}
	})

	slices.SortFunc(out, func(a, b *mcp.ServerEntry) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}
