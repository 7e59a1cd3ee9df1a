package engine

import (
	"maps"
	"slices"

	"github.com/mpratt/provsync/internal/client"
	"github.com/mpratt/provsync/internal/mcp"
	"github.com/mpratt/provsync/internal/store"
)

// ProjectEnabled rewrites a client's live MCP server block to exactly the
// enabled subset of its catalogue. The store is persisted only when the
// repair pass changed entries, since projection itself mutates nothing.
func (e *Engine) ProjectEnabled(clientID string) error {
	adapter, err := e.adapter(clientID)
	if err != nil {
		return err
	}

	return e.store.Update(func(root *store.Root) (bool, error) {
		repaired := mcp.Repair(root.Servers(clientID), e.logger)
		if err := e.projectLocked(root, clientID, adapter); err != nil {
			return false, err
		}
		return repaired > 0, nil
	})
}

// ProjectAll projects every MCP-capable client. The first failure aborts.
func (e *Engine) ProjectAll() error {
	for _, adapter := range client.All(e.resolver) {
		if !adapter.SupportsMCP() {
			continue
		}
		if err := e.ProjectEnabled(adapter.ID()); err != nil {
			return err
		}
	}
	return nil
}

// projectLocked drives one adapter from the in-memory catalogue. Callers
// hold the store's write lock.
func (e *Engine) projectLocked(root *store.Root, clientID string, adapter client.Adapter) error {
	if !adapter.SupportsMCP() {
		e.logger.Debug("client format cannot carry MCP servers, skipping projection",
			"client", clientID)
		return nil
	}
	return adapter.ProjectServers(root.Servers(clientID).Enabled())
}

// ImportFromLive parses the server definitions present in a client's live
// file and folds them into the catalogue. Definitions failing the shape
// contract are skipped with a warning; the batch continues. A definition
// whose identifier already exists only gains the enabled flag for this
// client, nothing else is overwritten; a new identifier becomes a fresh
// entry enabled for the importing client alone.
//
// The count of entries created or changed is returned; the store is
// persisted only when that count, or the repair pass, is non-zero.
func (e *Engine) ImportFromLive(clientID string) (int, error) {
	adapter, err := e.adapter(clientID)
	if err != nil {
		return 0, err
	}
	if !adapter.SupportsMCP() {
		return 0, nil
	}

	var count int
	err = e.store.Update(func(root *store.Root) (bool, error) {
		raw, readErr := adapter.ReadServers()
		if readErr != nil {
			return false, readErr
		}

		cfg := root.Servers(clientID)
		repaired := mcp.Repair(cfg, e.logger)

		for _, id := range slices.Sorted(maps.Keys(raw)) {
			spec, parseErr := mcp.ParseSpec(raw[id])
			if parseErr != nil {
				e.logger.Warn("skipping invalid server definition",
					"client", clientID, "id", id, "error", parseErr)
				continue
			}

			if existing, ok := cfg[id]; ok {
				if !existing.Enabled {
					existing.Enabled = true
					count++
				}
				continue
			}

			cfg[id] = &mcp.ServerEntry{ID: id, Enabled: true, Server: spec}
			count++
		}

		if count > 0 {
			e.logger.Info("imported server definitions",
				"client", clientID, "count", count)
		}
		return count > 0 || repaired > 0, nil
	})
	return count, err
}
