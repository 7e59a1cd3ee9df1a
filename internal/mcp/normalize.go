package mcp

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// Repair fixes identifier/key mismatches inside a server map so that keyed
// access is safe: after it returns, every entry's embedded ID equals its map
// key. It returns the number of entries touched; a non-zero count signals
// the caller that the store needs persisting even when its own operation
// changed nothing else.
//
// Rules, in order:
//   - missing/blank identifier: set to the map key
//   - whitespace-padded identifier: trim
//   - identifier differing from the key: rename the map slot to the
//     identifier, unless a slot with that name already exists, in which case
//     the original key wins and the identifier is forced back to it
func Repair(cfg Config, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}

	changed := 0
	for _, key := range slices.Sorted(maps.Keys(cfg)) {
		entry, ok := cfg[key]
		if !ok || entry == nil {
			continue
		}

		touched := false

		if trimmed := strings.TrimSpace(entry.ID); trimmed != entry.ID {
			entry.ID = trimmed
			touched = true
		}
		if entry.ID == "" {
			entry.ID = key
			touched = true
		}

		if entry.ID != key {
			if _, exists := cfg[entry.ID]; exists {
				// Collision avoidance takes precedence over identifier intent.
				logger.Warn("server id collides with an existing entry, keeping map key",
					"key", key, "id", entry.ID)
				entry.ID = key
			} else {
				delete(cfg, key)
				cfg[entry.ID] = entry
			}
			touched = true
		}

		if touched {
			changed++
		}
	}

	return changed
}
