package store

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/mpratt/provsync/internal/errors"
)

// Slug derives a provider identifier from a display name: lowercased, with
// runs of non-alphanumeric characters collapsed to single dashes.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// AddProvider registers a provider for a client and persists the store.
// An empty ID is derived from the display name; duplicate ids are rejected.
func (s *Store) AddProvider(client string, p *Provider) error {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return errors.New("provider name is required")
	}

	return s.Update(func(root *Root) (bool, error) {
		manager := root.Client(client)

		if p.ID == "" {
			p.ID = Slug(p.Name)
		}
		if p.ID == "" {
			return false, errors.Newf("cannot derive an id from name %q", p.Name)
		}
		if _, exists := manager.Providers[p.ID]; exists {
			return false, errors.Wrapf(errors.ErrProviderExists, "%s/%s", client, p.ID)
		}

		if p.Settings == nil {
			p.Settings = make(map[string]any)
		}
		if p.CreatedAt == 0 {
			p.CreatedAt = time.Now().UnixMilli()
		}

		manager.Providers[p.ID] = p
		return true, nil
	})
}

// RemoveProvider deletes a provider and persists the store. Deleting the
// active provider clears the client's current selection; the live file is
// left as-is.
func (s *Store) RemoveProvider(client, id string) error {
	return s.Update(func(root *Root) (bool, error) {
		manager := root.Client(client)
		if _, ok := manager.Providers[id]; !ok {
			return false, errors.Wrapf(errors.ErrProviderNotFound, "%s/%s", client, id)
		}

		delete(manager.Providers, id)
		if manager.Current == id {
			manager.Current = ""
		}
		return true, nil
	})
}

// UpdateProvider applies fn to an existing provider under the write lock and
// persists the store. The identifier itself cannot be changed.
func (s *Store) UpdateProvider(client, id string, fn func(p *Provider)) error {
	return s.Update(func(root *Root) (bool, error) {
		p := root.Client(client).Provider(id)
		if p == nil {
			return false, errors.Wrapf(errors.ErrProviderNotFound, "%s/%s", client, id)
		}
		fn(p)
		p.ID = id
		return true, nil
	})
}

// ListProviders returns a client's providers sorted by sort index, then name,
// then id.
func (s *Store) ListProviders(client string) []*Provider {
	var out []*Provider
	s.Read(func(root *Root) {
		manager := root.Client(client)
		out = slices.Collect(maps.Values(manager.Providers))
	})

	slices.SortFunc(out, func(a, b *Provider) int {
		if a.SortIndex != b.SortIndex {
			return a.SortIndex - b.SortIndex
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// GetProvider returns one provider, or ErrProviderNotFound.
func (s *Store) GetProvider(client, id string) (*Provider, error) {
	var p *Provider
	s.Read(func(root *Root) {
		p = root.Client(client).Provider(id)
	})
	if p == nil {
		return nil, errors.Wrapf(errors.ErrProviderNotFound, "%s/%s", client, id)
	}
	return p, nil
}

// Current returns the id of the active provider for a client; empty means
// none selected.
func (s *Store) Current(client string) string {
	var id string
	s.Read(func(root *Root) {
		id = root.Client(client).Current
	})
	return id
}
