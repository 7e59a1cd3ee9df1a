package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mpratt/provsync/internal/backup"
	"github.com/mpratt/provsync/internal/errors"
	"github.com/mpratt/provsync/internal/paths"
	"github.com/mpratt/provsync/pkg/fileutil"
)

// Store owns the canonical configuration document behind a single
// reader/writer lock. Read-only queries take the read lock; every mutation
// (switch, MCP change, import) holds the write lock for the full span of
// validation, in-memory change and the associated live-file I/O, which
// serializes mutating operations against each other.
//
// One Store is constructed per process and passed by reference; tests build
// isolated stores pointed at temp directories.
type Store struct {
	mu      sync.RWMutex
	path    string
	root    *Root
	backups *backup.Manager
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for non-fatal persistence warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBackupManager sets the snapshot manager invoked before every persist.
func WithBackupManager(m *backup.Manager) Option {
	return func(s *Store) {
		if m != nil {
			s.backups = m
		}
	}
}

// Open loads the store document at path, or starts a fresh default root when
// the file does not exist. A document in the retired single-profile layout
// is rejected with remediation instructions; so is any other schema
// generation than the current one.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.backups == nil {
		s.backups = backup.NewManager(backup.WithDir(filepath.Join(filepath.Dir(path), "backups")))
	}

	root, err := load(path)
	if err != nil {
		return nil, err
	}
	s.root = root
	return s, nil
}

// load reads and validates the document at path.
func load(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewRoot(), nil
		}
		return nil, errors.Wrapf(err, "reading store %s", path)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parsing store %s", path)
	}

	if isLegacyLayout(raw) {
		return nil, errors.NewLegacyConfigError(path)
	}

	var root Root
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrapf(err, "parsing store %s", path)
	}

	if root.Version != CurrentVersion {
		return nil, errors.Newf("store %s has schema version %d, this build requires %d",
			path, root.Version, CurrentVersion)
	}

	// Guarantee partitions exist for every supported client.
	for _, client := range paths.Clients() {
		root.Client(client)
		root.Servers(client)
	}

	return &root, nil
}

// isLegacyLayout detects the retired single-profile document shape:
// a top-level "providers" object plus "current" string with no client
// partition. No silent migration is attempted.
func isLegacyLayout(raw map[string]json.RawMessage) bool {
	providers, hasProviders := raw["providers"]
	current, hasCurrent := raw["current"]
	if !hasProviders || !hasCurrent {
		return false
	}

	var providerMap map[string]json.RawMessage
	if json.Unmarshal(providers, &providerMap) != nil {
		return false
	}
	var currentID string
	if json.Unmarshal(current, &currentID) != nil {
		return false
	}

	for _, client := range paths.Clients() {
		if _, ok := raw[client]; ok {
			return false
		}
	}
	return true
}

// Path returns the on-disk location of the store document.
func (s *Store) Path() string {
	return s.path
}

// Read runs fn under the read lock. fn must not retain or mutate the root.
func (s *Store) Read(fn func(root *Root)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.root)
}

// Update runs fn under the write lock. When fn reports persist=true and no
// error, the document is written to disk inside the same critical section.
// Live-file I/O belonging to the mutation is expected to happen inside fn.
func (s *Store) Update(fn func(root *Root) (persist bool, err error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	persist, err := fn(s.root)
	if err != nil {
		return err
	}
	if !persist {
		return nil
	}
	return s.persistLocked()
}

// Persist writes the current document to disk under the write lock.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

// persistLocked snapshots the existing file and then overwrites it
// atomically. A failed snapshot is logged and tolerated; a failed write is
// fatal and surfaced. Callers must hold the write lock.
func (s *Store) persistLocked() error {
	if id, err := s.backups.Backup(s.path); err != nil {
		s.logger.Warn("store snapshot failed, continuing with persist",
			"path", s.path, "error", err)
	} else if id != "" {
		s.logger.Debug("store snapshot created", "id", id)
	}

	if err := paths.EnsureDir(filepath.Dir(s.path), 0); err != nil {
		return errors.Wrap(err, "creating store directory")
	}
	return errors.Wrapf(fileutil.AtomicWriteJSON(s.path, s.root), "writing store %s", s.path)
}
