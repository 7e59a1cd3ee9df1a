package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/mpratt/provsync/internal/paths"
)

// DefaultRetentionCount is the number of snapshots kept after pruning.
const DefaultRetentionCount = 10

const (
	snapshotPrefix = "backup_"
	snapshotSuffix = ".json"
	timeLayout     = "20060102_150405"
)

// Manager creates timestamped snapshots of the provider store file with
// bounded retention.
type Manager struct {
	dir            string
	retentionCount int
}

// Option configures a Manager.
type Option func(*Manager)

// WithDir sets the snapshot directory.
func WithDir(dir string) Option {
	return func(m *Manager) {
		if dir != "" {
			m.dir = dir
		}
	}
}

// WithRetentionCount sets the number of snapshots to retain.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// NewManager creates a backup Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		dir:            paths.NewResolver().BackupDir(),
		retentionCount: DefaultRetentionCount,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the snapshot directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Backup snapshots the file at src into the snapshot directory and prunes
// old snapshots. It returns the snapshot id (the file name without
// extension), or an empty id when src does not exist, which is not an error:
// there is nothing to protect on a first run.
func (m *Manager) Backup(src string) (string, error) {
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "stat %s", src)
	}

	if err := paths.EnsureDir(m.dir, 0); err != nil {
		return "", errors.Wrap(err, "creating backup directory")
	}

	id := snapshotPrefix + time.Now().Format(timeLayout)
	dst := filepath.Join(m.dir, id+snapshotSuffix)

	// Several snapshots can land in the same second; never overwrite one.
	for i := 1; ; i++ {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			break
		}
		// Zero-padded so lexical order matches creation order on mtime ties.
		dst = filepath.Join(m.dir, fmt.Sprintf("%s_%03d%s", id, i, snapshotSuffix))
	}

	if err := copyFile(src, dst); err != nil {
		return "", errors.Wrapf(err, "copying %s", src)
	}

	if err := m.prune(); err != nil {
		return "", err
	}

	name := filepath.Base(dst)
	return strings.TrimSuffix(name, snapshotSuffix), nil
}

// Snapshot describes one retained snapshot file.
type Snapshot struct {
	ID      string
	Path    string
	ModTime time.Time
	Size    int64
}

// List returns the retained snapshots, newest first.
func (m *Manager) List() ([]Snapshot, error) {
	files, err := m.snapshots()
	if err != nil {
		return nil, err
	}

	out := make([]Snapshot, 0, len(files))
	for _, f := range files {
		out = append(out, Snapshot{
			ID:      strings.TrimSuffix(filepath.Base(f.path), snapshotSuffix),
			Path:    f.path,
			ModTime: f.modTime,
			Size:    f.size,
		})
	}
	slices.Reverse(out)
	return out, nil
}

type snapshotFile struct {
	path    string
	modTime time.Time
	size    int64
}

// snapshots returns matching snapshot files sorted oldest first.
func (m *Manager) snapshots() ([]snapshotFile, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	var files []snapshotFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, snapshotFile{
			path:    filepath.Join(m.dir, name),
			modTime: info.ModTime(),
			size:    info.Size(),
		})
	}

	slices.SortFunc(files, func(a, b snapshotFile) int {
		if c := a.modTime.Compare(b.modTime); c != 0 {
			return c
		}
		return strings.Compare(a.path, b.path)
	})
	return files, nil
}

// prune removes snapshots beyond the retention count, oldest first.
// Non-matching files in the directory are left alone.
func (m *Manager) prune() error {
	files, err := m.snapshots()
	if err != nil {
		return err
	}

	excess := len(files) - m.retentionCount
	for i := 0; i < excess; i++ {
		if err := os.Remove(files[i].path); err != nil {
			return errors.Wrapf(err, "pruning %s", files[i].path)
		}
	}
	return nil
}

// copyFile copies src to dst with private permissions; snapshots carry the
// same credentials as the store itself.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening source file")
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return errors.Wrap(err, "creating snapshot file")
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrap(err, "copying file")
	}

	return errors.Wrap(out.Close(), "closing snapshot file")
}
