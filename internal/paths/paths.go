package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// Client identifiers for supported downstream CLI tools.
const (
	ClientClaude = "claude"
	ClientCodex  = "codex"
	ClientGemini = "gemini"
)

// clientConfigDirs maps client names to their config directories,
// relative to the user's home directory.
var clientConfigDirs = map[string]string{
	ClientClaude: ".claude",
	ClientCodex:  ".codex",
	ClientGemini: ".gemini",
}

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or an empty string on error.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DefaultDataDir returns the default directory holding the provider store
// and its backups: <ConfigHome>/provsync.
func DefaultDataDir() string {
	return filepath.Join(ConfigHome(), "provsync")
}

// ValidClient returns true if the client name is recognized.
func ValidClient(client string) bool {
	_, ok := clientConfigDirs[client]
	return ok
}

// Clients returns a slice of all supported client identifiers.
func Clients() []string {
	return []string{
		ClientClaude,
		ClientCodex,
		ClientGemini,
	}
}

// Resolver resolves live-file locations, honoring per-client directory
// overrides from the application settings.
type Resolver struct {
	dataDir    string
	clientDirs map[string]string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithDataDir overrides the directory holding the store and backups.
func WithDataDir(dir string) ResolverOption {
	return func(r *Resolver) {
		if dir != "" {
			r.dataDir = dir
		}
	}
}

// WithClientDir overrides the config directory for one client.
func WithClientDir(client, dir string) ResolverOption {
	return func(r *Resolver) {
		if dir != "" {
			r.clientDirs[client] = dir
		}
	}
}

// NewResolver creates a Resolver with default locations, then applies options.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		dataDir:    DefaultDataDir(),
		clientDirs: make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DataDir returns the directory holding the provider store.
func (r *Resolver) DataDir() string {
	return r.dataDir
}

// StorePath returns the path of the canonical provider store document.
func (r *Resolver) StorePath() string {
	return filepath.Join(r.dataDir, "config.json")
}

// BackupDir returns the directory holding store snapshots.
func (r *Resolver) BackupDir() string {
	return filepath.Join(r.dataDir, "backups")
}

// ClientDir returns the config directory for a client.
//
// Defaults:
//   - claude: ~/.claude/
//   - codex:  ~/.codex/
//   - gemini: ~/.gemini/
//
// Returns an empty string for unknown clients.
func (r *Resolver) ClientDir(client string) string {
	if dir, ok := r.clientDirs[client]; ok {
		return dir
	}
	relPath, ok := clientConfigDirs[client]
	if !ok {
		return ""
	}
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, relPath)
}

// ClaudeSettingsPath returns the live settings file for the claude client.
func (r *Resolver) ClaudeSettingsPath() string {
	return join(r.ClientDir(ClientClaude), "settings.json")
}

// CodexAuthPath returns the live credentials file for the codex client.
func (r *Resolver) CodexAuthPath() string {
	return join(r.ClientDir(ClientCodex), "auth.json")
}

// CodexConfigPath returns the live TOML settings file for the codex client.
func (r *Resolver) CodexConfigPath() string {
	return join(r.ClientDir(ClientCodex), "config.toml")
}

// GeminiEnvPath returns the live dotenv file for the gemini client.
func (r *Resolver) GeminiEnvPath() string {
	return join(r.ClientDir(ClientGemini), ".env")
}

func join(dir, name string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, name)
}
