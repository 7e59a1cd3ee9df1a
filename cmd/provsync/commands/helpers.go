package commands

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mpratt/provsync/internal/backup"
	"github.com/mpratt/provsync/internal/config"
	"github.com/mpratt/provsync/internal/engine"
	"github.com/mpratt/provsync/internal/errors"
	"github.com/mpratt/provsync/internal/paths"
	"github.com/mpratt/provsync/internal/store"
	"github.com/mpratt/provsync/pkg/fileutil"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// loadedConfig returns the settings loaded at startup, or defaults when the
// command runs outside the normal cobra lifecycle (tests).
func loadedConfig() *config.Config {
	if appConfig != nil {
		return appConfig
	}
	return &config.Config{DataDir: paths.DefaultDataDir()}
}

// buildEngine opens the store and wires the synchronization engine from the
// loaded settings.
func buildEngine() (*engine.Engine, error) {
	cfg := loadedConfig()
	resolver := cfg.Resolver()

	backups := backup.NewManager(
		backup.WithDir(resolver.BackupDir()),
		backup.WithRetentionCount(cfg.Retention()),
	)

	s, err := store.Open(resolver.StorePath(),
		store.WithLogger(slog.Default()),
		store.WithBackupManager(backups),
	)
	if err != nil {
		return nil, err
	}

	return engine.New(s, resolver, engine.WithLogger(slog.Default())), nil
}

// requireClient validates a client argument.
func requireClient(client string) error {
	if paths.ValidClient(client) {
		return nil
	}
	err := errors.Wrapf(errors.ErrClientUnknown, "%q (valid: %s)",
		client, strings.Join(paths.Clients(), ", "))
	return errors.NewUserError(err, "Run 'provsync status' to see the supported clients")
}

// readSettingsFile loads a provider settings payload from a JSON file, with
// "-" meaning stdin.
func readSettingsFile(path string) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = fileutil.ReadFileWithLimit(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading settings payload")
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.NewUserError(err, "The settings payload must be a JSON object")
	}
	return payload, nil
}
