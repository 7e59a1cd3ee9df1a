// Package config provides application settings for provsync using Viper.
//
// These settings configure the tool itself (directory overrides, backup
// retention, logging), not the provider store it manages. They live in
// config.yaml under the XDG config home and can be overridden through
// PROVSYNC_* environment variables.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mpratt/provsync/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "provsync"

// DefaultBackupRetention is the number of store snapshots kept per prune.
const DefaultBackupRetention = 10

// Config represents the top-level application settings structure.
type Config struct {
	Version  int                       `mapstructure:"version" yaml:"version"`
	DataDir  string                    `mapstructure:"data_dir" yaml:"data_dir"`
	Backup   BackupSettings            `mapstructure:"backup" yaml:"backup"`
	Log      LogSettings               `mapstructure:"log" yaml:"log"`
	Clients  map[string]ClientOverride `mapstructure:"clients" yaml:"clients"`
}

// BackupSettings controls store snapshot retention.
type BackupSettings struct {
	Retention int `mapstructure:"retention" yaml:"retention"`
}

// LogSettings controls optional file logging.
type LogSettings struct {
	File string `mapstructure:"file" yaml:"file"`
}

// ClientOverride contains settings overrides for a specific client.
type ClientOverride struct {
	ConfigDir string `mapstructure:"config_dir" yaml:"config_dir"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	// Environment variable support
	viper.SetEnvPrefix("PROVSYNC")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("data_dir", paths.DefaultDataDir())
	viper.SetDefault("backup.retention", DefaultBackupRetention)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Resolver builds a path resolver honoring the configured overrides.
func (c *Config) Resolver() *paths.Resolver {
	opts := []paths.ResolverOption{paths.WithDataDir(c.DataDir)}
	for client, override := range c.Clients {
		opts = append(opts, paths.WithClientDir(client, override.ConfigDir))
	}
	return paths.NewResolver(opts...)
}

// Retention returns the configured backup retention, falling back to the
// default when unset or nonsensical.
func (c *Config) Retention() int {
	if c.Backup.Retention <= 0 {
		return DefaultBackupRetention
	}
	return c.Backup.Retention
}
