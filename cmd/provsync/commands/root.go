// Package commands implements the CLI commands for provsync.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mpratt/provsync/internal/config"
	"github.com/mpratt/provsync/internal/errors"
	"github.com/mpratt/provsync/internal/logging"
)

// version is set at build time via ldflags.
// Default to a development version for local builds.
const version = "0.1.0"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// appConfig holds the loaded application settings.
var appConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format, with rotation")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("provsync version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	appConfig, configLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "provsync",
	Short: "Provider profile switching for AI CLI tools",
	Long: `provsync maintains named credential/endpoint profiles ("providers")
for the Claude Code, Codex CLI, and Gemini CLI tools and switches each
tool's live configuration file to match the selected profile.

A shared catalogue of MCP server definitions is projected into each
tool's native format alongside every switch. Hand edits made to a live
file between runs are captured back into the outgoing profile, so they
are never lost.`,
	Example: `  # Add a provider profile for codex from a JSON payload file
  provsync provider add codex "Work Relay" --settings payload.json

  # Switch codex to a profile (interactive picker when omitted)
  provsync use codex work-relay
  provsync use codex

  # Project the enabled MCP servers into every client
  provsync mcp sync`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		if configLoadErr != nil {
			return errors.NewUserError(configLoadErr, "Check your provsync config.yaml syntax")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		if v == 0 {
			if val, ok := os.LookupEnv("PROVSYNC_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{Level: level}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	file := logFile
	if file == "" && appConfig != nil {
		file = appConfig.Log.File
	}
	if file != "" {
		// File output uses JSON format and rotates to keep disk usage bounded.
		rotated := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		handlers = append(handlers, slog.NewJSONHandler(rotated, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
