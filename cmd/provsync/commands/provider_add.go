package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpratt/provsync/internal/store"
)

var (
	addSettingsFile string
	addID           string
	addCategory     string
	addWebsite      string
	addNotes        string
)

func init() {
	providerCmd.AddCommand(providerAddCmd)

	providerAddCmd.Flags().StringVar(&addSettingsFile, "settings", "",
		"JSON file holding the settings payload (use - for stdin)")
	providerAddCmd.Flags().StringVar(&addID, "id", "",
		"profile identifier (default: derived from the name)")
	providerAddCmd.Flags().StringVar(&addCategory, "category", "", "profile category")
	providerAddCmd.Flags().StringVar(&addWebsite, "website", "", "provider website URL")
	providerAddCmd.Flags().StringVar(&addNotes, "notes", "", "free-form notes")
}

var providerAddCmd = &cobra.Command{
	Use:   "add <client> <name>",
	Short: "Add a provider profile",
	Long: `Add a named provider profile for a client.

The settings payload is the exact content the client's live file should
hold when this profile is active. Without --settings an empty payload is
stored; capture the current live file into it later with a switch, or
edit the store document directly.`,
	Example: `  # Codex payloads carry the auth object, optionally the config TOML text
  provsync provider add codex "Work Relay" --settings work.json

  # Read the payload from stdin
  cat payload.json | provsync provider add claude "Personal" --settings -`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runProviderAdd(args[0], args[1], os.Stdout)
	},
}

func runProviderAdd(client, name string, w io.Writer) error {
	if err := requireClient(client); err != nil {
		return err
	}

	var settings map[string]any
	if addSettingsFile != "" {
		var err error
		settings, err = readSettingsFile(addSettingsFile)
		if err != nil {
			return err
		}
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	p := &store.Provider{
		ID:         addID,
		Name:       name,
		Settings:   settings,
		Category:   addCategory,
		WebsiteURL: addWebsite,
		Notes:      addNotes,
	}
	if err := eng.Store().AddProvider(client, p); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s✓%s Added provider %s%s%s for %s\n",
		colorGreen, colorReset, colorBold, p.ID, colorReset, client)
	return nil
}
