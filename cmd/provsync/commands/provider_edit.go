package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpratt/provsync/internal/errors"
	"github.com/mpratt/provsync/internal/store"
)

var (
	editName         string
	editCategory     string
	editWebsite      string
	editNotes        string
	editSortIndex    int
	editSettingsFile string
)

func init() {
	providerCmd.AddCommand(providerEditCmd)

	providerEditCmd.Flags().StringVar(&editName, "name", "", "new display name")
	providerEditCmd.Flags().StringVar(&editCategory, "category", "", "new category")
	providerEditCmd.Flags().StringVar(&editWebsite, "website", "", "new website URL")
	providerEditCmd.Flags().StringVar(&editNotes, "notes", "", "new notes")
	providerEditCmd.Flags().IntVar(&editSortIndex, "sort", 0, "new sort index")
	providerEditCmd.Flags().StringVar(&editSettingsFile, "settings", "",
		"JSON file replacing the settings payload (use - for stdin)")
}

var providerEditCmd = &cobra.Command{
	Use:   "edit <client> <id>",
	Short: "Update a provider profile",
	Long: `Update fields of an existing provider profile. Only the flags given
change; the identifier itself cannot be changed.

Replacing the settings payload with --settings does not touch the live
configuration file; run 'provsync use' to apply the new payload.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProviderEdit(cmd, args[0], args[1], os.Stdout)
	},
}

func runProviderEdit(cmd *cobra.Command, client, id string, w io.Writer) error {
	if err := requireClient(client); err != nil {
		return err
	}
	if cmd.Flags().NFlag() == 0 {
		return errors.NewUserError(nil, "Pass at least one field flag to change")
	}

	var settings map[string]any
	if cmd.Flags().Changed("settings") {
		var err error
		settings, err = readSettingsFile(editSettingsFile)
		if err != nil {
			return err
		}
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	err = eng.Store().UpdateProvider(client, id, func(p *store.Provider) {
		if cmd.Flags().Changed("name") {
			p.Name = editName
		}
		if cmd.Flags().Changed("category") {
			p.Category = editCategory
		}
		if cmd.Flags().Changed("website") {
			p.WebsiteURL = editWebsite
		}
		if cmd.Flags().Changed("notes") {
			p.Notes = editNotes
		}
		if cmd.Flags().Changed("sort") {
			p.SortIndex = editSortIndex
		}
		if settings != nil {
			p.Settings = settings
		}
	})
	if err != nil {
		if errors.Is(err, errors.ErrProviderNotFound) {
			return errors.NewUserError(err,
				fmt.Sprintf("Run 'provsync provider list %s' to see the available profiles", client))
		}
		return err
	}

	fmt.Fprintf(w, "%s✓%s Updated provider %s for %s\n",
		colorGreen, colorReset, id, client)
	return nil
}
