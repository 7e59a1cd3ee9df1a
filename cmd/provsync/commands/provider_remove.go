package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/mpratt/provsync/internal/errors"
)

var removeForce bool

func init() {
	providerCmd.AddCommand(providerRemoveCmd)

	providerRemoveCmd.Flags().BoolVarP(&removeForce, "force", "f", false,
		"skip the confirmation prompt")
}

var providerRemoveCmd = &cobra.Command{
	Use:     "remove <client> <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a provider profile",
	Long: `Remove a provider profile from a client.

Removing the active profile clears the client's selection; the live
configuration file is left as it is.`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runProviderRemove(args[0], args[1], os.Stdout)
	},
}

func runProviderRemove(client, id string, w io.Writer) error {
	if err := requireClient(client); err != nil {
		return err
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	p, err := eng.Store().GetProvider(client, id)
	if err != nil {
		if errors.Is(err, errors.ErrProviderNotFound) {
			return errors.NewUserError(err,
				fmt.Sprintf("Run 'provsync provider list %s' to see the available profiles", client))
		}
		return err
	}

	if !removeForce {
		confirmed := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Remove provider %q (%s) from %s?", p.Name, p.ID, client),
		}
		if err := survey.AskOne(prompt, &confirmed); err != nil {
			return errors.Wrap(err, "confirmation prompt failed")
		}
		if !confirmed {
			fmt.Fprintln(w, "Aborted.")
			return nil
		}
	}

	if err := eng.Store().RemoveProvider(client, id); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s✓%s Removed provider %s from %s\n",
		colorGreen, colorReset, id, client)
	return nil
}
