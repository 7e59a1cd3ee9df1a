package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(providerCmd)
	providerCmd.AddCommand(providerListCmd)
}

var providerCmd = &cobra.Command{
	Use:   "provider",
	Short: "Manage provider profiles",
	Long: `Manage the named credential/endpoint profiles stored per client.

A profile's settings payload mirrors exactly what the client's live
configuration file should contain. Payload shape is only checked when a
profile is written to disk, so client-specific fields pass through
untouched.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var providerListCmd = &cobra.Command{
	Use:     "list <client>",
	Aliases: []string{"ls"},
	Short:   "List a client's provider profiles",
	Args:    cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runProviderList(args[0], os.Stdout)
	},
}

func runProviderList(client string, w io.Writer) error {
	if err := requireClient(client); err != nil {
		return err
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	providers := eng.Store().ListProviders(client)
	if len(providers) == 0 {
		fmt.Fprintf(w, "No providers configured for %s.\n", client)
		return nil
	}

	current := eng.Store().Current(client)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  \tID\tNAME\tCATEGORY")
	for _, p := range providers {
		marker := " "
		if p.ID == current {
			marker = colorGreen + "*" + colorReset
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			marker, p.ID, truncate(p.Name, 40), p.Category)
	}
	return tw.Flush()
}
