package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of every client",
	Long: `Show, per client: the active provider profile, how many profiles
and MCP servers are catalogued, and whether a live configuration file
is present on disk.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runStatus(os.Stdout)
	},
}

func runStatus(w io.Writer) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}

	statuses, err := eng.Status()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLIENT\tCURRENT\tPROVIDERS\tMCP\tLIVE FILE")
	for _, st := range statuses {
		current := st.Current
		if current == "" {
			current = colorGray + "(none)" + colorReset
		} else if st.CurrentName != "" {
			current = fmt.Sprintf("%s (%s)", current, truncate(st.CurrentName, 24))
		}

		mcpCol := fmt.Sprintf("%d/%d", st.EnabledServers, st.TotalServers)
		if !st.SupportsMCP {
			mcpCol = colorGray + "n/a" + colorReset
		}

		live := colorYellow + "missing" + colorReset
		if st.LiveExists {
			live = colorGreen + "present" + colorReset
		}

		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			st.Client, current, st.Providers, mcpCol, live)
	}
	return tw.Flush()
}
