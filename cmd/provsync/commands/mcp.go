package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mpratt/provsync/internal/mcp"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.AddCommand(mcpListCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage MCP server definitions",
	Long: `Manage the per-client catalogue of MCP server definitions and
project the enabled subset into each client's live configuration.

Server definitions are either stdio (a command spawned by the client)
or http (a remote endpoint). Every catalogue mutation re-projects the
affected client's live file.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var mcpListCmd = &cobra.Command{
	Use:     "list <client>",
	Aliases: []string{"ls"},
	Short:   "List a client's MCP server catalogue",
	Args:    cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runMCPList(args[0], os.Stdout)
	},
}

func runMCPList(client string, w io.Writer) error {
	if err := requireClient(client); err != nil {
		return err
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	entries := eng.ListServers(client)
	if len(entries) == 0 {
		fmt.Fprintf(w, "No MCP servers catalogued for %s.\n", client)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  \tID\tTYPE\tTARGET")
	for _, entry := range entries {
		marker := colorGray + "-" + colorReset
		if entry.Enabled {
			marker = colorGreen + "*" + colorReset
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			marker, entry.ID, entry.Server.Type, truncate(serverTarget(entry.Server), 60))
	}
	return tw.Flush()
}

func serverTarget(spec *mcp.ServerSpec) string {
	if spec.Type == mcp.TypeHTTP {
		return spec.URL
	}
	target := spec.Command
	for _, arg := range spec.Args {
		target += " " + arg
	}
	return target
}
