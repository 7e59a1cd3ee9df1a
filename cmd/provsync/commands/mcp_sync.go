package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpratt/provsync/internal/paths"
)

func init() {
	mcpCmd.AddCommand(mcpSyncCmd)
}

var mcpSyncCmd = &cobra.Command{
	Use:   "sync [client]",
	Short: "Project the enabled server set into live configurations",
	Long: `Rewrite the MCP server block of a client's live configuration to
exactly the enabled subset of its catalogue. Without a client argument,
every MCP-capable client is projected.

Identifier/key mismatches in the catalogue are repaired first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		client := ""
		if len(args) == 1 {
			client = args[0]
		}
		return runMCPSync(client, os.Stdout)
	},
}

func runMCPSync(client string, w io.Writer) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}

	if client != "" {
		if err := requireClient(client); err != nil {
			return err
		}
		if err := eng.ProjectEnabled(client); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s✓%s Projected MCP servers for %s\n",
			colorGreen, colorReset, client)
		return nil
	}

	if err := eng.ProjectAll(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s✓%s Projected MCP servers for %s\n",
		colorGreen, colorReset, strings.Join(paths.Clients(), ", "))
	return nil
}
