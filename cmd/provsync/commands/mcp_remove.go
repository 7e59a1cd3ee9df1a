package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	mcpCmd.AddCommand(mcpRemoveCmd)
}

var mcpRemoveCmd = &cobra.Command{
	Use:     "remove <client> <id>",
	Aliases: []string{"rm"},
	Short:   "Remove an MCP server from a client's catalogue",
	Long: `Remove an MCP server definition. If the server was enabled, the
client's live configuration is re-projected so the definition also
disappears from disk.`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runMCPRemove(args[0], args[1], os.Stdout)
	},
}

func runMCPRemove(client, id string, w io.Writer) error {
	if err := requireClient(client); err != nil {
		return err
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	if err := eng.RemoveServer(client, id); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s✓%s Removed MCP server %s from %s\n",
		colorGreen, colorReset, id, client)
	return nil
}
