package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	mcpCmd.AddCommand(mcpEnableCmd)
	mcpCmd.AddCommand(mcpDisableCmd)
}

var mcpEnableCmd = &cobra.Command{
	Use:   "enable <client> <id>",
	Short: "Enable a catalogued MCP server",
	Long: `Enable an MCP server for a client and re-project the client's live
configuration so the definition appears on disk.`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runMCPSetEnabled(args[0], args[1], true, os.Stdout)
	},
}

var mcpDisableCmd = &cobra.Command{
	Use:   "disable <client> <id>",
	Short: "Disable an MCP server without removing it",
	Long: `Disable an MCP server for a client without removing it from the
catalogue. The definition disappears from the live configuration on the
next projection; re-enable it later with 'provsync mcp enable'.`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runMCPSetEnabled(args[0], args[1], false, os.Stdout)
	},
}

func runMCPSetEnabled(client, id string, enabled bool, w io.Writer) error {
	if err := requireClient(client); err != nil {
		return err
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	if err := eng.SetServerEnabled(client, id, enabled); err != nil {
		return err
	}

	pastTense := "enabled"
	if !enabled {
		pastTense = "disabled"
	}
	fmt.Fprintf(w, "%s✓%s MCP server %s %s for %s\n",
		colorGreen, colorReset, id, pastTense, client)
	return nil
}
