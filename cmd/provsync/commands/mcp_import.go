package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	mcpCmd.AddCommand(mcpImportCmd)
}

var mcpImportCmd = &cobra.Command{
	Use:   "import <client>",
	Short: "Import server definitions found in a client's live file",
	Long: `Parse the server definitions present in a client's live
configuration and fold them into the catalogue.

Definitions failing validation (a stdio server without a command, an
http server without a URL) are skipped with a warning. An identifier
already catalogued only gains the enabled flag for this client; nothing
else is overwritten. New identifiers become entries enabled for this
client alone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runMCPImport(args[0], os.Stdout)
	},
}

func runMCPImport(client string, w io.Writer) error {
	if err := requireClient(client); err != nil {
		return err
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	count, err := eng.ImportFromLive(client)
	if err != nil {
		return err
	}

	if count == 0 {
		fmt.Fprintf(w, "Nothing new to import from %s.\n", client)
		return nil
	}
	fmt.Fprintf(w, "%s✓%s Imported %d server definition(s) from %s\n",
		colorGreen, colorReset, count, client)
	return nil
}
