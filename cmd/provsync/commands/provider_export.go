package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mpratt/provsync/internal/store"
	"github.com/mpratt/provsync/pkg/fileutil"
)

var exportOutput string

func init() {
	providerCmd.AddCommand(providerExportCmd)

	providerExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"write to a file instead of stdout")
}

var providerExportCmd = &cobra.Command{
	Use:   "export <client>",
	Short: "Export a client's provider profiles as YAML",
	Long: `Export every provider profile of a client as a YAML document,
for review or for carrying profiles to another machine.

The export contains credentials in the clear. Treat the output like the
live configuration files themselves.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runProviderExport(args[0], os.Stdout)
	},
}

// providerExport is the YAML document shape of one exported profile.
type providerExport struct {
	ID       string         `yaml:"id"`
	Name     string         `yaml:"name"`
	Category string         `yaml:"category,omitempty"`
	Website  string         `yaml:"website,omitempty"`
	Notes    string         `yaml:"notes,omitempty"`
	Settings map[string]any `yaml:"settings"`
}

func runProviderExport(client string, w io.Writer) error {
	if err := requireClient(client); err != nil {
		return err
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	providers := eng.Store().ListProviders(client)
	doc := struct {
		Client    string           `yaml:"client"`
		Current   string           `yaml:"current,omitempty"`
		Providers []providerExport `yaml:"providers"`
	}{
		Client:  client,
		Current: eng.Store().Current(client),
	}
	for _, p := range providers {
		doc.Providers = append(doc.Providers, exportOf(p))
	}

	if exportOutput != "" {
		if err := fileutil.AtomicWriteYAML(exportOutput, doc); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s✓%s Exported %d provider(s) to %s\n",
			colorGreen, colorReset, len(doc.Providers), exportOutput)
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(doc)
}

func exportOf(p *store.Provider) providerExport {
	return providerExport{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Website:  p.WebsiteURL,
		Notes:    p.Notes,
		Settings: p.Settings,
	}
}
