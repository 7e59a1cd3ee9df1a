package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpratt/provsync/internal/logging"
)

var showSecrets bool

func init() {
	providerCmd.AddCommand(providerShowCmd)

	providerShowCmd.Flags().BoolVar(&showSecrets, "secrets", false,
		"print credential values unmasked")
}

var providerShowCmd = &cobra.Command{
	Use:   "show <client> <id>",
	Short: "Show a provider profile",
	Long: `Show one provider profile including its settings payload.

Values under credential-looking keys are masked unless --secrets is
given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runProviderShow(args[0], args[1], os.Stdout)
	},
}

func runProviderShow(client, id string, w io.Writer) error {
	if err := requireClient(client); err != nil {
		return err
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	p, err := eng.Store().GetProvider(client, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s%s%s (%s)\n", colorBold, p.Name, colorReset, p.ID)
	if p.Category != "" {
		fmt.Fprintf(w, "Category: %s\n", p.Category)
	}
	if p.WebsiteURL != "" {
		fmt.Fprintf(w, "Website:  %s\n", p.WebsiteURL)
	}
	if p.CreatedAt != 0 {
		fmt.Fprintf(w, "Created:  %s\n",
			time.UnixMilli(p.CreatedAt).Format(time.RFC3339))
	}
	if p.Notes != "" {
		fmt.Fprintf(w, "Notes:    %s\n", p.Notes)
	}

	if p.Meta != nil && len(p.Meta.Endpoints) > 0 {
		fmt.Fprintf(w, "\n%sEndpoints used:%s\n", colorCyan, colorReset)
		for url, usage := range p.Meta.Endpoints {
			fmt.Fprintf(w, "  %s %s(last used %s)%s\n",
				url, colorGray, usage.LastUsed.Format("2006-01-02"), colorReset)
		}
	}

	settings := p.Settings
	if !showSecrets {
		settings = maskPayload(settings)
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%sSettings:%s\n%s\n", colorCyan, colorReset, data)
	return nil
}

// maskPayload returns a copy of the payload with credential-looking string
// values masked.
func maskPayload(value map[string]any) map[string]any {
	out := make(map[string]any, len(value))
	for k, v := range value {
		out[k] = maskValue(k, v)
	}
	return out
}

func maskValue(key string, v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return maskPayload(typed)
	case string:
		if logging.ShouldMask(key) || logging.ContainsTokenPrefix(typed) {
			return logging.MaskValue(typed)
		}
		return typed
	default:
		return v
	}
}
