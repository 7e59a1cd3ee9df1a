package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mpratt/provsync/internal/engine"
	"github.com/mpratt/provsync/internal/errors"
	"github.com/mpratt/provsync/internal/store"
)

func init() {
	rootCmd.AddCommand(useCmd)
}

var useCmd = &cobra.Command{
	Use:     "use <client> [provider]",
	Aliases: []string{"switch"},
	Short:   "Switch a client to a provider profile",
	Long: `Switch the active provider of a client and rewrite its live
configuration files to match the profile's stored payload.

Before the switch, the current live file content is captured back into
the outgoing profile, so hand edits are preserved. After the switch the
enabled MCP servers are re-projected and the live content is read back
into the target profile.

When the provider argument is omitted and a terminal is attached, an
interactive fuzzy picker lists the client's profiles.`,
	Example: `  # Switch codex to a named profile
  provsync use codex work-relay

  # Pick interactively
  provsync use claude`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runUse(args, os.Stdout)
	},
}

func runUse(args []string, w io.Writer) error {
	client := args[0]
	if err := requireClient(client); err != nil {
		return err
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	var target string
	if len(args) == 2 {
		target = args[1]
	} else {
		target, err = pickProvider(eng, client)
		if err != nil {
			return err
		}
		if target == "" {
			return nil
		}
	}

	if err := eng.Switch(client, target); err != nil {
		if errors.Is(err, errors.ErrProviderNotFound) {
			return errors.NewUserError(err,
				fmt.Sprintf("Run 'provsync provider list %s' to see the available profiles", client))
		}
		return err
	}

	fmt.Fprintf(w, "%s✓%s %s now uses %s%s%s\n",
		colorGreen, colorReset, client, colorBold, target, colorReset)
	return nil
}

// pickProvider runs the interactive profile picker. Empty result with nil
// error means the user aborted.
func pickProvider(eng *engine.Engine, client string) (string, error) {
	providers := eng.Store().ListProviders(client)
	if len(providers) == 0 {
		return "", errors.NewUserError(
			errors.Newf("no providers configured for %s", client),
			fmt.Sprintf("Run 'provsync provider add %s <name> --settings payload.json' first", client))
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.NewUserError(nil,
			"No terminal attached; pass the provider id as an argument")
	}

	current := eng.Store().Current(client)

	idx, err := fuzzyfinder.Find(
		providers,
		func(i int) string {
			label := providers[i].Name
			if providers[i].ID == current {
				label += " (current)"
			}
			return label
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return providerPreview(providers[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", errors.Wrap(err, "interactive provider selection failed")
	}

	return providers[idx].ID, nil
}

func providerPreview(p *store.Provider) string {
	preview := fmt.Sprintf("ID: %s\nName: %s", p.ID, p.Name)
	if p.Category != "" {
		preview += "\nCategory: " + p.Category
	}
	if p.WebsiteURL != "" {
		preview += "\nWebsite: " + p.WebsiteURL
	}
	if p.Notes != "" {
		preview += "\n\n" + p.Notes
	}
	return preview
}
