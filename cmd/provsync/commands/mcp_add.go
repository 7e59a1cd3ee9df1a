package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpratt/provsync/internal/errors"
	"github.com/mpratt/provsync/internal/mcp"
)

var (
	mcpAddCommand  string
	mcpAddArgs     []string
	mcpAddURL      string
	mcpAddEnv      []string
	mcpAddHeaders  []string
	mcpAddCwd      string
	mcpAddDisabled bool
)

func init() {
	mcpCmd.AddCommand(mcpAddCmd)

	mcpAddCmd.Flags().StringVar(&mcpAddCommand, "command", "",
		"executable for a stdio server")
	mcpAddCmd.Flags().StringArrayVar(&mcpAddArgs, "arg", nil,
		"argument for the stdio command (repeatable)")
	mcpAddCmd.Flags().StringVar(&mcpAddURL, "url", "",
		"endpoint for an http server")
	mcpAddCmd.Flags().StringArrayVar(&mcpAddEnv, "env", nil,
		"KEY=VALUE environment variable for the stdio process (repeatable)")
	mcpAddCmd.Flags().StringArrayVar(&mcpAddHeaders, "header", nil,
		"KEY=VALUE HTTP header for the http transport (repeatable)")
	mcpAddCmd.Flags().StringVar(&mcpAddCwd, "cwd", "",
		"working directory for the stdio process")
	mcpAddCmd.Flags().BoolVar(&mcpAddDisabled, "disabled", false,
		"catalogue the server without enabling it")
}

var mcpAddCmd = &cobra.Command{
	Use:   "add <client> <id>",
	Short: "Add an MCP server to a client's catalogue",
	Example: `  # A local stdio server
  provsync mcp add claude fetch --command uvx --arg mcp-server-fetch

  # A remote http server
  provsync mcp add codex search --url https://mcp.example.com --header "Authorization=Bearer tok"`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runMCPAdd(args[0], args[1], os.Stdout)
	},
}

func runMCPAdd(client, id string, w io.Writer) error {
	if err := requireClient(client); err != nil {
		return err
	}
	if (mcpAddCommand == "") == (mcpAddURL == "") {
		return errors.NewUserError(nil, "Pass exactly one of --command or --url")
	}

	spec := &mcp.ServerSpec{}
	if mcpAddCommand != "" {
		spec.Type = mcp.TypeStdio
		spec.Command = mcpAddCommand
		spec.Args = mcpAddArgs
		spec.Cwd = mcpAddCwd
		env, err := parsePairs(mcpAddEnv, "--env")
		if err != nil {
			return err
		}
		spec.Env = env
	} else {
		spec.Type = mcp.TypeHTTP
		spec.URL = mcpAddURL
		headers, err := parsePairs(mcpAddHeaders, "--header")
		if err != nil {
			return err
		}
		spec.Headers = headers
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	entry := &mcp.ServerEntry{ID: id, Enabled: !mcpAddDisabled, Server: spec}
	if err := eng.AddServer(client, entry); err != nil {
		return err
	}

	state := "enabled"
	if mcpAddDisabled {
		state = "disabled"
	}
	fmt.Fprintf(w, "%s✓%s Added MCP server %s%s%s for %s (%s)\n",
		colorGreen, colorReset, colorBold, id, colorReset, client, state)
	return nil
}

// parsePairs converts repeated KEY=VALUE flags into a map.
func parsePairs(pairs []string, flag string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.NewUserError(
				errors.Newf("malformed %s value %q", flag, pair),
				"Use KEY=VALUE form")
		}
		out[key] = value
	}
	return out, nil
}
