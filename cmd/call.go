package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"infobubble/internal/config"
	"infobubble/internal/mcpserver"
)

type callOptions struct {
	configPath string
	args       string
	server     bool
}

func newCallCmd() *cobra.Command {
	var opts callOptions

	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Call one of the MCP bubble tools and print its result",
		Long: `Calls render_bubble or layout_bubble the way an MCP client would.

By default the tools run in this process. With --server the call goes over
stdio to a child 'infobubble serve' process, which exercises the same path
an agent uses.`,
		Example: `  infobubble call render_bubble --args '{"content":"<b>Depot</b><br>Open 9-5"}'
  infobubble call layout_bubble --server --args '{"content":"hi","options":"{\"shadowStyle\":2}"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runCall(ctx, cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file for the in-process server")
	cmd.Flags().StringVar(&opts.args, "args", "{}", "Tool arguments as a JSON object")
	cmd.Flags().BoolVar(&opts.server, "server", false, "Call a child 'infobubble serve' process over stdio")
	return cmd
}

func runCall(ctx context.Context, out io.Writer, tool string, opts callOptions) error {
	var args map[string]any
	if err := json.Unmarshal([]byte(opts.args), &args); err != nil {
		return fmt.Errorf("--args must be a JSON object: %w", err)
	}

	var (
		c   *mcpserver.Client
		err error
	)
	if opts.server {
		exe, exeErr := os.Executable()
		if exeErr != nil {
			return fmt.Errorf("could not locate executable path: %w", exeErr)
		}
		serveArgs := []string{"serve"}
		if opts.configPath != "" {
			serveArgs = append(serveArgs, "--config", opts.configPath)
		}
		c, err = mcpserver.NewStdioClient(ctx, exe, serveArgs...)
	} else {
		cfg, cfgErr := config.LoadConfig(opts.configPath)
		if cfgErr != nil {
			return fmt.Errorf("failed to load configuration: %w", cfgErr)
		}
		c, err = mcpserver.NewInProcessClient(ctx, mcpserver.NewServer(cfg, rootCmd.Version))
	}
	if err != nil {
		return err
	}
	defer c.Close()

	text, err := c.CallToolText(ctx, tool, args)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, text)
	return nil
}
