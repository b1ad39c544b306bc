package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"infobubble/internal/config"
	"infobubble/internal/mcpserver"
	"infobubble/pkg/logging"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve bubble rendering as MCP tools on stdio",
		Long: `Starts an MCP server on stdin/stdout with two tools:

  render_bubble  renders a map frame with an open bubble as text
  layout_bubble  returns the resolved bubble geometry as JSON

Bubble options from the configuration are the defaults of every call.
Logs go to stderr so they never mix with the protocol stream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			s := mcpserver.NewServer(cfg, rootCmd.Version)
			if err := s.ServeStdio(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
				logging.Error("MCP", err, "stdio server stopped")
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file (YAML, or TOML with a .toml extension)")
	return cmd
}
