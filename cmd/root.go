package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"infobubble/pkg/logging"
)

// logLevel is the minimum level written by commands that log to stderr.
var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "infobubble",
	Short: "Callout bubbles anchored to points on a terminal map",
	Long: `infobubble draws callout bubbles (content box, arrow, shadow, tabs and
a close control) pinned to markers on a terminal map.

Use 'infobubble demo' for the interactive map, 'infobubble render' to print a
single frame, and 'infobubble serve' to expose rendering as MCP tools.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, unknown markers)
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logging.InitForCLI(level, cmd.ErrOrStderr())
		return nil
	},
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "infobubble version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level for stderr output (debug, info, warn, error)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCallCmd())
}
