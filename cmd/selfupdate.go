package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"infobubble/pkg/logging"
)

const githubRepoSlug = "infobubble/infobubble"

func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update infobubble to the latest version",
		Long: `Checks for the latest release of infobubble on GitHub and
updates the current binary if a newer version is found.`,
		Args: cobra.NoArgs,
		RunE: runSelfUpdate,
	}
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	currentVersion := rootCmd.Version
	if currentVersion == "" || currentVersion == "dev" {
		return fmt.Errorf("cannot self-update a development version")
	}

	ctx := context.Background()
	out := io.Writer(os.Stdout)
	if cmd != nil {
		if cmd.Context() != nil {
			ctx = cmd.Context()
		}
		out = cmd.OutOrStdout()
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(githubRepoSlug))
	if err != nil {
		return fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest version for %s/%s could not be found from github repository", runtime.GOOS, runtime.GOARCH)
	}

	if latest.LessOrEqual(currentVersion) {
		fmt.Fprintf(out, "Current version (%s) is the latest\n", currentVersion)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}
	logging.Info("CLI", "updating %s from %s to %s", exe, currentVersion, latest.Version())
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}
	fmt.Fprintf(out, "Successfully updated to version %s\n", latest.Version())
	return nil
}
