package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"infobubble/internal/color"
	"infobubble/internal/config"
	"infobubble/internal/tui/controller"
	"infobubble/internal/tui/model"
	"infobubble/pkg/logging"
)

func newDemoCmd() *cobra.Command {
	var (
		configPath string
		watch      bool
		debug      bool
		theme      string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Browse the configured markers on an interactive map",
		Long: `Starts an interactive terminal map with the markers from the configuration.

Select a marker with n/p or a mouse click and open its bubble with enter.
Press h inside the demo for every key binding.

Configuration is read from ~/.config/infobubble/config.yaml, then
./.infobubble/config.yaml, then the file given with --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dark, err := color.ParseTheme(theme)
			if err != nil {
				return err
			}
			color.Initialize(dark)
			return runDemo(cmd.Context(), configPath, watch, debug)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file (YAML, or TOML with a .toml extension)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the configuration when its files change")
	cmd.Flags().BoolVar(&debug, "debug", false, "Show debug log entries and host internals")
	cmd.Flags().StringVar(&theme, "theme", "auto", "Background the palette is drawn for (auto, dark, light)")
	return cmd
}

func runDemo(ctx context.Context, configPath string, watch, debug bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := logging.LevelInfo
	if debug {
		level = logging.LevelDebug
	}
	logChan := logging.InitForTUI(level)
	defer logging.CloseTUIChannel()

	p, _, err := controller.NewProgram(cfg, configPath, debug, logChan)
	if err != nil {
		return err
	}

	if watch {
		w, err := config.NewWatcher(configPath,
			func(c config.Config) { p.Send(model.ConfigReloadedMsg{Config: c}) },
			func(err error) { p.Send(model.ConfigErrorMsg{Err: err}) },
		)
		if err != nil {
			logging.Warn("Config", "live reload disabled: %v", err)
		} else {
			watchCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			go w.Run(watchCtx)
		}
	}

	logging.Info("CLI", "demo started with %d markers", len(cfg.Markers))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running demo: %w", err)
	}
	return nil
}
