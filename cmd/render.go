package cmd

import (
	"fmt"
	"io"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"infobubble/internal/config"
	"infobubble/internal/snapshot"
)

type renderOptions struct {
	configPath string
	marker     string
	width      int
	height     int
	tab        int
	debug      bool
	color      bool
	pinsOnly   bool
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print one frame of the map with an open bubble",
		Long: `Renders the configured map once, opens the bubble on a marker and prints
the resulting frame. No terminal is required, so the output can be piped or
compared in scripts.`,
		Example: `  infobubble render --marker depot --tab 1
  infobubble render --config map.toml --width 100 --height 30 --debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file (YAML, or TOML with a .toml extension)")
	cmd.Flags().StringVarP(&opts.marker, "marker", "m", "", "Marker to open (default: the first marker)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Map width in cells (default: configured width)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "Map height in cells (default: configured height)")
	cmd.Flags().IntVar(&opts.tab, "tab", 0, "0-based tab to activate")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Print the resolved bubble geometry after the frame")
	cmd.Flags().BoolVar(&opts.color, "color", false, "Keep colors and text attributes in the output")
	cmd.Flags().BoolVar(&opts.pinsOnly, "pins-only", false, "Draw the map and its markers without a bubble")
	return cmd
}

func runRender(out io.Writer, opts renderOptions) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	res, err := snapshot.Render(cfg, snapshot.Options{
		Marker:   opts.marker,
		Tab:      opts.tab,
		Width:    opts.width,
		Height:   opts.height,
		Color:    opts.color,
		NoBubble: opts.pinsOnly,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, res.Frame)
	if opts.debug {
		fmt.Fprintf(out, "\nmarker: %s\n", res.Marker)
		fmt.Fprintf(out, "geometry: %# v\n", pretty.Formatter(res.Geometry))
		fmt.Fprintf(out, "tabs: %# v\n", pretty.Formatter(res.Tabs))
	}
	return nil
}
