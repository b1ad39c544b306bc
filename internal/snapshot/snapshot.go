// Package snapshot renders one frame of a map with an open bubble without a
// terminal. The render command and the MCP tools share it.
package snapshot

import (
	"fmt"

	"github.com/muesli/termenv"

	"infobubble/internal/bubble"
	"infobubble/internal/config"
	"infobubble/internal/tui/mapview"
	"infobubble/internal/tui/render"
	"infobubble/pkg/logging"
)

const subsystem = "Render"

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// Options select what the frame shows.
type Options struct {
	// Marker names the marker to open. Empty opens the first one.
	Marker string
	// Tab is the 0-based tab to activate when the marker has tabs.
	Tab int
	// Width and Height override the configured map size when positive.
	Width  int
	Height int
	// Color keeps colors and text attributes. Output is plain text otherwise.
	Color bool
	// NoBubble draws the map and its pins only.
	NoBubble bool
	// Values override the configured bubble options.
	Values bubble.Values
}

// Result is a rendered frame and the geometry of the bubble in it.
type Result struct {
	Frame    string
	Marker   string
	Geometry bubble.Geometry
	Tabs     []bubble.TabInfo
	Open     bool
}

// Render builds the map described by cfg, opens the bubble on the selected
// marker and runs every pending host task before drawing.
func Render(cfg config.Config, opts Options) (Result, error) {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = cfg.Map.Width
	}
	if h <= 0 {
		h = cfg.Map.Height
	}
	if w <= 0 {
		w = fallbackWidth
	}
	if h <= 0 {
		h = fallbackHeight
	}

	profile := termenv.Ascii
	if opts.Color {
		profile = termenv.TrueColor
	}
	host := mapview.NewHost(render.WithColorProfile(profile))

	center := bubble.LatLng{}
	if cfg.Map.Center != nil {
		center = cfg.Map.Center.LatLng()
	}
	zoom := 0
	if cfg.Map.Zoom != nil {
		zoom = *cfg.Map.Zoom
	}
	m := mapview.NewMap(host, center, zoom)
	m.ShowLabels = true
	m.SetSize(w, h)

	pins := make([]*mapview.Pin, len(cfg.Markers))
	for i, def := range cfg.Markers {
		pin := mapview.NewPin(def.Position(), def.Name)
		if def.Glyph != "" {
			pin.Glyph = def.Glyph
		}
		if def.AnchorHeight > 0 {
			pin.SetAnchorPoint(bubble.Point{Y: -float64(def.AnchorHeight)})
		}
		m.AddPin(pin)
		pins[i] = pin
	}

	var res Result
	if opts.NoBubble || len(cfg.Markers) == 0 {
		res.Frame = draw(host, m)
		return res, nil
	}

	idx := 0
	if opts.Marker != "" {
		idx = -1
		for i, def := range cfg.Markers {
			if def.Name == opts.Marker {
				idx = i
				break
			}
		}
		if idx < 0 {
			return Result{}, fmt.Errorf("marker %q not found", opts.Marker)
		}
	}
	def := cfg.Markers[idx]

	values := cfg.Bubble.Values()
	for k, v := range opts.Values {
		values[k] = v
	}
	b, err := bubble.New(values, host)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create bubble: %w", err)
	}
	defer b.Destroy()

	if len(def.Tabs) > 0 {
		for _, t := range def.Tabs {
			b.AddTab(t.Label, bubble.Markup(t.Content))
		}
		if opts.Tab < 0 || opts.Tab >= len(def.Tabs) {
			return Result{}, fmt.Errorf("marker %q has no tab %d", def.Name, opts.Tab)
		}
		b.SetTabActive(opts.Tab)
	} else {
		b.SetContent(bubble.Markup(def.Content))
	}
	b.Open(m, pins[idx])

	res.Frame = draw(host, m)
	res.Marker = def.Name
	res.Geometry = b.Geometry()
	res.Tabs = b.Tabs()
	res.Open = b.IsOpen()
	logging.Debug(subsystem, "rendered %s at %dx%d, bubble %dx%d", def.Name, w, h, res.Geometry.Size.Width, res.Geometry.Size.Height)
	return res, nil
}

// draw settles the host: images resolve on the tick after they are first
// drawn, so the map is drawn until the clock runs dry.
func draw(host *mapview.Host, m *mapview.Map) string {
	host.Clock().Flush()
	frame := m.View()
	for i := 0; i < 4 && host.Clock().Pending() > 0; i++ {
		host.Clock().Flush()
		frame = m.View()
	}
	return frame
}
