package model

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cast"

	"infobubble/internal/bubble"
	"infobubble/internal/config"
	"infobubble/internal/tui/mapview"
	"infobubble/pkg/logging"
)

const subsystem = "Demo"

// SetMarkers replaces the pins on the map. The bubble stays open when its
// marker survives under the same name, and closes otherwise.
func (m *Model) SetMarkers(defs []config.MarkerDefinition) {
	openName := ""
	if m.OpenMarker >= 0 && m.OpenMarker < len(m.Markers) {
		openName = m.Markers[m.OpenMarker].Def.Name
	}

	for _, mk := range m.Markers {
		mk.click.Remove()
		m.Map.RemovePin(mk.Pin)
	}
	m.Markers = m.Markers[:0]

	for i, def := range defs {
		pin := mapview.NewPin(def.Position(), def.Name)
		if def.Glyph != "" {
			pin.Glyph = def.Glyph
		}
		if def.AnchorHeight > 0 {
			pin.SetAnchorPoint(bubble.Point{Y: -float64(def.AnchorHeight)})
		}
		mk := &Marker{Def: def, Pin: pin}
		mk.click = m.Host.Listen(pin, bubble.EventClick, func(bubble.Event) {
			m.OpenMarkerAt(i)
		})
		m.Map.AddPin(pin)
		m.Markers = append(m.Markers, mk)
	}

	m.Selected = min(m.Selected, len(m.Markers)-1)
	m.OpenMarker = -1
	if openName == "" {
		return
	}
	if i := m.MarkerIndex(openName); i >= 0 {
		m.OpenMarkerAt(i)
		return
	}
	m.Bubble.Close()
}

// MarkerIndex returns the index of the marker called name, -1 if missing.
func (m *Model) MarkerIndex(name string) int {
	for i, mk := range m.Markers {
		if mk.Def.Name == name {
			return i
		}
	}
	return -1
}

// OpenMarkerAt fills the bubble with the marker's content or tabs and opens
// it on the marker's pin.
func (m *Model) OpenMarkerAt(i int) {
	if i < 0 || i >= len(m.Markers) {
		return
	}
	mk := m.Markers[i]
	b := m.Bubble

	for len(b.Tabs()) > 0 {
		b.RemoveTab(len(b.Tabs()) - 1)
	}
	if len(mk.Def.Tabs) > 0 {
		for _, t := range mk.Def.Tabs {
			b.AddTab(t.Label, bubble.Markup(t.Content))
		}
	} else {
		b.SetContent(bubble.Markup(mk.Def.Content))
	}

	m.Selected = i
	m.OpenMarker = i
	b.Open(m.Map, mk.Pin)
	logging.Info(subsystem, "opening %s", mk.Def.Name)
}

// SelectNext moves the selection by delta, wrapping around, and centers
// the map on the selected marker.
func (m *Model) SelectNext(delta int) {
	n := len(m.Markers)
	if n == 0 {
		return
	}
	if m.Selected < 0 {
		m.Selected = 0
		if delta < 0 {
			m.Selected = n - 1
		}
	} else {
		m.Selected = ((m.Selected+delta)%n + n) % n
	}
	if pos, ok := m.Markers[m.Selected].Pin.Position(); ok {
		m.Map.PanTo(pos)
	}
}

// SelectedMarker returns the selected marker, nil when there is none.
func (m *Model) SelectedMarker() *Marker {
	if m.Selected < 0 || m.Selected >= len(m.Markers) {
		return nil
	}
	return m.Markers[m.Selected]
}

func (m *Model) CloseBubble() {
	m.Bubble.Close()
	m.OpenMarker = -1
}

func (m *Model) option(key bubble.Option) any {
	v, _ := m.Bubble.Option(key)
	return v
}

// CycleShadowStyle steps through none, offset and soft.
func (m *Model) CycleShadowStyle() int {
	next := (cast.ToInt(m.option(bubble.OptShadowStyle)) + 1) % 3
	m.Bubble.SetShadowStyle(next)
	return next
}

// CycleArrowStyle steps through centered, left flush and right flush.
func (m *Model) CycleArrowStyle() int {
	next := (cast.ToInt(m.option(bubble.OptArrowStyle)) + 1) % 3
	m.Bubble.SetArrowStyle(next)
	return next
}

// NudgeArrow moves the arrow by delta percent of the bubble width.
func (m *Model) NudgeArrow(delta int) int {
	pos := min(max(cast.ToInt(m.option(bubble.OptArrowPosition))+delta, 0), 100)
	m.Bubble.SetArrowPosition(pos)
	return pos
}

// ToggleCloseButton reports whether the close button is now shown.
func (m *Model) ToggleCloseButton() bool {
	if cast.ToBool(m.option(bubble.OptHideCloseButton)) {
		m.Bubble.ShowCloseButton()
		return true
	}
	m.Bubble.HideCloseButton()
	return false
}

// ActivateTab switches the open bubble to tab i, 0-based.
func (m *Model) ActivateTab(i int) bool {
	if i < 0 || i >= len(m.Bubble.Tabs()) {
		return false
	}
	m.Bubble.SetTabActive(i)
	return true
}

// ApplyConfig swaps in a reloaded configuration.
func (m *Model) ApplyConfig(cfg config.Config) {
	m.Config = cfg
	m.Bubble.SetValues(cfg.Bubble.Values())
	m.SetMarkers(cfg.Markers)
	logging.Info(subsystem, "configuration applied, %d markers", len(cfg.Markers))
}

// BubbleText is the plain text of what the bubble shows.
func (m *Model) BubbleText() string {
	c := m.Bubble.Content()
	if c.IsZero() {
		return ""
	}
	el := c.Node()
	if el == nil {
		el = m.Host.Renderer().Parse(c.Markup())
	}
	if t, ok := el.(interface{ Text() string }); ok {
		return ansi.Strip(t.Text())
	}
	return c.Markup()
}
