package mapview

import (
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"infobubble/internal/bubble"
	"infobubble/internal/tui/render"
	"infobubble/pkg/logging"
)

// Map events triggered with the map as target.
const (
	EventCenterChanged = "center_changed"
	EventZoomChanged   = "zoom_changed"
)

const (
	MinZoom = -4
	MaxZoom = 8
)

type overlayEntry struct {
	overlay bubble.Overlay
	added   bool
}

type layer struct {
	el        bubble.Element
	top, left int
}

// Map is a terminal viewport over a coordinate plane. It is not ready, and
// has neither projection nor panes, until it has a non-zero size.
type Map struct {
	host   *Host
	size   bubble.Size
	center bubble.LatLng
	zoom   int

	panes    *bubble.Panes
	overlays []*overlayEntry
	pins     []*Pin
	drawn    []layer

	ShowGrid   bool
	ShowLabels bool
}

// NewMap creates a map centered on center. Zoom 0 shows one row per unit
// of latitude; every step doubles the scale.
func NewMap(host *Host, center bubble.LatLng, zoom int) *Map {
	return &Map{
		host:     host,
		center:   center,
		zoom:     clampZoom(zoom),
		ShowGrid: true,
	}
}

func (m *Map) ready() bool {
	return m.size.Width > 0 && m.size.Height > 0
}

// SetSize resizes the viewport. The first non-zero size makes the map
// ready and attaches overlays added before that.
func (m *Map) SetSize(width, height int) {
	m.size = bubble.Size{Width: max(width, 0), Height: max(height, 0)}
	if !m.ready() {
		return
	}
	if m.panes == nil {
		r := m.host.Renderer()
		m.panes = &bubble.Panes{
			FloatPane:   r.Create(bubble.KindPane),
			FloatShadow: r.Create(bubble.KindPane),
		}
		logging.Debug("Map", "ready at %dx%d", width, height)
	}
	for _, e := range m.overlays {
		if !e.added {
			e.added = true
			e.overlay.OnAdd()
		}
	}
	m.redraw()
}

func (m *Map) Viewport() bubble.Size {
	return m.size
}

func (m *Map) Center() bubble.LatLng {
	return m.center
}

func (m *Map) Zoom() int {
	return m.zoom
}

func (m *Map) PanTo(ll bubble.LatLng) {
	if ll == m.center {
		return
	}
	m.center = ll
	m.redraw()
	m.host.Trigger(m, EventCenterChanged)
}

// PanBy moves the view by dx columns and dy rows.
func (m *Map) PanBy(dx, dy int) {
	p := m.proj()
	c := p.FromLatLngToContainerPixel(m.center)
	m.PanTo(p.FromContainerPixelToLatLng(bubble.Point{X: c.X + float64(dx), Y: c.Y + float64(dy)}))
}

// SetZoom changes the zoom level, clamped to MinZoom and MaxZoom.
func (m *Map) SetZoom(z int) {
	z = clampZoom(z)
	if z == m.zoom {
		return
	}
	m.zoom = z
	m.redraw()
	m.host.Trigger(m, EventZoomChanged)
}

func (m *Map) Projection() bubble.Projection {
	if !m.ready() {
		return nil
	}
	return m.proj()
}

func (m *Map) proj() projection {
	return projection{center: m.center, size: m.size, scale: math.Pow(2, float64(m.zoom))}
}

func (m *Map) Panes() *bubble.Panes {
	if !m.ready() {
		return nil
	}
	return m.panes
}

// AddOverlay attaches o. On a map that is not ready yet, OnAdd and Draw
// wait for the first SetSize.
func (m *Map) AddOverlay(o bubble.Overlay) {
	if slices.ContainsFunc(m.overlays, func(e *overlayEntry) bool { return e.overlay == o }) {
		return
	}
	e := &overlayEntry{overlay: o}
	m.overlays = append(m.overlays, e)
	if m.ready() {
		e.added = true
		o.OnAdd()
		o.Draw()
	}
}

func (m *Map) RemoveOverlay(o bubble.Overlay) {
	i := slices.IndexFunc(m.overlays, func(e *overlayEntry) bool { return e.overlay == o })
	if i < 0 {
		return
	}
	e := m.overlays[i]
	m.overlays = slices.Delete(m.overlays, i, i+1)
	if e.added {
		o.OnRemove()
	}
}

// Overlays returns the attached overlays in the order they were added.
func (m *Map) Overlays() []bubble.Overlay {
	out := make([]bubble.Overlay, len(m.overlays))
	for i, e := range m.overlays {
		out[i] = e.overlay
	}
	return out
}

func (m *Map) AddPin(p *Pin) {
	if !slices.Contains(m.pins, p) {
		m.pins = append(m.pins, p)
	}
}

func (m *Map) RemovePin(p *Pin) {
	m.pins = slices.DeleteFunc(m.pins, func(q *Pin) bool { return q == p })
}

func (m *Map) Pins() []*Pin {
	return slices.Clone(m.pins)
}

// redraw asks every attached overlay to reposition.
func (m *Map) redraw() {
	if !m.ready() {
		return
	}
	for _, e := range slices.Clone(m.overlays) {
		if e.added {
			e.overlay.Draw()
		}
	}
}

// Click dispatches a click at the cell x, y. It reports whether the click
// reached the map, which it does not when an overlay swallows it.
func (m *Map) Click(x, y int) bool {
	return m.DispatchAt(x, y, bubble.EventClick)
}

// DispatchAt fires event on whatever is drawn at x, y and then on the map.
func (m *Map) DispatchAt(x, y int, event string) bool {
	path := append(m.pathAt(x, y), m)
	return m.host.Dispatch(path, event)
}

func (m *Map) pathAt(x, y int) []any {
	r := m.host.Terminal()
	for i := len(m.drawn) - 1; i >= 0; i-- {
		l := m.drawn[i]
		if l.el.Kind() == bubble.KindShadow {
			continue
		}
		if hit := r.HitTest(l.el, x-l.left, y-l.top); len(hit) > 0 {
			path := make([]any, len(hit))
			for j, el := range hit {
				path[j] = el
			}
			return path
		}
	}
	for i := len(m.pins) - 1; i >= 0; i-- {
		p := m.pins[i]
		if x >= p.box.Left && x < p.box.Left+p.box.Width && y == p.box.Top {
			return []any{p}
		}
	}
	return nil
}

// View composites the map into rows of exactly the viewport size.
func (m *Map) View() string {
	if !m.ready() {
		return ""
	}
	r := m.host.Terminal()
	rows := m.base()
	m.drawPins(rows)

	m.drawn = m.drawn[:0]
	for _, pane := range []bubble.Element{m.panes.FloatShadow, m.panes.FloatPane} {
		for _, el := range byZIndex(pane.Children()) {
			top := bubble.ParsePx(el.Get(bubble.PropTop))
			left := bubble.ParsePx(el.Get(bubble.PropLeft))
			stamp(rows, r.Draw(el), top, left)
			m.drawn = append(m.drawn, layer{el: el, top: top, left: left})
		}
	}

	for i, row := range rows {
		row = ansi.Truncate(row, m.size.Width, "")
		if w := ansi.StringWidth(row); w < m.size.Width {
			row += strings.Repeat(" ", m.size.Width-w)
		}
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func (m *Map) base() []string {
	w, h := m.size.Width, m.size.Height
	cells := make([][]rune, h)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", w))
	}

	if m.ShowGrid {
		p := m.proj()
		step := gridStep(p.scale)
		tl := p.FromContainerPixelToLatLng(bubble.Point{})
		br := p.FromContainerPixelToLatLng(bubble.Point{X: float64(w), Y: float64(h)})
		for lat := math.Ceil(br.Lat/step) * step; lat <= tl.Lat; lat += step {
			for lng := math.Ceil(tl.Lng/step) * step; lng <= br.Lng; lng += step {
				pt := p.FromLatLngToContainerPixel(bubble.LatLng{Lat: lat, Lng: lng})
				x, y := int(math.Round(pt.X)), int(math.Round(pt.Y))
				if x >= 0 && x < w && y >= 0 && y < h {
					cells[y][x] = '·'
				}
			}
		}
	}

	faint := m.host.Terminal().NewStyle().Faint(true)
	rows := make([]string, h)
	for y, c := range cells {
		rows[y] = faint.Render(string(c))
	}
	return rows
}

func (m *Map) drawPins(rows []string) {
	p := m.proj()
	st := m.host.Terminal().NewStyle().Bold(true)
	label := m.host.Terminal().NewStyle().Faint(true)
	for _, pin := range m.pins {
		pin.box = bubble.Rect{}
		pos, ok := pin.Position()
		if !ok {
			continue
		}
		pt := p.FromLatLngToContainerPixel(pos)
		x, y := int(math.Round(pt.X)), int(math.Round(pt.Y))
		if y < 0 || y >= len(rows) {
			continue
		}
		glyph := pin.Glyph
		if glyph == "" {
			glyph = defaultGlyph
		}
		rows[y] = render.Overlay(rows[y], st.Render(glyph), x)
		pin.box = bubble.Rect{Top: y, Left: x, Width: ansi.StringWidth(glyph), Height: 1}
		if m.ShowLabels && pin.Label != "" {
			rows[y] = render.Overlay(rows[y], label.Render(" "+pin.Label), x+pin.box.Width)
		}
	}
}

func stamp(rows []string, b render.Block, top, left int) {
	for i, line := range b.Lines {
		y := top + i
		if y < 0 || y >= len(rows) || line == "" {
			continue
		}
		rows[y] = render.Overlay(rows[y], line, left+b.Offsets[i])
	}
}

// byZIndex orders elements bottom to top, keeping insertion order for ties.
func byZIndex(els []bubble.Element) []bubble.Element {
	sort.SliceStable(els, func(i, j int) bool {
		return bubble.ParsePx(els[i].Get(bubble.PropZIndex)) < bubble.ParsePx(els[j].Get(bubble.PropZIndex))
	})
	return els
}

// gridStep picks a power of two spacing that keeps grid rows 4 to 16 rows
// apart.
func gridStep(scale float64) float64 {
	step := 1.0
	for step*scale < 4 {
		step *= 2
	}
	for step*scale > 16 {
		step /= 2
	}
	return step
}

func clampZoom(z int) int {
	return min(max(z, MinZoom), MaxZoom)
}
