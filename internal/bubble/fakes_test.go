package bubble

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// fakeRenderer lays out elements with fixed natural sizes so tests can reason
// about exact numbers.
type fakeRenderer struct {
	sizes    map[string]Size
	nextID   int
	measured int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{sizes: make(map[string]Size)}
}

func (r *fakeRenderer) newElement(kind Kind) *fakeElement {
	r.nextID++
	return &fakeElement{
		r:       r,
		id:      fmt.Sprintf("e%d", r.nextID),
		kind:    kind,
		props:   make(map[Prop]string),
		classes: make(map[string]bool),
	}
}

func (r *fakeRenderer) Create(kind Kind) Element {
	return r.newElement(kind)
}

func (r *fakeRenderer) naturalOf(markup string) Size {
	if s, ok := r.sizes[markup]; ok {
		return s
	}
	return Size{Width: len(markup), Height: 1}
}

// Parse turns markup into a block. "<img>" anywhere adds an image child.
func (r *fakeRenderer) Parse(markup string) Element {
	el := r.newElement(KindBlock)
	el.markup = markup
	el.natural = r.naturalOf(markup)
	for i := 0; i < strings.Count(markup, "<img>"); i++ {
		img := r.newElement(KindImage)
		img.parent = el
		el.children = append(el.children, img)
	}
	return el
}

func (r *fakeRenderer) Measure(el Element) Sizer {
	r.measured++
	return &fakeSizer{size: el.(*fakeElement).layout()}
}

type fakeSizer struct {
	size      Size
	discarded bool
}

func (s *fakeSizer) Size() Size { return s.size }

func (s *fakeSizer) SetWidth(w int) {
	if w > 0 && w < s.size.Width {
		area := s.size.Width * s.size.Height
		s.size.Height = (area + w - 1) / w
	}
	s.size.Width = w
}

func (s *fakeSizer) SetHeight(h int) { s.size.Height = h }
func (s *fakeSizer) Discard()        { s.discarded = true }

type fakeElement struct {
	r        *fakeRenderer
	id       string
	kind     Kind
	props    map[Prop]string
	classes  map[string]bool
	markup   string
	natural  Size
	children []*fakeElement
	parent   *fakeElement
}

func (e *fakeElement) ID() string               { return e.id }
func (e *fakeElement) Kind() Kind               { return e.kind }
func (e *fakeElement) Set(p Prop, value string) { e.props[p] = value }
func (e *fakeElement) Get(p Prop) string        { return e.props[p] }
func (e *fakeElement) AddClass(name string)     { e.classes[name] = true }
func (e *fakeElement) RemoveClass(name string)  { delete(e.classes, name) }
func (e *fakeElement) HasClass(name string) bool {
	return e.classes[name]
}

func (e *fakeElement) SetMarkup(markup string) {
	e.markup = markup
	e.natural = e.r.naturalOf(markup)
}

func (e *fakeElement) Append(child Element) {
	c := child.(*fakeElement)
	c.Detach()
	c.parent = e
	e.children = append(e.children, c)
}

func (e *fakeElement) Detach() {
	if e.parent == nil {
		return
	}
	siblings := e.parent.children
	for i, c := range siblings {
		if c == e {
			e.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	e.parent = nil
}

func (e *fakeElement) Clear() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

func (e *fakeElement) Parent() Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func (e *fakeElement) Children() []Element {
	out := make([]Element, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

func (e *fakeElement) connected() bool {
	for n := e; n != nil; n = n.parent {
		if n.props[PropDisplay] == "none" {
			return false
		}
		if n.kind == KindPane {
			return true
		}
	}
	return false
}

func (e *fakeElement) Size() Size {
	if !e.connected() {
		return Size{}
	}
	return e.layout()
}

func (e *fakeElement) layout() Size {
	switch e.kind {
	case KindContainer:
		chrome := 2 * (ParsePx(e.props[PropPadding]) + ParsePx(e.props[PropBorderWidth]))
		return Size{
			Width:  ParsePx(e.props[PropWidth]) + chrome,
			Height: ParsePx(e.props[PropHeight]) + chrome,
		}
	case KindTab:
		return Size{
			Width: e.natural.Width + ParsePx(e.props[PropPaddingLeft]) + ParsePx(e.props[PropPaddingRight]) +
				2*ParsePx(e.props[PropBorderWidth]),
			Height: e.natural.Height + ParsePx(e.props[PropPaddingTop]) + ParsePx(e.props[PropPaddingBottom]) +
				ParsePx(e.props[PropBorderWidth]) + ParsePx(e.props[PropBorderBottomWidth]),
		}
	case KindTabStrip:
		h := 0
		for _, c := range e.children {
			h = max(h, c.layout().Height)
		}
		return Size{Width: ParsePx(e.props[PropWidth]), Height: h}
	case KindBubble:
		var s Size
		for _, c := range e.children {
			switch c.kind {
			case KindTabStrip:
				s.Height += c.layout().Height
			case KindContainer:
				cs := c.layout()
				s.Width = cs.Width
				s.Height += cs.Height
			}
		}
		return s
	case KindContent:
		var s Size
		for _, c := range e.children {
			cs := c.layout()
			s.Width = max(s.Width, cs.Width)
			s.Height += cs.Height
		}
		return s
	}
	return e.natural
}

func (e *fakeElement) ClientHeight() int {
	if e.kind == KindContainer {
		return ParsePx(e.props[PropHeight])
	}
	return e.layout().Height
}

func (e *fakeElement) ScrollHeight() int {
	if e.kind == KindContainer {
		h := 0
		for _, c := range e.children {
			h += c.layout().Height
		}
		return max(h, ParsePx(e.props[PropHeight]))
	}
	return e.layout().Height
}

func (e *fakeElement) Images() []Element {
	var out []Element
	var walk func(n *fakeElement)
	walk = func(n *fakeElement) {
		for _, c := range n.children {
			if c.kind == KindImage {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(e)
	return out
}

type fakeEvent struct{ stopped bool }

func (e *fakeEvent) StopPropagation() { e.stopped = true }

type fakeListener struct {
	h       *fakeHost
	target  any
	event   string
	fn      func(Event)
	removed bool
}

func (l *fakeListener) Remove() {
	if l.removed {
		return
	}
	l.removed = true
	l.h.active--
}

type fakeTask struct {
	due time.Duration
	seq int
	fn  func()
}

// fakeHost records listeners and runs deferred tasks on demand.
type fakeHost struct {
	r         *fakeRenderer
	listeners []*fakeListener
	active    int
	tasks     []fakeTask
	now       time.Duration
	seq       int
	ids       int
	triggered []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{r: newFakeRenderer()}
}

func (h *fakeHost) Renderer() Renderer { return h.r }

func (h *fakeHost) Listen(target any, event string, fn func(Event)) Listener {
	l := &fakeListener{h: h, target: target, event: event, fn: fn}
	h.listeners = append(h.listeners, l)
	h.active++
	return l
}

func (h *fakeHost) Trigger(target any, event string) {
	h.triggered = append(h.triggered, event)
	h.dispatch([]any{target}, event)
}

// dispatch delivers event along path, innermost first, until a listener
// stops propagation. It reports whether the event reached the end of path.
func (h *fakeHost) dispatch(path []any, event string) bool {
	e := &fakeEvent{}
	for _, target := range path {
		for _, l := range append([]*fakeListener(nil), h.listeners...) {
			if !l.removed && l.target == target && l.event == event {
				l.fn(e)
			}
		}
		if e.stopped {
			return false
		}
	}
	return true
}

func (h *fakeHost) listenersOn(target any) int {
	n := 0
	for _, l := range h.listeners {
		if !l.removed && l.target == target {
			n++
		}
	}
	return n
}

func (h *fakeHost) After(delay time.Duration, fn func()) {
	h.seq++
	h.tasks = append(h.tasks, fakeTask{due: h.now + delay, seq: h.seq, fn: fn})
}

// flush runs every pending task, including ones scheduled while flushing,
// in due order.
func (h *fakeHost) flush() {
	for len(h.tasks) > 0 {
		sort.SliceStable(h.tasks, func(i, j int) bool {
			if h.tasks[i].due != h.tasks[j].due {
				return h.tasks[i].due < h.tasks[j].due
			}
			return h.tasks[i].seq < h.tasks[j].seq
		})
		t := h.tasks[0]
		h.tasks = h.tasks[1:]
		if t.due > h.now {
			h.now = t.due
		}
		t.fn()
	}
}

// runDue runs only the tasks due by now.
func (h *fakeHost) runDue() {
	var later []fakeTask
	pending := h.tasks
	h.tasks = nil
	for _, t := range pending {
		if t.due <= h.now {
			t.fn()
		} else {
			later = append(later, t)
		}
	}
	h.tasks = append(later, h.tasks...)
}

func (h *fakeHost) NewID() string {
	h.ids++
	return fmt.Sprintf("id%d", h.ids)
}

// fakeMap projects lat/lng straight onto pixels: x = Lng, y = Lat.
type fakeMap struct {
	viewport Size
	center   LatLng
	panes    *Panes
	ready    bool
	overlays []Overlay
	pans     []LatLng
}

func newFakeMap(h *fakeHost, viewport Size) *fakeMap {
	return &fakeMap{
		viewport: viewport,
		center:   LatLng{Lat: float64(viewport.Height) / 2, Lng: float64(viewport.Width) / 2},
		panes: &Panes{
			FloatPane:   h.r.Create(KindPane),
			FloatShadow: h.r.Create(KindPane),
		},
		ready: true,
	}
}

func (m *fakeMap) Viewport() Size { return m.viewport }
func (m *fakeMap) Center() LatLng { return m.center }

func (m *fakeMap) PanTo(ll LatLng) {
	m.pans = append(m.pans, ll)
	m.center = ll
}

func (m *fakeMap) Projection() Projection {
	if !m.ready {
		return nil
	}
	return identityProjection{}
}

func (m *fakeMap) Panes() *Panes {
	if !m.ready {
		return nil
	}
	return m.panes
}

func (m *fakeMap) AddOverlay(o Overlay) {
	m.overlays = append(m.overlays, o)
	o.OnAdd()
	o.Draw()
}

func (m *fakeMap) RemoveOverlay(o Overlay) {
	for i, existing := range m.overlays {
		if existing == o {
			m.overlays = append(m.overlays[:i], m.overlays[i+1:]...)
			break
		}
	}
	o.OnRemove()
}

type identityProjection struct{}

func (identityProjection) FromLatLngToDivPixel(ll LatLng) Point {
	return Point{X: ll.Lng, Y: ll.Lat}
}

func (identityProjection) FromLatLngToContainerPixel(ll LatLng) Point {
	return Point{X: ll.Lng, Y: ll.Lat}
}

func (identityProjection) FromContainerPixelToLatLng(p Point) LatLng {
	return LatLng{Lat: p.Y, Lng: p.X}
}

// fixed is a Measurable with a natural size that wraps when capped.
type fixed Size

func (f fixed) Measure(maxWidth, maxHeight int) Size {
	s := Size(f)
	if maxWidth > 0 && s.Width > maxWidth {
		area := s.Width * s.Height
		s.Width = maxWidth
		s.Height = (area + maxWidth - 1) / maxWidth
	}
	if maxHeight > 0 && s.Height > maxHeight {
		s.Height = maxHeight
	}
	return s
}
