package bubble

import (
	"math"
	"time"

	"infobubble/pkg/logging"
)

const (
	baseZIndex = 100
	// panDelay lets the open animation and layout settle before panning.
	panDelay = 200 * time.Millisecond
)

// Geometry is the outcome of the last sizing and placement pass.
type Geometry struct {
	Size      Resolved
	Placement Placement
	Close     CloseOffset
}

// Bubble is a callout pinned to a map coordinate or an Anchor.
type Bubble struct {
	host     MapHost
	renderer Renderer
	store    *Store
	tabs     TabRegistry

	bubble    Element
	shadow    Element
	tabStrip  Element
	closeEl   Element
	container Element
	content   Element
	arrow     Element

	m        Map
	attached bool
	anchor   Anchor
	unwatch  func()

	suppress []Listener
	images   []Listener
	closeL   Listener

	base      int
	tabHeight int
	isOpen    bool
	animation string
	tabClass  string
	bgClass   string
	geometry  Geometry
}

// New builds a bubble and applies values over the defaults. It fails with a
// ConfigurationError when host is nil.
func New(values Values, host MapHost) (*Bubble, error) {
	if host == nil {
		return nil, &ConfigurationError{Field: "host", Err: ErrNoHost}
	}
	r := host.Renderer()
	if r == nil {
		return nil, &ConfigurationError{Field: "renderer", Err: ErrNoHost}
	}

	b := &Bubble{
		host:      host,
		renderer:  r,
		store:     NewStore(Defaults(), values),
		base:      baseZIndex,
		animation: "ib-open-" + host.NewID(),
	}
	b.build()
	b.registerHandlers()
	b.store.Apply()
	return b, nil
}

// build creates the element tree:
//
//	bubble
//	├── tab strip
//	├── close
//	├── container
//	│   └── content
//	└── arrow
//
// plus the shadow, which lives in its own pane.
func (b *Bubble) build() {
	r := b.renderer

	b.bubble = r.Create(KindBubble)
	b.bubble.Set(PropZIndex, itoa(b.base))

	b.tabStrip = r.Create(KindTabStrip)

	b.closeEl = r.Create(KindClose)
	b.closeEl.Set(PropZIndex, itoa(b.base+1))
	b.closeL = b.host.Listen(b.closeEl, EventClick, func(Event) {
		b.Close()
		b.host.Trigger(b, EventCloseClick)
	})

	b.container = r.Create(KindContainer)
	b.content = r.Create(KindContent)
	b.container.Append(b.content)

	b.arrow = r.Create(KindArrow)

	b.shadow = r.Create(KindShadow)

	b.bubble.Set(PropDisplay, "none")
	b.shadow.Set(PropDisplay, "none")
	b.bubble.Append(b.tabStrip)
	b.bubble.Append(b.closeEl)
	b.bubble.Append(b.container)
	b.bubble.Append(b.arrow)
}

// Element returns the root element of the bubble.
func (b *Bubble) Element() Element {
	return b.bubble
}

// ShadowElement returns the shadow element.
func (b *Bubble) ShadowElement() Element {
	return b.shadow
}

// CloseElement returns the close control.
func (b *Bubble) CloseElement() Element {
	return b.closeEl
}

// Open shows the bubble on m, following anchor. Both may be nil to keep the
// current map and position. The work runs on the host's next tick so that
// callers can finish configuring the bubble first.
func (b *Bubble) Open(m Map, anchor Anchor) {
	b.host.After(0, func() {
		b.open(m, anchor)
	})
}

func (b *Bubble) open(m Map, anchor Anchor) {
	b.publish()
	if m != nil {
		b.SetMap(m)
	}
	if anchor != nil {
		b.bind(anchor)
	}

	b.bubble.Set(PropDisplay, "")
	b.shadow.Set(PropDisplay, "")
	if !b.store.Bool(OptDisableAnimation) {
		b.bubble.AddClass(b.animation)
		b.shadow.AddClass(b.animation)
	}

	b.Redraw()
	b.isOpen = true
	logging.Debug("Bubble", "opened bubble %s", b.bubble.ID())

	if !b.store.Bool(OptDisableAutoPan) {
		b.host.After(panDelay, b.PanToView)
	}
}

// Close hides the bubble and its shadow. It does not detach from the map.
func (b *Bubble) Close() {
	b.bubble.Set(PropDisplay, "none")
	b.bubble.RemoveClass(b.animation)
	b.shadow.Set(PropDisplay, "none")
	b.shadow.RemoveClass(b.animation)
	b.isOpen = false
}

// IsOpen reports whether the bubble is shown. It turns true once the
// deferred open has run.
func (b *Bubble) IsOpen() bool {
	return b.isOpen
}

// Map returns the map the bubble is attached to, nil when detached.
func (b *Bubble) Map() Map {
	return b.m
}

// SetMap moves the bubble to m. nil detaches it.
func (b *Bubble) SetMap(m Map) {
	if b.m == m {
		return
	}
	if old := b.m; old != nil {
		old.RemoveOverlay(b)
	}
	b.m = m
	if m != nil {
		m.AddOverlay(b)
	}
}

// OnAdd installs the bubble into the map's panes.
func (b *Bubble) OnAdd() {
	if b.bubble == nil {
		b.build()
	}
	b.suppressEvents()
	if b.m != nil {
		if panes := b.m.Panes(); panes != nil {
			panes.FloatPane.Append(b.bubble)
			panes.FloatShadow.Append(b.shadow)
		}
	}
	b.attached = true
	b.host.Trigger(b, EventDomReady)
}

// OnRemove takes the bubble out of the map's panes and releases every
// listener installed by OnAdd.
func (b *Bubble) OnRemove() {
	b.bubble.Detach()
	b.shadow.Detach()
	for _, l := range b.suppress {
		l.Remove()
	}
	b.suppress = nil
	b.attached = false
}

// suppressEvents keeps pointer events over the bubble from reaching the map.
func (b *Bubble) suppressEvents() {
	for _, l := range b.suppress {
		l.Remove()
	}
	b.suppress = b.suppress[:0]
	for _, event := range suppressedEvents {
		b.suppress = append(b.suppress, b.host.Listen(b.bubble, event, func(e Event) {
			e.StopPropagation()
		}))
	}
}

func (b *Bubble) projection() Projection {
	if b.m == nil || !b.attached {
		return nil
	}
	return b.m.Projection()
}

// Draw positions the bubble and its shadow over the anchor. It does nothing
// until the map is ready or while the last sizing pass left no width, and
// closes the bubble when there is no position to anchor to. The placement
// reported by Geometry is cleared on every call and set only when the draw
// completes.
func (b *Bubble) Draw() {
	b.geometry.Placement = Placement{}
	proj := b.projection()
	if proj == nil {
		return
	}
	pos, ok := b.Position()
	if !ok {
		b.Close()
		return
	}

	tabHeight := 0
	if t := b.tabs.Active(); t != nil && t.element != nil {
		tabHeight = t.element.Size().Height
	}

	if !b.geometry.Size.Ready() {
		return
	}
	width := b.container.Size().Width
	if width == 0 {
		return
	}

	p := Place(PlaceInput{
		Anchor:          proj.FromLatLngToDivPixel(pos),
		BoxWidth:        width,
		BoxHeight:       b.bubble.Size().Height,
		ContainerHeight: b.container.Size().Height,
		TabHeight:       tabHeight,
		ArrowSize:       b.store.Int(OptArrowSize),
		AnchorHeight:    b.anchorHeight(),
		ArrowPosition:   float64(b.store.Int(OptArrowPosition)) / 100,
		ShadowStyle:     b.store.Int(OptShadowStyle),
	})
	b.bubble.Set(PropTop, px(p.Top))
	b.bubble.Set(PropLeft, px(p.Left))
	if p.ShadowPlaced {
		b.shadow.Set(PropTop, px(p.Shadow.Top))
		b.shadow.Set(PropLeft, px(p.Shadow.Left))
		b.shadow.Set(PropWidth, px(p.Shadow.Width))
		b.shadow.Set(PropHeight, px(p.Shadow.Height))
	}
	b.geometry.Placement = p
}

// Redraw re-sizes the bubble, positions the close control and draws.
func (b *Bubble) Redraw() {
	b.resize()
	b.positionClose()
	b.Draw()
}

// Geometry returns the values computed by the last redraw.
func (b *Bubble) Geometry() Geometry {
	return b.geometry
}

func (b *Bubble) resize() {
	if b.m == nil {
		return
	}
	in := SizeInput{
		Viewport:     b.m.Viewport(),
		ArrowSize:    b.store.Int(OptArrowSize),
		AnchorHeight: b.anchorHeight(),
		Padding:      b.store.Int(OptPadding),
		MinWidth:     b.store.Int(OptMinWidth),
		MinHeight:    b.store.Int(OptMinHeight),
		MaxWidth:     b.store.Int(OptMaxWidth),
		MaxHeight:    b.store.Int(OptMaxHeight),
	}
	if b.tabs.Len() > 0 {
		for _, t := range b.tabs.tabs {
			in.Tabs = append(in.Tabs, TabMeasure{
				Label:   elementMeasure{r: b.renderer, el: t.element},
				Content: elementMeasure{r: b.renderer, el: b.elementFor(t.Content)},
			})
		}
	} else if c := b.Content(); !c.IsZero() {
		in.Content = elementMeasure{r: b.renderer, el: b.elementFor(c)}
	}

	size := ResolveSize(in)
	b.tabHeight = size.TabHeight
	b.tabStrip.Set(PropWidth, px(size.TabWidth))
	b.container.Set(PropWidth, px(size.Width))
	b.container.Set(PropHeight, px(size.Height))
	b.geometry.Size = size
}

func (b *Bubble) positionClose() {
	scrollable := b.container.ClientHeight() < b.container.ScrollHeight()
	c := PlaceClose(b.store.Int(OptBorderWidth), b.tabHeight, b.tabs.Len() > 0, scrollable)
	b.closeEl.Set(PropRight, px(c.Right))
	b.closeEl.Set(PropTop, px(c.Top))
	b.geometry.Close = c
}

// PanToView pans the map so the open bubble is fully visible.
func (b *Bubble) PanToView() {
	proj := b.projection()
	if proj == nil {
		return
	}
	pos, ok := b.Position()
	if !ok {
		return
	}
	center := b.m.Center()
	target := PanTarget(
		proj.FromLatLngToContainerPixel(center),
		proj.FromLatLngToContainerPixel(pos),
		b.bubble.Size().Height,
		b.anchorHeight(),
		b.m.Viewport().Height,
	)
	latLng := proj.FromContainerPixelToLatLng(target)
	if latLng != center {
		b.m.PanTo(latLng)
	}
}

// Position returns the anchor's position when one is bound, else the
// explicit position.
func (b *Bubble) Position() (LatLng, bool) {
	if b.anchor != nil {
		return b.anchor.Position()
	}
	v, _ := b.store.Get(OptPosition)
	switch p := v.(type) {
	case LatLng:
		return p, true
	case *LatLng:
		if p != nil {
			return *p, true
		}
	}
	return LatLng{}, false
}

// SetPosition pins the bubble to pos, releasing any bound anchor.
func (b *Bubble) SetPosition(pos LatLng) {
	b.unbind()
	b.store.Set(OptPosition, pos)
}

// Anchor returns the bound anchor, nil when none.
func (b *Bubble) Anchor() Anchor {
	return b.anchor
}

func (b *Bubble) bind(a Anchor) {
	b.unbind()
	b.anchor = a
	b.unwatch = a.Watch(b.Draw)
}

func (b *Bubble) unbind() {
	if b.unwatch != nil {
		b.unwatch()
		b.unwatch = nil
	}
	b.anchor = nil
}

func (b *Bubble) anchorHeight() int {
	if b.anchor == nil {
		return 0
	}
	if p, ok := b.anchor.AnchorPoint(); ok {
		return int(math.Round(-p.Y))
	}
	return 0
}

// SetContent sets the content of an untabbed bubble. It is shown on the next
// open.
func (b *Bubble) SetContent(c Content) {
	b.store.Set(OptContent, c)
}

// Content returns the content of an untabbed bubble.
func (b *Bubble) Content() Content {
	v, _ := b.store.Get(OptContent)
	return contentOf(v)
}

// publish replaces the displayed content and follows image loads inside it.
func (b *Bubble) publish() {
	for _, l := range b.images {
		l.Remove()
	}
	b.images = nil
	b.content.Clear()

	if c := b.Content(); !c.IsZero() {
		b.content.Append(b.elementFor(c))
		for _, img := range b.content.Images() {
			b.images = append(b.images, b.host.Listen(img, EventLoad, func(Event) {
				b.imageLoaded()
			}))
		}
	}
	b.Redraw()
}

func (b *Bubble) imageLoaded() {
	b.Redraw()
	if b.store.Bool(OptDisableAutoPan) {
		return
	}
	if b.tabs.Len() == 0 || b.tabs.ActiveIndex() == 0 {
		b.PanToView()
	}
}

func (b *Bubble) elementFor(c Content) Element {
	if c.IsZero() {
		return nil
	}
	if c.node != nil {
		return c.node
	}
	return b.renderer.Parse(c.markup)
}

// On subscribes fn to a bubble event such as EventDomReady or
// EventCloseClick.
func (b *Bubble) On(event string, fn func()) Listener {
	return b.host.Listen(b, event, func(Event) { fn() })
}

// Destroy detaches the bubble and releases every listener it holds.
func (b *Bubble) Destroy() {
	b.SetMap(nil)
	b.unbind()
	for _, l := range b.images {
		l.Remove()
	}
	b.images = nil
	for _, t := range b.tabs.tabs {
		if t.click != nil {
			t.click.Remove()
			t.click = nil
		}
	}
	if b.closeL != nil {
		b.closeL.Remove()
		b.closeL = nil
	}
}
