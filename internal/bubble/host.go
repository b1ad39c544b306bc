package bubble

import "time"

// LatLng is a map-space coordinate.
type LatLng struct {
	Lat float64
	Lng float64
}

// Point is a screen-space position in host units.
type Point struct {
	X float64
	Y float64
}

// Size is a width and height in host units.
type Size struct {
	Width  int
	Height int
}

// Projection converts between map coordinates and screen pixels.
type Projection interface {
	// FromLatLngToDivPixel returns the position inside the overlay layer.
	FromLatLngToDivPixel(LatLng) Point
	// FromLatLngToContainerPixel returns the position inside the viewport.
	FromLatLngToContainerPixel(LatLng) Point
	FromContainerPixelToLatLng(Point) LatLng
}

// Panes are the host layers a bubble installs its elements into.
type Panes struct {
	FloatPane   Element
	FloatShadow Element
}

// Overlay is the capability set a Map drives on attached overlays.
type Overlay interface {
	OnAdd()
	Draw()
	OnRemove()
}

// Map is a host viewport overlays can be attached to.
type Map interface {
	Viewport() Size
	Center() LatLng
	PanTo(LatLng)
	// Projection returns nil until the map is ready.
	Projection() Projection
	// Panes returns nil until the map is ready.
	Panes() *Panes
	// AddOverlay calls OnAdd and then Draw on o.
	AddOverlay(o Overlay)
	// RemoveOverlay calls OnRemove on o.
	RemoveOverlay(o Overlay)
}

// Event is delivered to listeners registered through MapHost.Listen.
type Event interface {
	StopPropagation()
}

// Listener is a live event subscription.
type Listener interface {
	Remove()
}

// MapHost provides the services a bubble needs from its environment.
type MapHost interface {
	Renderer() Renderer
	// Listen subscribes fn to event on target. Targets are elements or
	// any other comparable value, bubbles included.
	Listen(target any, event string, fn func(Event)) Listener
	// Trigger delivers event to the listeners of target.
	Trigger(target any, event string)
	// After runs fn once delay has elapsed, on the host's event loop.
	After(delay time.Duration, fn func())
	NewID() string
}

// Event names used by bubbles.
const (
	EventDomReady   = "domready"
	EventCloseClick = "closeclick"
	EventClick      = "click"
	EventLoad       = "load"
)

// suppressedEvents never propagate from a bubble to the map below it.
var suppressedEvents = []string{
	"mousedown", "mousemove", "mouseover", "mouseout", "mouseup",
	"mousewheel", "touchstart", "touchend", "touchmove",
	"dblclick", "contextmenu", EventClick,
}
