package bubble

// Anchor is an object a bubble can follow. Position and AnchorPoint are read
// on every draw; Watch reports changes to either.
type Anchor interface {
	Position() (LatLng, bool)
	// AnchorPoint is the offset from the anchor coordinate to the anchor's
	// visual tip. A negative Y lifts the bubble above the anchor's glyph.
	AnchorPoint() (Point, bool)
	Watch(fn func()) (cancel func())
}

// Marker is a movable Anchor.
type Marker struct {
	position    LatLng
	hasPosition bool
	anchorPoint *Point
	watchers    map[int]func()
	nextID      int
}

// NewMarker returns a marker at pos.
func NewMarker(pos LatLng) *Marker {
	return &Marker{position: pos, hasPosition: true}
}

func (m *Marker) Position() (LatLng, bool) {
	return m.position, m.hasPosition
}

// SetPosition moves the marker and notifies watchers.
func (m *Marker) SetPosition(pos LatLng) {
	m.position = pos
	m.hasPosition = true
	m.notify()
}

// ClearPosition unsets the position. Bubbles following the marker close on
// their next draw.
func (m *Marker) ClearPosition() {
	m.hasPosition = false
	m.notify()
}

func (m *Marker) AnchorPoint() (Point, bool) {
	if m.anchorPoint == nil {
		return Point{}, false
	}
	return *m.anchorPoint, true
}

func (m *Marker) SetAnchorPoint(p Point) {
	m.anchorPoint = &p
	m.notify()
}

func (m *Marker) Watch(fn func()) func() {
	if m.watchers == nil {
		m.watchers = make(map[int]func())
	}
	id := m.nextID
	m.nextID++
	m.watchers[id] = fn
	return func() { delete(m.watchers, id) }
}

// Watchers returns the number of live subscriptions.
func (m *Marker) Watchers() int {
	return len(m.watchers)
}

func (m *Marker) notify() {
	for i := 0; i < m.nextID; i++ {
		if fn, ok := m.watchers[i]; ok {
			fn()
		}
	}
}
