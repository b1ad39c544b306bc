package mapview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infobubble/internal/bubble"
	"infobubble/internal/tui/render"
)

type fixture struct {
	host *Host
	m    *Map
	pin  *Pin
	b    *bubble.Bubble
}

func newFixture(t *testing.T, at bubble.LatLng) *fixture {
	t.Helper()
	host := NewHost(render.WithColorProfile(termenv.Ascii))
	m := NewMap(host, bubble.LatLng{}, 0)
	m.ShowGrid = false
	m.SetSize(60, 30)

	pin := NewPin(at, "here")
	m.AddPin(pin)

	b, err := bubble.New(bubble.Values{
		bubble.OptPadding:          1,
		bubble.OptArrowSize:        1,
		bubble.OptBorderRadius:     0,
		bubble.OptBorderWidth:      1,
		bubble.OptShadowStyle:      0,
		bubble.OptBackgroundColor:  "",
		bubble.OptBorderColor:      "",
		bubble.OptDisableAnimation: true,
	}, host)
	require.NoError(t, err)

	return &fixture{host: host, m: m, pin: pin, b: b}
}

func (f *fixture) open(t *testing.T) []string {
	t.Helper()
	f.b.Open(f.m, f.pin)
	f.host.Clock().Flush()
	return f.rows()
}

func (f *fixture) rows() []string {
	return strings.Split(f.m.View(), "\n")
}

func TestMap_ProjectionRoundTrips(t *testing.T) {
	host := NewHost(render.WithColorProfile(termenv.Ascii))
	m := NewMap(host, bubble.LatLng{Lat: 10, Lng: 20}, 1)

	assert.Nil(t, m.Projection(), "not ready before it has a size")
	assert.Nil(t, m.Panes())

	m.SetSize(40, 20)
	p := m.Projection()
	require.NotNil(t, p)

	assert.Equal(t, bubble.Point{X: 20, Y: 10}, p.FromLatLngToContainerPixel(bubble.LatLng{Lat: 10, Lng: 20}))
	// two rows per unit at zoom 1, and twice as many columns
	assert.Equal(t, bubble.Point{X: 24, Y: 8}, p.FromLatLngToContainerPixel(bubble.LatLng{Lat: 11, Lng: 21}))
	assert.Equal(t, bubble.LatLng{Lat: 11, Lng: 21}, p.FromContainerPixelToLatLng(bubble.Point{X: 24, Y: 8}))
	assert.Equal(t, p.FromLatLngToContainerPixel(bubble.LatLng{Lat: 3}), p.FromLatLngToDivPixel(bubble.LatLng{Lat: 3}))
}

func TestMap_OpenDrawsAboveThePin(t *testing.T) {
	f := newFixture(t, bubble.LatLng{})
	f.b.SetContent(bubble.Markup("hello"))

	rows := f.open(t)

	require.Len(t, rows, 30)
	for _, row := range rows {
		assert.Equal(t, 60, ansi.StringWidth(row))
	}
	assert.Equal(t, "┌───────┐", ansi.Cut(rows[9], 26, 35))
	assert.Equal(t, "│      ✕│", ansi.Cut(rows[10], 26, 35))
	assert.Equal(t, "│ hello │", ansi.Cut(rows[11], 26, 35))
	assert.Equal(t, "└───────┘", ansi.Cut(rows[13], 26, 35))
	assert.Equal(t, "▼", ansi.Cut(rows[14], 30, 31))
	assert.Equal(t, "●", ansi.Cut(rows[15], 30, 31))
	assert.Equal(t, bubble.LatLng{}, f.m.Center(), "a bubble that fits does not pan")
}

func TestMap_ClicksRouteThroughTheBubble(t *testing.T) {
	f := newFixture(t, bubble.LatLng{})
	f.b.SetContent(bubble.Markup("hello"))
	f.open(t)

	mapClicks, pinClicks, closed := 0, 0, 0
	f.host.Listen(f.m, bubble.EventClick, func(bubble.Event) { mapClicks++ })
	f.host.Listen(f.pin, bubble.EventClick, func(bubble.Event) { pinClicks++ })
	f.b.On(bubble.EventCloseClick, func() { closed++ })

	assert.False(t, f.m.Click(28, 11), "content swallows the click")
	assert.Equal(t, 0, mapClicks)

	assert.True(t, f.m.Click(2, 2))
	assert.Equal(t, 1, mapClicks)

	assert.True(t, f.m.Click(30, 15))
	assert.Equal(t, 1, pinClicks)
	assert.Equal(t, 2, mapClicks)

	assert.False(t, f.m.Click(33, 10))
	assert.Equal(t, 1, closed)
	assert.False(t, f.b.IsOpen())

	rows := f.rows()
	assert.Equal(t, strings.Repeat(" ", 9), ansi.Cut(rows[9], 26, 35), "closed bubbles are not drawn")
	assert.True(t, f.m.Click(28, 11), "nor do they swallow clicks")
}

func TestMap_AutoPanCentersTheAnchor(t *testing.T) {
	f := newFixture(t, bubble.LatLng{Lng: 10})
	f.b.SetContent(bubble.Markup("hello"))

	f.open(t)

	assert.Equal(t, bubble.LatLng{Lng: 10}, f.m.Center())
	assert.Equal(t, "26px", f.b.Element().Get(bubble.PropLeft))
}

func TestMap_TabClickActivates(t *testing.T) {
	f := newFixture(t, bubble.LatLng{})
	f.b.AddTab("One", bubble.Markup("first"))
	f.b.AddTab("Two", bubble.Markup("second"))

	rows := f.open(t)

	assert.Equal(t, "│ One ││ Two │", ansi.Cut(rows[5], 21, 35))
	assert.Equal(t, 0, f.b.ActiveTab())

	assert.False(t, f.m.Click(30, 5))
	assert.Equal(t, 1, f.b.ActiveTab())
	assert.Equal(t, "second", f.b.Content().Markup())

	rows = f.rows()
	assert.Contains(t, ansi.Strip(strings.Join(rows, "\n")), "second")
}

func TestMap_ImagesLoadOnceAfterFirstDraw(t *testing.T) {
	f := newFixture(t, bubble.LatLng{})
	f.b.SetContent(bubble.Markup(`<img src="a.png" alt="pic"> hi`))
	f.open(t)

	loads := func() int64 { return f.host.Bus().Metrics().EventsByName[bubble.EventLoad] }
	assert.Equal(t, int64(0), loads(), "nothing loads before the first draw")

	f.host.Clock().Flush()
	assert.Equal(t, int64(1), loads())

	f.host.Clock().Flush()
	f.m.View()
	f.host.Clock().Flush()
	assert.Equal(t, int64(1), loads())
}

func TestMap_OverlaysWaitForSize(t *testing.T) {
	host := NewHost(render.WithColorProfile(termenv.Ascii))
	m := NewMap(host, bubble.LatLng{}, 0)
	b, err := bubble.New(nil, host)
	require.NoError(t, err)

	domready := 0
	b.On(bubble.EventDomReady, func() { domready++ })

	b.SetMap(m)
	assert.Nil(t, b.Element().Parent())
	assert.Equal(t, 0, domready)
	assert.Equal(t, "", m.View())

	m.SetSize(20, 10)
	assert.NotNil(t, b.Element().Parent())
	assert.Equal(t, 1, domready)

	m.AddOverlay(b)
	assert.Len(t, m.Overlays(), 1)

	b.SetMap(nil)
	assert.Nil(t, b.Element().Parent())
	assert.Empty(t, m.Overlays())
}

func TestMap_PanAndZoom(t *testing.T) {
	host := NewHost(render.WithColorProfile(termenv.Ascii))
	m := NewMap(host, bubble.LatLng{}, 0)
	m.SetSize(40, 20)

	changes := 0
	host.Listen(m, EventCenterChanged, func(bubble.Event) { changes++ })

	m.PanBy(4, -2)
	assert.Equal(t, bubble.LatLng{Lat: 2, Lng: 2}, m.Center())
	assert.Equal(t, 1, changes)

	m.PanTo(m.Center())
	assert.Equal(t, 1, changes, "panning to the current center is a no-op")

	m.SetZoom(100)
	assert.Equal(t, MaxZoom, m.Zoom())
	m.SetZoom(-100)
	assert.Equal(t, MinZoom, m.Zoom())
}

func TestMap_GridAndLabels(t *testing.T) {
	host := NewHost(render.WithColorProfile(termenv.Ascii))
	m := NewMap(host, bubble.LatLng{}, 0)
	m.SetSize(40, 20)
	m.ShowLabels = true
	m.AddPin(NewPin(bubble.LatLng{Lat: 1, Lng: 1}, "Dock"))

	rows := strings.Split(m.View(), "\n")

	// zoom 0 spaces grid rows four units apart
	assert.Equal(t, "·", ansi.Cut(rows[10], 20, 21))
	assert.Equal(t, "·", ansi.Cut(rows[6], 28, 29))
	assert.Equal(t, "● Dock", ansi.Cut(rows[9], 22, 28))
}

func TestGridStep(t *testing.T) {
	assert.Equal(t, 4.0, gridStep(1))
	assert.Equal(t, 1.0, gridStep(8))
	assert.Equal(t, 0.25, gridStep(64))
}
