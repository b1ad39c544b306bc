package model

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"infobubble/internal/bubble"
	"infobubble/internal/config"
	"infobubble/internal/events"
	"infobubble/internal/tui/design"
	"infobubble/internal/tui/mapview"
	"infobubble/internal/tui/render"
	"infobubble/pkg/logging"
)

// DefaultKeyMap returns a KeyMap with the default bindings used by the TUI.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "pan north"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "pan south"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "pan west"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "pan east"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n", "next marker"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "shift+tab"),
			key.WithHelp("p", "previous marker"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter", "open bubble"),
		),
		Close: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close bubble"),
		),
		Tab: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "switch tab"),
		),
		Shadow: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shadow style"),
		),
		ArrowStyle: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "arrow style"),
		),
		ArrowLeft: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "arrow left"),
		),
		ArrowRight: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "arrow right"),
		),
		CloseButton: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle close button"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "find marker"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy bubble text"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "toggle log overlay"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h", "toggle help"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// InitializeModel builds the map, its markers and the shared bubble from
// cfg. opts configure the terminal renderer.
func InitializeModel(
	cfg config.Config,
	configPath string,
	debugMode bool,
	logChannel <-chan logging.LogEntry,
	opts ...render.Option,
) (*Model, error) {
	host := mapview.NewHost(opts...)

	center := bubble.LatLng{}
	if cfg.Map.Center != nil {
		center = cfg.Map.Center.LatLng()
	}
	zoom := 0
	if cfg.Map.Zoom != nil {
		zoom = *cfg.Map.Zoom
	}
	mp := mapview.NewMap(host, center, zoom)
	mp.ShowLabels = true

	b, err := bubble.New(cfg.Bubble.Values(), host)
	if err != nil {
		return nil, fmt.Errorf("failed to create bubble: %w", err)
	}

	ti := textinput.New()
	ti.Placeholder = "marker name"
	ti.CharLimit = 64
	ti.Width = 30
	ti.Prompt = "/ "

	m := &Model{
		CurrentAppMode: ModeMap,
		LastAppMode:    ModeMap,
		DebugMode:      debugMode,
		Config:         cfg,
		ConfigPath:     configPath,
		Host:           host,
		Map:            mp,
		Bubble:         b,
		Selected:       -1,
		OpenMarker:     -1,
		Zones:          zone.New(),
		LogViewport:    viewport.New(0, 0),
		SearchInput:    ti,
		Keys:           DefaultKeyMap(),
		Help:           help.New(),
		LogChannel:     logChannel,
	}
	m.Help.ShowAll = true

	b.On(bubble.EventCloseClick, func() {
		if i := m.OpenMarker; i >= 0 && i < len(m.Markers) {
			logging.Info("Bubble", "closed %s", m.Markers[i].Def.Name)
		}
		m.OpenMarker = -1
	})
	m.EventTap = host.Bus().Tap(events.FilterByName(
		bubble.EventDomReady,
		bubble.EventCloseClick,
		bubble.EventLoad,
		mapview.EventCenterChanged,
		mapview.EventZoomChanged,
	), eventTapBuffer)

	m.SetMarkers(cfg.Markers)
	if cfg.Map.Width > 0 && cfg.Map.Height > 0 {
		m.Resize(cfg.Map.Width, cfg.Map.Height+design.HeaderHeight+design.FooterHeight)
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForLogEntriesCmd(m.LogChannel),
		ListenForBusEventsCmd(m.EventTap),
		m.ArmClockCmd(),
	)
}

// Resize fits the map between the header and the footer.
func (m *Model) Resize(width, height int) {
	m.Width = width
	m.Height = height
	m.Map.SetSize(width, max(height-design.HeaderHeight-design.FooterHeight, 0))
	m.Help.Width = max(width-8, 20)
	m.LogViewport.Width = max(width-8, 10)
	m.LogViewport.Height = max(height-10, 3)
	m.ActivityLogDirty = true
}

// Shutdown releases the bus tap and the zone manager.
func (m *Model) Shutdown() {
	if m.EventTap != nil {
		m.EventTap.Remove()
	}
	m.Bubble.Destroy()
	m.Zones.Close()
}
