package model

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sahilm/fuzzy"

	"infobubble/internal/bubble"
	"infobubble/internal/config"
	"infobubble/internal/events"
	"infobubble/internal/tui/mapview"
	"infobubble/pkg/logging"
)

// AppMode selects which layer receives keys: the map itself or one of the
// overlays drawn over it.
type AppMode int

const (
	ModeMap AppMode = iota
	ModeHelpOverlay
	ModeLogOverlay
	ModeSearch
	ModeQuitting
)

var appModeNames = [...]string{"Map", "HelpOverlay", "LogOverlay", "Search", "Quitting"}

func (m AppMode) String() string {
	if m < 0 || int(m) >= len(appModeNames) {
		return "Unknown"
	}
	return appModeNames[m]
}

// MessageType tints the status bar message.
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

const (
	// MaxActivityLogLines caps the log overlay history.
	MaxActivityLogLines = 1000
	eventTapBuffer      = 256
	defaultStatusTTL    = 3 * time.Second
)

// Zone ids of the footer buttons.
const (
	ZoneOpen  = "btn-open"
	ZoneClose = "btn-close"
	ZoneLog   = "btn-log"
	ZoneHelp  = "btn-help"
	ZoneQuit  = "btn-quit"
)

// KeyMap lists the demo bindings. help.Model renders it.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	Next        key.Binding
	Prev        key.Binding
	Open        key.Binding
	Close       key.Binding
	Tab         key.Binding
	Shadow      key.Binding
	ArrowStyle  key.Binding
	ArrowLeft   key.Binding
	ArrowRight  key.Binding
	CloseButton key.Binding
	Search      key.Binding
	Copy        key.Binding
	ToggleLog   key.Binding
	Help        key.Binding
	Esc         key.Binding
	Quit        key.Binding
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Open, k.Close, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.ZoomIn, k.ZoomOut},
		{k.Next, k.Prev, k.Open, k.Close, k.Tab, k.Search},
		{k.Shadow, k.ArrowStyle, k.ArrowLeft, k.ArrowRight, k.CloseButton},
		{k.Copy, k.ToggleLog, k.Help, k.Esc, k.Quit},
	}
}

// Marker is a configured marker and the pin that shows it.
type Marker struct {
	Def   config.MarkerDefinition
	Pin   *mapview.Pin
	click bubble.Listener
}

// Model represents the state of the demo.
type Model struct {
	Width, Height int

	CurrentAppMode  AppMode
	LastAppMode     AppMode
	DebugMode       bool
	QuittingMessage string

	Config     config.Config
	ConfigPath string

	Host    *mapview.Host
	Map     *mapview.Map
	Bubble  *bubble.Bubble
	Markers []*Marker
	// Selected is the marker n/p cycle from, OpenMarker the one the bubble
	// shows. Both are -1 when unset.
	Selected   int
	OpenMarker int

	Zones *zone.Manager

	ActivityLog      []string
	ActivityLogDirty bool
	LogViewport      viewport.Model
	SearchInput      textinput.Model
	SearchMatches    fuzzy.Matches
	SearchCursor     int
	Keys             KeyMap
	Help             help.Model

	StatusBarMessage     string
	StatusBarMessageType MessageType
	statusSeq            int

	LogChannel <-chan logging.LogEntry
	EventTap   *events.Subscription

	clockArmed bool
	armedDue   time.Duration
}
