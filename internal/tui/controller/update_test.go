package controller

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infobubble/internal/bubble"
	"infobubble/internal/config"
	"infobubble/internal/tui/model"
	"infobubble/internal/tui/render"
	"infobubble/pkg/logging"
)

func testConfig() config.Config {
	cfg := config.GetDefaultConfig()
	disable := true
	cfg.Bubble.DisableAnimation = &disable
	cfg.Markers = []config.MarkerDefinition{
		{Name: "office", Content: "hello"},
		{Name: "depot", Lng: 10, Tabs: []config.TabDefinition{
			{Label: "One", Content: "first"},
			{Label: "Two", Content: "second"},
		}},
		{Name: "harbor", Lat: -5, Content: "boats"},
	}
	return cfg
}

func newTestModel(t *testing.T) *model.Model {
	t.Helper()
	m, err := model.InitializeModel(testConfig(), "", false, nil, render.WithColorProfile(termenv.Ascii))
	require.NoError(t, err)
	t.Cleanup(func() {
		if m.CurrentAppMode != model.ModeQuitting {
			m.Shutdown()
		}
	})
	m, _ = Update(tea.WindowSizeMsg{Width: 60, Height: 31}, m)
	return m
}

func press(m *model.Model, keys ...string) *model.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = Update(msg, m)
	}
	return m
}

func TestWindowSize_FitsMapBetweenHeaderAndFooter(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, bubble.Size{Width: 60, Height: 28}, m.Map.Viewport())
	assert.Equal(t, 52, m.Help.Width)
}

func TestKeys_OpenAndCloseBubble(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "n", "enter")
	require.True(t, m.Bubble.IsOpen())
	assert.Equal(t, 0, m.OpenMarker)
	assert.Equal(t, 0, m.Selected)

	m = press(m, "x")
	assert.False(t, m.Bubble.IsOpen())
	assert.Equal(t, -1, m.OpenMarker)
}

func TestKeys_OpenWithoutSelectionPicksFirstMarker(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "o")

	assert.Equal(t, 0, m.OpenMarker)
}

func TestKeys_PrevWrapsAround(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "p")
	assert.Equal(t, 2, m.Selected)
	assert.Equal(t, bubble.LatLng{Lat: -5}, m.Map.Center())
}

func TestKeys_TabSwitching(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "n", "n", "enter")
	require.Equal(t, 1, m.OpenMarker)
	require.Len(t, m.Bubble.Tabs(), 2)

	m = press(m, "2")
	assert.Equal(t, 1, m.Bubble.ActiveTab())

	m = press(m, "5")
	assert.Equal(t, "no tab 5", m.StatusBarMessage)
	assert.Equal(t, model.StatusBarWarning, m.StatusBarMessageType)
	assert.Equal(t, 1, m.Bubble.ActiveTab())
}

func TestKeys_StyleToggles(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "a")
	assert.Equal(t, "arrow: left flush", m.StatusBarMessage)

	m = press(m, "]")
	assert.Equal(t, "arrow position 60%", m.StatusBarMessage)

	m = press(m, "c")
	assert.Equal(t, "close button hidden", m.StatusBarMessage)
	m = press(m, "c")
	assert.Equal(t, "close button shown", m.StatusBarMessage)

	m = press(m, "s")
	assert.Contains(t, m.StatusBarMessage, "shadow: ")
}

func TestKeys_PanAndZoom(t *testing.T) {
	m := newTestModel(t)
	before := m.Map.Center()

	m = press(m, "right")
	assert.Greater(t, m.Map.Center().Lng, before.Lng)

	zoom := m.Map.Zoom()
	m = press(m, "+")
	assert.Equal(t, zoom+1, m.Map.Zoom())
	m = press(m, "-")
	assert.Equal(t, zoom, m.Map.Zoom())
}

func TestKeys_Overlays(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "h")
	assert.Equal(t, model.ModeHelpOverlay, m.CurrentAppMode)
	m = press(m, "n")
	assert.Equal(t, -1, m.Selected, "map keys are inert under the help overlay")
	m = press(m, "esc")
	assert.Equal(t, model.ModeMap, m.CurrentAppMode)

	m = press(m, "L")
	assert.Equal(t, model.ModeLogOverlay, m.CurrentAppMode)
	m = press(m, "L")
	assert.Equal(t, model.ModeMap, m.CurrentAppMode)
}

func TestSearch_EnterOpensMatch(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "/")
	require.Equal(t, model.ModeSearch, m.CurrentAppMode)
	assert.Len(t, m.SearchMatches, 3)

	m = press(m, "h", "a", "r")
	require.NotEmpty(t, m.SearchMatches)
	assert.Equal(t, "harbor", m.SearchMatches[0].Str)

	m = press(m, "enter")
	assert.Equal(t, model.ModeMap, m.CurrentAppMode)
	assert.Equal(t, 2, m.OpenMarker)
	assert.True(t, m.Bubble.IsOpen())
}

func TestSearch_CursorAndEscape(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "/", "down", "down", "down")
	assert.Equal(t, 2, m.SearchCursor)

	m = press(m, "esc")
	assert.Equal(t, model.ModeMap, m.CurrentAppMode)
	assert.False(t, m.Bubble.IsOpen())
}

func TestSearch_NoMatchWarns(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "/", "z", "z", "z", "enter")

	assert.Equal(t, "no matching marker", m.StatusBarMessage)
	assert.Equal(t, -1, m.OpenMarker)
}

func TestMouse_ClickOnPinOpensBubble(t *testing.T) {
	m := newTestModel(t)
	m.Map.View()

	// the office pin sits mid map, one row below the header
	m, _ = Update(tea.MouseMsg{X: 30, Y: 15, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, m)

	assert.Equal(t, 0, m.OpenMarker)
	assert.True(t, m.Bubble.IsOpen())
}

func TestMouse_ReleaseAndHeaderAreIgnored(t *testing.T) {
	m := newTestModel(t)
	m.Map.View()

	m, _ = Update(tea.MouseMsg{X: 30, Y: 15, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}, m)
	m, _ = Update(tea.MouseMsg{X: 30, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, m)

	assert.Equal(t, -1, m.OpenMarker)
}

func TestMouse_WheelPansAndZooms(t *testing.T) {
	m := newTestModel(t)
	zoom := m.Map.Zoom()

	m, _ = Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Ctrl: true}, m)
	assert.Equal(t, zoom+1, m.Map.Zoom())

	lat := m.Map.Center().Lat
	m, _ = Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp}, m)
	assert.Greater(t, m.Map.Center().Lat, lat)
}

func TestNewLogEntry_FiltersDebugOutsideDebugMode(t *testing.T) {
	m := newTestModel(t)

	m, _ = Update(model.NewLogEntryMsg{Entry: logging.LogEntry{Level: logging.LevelDebug, Subsystem: "Map", Message: "quiet"}}, m)
	assert.Empty(t, m.ActivityLog)

	m, _ = Update(model.NewLogEntryMsg{Entry: logging.LogEntry{Level: logging.LevelWarn, Subsystem: "Map", Message: "loud"}}, m)
	require.Len(t, m.ActivityLog, 1)
	assert.Contains(t, m.ActivityLog[0], "[Map] loud")
	assert.False(t, m.ActivityLogDirty)
	assert.Contains(t, m.LogViewport.View(), "loud")
}

func TestConfigReloaded_KeepsOpenMarker(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "n", "n", "enter")
	require.Equal(t, 1, m.OpenMarker)

	cfg := testConfig()
	cfg.Markers = cfg.Markers[1:]
	m, _ = Update(model.ConfigReloadedMsg{Config: cfg}, m)

	assert.Len(t, m.Markers, 2)
	assert.Equal(t, 0, m.OpenMarker)
	assert.Equal(t, "configuration reloaded", m.StatusBarMessage)
	assert.Equal(t, model.StatusBarSuccess, m.StatusBarMessageType)
}

func TestConfigError_ShowsStatus(t *testing.T) {
	m := newTestModel(t)

	m, _ = Update(model.ConfigErrorMsg{Err: errors.New("bad yaml")}, m)

	assert.Equal(t, "config reload failed: bad yaml", m.StatusBarMessage)
	assert.Equal(t, model.StatusBarError, m.StatusBarMessageType)
}

func TestClipboardResult(t *testing.T) {
	m := newTestModel(t)

	m, _ = Update(model.ClipboardResultMsg{Chars: 5}, m)
	assert.Equal(t, "copied 5 characters", m.StatusBarMessage)

	m, _ = Update(model.ClipboardResultMsg{Err: errors.New("no display")}, m)
	assert.Equal(t, "copy failed", m.StatusBarMessage)
}

func TestClearStatus_OnlyClearsLatest(t *testing.T) {
	m := newTestModel(t)
	m.SetStatusMessage("first", model.StatusBarInfo, time.Second)
	m.SetStatusMessage("second", model.StatusBarInfo, time.Second)

	m, _ = Update(model.ClearStatusBarMsg{Seq: 1}, m)
	assert.Equal(t, "second", m.StatusBarMessage)

	m, _ = Update(model.ClearStatusBarMsg{Seq: 2}, m)
	assert.Empty(t, m.StatusBarMessage)
}

func TestClockTick_RunsDueTasks(t *testing.T) {
	m := newTestModel(t)
	ran := false
	m.Host.After(50*time.Millisecond, func() { ran = true })

	m.AdvanceClock(model.ClockTickMsg{Due: m.Host.Clock().Now() + 10*time.Millisecond})
	assert.False(t, ran)

	Update(model.ClockTickMsg{Due: m.Host.Clock().Now() + 40*time.Millisecond}, m)
	assert.True(t, ran)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)

	m, cmd := Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, m)

	assert.Equal(t, model.ModeQuitting, m.CurrentAppMode)
	assert.NotNil(t, cmd)
	assert.Equal(t, "Shutting down...\n", NewAppModel(m).View())
}
