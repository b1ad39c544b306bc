package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"infobubble/internal/tui/model"
	"infobubble/pkg/logging"
)

const (
	panStepX = 4
	panStepY = 2
)

var arrowStyleNames = []string{"centered", "left flush", "right flush"}
var shadowStyleNames = []string{"none", "offset", "soft"}

// handleKeyMsgGlobal processes key presses outside of the search input.
func handleKeyMsgGlobal(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	// --- Overlay-specific key handling --------------------------------------
	if m.CurrentAppMode == model.ModeLogOverlay {
		switch {
		case key.Matches(keyMsg, m.Keys.ToggleLog), key.Matches(keyMsg, m.Keys.Esc):
			m.CurrentAppMode = model.ModeMap
			return m, nil
		case key.Matches(keyMsg, m.Keys.Copy):
			return m, model.CopyToClipboardCmd(strings.Join(m.ActivityLog, "\n"))
		case key.Matches(keyMsg, m.Keys.Quit):
			return quit(m)
		}
		switch keyMsg.String() {
		case "k", "up", "j", "down", "pgup", "pgdown", "home", "end":
			var vpCmd tea.Cmd
			m.LogViewport, vpCmd = m.LogViewport.Update(keyMsg)
			return m, vpCmd
		}
		return m, nil
	}

	if m.CurrentAppMode == model.ModeHelpOverlay {
		switch {
		case key.Matches(keyMsg, m.Keys.Help), key.Matches(keyMsg, m.Keys.Esc):
			m.CurrentAppMode = model.ModeMap
		case key.Matches(keyMsg, m.Keys.Quit):
			return quit(m)
		}
		return m, nil
	}

	// --- Map mode ----------------------------------------------------------
	switch {
	case key.Matches(keyMsg, m.Keys.Quit):
		return quit(m)

	case key.Matches(keyMsg, m.Keys.Help):
		m.LastAppMode = m.CurrentAppMode
		m.CurrentAppMode = model.ModeHelpOverlay
		return m, nil

	case key.Matches(keyMsg, m.Keys.ToggleLog):
		m.LastAppMode = m.CurrentAppMode
		m.CurrentAppMode = model.ModeLogOverlay
		m.LogViewport.GotoBottom()
		return m, nil

	case key.Matches(keyMsg, m.Keys.Search):
		m.LastAppMode = m.CurrentAppMode
		m.CurrentAppMode = model.ModeSearch
		m.SearchInput.SetValue("")
		m.SearchCursor = 0
		m.UpdateSearch()
		return m, m.SearchInput.Focus()

	case key.Matches(keyMsg, m.Keys.Esc), key.Matches(keyMsg, m.Keys.Close):
		if m.Bubble.IsOpen() {
			m.CloseBubble()
		}
		return m, nil

	case key.Matches(keyMsg, m.Keys.Up):
		m.Map.PanBy(0, -panStepY)
	case key.Matches(keyMsg, m.Keys.Down):
		m.Map.PanBy(0, panStepY)
	case key.Matches(keyMsg, m.Keys.Left):
		m.Map.PanBy(-panStepX, 0)
	case key.Matches(keyMsg, m.Keys.Right):
		m.Map.PanBy(panStepX, 0)
	case key.Matches(keyMsg, m.Keys.ZoomIn):
		m.Map.SetZoom(m.Map.Zoom() + 1)
	case key.Matches(keyMsg, m.Keys.ZoomOut):
		m.Map.SetZoom(m.Map.Zoom() - 1)

	case key.Matches(keyMsg, m.Keys.Next):
		m.SelectNext(1)
	case key.Matches(keyMsg, m.Keys.Prev):
		m.SelectNext(-1)

	case key.Matches(keyMsg, m.Keys.Open):
		if m.SelectedMarker() == nil {
			m.SelectNext(1)
		}
		if m.Selected < 0 {
			return m, m.SetStatusMessage("no markers configured", model.StatusBarWarning, 0)
		}
		m.OpenMarkerAt(m.Selected)

	case key.Matches(keyMsg, m.Keys.Tab):
		i := int(keyMsg.Runes[0] - '1')
		if !m.ActivateTab(i) {
			return m, m.SetStatusMessage(fmt.Sprintf("no tab %d", i+1), model.StatusBarWarning, 0)
		}

	case key.Matches(keyMsg, m.Keys.Shadow):
		s := m.CycleShadowStyle()
		return m, m.SetStatusMessage("shadow: "+shadowStyleNames[s], model.StatusBarInfo, 0)

	case key.Matches(keyMsg, m.Keys.ArrowStyle):
		s := m.CycleArrowStyle()
		return m, m.SetStatusMessage("arrow: "+arrowStyleNames[s], model.StatusBarInfo, 0)

	case key.Matches(keyMsg, m.Keys.ArrowLeft):
		pos := m.NudgeArrow(-10)
		return m, m.SetStatusMessage(fmt.Sprintf("arrow position %d%%", pos), model.StatusBarInfo, 0)
	case key.Matches(keyMsg, m.Keys.ArrowRight):
		pos := m.NudgeArrow(10)
		return m, m.SetStatusMessage(fmt.Sprintf("arrow position %d%%", pos), model.StatusBarInfo, 0)

	case key.Matches(keyMsg, m.Keys.CloseButton):
		if m.ToggleCloseButton() {
			return m, m.SetStatusMessage("close button shown", model.StatusBarInfo, 0)
		}
		return m, m.SetStatusMessage("close button hidden", model.StatusBarInfo, 0)

	case key.Matches(keyMsg, m.Keys.Copy):
		text := m.BubbleText()
		if text == "" {
			return m, m.SetStatusMessage("bubble is empty", model.StatusBarWarning, 0)
		}
		return m, model.CopyToClipboardCmd(text)
	}
	return m, nil
}

func quit(m *model.Model) (*model.Model, tea.Cmd) {
	logging.Info(controllerDispatchSubsystem, "quitting")
	m.QuittingMessage = "Shutting down...\n"
	m.CurrentAppMode = model.ModeQuitting
	m.Shutdown()
	return m, tea.Quit
}
