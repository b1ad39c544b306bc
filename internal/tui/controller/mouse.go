package controller

import (
	tea "github.com/charmbracelet/bubbletea"

	"infobubble/internal/tui/design"
	"infobubble/internal/tui/model"
)

// handleMouseMsg routes presses to the footer buttons first and then to
// the map, whose cells start below the header.
func handleMouseMsg(m *model.Model, msg tea.MouseMsg) (*model.Model, tea.Cmd) {
	if m.CurrentAppMode == model.ModeLogOverlay {
		var cmd tea.Cmd
		m.LogViewport, cmd = m.LogViewport.Update(msg)
		return m, cmd
	}
	if m.CurrentAppMode != model.ModeMap {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Ctrl {
			m.Map.SetZoom(m.Map.Zoom() + 1)
		} else {
			m.Map.PanBy(0, -1)
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if msg.Ctrl {
			m.Map.SetZoom(m.Map.Zoom() - 1)
		} else {
			m.Map.PanBy(0, 1)
		}
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch {
	case m.Zones.Get(model.ZoneOpen).InBounds(msg):
		return handleKeyMsgGlobal(m, keyFor(m.Keys.Open.Keys()))
	case m.Zones.Get(model.ZoneClose).InBounds(msg):
		m.CloseBubble()
		return m, nil
	case m.Zones.Get(model.ZoneLog).InBounds(msg):
		return handleKeyMsgGlobal(m, keyFor(m.Keys.ToggleLog.Keys()))
	case m.Zones.Get(model.ZoneHelp).InBounds(msg):
		return handleKeyMsgGlobal(m, keyFor(m.Keys.Help.Keys()))
	case m.Zones.Get(model.ZoneQuit).InBounds(msg):
		return quit(m)
	}

	y := msg.Y - design.HeaderHeight
	if y < 0 || y >= m.Map.Viewport().Height {
		return m, nil
	}
	m.Map.Click(msg.X, y)
	return m, nil
}

// keyFor synthesizes the key press of a binding's first key.
func keyFor(keys []string) tea.KeyMsg {
	if len(keys) == 0 {
		return tea.KeyMsg{}
	}
	k := keys[0]
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
