package controller

import (
	tea "github.com/charmbracelet/bubbletea"

	"infobubble/internal/tui/model"
)

// handleKeyMsgInputMode drives the marker search input.
func handleKeyMsgInputMode(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch keyMsg.Type {
	case tea.KeyEsc:
		leaveSearch(m)
		return m, nil
	case tea.KeyCtrlC:
		return quit(m)
	case tea.KeyEnter:
		i := m.SearchSelection()
		leaveSearch(m)
		if i < 0 {
			return m, m.SetStatusMessage("no matching marker", model.StatusBarWarning, 0)
		}
		m.Selected = i
		if pos, ok := m.Markers[i].Pin.Position(); ok {
			m.Map.PanTo(pos)
		}
		m.OpenMarkerAt(i)
		return m, nil
	case tea.KeyUp, tea.KeyCtrlP:
		m.MoveSearchCursor(-1)
		return m, nil
	case tea.KeyDown, tea.KeyCtrlN:
		m.MoveSearchCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(keyMsg)
	m.UpdateSearch()
	return m, cmd
}

func leaveSearch(m *model.Model) {
	m.SearchInput.Blur()
	m.CurrentAppMode = model.ModeMap
}
