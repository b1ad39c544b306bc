package controller

import (
	tea "github.com/charmbracelet/bubbletea"

	"infobubble/internal/tui/model"
)

func handleWindowSizeMsg(m *model.Model, msg tea.WindowSizeMsg) (*model.Model, tea.Cmd) {
	m.Resize(msg.Width, msg.Height)
	refreshLogViewport(m)
	return m, nil
}
