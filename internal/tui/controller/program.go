package controller

import (
	tea "github.com/charmbracelet/bubbletea"

	"infobubble/internal/config"
	"infobubble/internal/tui/model"
	"infobubble/pkg/logging"
)

// NewProgram creates the interactive demo program.
func NewProgram(
	cfg config.Config,
	configPath string,
	debugMode bool,
	logChannel <-chan logging.LogEntry,
) (*tea.Program, *model.Model, error) {
	m, err := model.InitializeModel(cfg, configPath, debugMode, logChannel)
	if err != nil {
		return nil, nil, err
	}

	app := NewAppModel(m)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	return p, m, nil
}
