package controller

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"infobubble/internal/tui/model"
	"infobubble/internal/tui/view"
	"infobubble/pkg/logging"
)

const controllerDispatchSubsystem = "ControllerDispatch"

// Update routes msg to its handler, then arms the clock for any host work
// the handler scheduled.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	m, cmd := mainControllerDispatch(m, msg)
	if m.CurrentAppMode == model.ModeQuitting {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.ArmClockCmd())
}

func mainControllerDispatch(m *model.Model, msg tea.Msg) (*model.Model, tea.Cmd) {
	switch msg.(type) {
	case tea.MouseMsg, model.NewLogEntryMsg, model.BusEventMsg, model.ClockTickMsg:
	default:
		if m.DebugMode {
			logging.Debug(controllerDispatchSubsystem, "received %T", msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.CurrentAppMode == model.ModeSearch {
			return handleKeyMsgInputMode(m, msg)
		}
		return handleKeyMsgGlobal(m, msg)

	case tea.MouseMsg:
		return handleMouseMsg(m, msg)

	case tea.WindowSizeMsg:
		return handleWindowSizeMsg(m, msg)

	case model.ClockTickMsg:
		m.AdvanceClock(msg)
		return m, nil

	case model.NewLogEntryMsg:
		m = handleNewLogEntry(m, msg)
		return m, model.ListenForLogEntriesCmd(m.LogChannel)

	case model.BusEventMsg:
		if m.DebugMode {
			logging.Debug("Events", "%s on %T", msg.Record.Name, msg.Record.Target)
		}
		return m, model.ListenForBusEventsCmd(m.EventTap)

	case model.ConfigReloadedMsg:
		m.ApplyConfig(msg.Config)
		return m, m.SetStatusMessage("configuration reloaded", model.StatusBarSuccess, 0)

	case model.ConfigErrorMsg:
		return m, m.SetStatusMessage(fmt.Sprintf("config reload failed: %v", msg.Err), model.StatusBarError, 0)

	case model.ClipboardResultMsg:
		if msg.Err != nil {
			logging.Error(controllerDispatchSubsystem, msg.Err, "copy failed")
			return m, m.SetStatusMessage("copy failed", model.StatusBarError, 0)
		}
		return m, m.SetStatusMessage(fmt.Sprintf("copied %d characters", msg.Chars), model.StatusBarSuccess, 0)

	case model.ClearStatusBarMsg:
		m.ClearStatus(msg)
		return m, nil
	}
	return m, nil
}

// handleNewLogEntry appends entries at info and above, and debug entries in
// debug mode.
func handleNewLogEntry(m *model.Model, msg model.NewLogEntryMsg) *model.Model {
	entry := msg.Entry
	if entry.Level >= logging.LevelInfo || m.DebugMode {
		model.AddRawLineToActivityLog(m, view.LogLine(entry.String(), entry.Level.String()))
		refreshLogViewport(m)
	}
	return m
}

func refreshLogViewport(m *model.Model) {
	if !m.ActivityLogDirty {
		return
	}
	atBottom := m.LogViewport.AtBottom()
	m.LogViewport.SetContent(strings.Join(m.ActivityLog, "\n"))
	if atBottom || m.CurrentAppMode != model.ModeLogOverlay {
		m.LogViewport.GotoBottom()
	}
	m.ActivityLogDirty = false
}
