package model

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"infobubble/internal/events"
	"infobubble/pkg/logging"
)

// ListenForLogEntriesCmd waits for the next log entry.
func ListenForLogEntriesCmd(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}

// ListenForBusEventsCmd waits for the next record on a bus tap.
func ListenForBusEventsCmd(sub *events.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		rec, ok := <-sub.Channel
		if !ok {
			return nil
		}
		return BusEventMsg{Record: rec}
	}
}

// ArmClockCmd schedules a tick for the earliest pending host task. It
// returns nil when nothing is pending or an earlier tick is already armed.
func (m *Model) ArmClockCmd() tea.Cmd {
	clock := m.Host.Clock()
	d, ok := clock.Next()
	if !ok {
		return nil
	}
	due := clock.Now() + d
	if m.clockArmed && m.armedDue <= due {
		return nil
	}
	m.clockArmed = true
	m.armedDue = due
	return tea.Tick(max(d, 0), func(time.Time) tea.Msg {
		return ClockTickMsg{Due: due}
	})
}

// AdvanceClock runs the host tasks due by msg.Due.
func (m *Model) AdvanceClock(msg ClockTickMsg) int {
	if m.armedDue == msg.Due {
		m.clockArmed = false
	}
	clock := m.Host.Clock()
	return clock.Advance(msg.Due - clock.Now())
}

// SetStatusMessage shows msg in the status bar for ttl.
func (m *Model) SetStatusMessage(msg string, msgType MessageType, ttl time.Duration) tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	m.StatusBarMessage = msg
	m.StatusBarMessageType = msgType
	if ttl <= 0 {
		ttl = defaultStatusTTL
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return ClearStatusBarMsg{Seq: seq}
	})
}

// ClearStatus drops the status message unless a newer one replaced it.
func (m *Model) ClearStatus(msg ClearStatusBarMsg) {
	if msg.Seq == m.statusSeq {
		m.StatusBarMessage = ""
	}
}

// CopyToClipboardCmd writes text to the system clipboard.
func CopyToClipboardCmd(text string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(text)
		return ClipboardResultMsg{Chars: len([]rune(text)), Err: err}
	}
}
