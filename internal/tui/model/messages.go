package model

import (
	"time"

	"infobubble/internal/config"
	"infobubble/internal/events"
	"infobubble/pkg/logging"
)

// NewLogEntryMsg carries one entry from the logging channel.
type NewLogEntryMsg struct {
	Entry logging.LogEntry
}

// BusEventMsg carries an event seen by the model's bus tap.
type BusEventMsg struct {
	Record events.Record
}

// ClockTickMsg advances the host clock to Due.
type ClockTickMsg struct {
	Due time.Duration
}

// ConfigReloadedMsg is sent by the config watcher.
type ConfigReloadedMsg struct {
	Config config.Config
}

// ConfigErrorMsg reports a failed reload.
type ConfigErrorMsg struct {
	Err error
}

// ClearStatusBarMsg clears the status message it was scheduled for.
type ClearStatusBarMsg struct {
	Seq int
}

// ClipboardResultMsg reports the outcome of a copy.
type ClipboardResultMsg struct {
	Chars int
	Err   error
}
