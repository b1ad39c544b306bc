// Package logging routes subsystem-tagged log lines either to a slog text
// handler (CLI commands) or to a channel the TUI drains into its activity log.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// SlogLevel maps l onto the slog scale; unknown values count as info.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ParseLevel reads a --log-level value. Empty means info.
func ParseLevel(s string) (LogLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "", "info":
		return LevelInfo, nil
	case "warning":
		return LevelWarn, nil
	}
	for i, n := range levelNames {
		if strings.ToLower(n) == name {
			return LogLevel(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// LogEntry is one line handed to the TUI.
type LogEntry struct {
	Timestamp time.Time
	Level     LogLevel
	Subsystem string
	Message   string
	Err       error
}

func (e LogEntry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s [%s] %s", e.Timestamp.Format("15:04:05"), e.Level, e.Subsystem, e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

const tuiChannelBufferSize = 2048

// sink is the process-wide destination. ch is non-nil only in TUI mode.
type sink struct {
	sync.RWMutex
	cli     *slog.Logger
	ch      chan LogEntry
	chLevel LogLevel
}

var (
	out     = &sink{cli: newTextLogger(os.Stderr, LevelWarn)}
	dropped atomic.Int64
)

func newTextLogger(w io.Writer, level LogLevel) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.SlogLevel()}))
}

// InitForTUI diverts entries at or above level to the returned channel.
func InitForTUI(level LogLevel) <-chan LogEntry {
	out.Lock()
	defer out.Unlock()
	out.ch = make(chan LogEntry, tuiChannelBufferSize)
	out.chLevel = level
	return out.ch
}

// InitForCLI writes entries at or above level to w.
func InitForCLI(level LogLevel, w io.Writer) {
	out.Lock()
	defer out.Unlock()
	out.ch = nil
	out.cli = newTextLogger(w, level)
}

// CloseTUIChannel closes the TUI channel. Later entries go to the CLI
// logger again.
func CloseTUIChannel() {
	out.Lock()
	defer out.Unlock()
	if out.ch != nil {
		close(out.ch)
		out.ch = nil
	}
}

// Dropped counts TUI entries discarded on a full channel.
func Dropped() int64 {
	return dropped.Load()
}

func emit(level LogLevel, subsystem string, err error, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	out.RLock()
	defer out.RUnlock()

	if out.ch == nil {
		attrs := make([]slog.Attr, 0, 2)
		attrs = append(attrs, slog.String("subsystem", subsystem))
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		out.cli.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
		return
	}
	if level < out.chLevel {
		return
	}
	// Never block the caller on the UI loop.
	select {
	case out.ch <- LogEntry{Timestamp: time.Now(), Level: level, Subsystem: subsystem, Message: msg, Err: err}:
	default:
		dropped.Add(1)
	}
}

func Debug(subsystem, format string, args ...interface{}) {
	emit(LevelDebug, subsystem, nil, format, args)
}

func Info(subsystem, format string, args ...interface{}) {
	emit(LevelInfo, subsystem, nil, format, args)
}

func Warn(subsystem, format string, args ...interface{}) {
	emit(LevelWarn, subsystem, nil, format, args)
}

func Error(subsystem string, err error, format string, args ...interface{}) {
	emit(LevelError, subsystem, err, format, args)
}
