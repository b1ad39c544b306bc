package logging

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: "warning", want: LevelWarn},
		{in: " error ", want: LevelError},
		{in: "loud", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			assert.NoError(t, err, tt.in)
		}
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestInitForCLI_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	Debug("Test", "hidden %d", 1)
	Info("Test", "shown %d", 2)
	Error("Test", errors.New("boom"), "failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "subsystem=Test")
	assert.Contains(t, out, "error=boom")
}

func TestInitForTUI_DeliversEntries(t *testing.T) {
	ch := InitForTUI(LevelInfo)
	defer CloseTUIChannel()

	Debug("Map", "too quiet")
	Warn("Map", "panned %s", "north")

	select {
	case entry := <-ch:
		assert.Equal(t, LevelWarn, entry.Level)
		assert.Equal(t, "Map", entry.Subsystem)
		assert.Equal(t, "panned north", entry.Message)
		assert.Contains(t, entry.String(), "WARN  [Map] panned north")
	case <-time.After(time.Second):
		require.Fail(t, "no entry delivered")
	}

	select {
	case entry := <-ch:
		t.Fatalf("unexpected entry %v", entry)
	default:
	}
}

func TestInitForTUI_FullChannelDrops(t *testing.T) {
	InitForTUI(LevelDebug)
	defer CloseTUIChannel()
	before := Dropped()

	for i := 0; i < tuiChannelBufferSize+5; i++ {
		Info("Flood", "entry %d", i)
	}

	assert.Equal(t, before+5, Dropped())
}

func TestLogEntry_StringIncludesError(t *testing.T) {
	e := LogEntry{
		Timestamp: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Level:     LevelError,
		Subsystem: "Config",
		Message:   "reload failed",
		Err:       errors.New("bad yaml"),
	}

	assert.Equal(t, "09:30:00 ERROR [Config] reload failed: bad yaml", e.String())
}
