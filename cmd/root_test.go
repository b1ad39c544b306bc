package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execRoot runs the root command with args and restores its streams.
func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		logLevel = "warn"
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Definition(t *testing.T) {
	assert.Equal(t, "infobubble", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.True(t, rootCmd.SilenceUsage)

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"version", "self-update", "demo", "render", "serve", "call"} {
		assert.Contains(t, names, want)
	}
}

func TestSetVersion(t *testing.T) {
	saved := rootCmd.Version
	t.Cleanup(func() { rootCmd.Version = saved })

	SetVersion("1.2.3-test")
	assert.Equal(t, "1.2.3-test", rootCmd.Version)
}

func TestRootCmd_Help(t *testing.T) {
	out, err := execRoot(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "terminal map")
	assert.Contains(t, out, "--log-level")
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	_, err := execRoot(t, "--log-level", "loud", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log level "loud"`)
}
