package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const renderConfig = `
bubble:
  shadowStyle: 0
  disableAnimation: true
map:
  width: 50
  height: 20
markers:
  - name: office
    content: "hi"
  - name: depot
    lng: 4
    tabs:
      - label: One
        content: first
      - label: Two
        content: second
`

func writeRenderConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.yaml")
	require.NoError(t, os.WriteFile(path, []byte(renderConfig), 0o644))
	return path
}

func TestRunRender(t *testing.T) {
	var out bytes.Buffer

	err := runRender(&out, renderOptions{configPath: writeRenderConfig(t)})
	require.NoError(t, err)

	rows := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Len(t, rows, 20)
	assert.Contains(t, out.String(), "│ hi │")
}

func TestRunRender_DebugDumpsGeometry(t *testing.T) {
	var out bytes.Buffer

	err := runRender(&out, renderOptions{
		configPath: writeRenderConfig(t),
		marker:     "depot",
		tab:        1,
		debug:      true,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "second")
	assert.Contains(t, out.String(), "marker: depot")
	assert.Contains(t, out.String(), "geometry: bubble.Geometry{")
	assert.Contains(t, out.String(), "TabHeight:")
}

func TestRunRender_Errors(t *testing.T) {
	var out bytes.Buffer

	err := runRender(&out, renderOptions{configPath: writeRenderConfig(t), marker: "moon"})
	assert.EqualError(t, err, `marker "moon" not found`)

	err = runRender(&out, renderOptions{configPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorContains(t, err, "failed to load configuration")
}
