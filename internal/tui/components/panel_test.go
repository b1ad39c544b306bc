package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"infobubble/internal/tui/design"
	"infobubble/internal/tui/model"
)

func TestPanel_Render_EdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		title   string
		content string
	}{
		{
			name:    "zero dimensions",
			title:   "Test Panel",
			content: "This is test content",
		},
		{
			name:    "negative dimensions",
			width:   -10,
			height:  -5,
			title:   "Test Panel",
			content: "This is test content",
		},
		{
			name:   "empty content",
			width:  40,
			height: 10,
			title:  "Test Panel",
		},
		{
			name:    "very long content",
			width:   20,
			height:  5,
			title:   "Test Panel",
			content: strings.Repeat("This is a very long line that should be truncated. ", 10),
		},
		{
			name:    "multiline content exceeding height",
			width:   30,
			height:  6,
			title:   "Log",
			content: "Line 1\nLine 2\nLine 3\nLine 4\nLine 5\nLine 6\nLine 7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewPanel(tt.title).
				WithContent(tt.content).
				WithDimensions(tt.width, tt.height).
				Render()

			wantW := max(tt.width, design.MinPanelWidth)
			wantH := max(tt.height, design.MinPanelHeight)
			assert.Equal(t, wantW, lipgloss.Width(out))
			assert.Equal(t, wantH, lipgloss.Height(out))
		})
	}
}

func TestPanel_Render_ElidesOverflow(t *testing.T) {
	out := NewPanel("Log").
		WithContent("Line 1\nLine 2\nLine 3\nLine 4\nLine 5").
		WithDimensions(30, 5).
		Render()

	assert.Contains(t, out, "Line 1")
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, "Line 5")
}

func TestStatusBar_Render(t *testing.T) {
	bar := NewStatusBar(40).WithLeftText("3 markers").WithRightText("zoom 2")
	out := bar.Render()
	assert.Equal(t, 40, lipgloss.Width(out))
	assert.Contains(t, out, "3 markers")
	assert.Contains(t, out, "zoom 2")

	out = bar.WithMessage("copied 12 characters", model.StatusBarSuccess).Render()
	assert.Contains(t, out, "copied 12 characters")
	assert.NotContains(t, out, "3 markers")
	assert.Equal(t, 40, lipgloss.Width(out))
}

func TestPanel_ToneKeepsSize(t *testing.T) {
	for _, tone := range []Tone{ToneNeutral, ToneOK, ToneBad, ToneCaution, ToneNote} {
		out := NewPanel("Status").WithContent("ready").WithDimensions(24, 6).WithTone(tone).Render()
		assert.Equal(t, 24, lipgloss.Width(out))
		assert.Equal(t, 6, lipgloss.Height(out))
		assert.Contains(t, out, "ready")
	}
}
