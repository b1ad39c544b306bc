package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"infobubble/internal/tui/components"
	"infobubble/internal/tui/design"
	"infobubble/internal/tui/model"
)

func renderHelpOverlay(m *model.Model, mapH int) string {
	content := m.Help.View(m.Keys)
	w := min(lipgloss.Width(content)+4, m.Width)
	h := min(lipgloss.Height(content)+3, mapH)
	return components.NewPanel("Keys").
		WithContent(content).
		WithDimensions(w, h).
		SetFocused(true).
		Render()
}

func renderLogOverlay(m *model.Model, mapH int) string {
	content := m.LogViewport.View()
	if len(m.ActivityLog) == 0 {
		content = design.DimStyle.Render("no log entries yet")
	}
	return components.NewPanel("Activity log").
		WithContent(content).
		WithDimensions(m.LogViewport.Width+4, min(m.LogViewport.Height+3, mapH)).
		WithTone(components.ToneNote).
		Render()
}

func renderSearchOverlay(m *model.Model, mapH int) string {
	var b strings.Builder
	b.WriteString(m.SearchInput.View())
	b.WriteString("\n")
	if len(m.SearchMatches) == 0 {
		b.WriteString(design.DimStyle.Render("no matching markers"))
	}
	for i, match := range m.SearchMatches {
		style := design.ListItemStyle
		if i == m.SearchCursor {
			style = design.ListItemSelectedStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(highlight(match.Str, match.MatchedIndexes)))
	}
	return components.NewPanel("Find marker").
		WithContent(b.String()).
		WithDimensions(min(44, m.Width), min(len(m.SearchMatches)+5, mapH)).
		SetFocused(true).
		Render()
}

// highlight underlines the runes of s at the matched byte offsets.
func highlight(s string, matched []int) string {
	if len(matched) == 0 {
		return s
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	mark := lipgloss.NewStyle().Underline(true)
	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(mark.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LogLine styles a log entry for the activity log by level.
func LogLine(line string, level string) string {
	switch level {
	case "DEBUG":
		return design.LogDebugStyle.Render(line)
	case "WARN":
		return design.LogWarnStyle.Render(line)
	case "ERROR":
		return design.LogErrorStyle.Render(line)
	default:
		return design.LogInfoStyle.Render(line)
	}
}
