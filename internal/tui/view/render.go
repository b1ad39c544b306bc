package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"infobubble/internal/tui/components"
	"infobubble/internal/tui/design"
	"infobubble/internal/tui/model"
	"infobubble/internal/tui/render"
)

// Render draws the whole screen for m.
func Render(m *model.Model) string {
	if m.CurrentAppMode == model.ModeQuitting {
		return m.QuittingMessage
	}
	if m.Width == 0 || m.Height == 0 {
		return "Initializing..."
	}

	mapH := max(m.Height-design.HeaderHeight-design.FooterHeight, 0)
	var rows []string
	if mapH > 0 {
		rows = strings.Split(m.Map.View(), "\n")
	}

	if panel := renderOverlay(m, mapH); panel != "" {
		rows = overlayCentered(rows, panel, m.Width)
	}

	out := lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m),
		strings.Join(rows, "\n"),
		renderStatusBar(m),
		renderButtons(m),
	)
	return m.Zones.Scan(out)
}

func renderHeader(m *model.Model) string {
	c := m.Map.Center()
	parts := []string{
		"infobubble",
		fmt.Sprintf("center %.2f,%.2f", c.Lat, c.Lng),
		fmt.Sprintf("zoom %d", m.Map.Zoom()),
	}
	if mk := m.SelectedMarker(); mk != nil {
		parts = append(parts, "▸ "+mk.Def.Name)
	}
	line := strings.Join(parts, "  ")
	return design.HeaderStyle.
		Width(m.Width).
		MaxWidth(m.Width).
		Render(ansi.Truncate(line, max(m.Width-2, 0), "…"))
}

func renderStatusBar(m *model.Model) string {
	left := fmt.Sprintf("%d markers", len(m.Markers))
	if m.OpenMarker >= 0 && m.OpenMarker < len(m.Markers) {
		left += " · open: " + m.Markers[m.OpenMarker].Def.Name
		if tabs := m.Bubble.Tabs(); len(tabs) > 0 {
			left += fmt.Sprintf(" (tab %d/%d)", m.Bubble.ActiveTab()+1, len(tabs))
		}
	}
	right := ""
	if m.DebugMode {
		right = fmt.Sprintf("pending %d · mode %s", m.Host.Clock().Pending(), m.CurrentAppMode)
	}
	return components.NewStatusBar(m.Width).
		WithLeftText(left).
		WithRightText(right).
		WithMessage(m.StatusBarMessage, m.StatusBarMessageType).
		Render()
}

func renderButtons(m *model.Model) string {
	button := func(id, label string, primary bool) string {
		st := design.ButtonSecondaryStyle
		if primary {
			st = design.ButtonStyle
		}
		return m.Zones.Mark(id, st.Render(label))
	}
	open := m.Bubble.IsOpen()
	line := strings.Join([]string{
		button(model.ZoneOpen, "Open", !open),
		button(model.ZoneClose, "Close", open),
		button(model.ZoneLog, "Log", m.CurrentAppMode == model.ModeLogOverlay),
		button(model.ZoneHelp, "Help", m.CurrentAppMode == model.ModeHelpOverlay),
		button(model.ZoneQuit, "Quit", false),
	}, " ")
	return lipgloss.NewStyle().MaxWidth(m.Width).Render(line)
}

func renderOverlay(m *model.Model, mapH int) string {
	switch m.CurrentAppMode {
	case model.ModeHelpOverlay:
		return renderHelpOverlay(m, mapH)
	case model.ModeLogOverlay:
		return renderLogOverlay(m, mapH)
	case model.ModeSearch:
		return renderSearchOverlay(m, mapH)
	}
	return ""
}

// overlayCentered stamps panel over the middle of rows.
func overlayCentered(rows []string, panel string, width int) []string {
	lines := strings.Split(panel, "\n")
	top := max((len(rows)-len(lines))/2, 0)
	left := max((width-lipgloss.Width(panel))/2, 0)
	for i, line := range lines {
		y := top + i
		if y >= len(rows) {
			break
		}
		rows[y] = render.Overlay(rows[y], line, left)
	}
	return rows
}
