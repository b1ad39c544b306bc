// Package design holds the palette and base styles of the demo chrome.
// The map and the bubble draw through the terminal renderer instead.
package design

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout of the demo screen, in cells.
const (
	Gap = 1

	MinPanelHeight = 5
	MinPanelWidth  = 20

	// Rows taken by the header and the footer around the map.
	HeaderHeight = 1
	FooterHeight = 2
)

// Palette. Each color has a light and a dark terminal variant.
var (
	Accent    = lipgloss.AdaptiveColor{Light: "#0B6E99", Dark: "#4FB3D9"}
	Ink       = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#E6EDF3"}
	InkMuted  = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#6E7681"}
	InkSoft   = lipgloss.AdaptiveColor{Light: "#57606A", Dark: "#8B949E"}
	Paper     = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0D1117"}
	PaperAlt  = lipgloss.AdaptiveColor{Light: "#EAEEF2", Dark: "#21262D"}
	Rule      = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#30363D"}
	RuleFocus = Accent

	OK      = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	Bad     = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}
	Caution = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}
	Note    = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}
)

// Chrome.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Ink).
			Background(PaperAlt).
			Padding(0, Gap)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Rule).
			Foreground(Ink).
			Padding(0, Gap)

	PanelFocusedStyle = PanelStyle.BorderForeground(RuleFocus)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Ink)
	DimStyle   = lipgloss.NewStyle().Foreground(InkMuted)

	ListItemStyle         = lipgloss.NewStyle().PaddingLeft(Gap)
	ListItemSelectedStyle = ListItemStyle.Foreground(Accent).Bold(true)

	ButtonStyle = lipgloss.NewStyle().
			Padding(0, Gap).
			Background(Accent).
			Foreground(Paper).
			Bold(true)
	ButtonSecondaryStyle = ButtonStyle.
				Background(PaperAlt).
				Foreground(Ink).
				Bold(false)
)

// Status bar, one style per message type.
var (
	StatusBarStyle        = lipgloss.NewStyle().Foreground(InkSoft).Padding(0, Gap)
	StatusBarSuccessStyle = StatusBarStyle.Foreground(OK)
	StatusBarErrorStyle   = StatusBarStyle.Foreground(Bad)
	StatusBarWarningStyle = StatusBarStyle.Foreground(Caution)
	StatusBarInfoStyle    = StatusBarStyle.Foreground(Note)
)

// Activity log lines by level.
var (
	LogInfoStyle  = lipgloss.NewStyle().Foreground(Ink)
	LogWarnStyle  = lipgloss.NewStyle().Foreground(Caution)
	LogErrorStyle = lipgloss.NewStyle().Foreground(Bad)
	LogDebugStyle = lipgloss.NewStyle().Foreground(InkMuted).Italic(true)
)
