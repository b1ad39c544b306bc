package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"infobubble/internal/tui/design"
	"infobubble/internal/tui/model"
)

// StatusBar is the one-line summary under the map. A transient message,
// when set, takes the place of Left.
type StatusBar struct {
	Width int
	Left  string
	Right string

	message string
	kind    model.MessageType
}

func NewStatusBar(width int) *StatusBar {
	return &StatusBar{Width: width}
}

func (s *StatusBar) WithMessage(message string, kind model.MessageType) *StatusBar {
	s.message, s.kind = message, kind
	return s
}

func (s *StatusBar) WithLeftText(text string) *StatusBar {
	s.Left = text
	return s
}

func (s *StatusBar) WithRightText(text string) *StatusBar {
	s.Right = text
	return s
}

func (s *StatusBar) Render() string {
	st := design.StatusBarStyle
	left := s.Left
	if s.message != "" {
		left = s.message
		switch s.kind {
		case model.StatusBarSuccess:
			st = design.StatusBarSuccessStyle
		case model.StatusBarError:
			st = design.StatusBarErrorStyle
		case model.StatusBarWarning:
			st = design.StatusBarWarningStyle
		default:
			st = design.StatusBarInfoStyle
		}
	}

	room := max(s.Width-st.GetHorizontalPadding(), 0)
	line := left
	if pad := room - lipgloss.Width(left) - lipgloss.Width(s.Right); s.Right != "" && pad > 0 {
		line += strings.Repeat(" ", pad) + s.Right
	}
	return st.Width(s.Width).MaxWidth(s.Width).Render(ansi.Truncate(line, room, "…"))
}
