package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"infobubble/internal/tui/design"
)

// Tone tints a panel border.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneOK
	ToneBad
	ToneCaution
	ToneNote
)

func (t Tone) color() (lipgloss.TerminalColor, bool) {
	switch t {
	case ToneOK:
		return design.OK, true
	case ToneBad:
		return design.Bad, true
	case ToneCaution:
		return design.Caution, true
	case ToneNote:
		return design.Note, true
	}
	return nil, false
}

// Panel is the titled box the overlays float over the map. Render always
// returns exactly Width x Height cells, clamped to the design minimums.
type Panel struct {
	Title   string
	Body    string
	Width   int
	Height  int
	Focused bool
	Tone    Tone
}

func NewPanel(title string) *Panel {
	return &Panel{Title: title, Width: design.MinPanelWidth, Height: design.MinPanelHeight}
}

func (p *Panel) WithContent(body string) *Panel {
	p.Body = body
	return p
}

func (p *Panel) WithDimensions(width, height int) *Panel {
	p.Width, p.Height = width, height
	return p
}

func (p *Panel) WithTone(tone Tone) *Panel {
	p.Tone = tone
	return p
}

func (p *Panel) SetFocused(focused bool) *Panel {
	p.Focused = focused
	return p
}

func (p *Panel) Render() string {
	st := design.PanelStyle
	if p.Focused {
		st = design.PanelFocusedStyle
	}
	if c, ok := p.Tone.color(); ok {
		st = st.BorderForeground(c)
	}

	w := max(p.Width, design.MinPanelWidth) - st.GetHorizontalFrameSize()
	h := max(p.Height, design.MinPanelHeight) - st.GetVerticalFrameSize()
	w, h = max(w, 1), max(h, 1)

	rows := make([]string, 0, h)
	if p.Title != "" {
		rows = append(rows, clip(design.TitleStyle.Render(p.Title), w))
	}
	if p.Body != "" {
		room := h - len(rows)
		body := strings.Split(p.Body, "\n")
		if room > 0 && len(body) > room {
			body = append(body[:room-1], "...")
		}
		for i := 0; i < len(body) && len(rows) < h; i++ {
			rows = append(rows, clip(body[i], w))
		}
	}
	for len(rows) < h {
		rows = append(rows, "")
	}

	return st.Width(w + st.GetHorizontalPadding()).Height(h).Render(strings.Join(rows, "\n"))
}

func clip(s string, width int) string {
	if lipgloss.Width(s) > width {
		return ansi.Truncate(s, width, "…")
	}
	return s
}
