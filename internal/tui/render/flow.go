package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"infobubble/internal/bubble"
)

const maxAltWidth = 24

// flow collects logical lines from inline runs and block boundaries.
type flow struct {
	r     *Renderer
	lines []string
	cur   strings.Builder
}

func (f *flow) text(s string) {
	f.cur.WriteString(s)
}

// breakLine ends the current line, even when it is empty.
func (f *flow) breakLine() {
	f.lines = append(f.lines, strings.TrimSpace(f.cur.String()))
	f.cur.Reset()
}

// block ends the current line unless there is nothing on it.
func (f *flow) block() {
	if strings.TrimSpace(f.cur.String()) == "" {
		f.cur.Reset()
		return
	}
	f.breakLine()
}

func (f *flow) node(n *Node) {
	switch n.kind {
	case bubble.KindText:
		f.run(n.text, n.style)
	case bubble.KindImage:
		f.text(f.r.inlineStyle(n.style | inlineFaint).Render(imageLabel(n)))
	case bubble.KindBlock:
		if n.tag == "br" {
			f.breakLine()
			return
		}
		f.block()
		switch n.tag {
		case "li":
			f.text("• ")
		case "hr":
			f.text(strings.Repeat("─", 3))
		}
		f.children(n)
		f.block()
	default:
		f.children(n)
	}
}

func (f *flow) run(text string, style inline) {
	st := f.r.inlineStyle(style)
	if style&inlinePre == 0 {
		f.text(render(st, text))
		return
	}
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			f.breakLine()
		}
		f.text(render(st, part))
	}
}

func (f *flow) children(n *Node) {
	for _, c := range n.children {
		f.node(c)
	}
}

// flow returns the logical lines of n's content wrapped at limit cells. A
// limit of 0 leaves lines unwrapped.
func (n *Node) flow(limit int) []string {
	f := &flow{r: n.r}
	if n.kind == bubble.KindText || n.kind == bubble.KindImage {
		f.node(n)
	} else {
		f.children(n)
	}
	f.block()

	if limit <= 0 {
		return f.lines
	}
	var out []string
	for _, line := range f.lines {
		out = append(out, strings.Split(ansi.Wrap(line, limit, ""), "\n")...)
	}
	return out
}

func (n *Node) flowSize(limit int) bubble.Size {
	lines := n.flow(limit)
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return bubble.Size{Width: w, Height: len(lines)}
}

func (r *Renderer) inlineStyle(style inline) lipgloss.Style {
	st := r.lg.NewStyle()
	if style&inlineBold != 0 {
		st = st.Bold(true)
	}
	if style&inlineItalic != 0 {
		st = st.Italic(true)
	}
	if style&inlineUnderline != 0 {
		st = st.Underline(true)
	}
	if style&inlineFaint != 0 {
		st = st.Faint(true)
	}
	if style&inlineStrike != 0 {
		st = st.Strikethrough(true)
	}
	return st
}

// render styles a run. Unstyled runs are passed through untouched so that
// lipgloss does not rewrite their tabs.
func render(st lipgloss.Style, s string) string {
	if s == "" || !hasStyle(st) {
		return s
	}
	return st.Render(s)
}

func hasStyle(st lipgloss.Style) bool {
	return st.GetBold() || st.GetItalic() || st.GetUnderline() || st.GetFaint() || st.GetStrikethrough()
}

func imageLabel(n *Node) string {
	alt := strings.TrimSpace(n.Get(bubble.PropAlt))
	if alt == "" {
		alt = "image"
	}
	return "[" + runewidth.Truncate(alt, maxAltWidth, "…") + "]"
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
