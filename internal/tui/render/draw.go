package render

import (
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"

	"infobubble/internal/bubble"
)

const closeGlyph = "✕"

// Block is a drawn element. The first Offsets[i] columns of row i are
// transparent and Lines[i] starts after them.
type Block struct {
	Lines   []string
	Offsets []int
}

func (b *Block) add(line string, offset int) {
	b.Lines = append(b.Lines, line)
	b.Offsets = append(b.Offsets, offset)
}

func (b Block) Height() int {
	return len(b.Lines)
}

// Width is the extent of the widest row, transparent columns included.
func (b Block) Width() int {
	w := 0
	for i, l := range b.Lines {
		w = max(w, b.Offsets[i]+ansi.StringWidth(l))
	}
	return w
}

// String renders the block with transparent cells as spaces.
func (b Block) String() string {
	rows := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		rows[i] = strings.Repeat(" ", b.Offsets[i]) + l
	}
	return strings.Join(rows, "\n")
}

// Draw renders el. Hidden elements draw as an empty block.
func (r *Renderer) Draw(el bubble.Element) Block {
	n, ok := el.(*Node)
	if !ok || n.hidden() {
		return Block{}
	}
	switch n.kind {
	case bubble.KindBubble:
		return r.drawBubble(n)
	case bubble.KindShadow:
		return r.drawShadow(n)
	case bubble.KindContainer:
		var b Block
		for _, l := range r.drawContainer(n) {
			b.add(l, 0)
		}
		return b
	}
	var b Block
	for _, l := range n.flow(0) {
		b.add(l, 0)
	}
	return b
}

func (r *Renderer) drawBubble(n *Node) Block {
	var out Block
	y := 0

	if strip := n.child(bubble.KindTabStrip); strip != nil && !strip.hidden() {
		strip.box = bubble.Rect{}
		if tabs := strip.visibleChildren(bubble.KindTab); len(tabs) > 0 {
			pl := strip.px(bubble.PropPaddingLeft)
			drawn := make([]string, len(tabs))
			for i, t := range tabs {
				drawn[i] = r.drawTab(t)
			}
			lines := strings.Split(lipgloss.JoinHorizontal(lipgloss.Bottom, drawn...), "\n")
			x := pl
			for i, t := range tabs {
				w, h := lipgloss.Width(drawn[i]), lipgloss.Height(drawn[i])
				t.box = bubble.Rect{Top: len(lines) - h, Left: x, Width: w, Height: h}
				x += w
			}
			strip.box = bubble.Rect{Left: pl, Width: x - pl, Height: len(lines)}
			for _, l := range lines {
				out.add(l, pl)
			}
			y = len(lines)
		}
	}

	c := n.child(bubble.KindContainer)
	width := 0
	if c != nil && !c.hidden() {
		lines := r.drawContainer(c)
		for _, l := range lines {
			out.add(l, 0)
		}
		width = c.outer().Width
		c.box = bubble.Rect{Top: y, Width: width, Height: len(lines)}
		if content := c.child(bubble.KindContent); content != nil {
			content.box = c.box
		}
		y += len(lines)
		r.loadImages(c)
	}

	if a := n.child(bubble.KindArrow); a != nil && !a.hidden() && width > 0 {
		a.box = bubble.Rect{Top: y, Width: width, Height: a.px(bubble.PropHeight)}
		r.drawArrow(&out, a, width)
	}

	n.box = bubble.Rect{Width: max(out.Width(), n.bubbleSize().Width), Height: out.Height()}

	if cl := n.child(bubble.KindClose); cl != nil {
		cl.box = bubble.Rect{}
		if !cl.hidden() {
			r.drawClose(&out, cl, n.box.Width)
		}
	}
	return out
}

func (r *Renderer) drawTab(t *Node) string {
	bg := t.Get(bubble.PropBackgroundColor)
	st := r.surface(bg).Padding(
		t.px(bubble.PropPaddingTop),
		t.px(bubble.PropPaddingRight),
		t.px(bubble.PropPaddingBottom),
		t.px(bubble.PropPaddingLeft),
	)
	if cells(t.px(bubble.PropBorderWidth)) > 0 {
		bottom := true
		if t.has(bubble.PropBorderBottomWidth) {
			bottom = t.px(bubble.PropBorderBottomWidth) > 0
		}
		st = st.Border(borderFor(t), true, true, bottom, true).
			BorderForeground(color(t.Get(bubble.PropBorderColor))).
			BorderBackground(color(bg))
	}
	st = r.applyClasses(st, t)
	return st.Render(joinLines(t.flow(0)))
}

func (r *Renderer) drawContainer(c *Node) []string {
	inner := c.inner()
	pad := c.px(bubble.PropPadding)
	bg := c.Get(bubble.PropBackgroundColor)

	vp := viewport.New(inner.Width, inner.Height)
	vp.SetContent(joinLines(c.flow(inner.Width)))
	vp.SetYOffset(c.scroll)
	body := vp.View()

	st := r.surface(bg).Padding(pad)
	edge := cells(c.px(bubble.PropBorderWidth))
	if edge > 0 {
		st = st.Border(borderFor(c)).
			BorderForeground(color(c.Get(bubble.PropBorderColor))).
			BorderBackground(color(bg))
	}
	st = r.applyClasses(st, c)

	lines := strings.Split(st.Render(body), "\n")
	// An empty body still renders as one blank row.
	if inner.Height == 0 {
		if i := edge + pad; i < len(lines) {
			lines = slices.Delete(lines, i, i+1)
		}
	}
	return lines
}

func (r *Renderer) drawArrow(out *Block, a *Node, width int) {
	rows := a.px(bubble.PropHeight)
	// Rounds halves down, matching the rounding of the bubble's left edge
	// so the tip lands on the anchor column.
	tip := int(math.Ceil(float64(width)*float64(a.px(bubble.PropLeft))/100 - 0.5))
	tip = min(max(tip, 0), width-1)
	style := a.px(bubble.PropArrowStyle)

	edge := r.lg.NewStyle().Foreground(color(a.Get(bubble.PropBorderColor)))
	fill := r.surface(a.Get(bubble.PropBackgroundColor))

	for i := 0; i < rows; i++ {
		half := rows - 1 - i
		left, right := tip-half, tip+half
		leftEdge, rightEdge := `\`, "/"
		switch style {
		case 1:
			left, leftEdge = tip, "│"
		case 2:
			right, rightEdge = tip, "│"
		}
		left, right = max(left, 0), min(right, width-1)

		if left >= right {
			out.add(edge.Render("▼"), left)
			continue
		}
		row := edge.Render(leftEdge) + fill.Render(strings.Repeat(" ", right-left-1)) + edge.Render(rightEdge)
		out.add(row, left)
	}
}

// drawClose puts the close glyph over the bubble. Offsets measure from the
// top right corner and include a two cell inset that the terminal drops.
func (r *Renderer) drawClose(out *Block, cl *Node, width int) {
	glyph := closeLabel(cl)
	gw := ansi.StringWidth(glyph)
	row := max(cl.px(bubble.PropTop)-2, 0)
	col := max(width-max(cl.px(bubble.PropRight)-2, 0)-gw, 0)
	if row >= out.Height() {
		return
	}

	st := r.applyClasses(r.lg.NewStyle().Bold(true), cl)
	line := strings.Repeat(" ", out.Offsets[row]) + out.Lines[row]
	out.Lines[row] = Overlay(line, st.Render(glyph), col)
	out.Offsets[row] = 0
	cl.box = bubble.Rect{Top: row, Left: col, Width: gw, Height: 1}
}

func (r *Renderer) drawShadow(n *Node) Block {
	w, h := n.px(bubble.PropWidth), n.px(bubble.PropHeight)
	look := n.Get(bubble.PropShadow)
	if w <= 0 || h <= 0 || look == bubble.ShadowNone {
		return Block{}
	}

	var b Block
	st := r.lg.NewStyle().Faint(true)
	switch look {
	case bubble.ShadowSoft:
		for i := 0; i < h; i++ {
			b.add(st.Render(strings.Repeat("▒", w)), 0)
		}
	default:
		// Drop one row and one column so the shadow peeks out from under
		// the bubble.
		b.add("", 0)
		for i := 0; i < h; i++ {
			b.add(st.Render(strings.Repeat("░", w)), 1)
		}
	}
	n.box = bubble.Rect{Width: b.Width(), Height: b.Height()}
	return b
}

func (r *Renderer) loadImages(n *Node) {
	n.walk(func(c *Node) {
		if c.kind != bubble.KindImage || c.loaded {
			return
		}
		c.loaded = true
		if r.onImage != nil {
			r.onImage(c)
		}
	})
}

// HitTest returns the elements under the cell at x, y of a drawn bubble,
// innermost first. x and y are relative to the bubble's top left.
func (r *Renderer) HitTest(el bubble.Element, x, y int) []bubble.Element {
	n, ok := el.(*Node)
	if !ok || n.hidden() || !inside(n.box, x, y) {
		return nil
	}
	if cl := n.child(bubble.KindClose); cl != nil && !cl.hidden() && inside(cl.box, x, y) {
		return []bubble.Element{cl, n}
	}
	if strip := n.child(bubble.KindTabStrip); strip != nil && !strip.hidden() {
		for _, t := range strip.visibleChildren(bubble.KindTab) {
			if inside(t.box, x, y) {
				return []bubble.Element{t, strip, n}
			}
		}
	}
	if c := n.child(bubble.KindContainer); c != nil && !c.hidden() && inside(c.box, x, y) {
		if content := c.child(bubble.KindContent); content != nil {
			return []bubble.Element{content, c, n}
		}
		return []bubble.Element{c, n}
	}
	if a := n.child(bubble.KindArrow); a != nil && !a.hidden() && inside(a.box, x, y) {
		return []bubble.Element{a, n}
	}
	return []bubble.Element{n}
}

// Overlay writes top over base from column col, padding base when it is
// too short.
func Overlay(base, top string, col int) string {
	if col < 0 {
		top = ansi.TruncateLeft(top, -col, "")
		col = 0
	}
	tw := ansi.StringWidth(top)
	if tw == 0 {
		return base
	}
	bw := ansi.StringWidth(base)
	if bw < col {
		base += strings.Repeat(" ", col-bw)
		bw = col
	}
	right := ""
	if bw > col+tw {
		right = ansi.TruncateLeft(base, col+tw, "")
	}
	return ansi.Truncate(base, col, "") + top + right
}

func inside(box bubble.Rect, x, y int) bool {
	return x >= box.Left && x < box.Left+box.Width && y >= box.Top && y < box.Top+box.Height
}

// surface is the style of a filled area: its background and a foreground
// that stays readable on it.
func (r *Renderer) surface(bg string) lipgloss.Style {
	st := r.lg.NewStyle()
	if bg == "" {
		return st
	}
	st = st.Background(color(bg))
	if c, err := colorful.Hex(bg); err == nil {
		if l, _, _ := c.Lab(); l > 0.6 {
			return st.Foreground(lipgloss.Color("#1f1f1f"))
		}
		return st.Foreground(lipgloss.Color("#f2f2f2"))
	}
	return st
}

func color(v string) lipgloss.TerminalColor {
	if v == "" {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(v)
}

func borderFor(n *Node) lipgloss.Border {
	if n.px(bubble.PropBorderRadius) > 0 {
		return lipgloss.RoundedBorder()
	}
	return lipgloss.NormalBorder()
}

// closeLabel is the text of the close control. An image URL shows as the
// glyph, anything else is drawn as given.
func closeLabel(n *Node) string {
	src := strings.TrimSpace(n.Get(bubble.PropSrc))
	if src == "" || strings.Contains(src, "://") || strings.HasPrefix(src, "data:") {
		return closeGlyph
	}
	return src
}

func closeWidth(n *Node) int {
	return ansi.StringWidth(closeLabel(n))
}
