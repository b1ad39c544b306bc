package render

import (
	"slices"

	"infobubble/internal/bubble"
)

// inline carries the text styling picked up from inline markup.
type inline uint8

const (
	inlineBold inline = 1 << iota
	inlineItalic
	inlineUnderline
	inlineFaint
	inlineStrike
	inlinePre
)

// Node is a terminal element.
type Node struct {
	r        *Renderer
	id       string
	kind     bubble.Kind
	props    map[bubble.Prop]string
	classes  []string
	parent   *Node
	children []*Node

	// Set on parsed markup.
	text   string
	style  inline
	tag    string
	loaded bool

	scroll int
	// box is where the node was last drawn, relative to the drawn root.
	box bubble.Rect
}

func (n *Node) ID() string        { return n.id }
func (n *Node) Kind() bubble.Kind { return n.kind }

func (n *Node) Set(p bubble.Prop, value string) {
	if value == "" {
		delete(n.props, p)
		return
	}
	n.props[p] = value
}

func (n *Node) Get(p bubble.Prop) string {
	return n.props[p]
}

func (n *Node) AddClass(name string) {
	if name == "" || n.HasClass(name) {
		return
	}
	n.classes = append(n.classes, name)
}

func (n *Node) RemoveClass(name string) {
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool { return c == name })
}

func (n *Node) HasClass(name string) bool {
	return slices.Contains(n.classes, name)
}

func (n *Node) SetMarkup(markup string) {
	n.Clear()
	n.r.parseInto(n, markup)
}

// Append moves child under n. Elements from another renderer are ignored.
func (n *Node) Append(child bubble.Element) {
	c, ok := child.(*Node)
	if !ok || c == nil || c == n {
		return
	}
	c.Detach()
	c.parent = n
	n.children = append(n.children, c)
}

func (n *Node) Detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.children = slices.DeleteFunc(p.children, func(c *Node) bool { return c == n })
	n.parent = nil
}

func (n *Node) Clear() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	n.scroll = 0
}

func (n *Node) Parent() bubble.Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Children() []bubble.Element {
	out := make([]bubble.Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Size is the laid out size, zero while n is hidden or outside a pane.
func (n *Node) Size() bubble.Size {
	if !n.connected() {
		return bubble.Size{}
	}
	return n.outer()
}

// ClientHeight is the visible height of the padding box.
func (n *Node) ClientHeight() int {
	if n.kind != bubble.KindContainer {
		return n.Size().Height
	}
	return n.inner().Height + 2*n.px(bubble.PropPadding)
}

// ScrollHeight is the height the padding box would need to show everything.
func (n *Node) ScrollHeight() int {
	if n.kind != bubble.KindContainer {
		return n.outer().Height
	}
	inner := n.inner()
	full := n.flowSize(inner.Width).Height
	return max(full, inner.Height) + 2*n.px(bubble.PropPadding)
}

func (n *Node) Images() []bubble.Element {
	var out []bubble.Element
	n.walk(func(c *Node) {
		if c.kind == bubble.KindImage {
			out = append(out, c)
		}
	})
	return out
}

// Text is the plain text the node flows to, lines joined by newlines.
func (n *Node) Text() string {
	return joinLines(n.flow(0))
}

// Scroll moves a container's content by delta lines, clamped to its
// overflow.
func Scroll(el bubble.Element, delta int) {
	n, ok := el.(*Node)
	if !ok || n.kind != bubble.KindContainer {
		return
	}
	inner := n.inner()
	overflow := max(0, n.flowSize(inner.Width).Height-inner.Height)
	n.scroll = min(max(n.scroll+delta, 0), overflow)
}

func (n *Node) hidden() bool {
	return n.props[bubble.PropDisplay] == "none"
}

func (n *Node) connected() bool {
	for c := n; c != nil; c = c.parent {
		if c.hidden() {
			return false
		}
		if c.kind == bubble.KindPane {
			return true
		}
	}
	return false
}

func (n *Node) px(p bubble.Prop) int {
	return bubble.ParsePx(n.props[p])
}

func (n *Node) has(p bubble.Prop) bool {
	_, ok := n.props[p]
	return ok
}

// walk visits the descendants of n in document order.
func (n *Node) walk(fn func(*Node)) {
	for _, c := range n.children {
		fn(c)
		c.walk(fn)
	}
}

func (n *Node) visibleChildren(kind bubble.Kind) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.kind == kind && !c.hidden() {
			out = append(out, c)
		}
	}
	return out
}

func (n *Node) child(kind bubble.Kind) *Node {
	for _, c := range n.children {
		if c.kind == kind {
			return c
		}
	}
	return nil
}
