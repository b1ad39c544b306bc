package render

import "infobubble/internal/bubble"

// cells is the number of cells a border of width bw takes. Terminal
// borders are one cell thick whatever the configured width.
func cells(bw int) int {
	if bw > 0 {
		return 1
	}
	return 0
}

// outer lays n out without regard to whether it is on screen.
func (n *Node) outer() bubble.Size {
	switch n.kind {
	case bubble.KindContainer:
		in := n.inner()
		edge := n.px(bubble.PropPadding) + cells(n.px(bubble.PropBorderWidth))
		return bubble.Size{Width: in.Width + 2*edge, Height: in.Height + 2*edge}
	case bubble.KindTab:
		return n.tabSize()
	case bubble.KindTabStrip:
		return n.stripSize()
	case bubble.KindBubble:
		return n.bubbleSize()
	case bubble.KindClose:
		return bubble.Size{Width: closeWidth(n), Height: 1}
	case bubble.KindArrow:
		w := 0
		if n.parent != nil {
			if c := n.parent.child(bubble.KindContainer); c != nil {
				w = c.outer().Width
			}
		}
		return bubble.Size{Width: w, Height: n.px(bubble.PropHeight)}
	case bubble.KindShadow, bubble.KindPane:
		return bubble.Size{Width: n.px(bubble.PropWidth), Height: n.px(bubble.PropHeight)}
	}
	return n.flowSize(0)
}

// inner is the content box of a container. An unset width or height falls
// back to the content's natural extent.
func (n *Node) inner() bubble.Size {
	w, h := n.px(bubble.PropWidth), n.px(bubble.PropHeight)
	hasW, hasH := n.has(bubble.PropWidth), n.has(bubble.PropHeight)
	if hasW && hasH {
		return bubble.Size{Width: w, Height: h}
	}
	limit := 0
	if hasW {
		limit = w
	}
	nat := n.flowSize(limit)
	if !hasW {
		w = nat.Width
	}
	if !hasH {
		h = nat.Height
	}
	return bubble.Size{Width: w, Height: h}
}

// natural is what a sizer reports before any pinning. Text wraps at limit
// when it is positive.
func (n *Node) natural(limit int) bubble.Size {
	switch n.kind {
	case bubble.KindTab, bubble.KindTabStrip, bubble.KindBubble, bubble.KindContainer,
		bubble.KindClose, bubble.KindArrow, bubble.KindShadow:
		return n.outer()
	}
	return n.flowSize(limit)
}

func (n *Node) tabSize() bubble.Size {
	label := n.flowSize(0)
	b := cells(n.px(bubble.PropBorderWidth))
	bb := b
	if n.has(bubble.PropBorderBottomWidth) {
		bb = cells(n.px(bubble.PropBorderBottomWidth))
	}
	return bubble.Size{
		Width:  label.Width + n.px(bubble.PropPaddingLeft) + n.px(bubble.PropPaddingRight) + 2*b,
		Height: max(label.Height, 1) + n.px(bubble.PropPaddingTop) + n.px(bubble.PropPaddingBottom) + b + bb,
	}
}

func (n *Node) stripSize() bubble.Size {
	tabs := n.visibleChildren(bubble.KindTab)
	if len(tabs) == 0 {
		return bubble.Size{}
	}
	s := bubble.Size{Width: n.px(bubble.PropPaddingLeft) + n.px(bubble.PropPaddingRight)}
	for _, t := range tabs {
		ts := t.tabSize()
		s.Width += ts.Width
		s.Height = max(s.Height, ts.Height)
	}
	return s
}

func (n *Node) bubbleSize() bubble.Size {
	var s bubble.Size
	if strip := n.child(bubble.KindTabStrip); strip != nil && !strip.hidden() {
		s = strip.stripSize()
	}
	if c := n.child(bubble.KindContainer); c != nil && !c.hidden() {
		cs := c.outer()
		s.Width = max(s.Width, cs.Width)
		s.Height += cs.Height
	}
	return s
}
