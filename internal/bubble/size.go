package bubble

// Measurable reports the size of something, capped to the given bounds.
// A bound of 0 or less means unbounded.
type Measurable interface {
	Measure(maxWidth, maxHeight int) Size
}

// TabMeasure pairs the label and content of one tab.
type TabMeasure struct {
	Label   Measurable
	Content Measurable
}

// SizeInput is everything ResolveSize needs. Min and max bounds of 0 or
// less are unset.
type SizeInput struct {
	Viewport     Size
	ArrowSize    int
	AnchorHeight int
	Padding      int
	MinWidth     int
	MinHeight    int
	MaxWidth     int
	MaxHeight    int
	// Tabs takes precedence over Content when not empty.
	Tabs    []TabMeasure
	Content Measurable
}

// Resolved is the outcome of one sizing pass.
type Resolved struct {
	// Width and Height are the content area size.
	Width  int
	Height int
	// TabWidth is the sum of the tab label widths.
	TabWidth int
	// TabHeight is the tallest tab label.
	TabHeight int
	// ArrowSize is twice the configured arrow size, the narrowest a bubble
	// can be.
	ArrowSize int
}

// Ready reports whether there is anything to draw.
func (r Resolved) Ready() bool {
	return r.Width > 0
}

// ResolveSize computes the content box honoring tabs, min/max bounds and the
// space the viewport leaves around the arrow.
func ResolveSize(in SizeInput) Resolved {
	gutter := in.ArrowSize * 2
	mapWidth := in.Viewport.Width - gutter
	mapHeight := in.Viewport.Height - gutter - in.AnchorHeight

	maxWidth := bound(mapWidth, in.MaxWidth)
	maxHeight := bound(mapHeight, in.MaxHeight)

	width := max(in.MinWidth, 0)
	height := max(in.MinHeight, 0)
	tabWidth, tabHeight := 0, 0

	if len(in.Tabs) > 0 {
		for _, t := range in.Tabs {
			label := measureOf(t.Label, maxWidth, maxHeight)
			content := measureOf(t.Content, maxWidth, maxHeight)
			tabWidth += label.Width
			tabHeight = max(tabHeight, label.Height)
			width = max(width, label.Width, content.Width)
			height = max(height, label.Height, content.Height)
		}
	} else if in.Content != nil {
		content := in.Content.Measure(maxWidth, maxHeight)
		width = max(width, content.Width)
		height = max(height, content.Height)
	}

	if maxWidth > 0 {
		width = min(width, maxWidth)
	}
	if maxHeight > 0 {
		height = min(height, maxHeight)
	}

	width = max(width, tabWidth)
	if width == tabWidth {
		width += 2 * in.Padding
	}

	arrowSize := in.ArrowSize * 2
	width = max(width, arrowSize)

	if width > mapWidth {
		width = mapWidth
	}
	if height > mapHeight {
		height = mapHeight - tabHeight
	}

	return Resolved{
		Width:     max(width, 0),
		Height:    max(height, 0),
		TabWidth:  tabWidth,
		TabHeight: tabHeight,
		ArrowSize: arrowSize,
	}
}

// bound returns the configured maximum limited by the viewport allowance,
// 0 when no maximum is configured.
func bound(allowance, configured int) int {
	if configured <= 0 {
		return 0
	}
	return min(allowance, configured)
}

func measureOf(m Measurable, maxWidth, maxHeight int) Size {
	if m == nil {
		return Size{}
	}
	return m.Measure(maxWidth, maxHeight)
}

// measure sizes el off screen: natural size first, then pinned to maxWidth
// when wider, then to maxHeight when taller. Width is pinned before height
// is read because re-wrapping changes the height.
func measure(r Renderer, el Element, maxWidth, maxHeight int) Size {
	sizer := r.Measure(el)
	defer sizer.Discard()

	size := sizer.Size()
	if maxWidth > 0 && size.Width > maxWidth {
		sizer.SetWidth(maxWidth)
		size = sizer.Size()
	}
	if maxHeight > 0 && size.Height > maxHeight {
		sizer.SetHeight(maxHeight)
		size = sizer.Size()
	}
	return size
}

// elementMeasure measures an element through a renderer.
type elementMeasure struct {
	r  Renderer
	el Element
}

func (m elementMeasure) Measure(maxWidth, maxHeight int) Size {
	if m.el == nil {
		return Size{}
	}
	return measure(m.r, m.el, maxWidth, maxHeight)
}
