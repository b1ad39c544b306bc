package bubble

import "math"

// Rect is an absolute box in host units.
type Rect struct {
	Top    int
	Left   int
	Width  int
	Height int
}

// PlaceInput is everything Place needs for one draw.
type PlaceInput struct {
	// Anchor is the anchor coordinate projected into the overlay layer.
	Anchor Point
	// BoxWidth is the outer width of the content container.
	BoxWidth int
	// BoxHeight is the outer height of the whole bubble, tab strip included.
	BoxHeight int
	// ContainerHeight is the outer height of the content container.
	ContainerHeight int
	// TabHeight is the height of the active tab, 0 without tabs.
	TabHeight    int
	ArrowSize    int
	AnchorHeight int
	// ArrowPosition is the arrow offset as a fraction of the width.
	ArrowPosition float64
	ShadowStyle   int
}

// Placement is the absolute position of a bubble and its shadow.
type Placement struct {
	Top    int
	Left   int
	Shadow Rect
	// ShadowPlaced is false when the shadow style does not position a shadow.
	ShadowPlaced bool
}

// Place positions the bubble so the arrow tip touches the anchor, and the
// shadow according to its style.
func Place(in PlaceInput) Placement {
	x, y := in.Anchor.X, in.Anchor.Y
	top := y - float64(in.BoxHeight+in.ArrowSize) - float64(in.AnchorHeight)
	left := x - float64(in.BoxWidth)*in.ArrowPosition

	p := Placement{Top: round(top), Left: round(left)}
	switch in.ShadowStyle {
	case 1:
		p.ShadowPlaced = true
		p.Shadow = Rect{
			Top:    round(top + float64(in.TabHeight) - 1),
			Left:   round(left),
			Width:  in.BoxWidth,
			Height: in.ContainerHeight - in.ArrowSize,
		}
	case 2:
		width := float64(in.BoxWidth) * 0.8
		shadowTop := y
		if in.AnchorHeight == 0 {
			shadowTop += float64(in.ArrowSize)
		}
		p.ShadowPlaced = true
		p.Shadow = Rect{
			Top:    round(shadowTop),
			Left:   round(x - width*in.ArrowPosition),
			Width:  round(width),
			Height: 2,
		}
	}
	return p
}

// CloseOffset is the close control's distance from the bubble's top right.
type CloseOffset struct {
	Right int
	Top   int
}

// PlaceClose offsets the close control past the border, below the tab strip
// and clear of a scrollbar.
func PlaceClose(borderWidth, tabHeight int, hasTabs, scrollable bool) CloseOffset {
	c := CloseOffset{Right: 2, Top: 2}
	if hasTabs {
		c.Top += tabHeight
	}
	c.Top += borderWidth
	c.Right += borderWidth
	if scrollable {
		c.Right += 15
	}
	return c
}

// PanTarget returns the container pixel a map should center on so that a
// bubble of bubbleHeight above anchor fits below the top edge.
func PanTarget(center, anchor Point, bubbleHeight, anchorHeight, viewportHeight int) Point {
	spaceTop := center.Y - float64(bubbleHeight) + float64(anchorHeight)
	deltaY := 0.0
	if spaceTop < 0 {
		deltaY = (-spaceTop + (float64(viewportHeight) - center.Y)) / 2
	}
	return Point{X: anchor.X, Y: anchor.Y - deltaY}
}

func round(f float64) int {
	return int(math.Round(f))
}
