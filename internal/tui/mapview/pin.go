package mapview

import (
	"infobubble/internal/bubble"
)

const defaultGlyph = "●"

// Pin is a marker drawn on the map. Clicks on its glyph dispatch "click"
// with the pin as target.
type Pin struct {
	*bubble.Marker
	Label string
	Glyph string

	box bubble.Rect
}

// NewPin places a pin at pos.
func NewPin(pos bubble.LatLng, label string) *Pin {
	return &Pin{
		Marker: bubble.NewMarker(pos),
		Label:  label,
		Glyph:  defaultGlyph,
	}
}
