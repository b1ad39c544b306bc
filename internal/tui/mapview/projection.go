package mapview

import "infobubble/internal/bubble"

// cellAspect is how many columns span the height of one row.
const cellAspect = 2.0

// projection is a linear map from coordinates to cells: latitude grows
// upwards, longitude to the right, and the center sits mid viewport.
type projection struct {
	center bubble.LatLng
	size   bubble.Size
	scale  float64
}

func (p projection) FromLatLngToContainerPixel(ll bubble.LatLng) bubble.Point {
	return bubble.Point{
		X: float64(p.size.Width)/2 + (ll.Lng-p.center.Lng)*p.scale*cellAspect,
		Y: float64(p.size.Height)/2 - (ll.Lat-p.center.Lat)*p.scale,
	}
}

// FromLatLngToDivPixel matches the container projection: the overlay layer
// is redrawn on every pan rather than shifted.
func (p projection) FromLatLngToDivPixel(ll bubble.LatLng) bubble.Point {
	return p.FromLatLngToContainerPixel(ll)
}

func (p projection) FromContainerPixelToLatLng(pt bubble.Point) bubble.LatLng {
	return bubble.LatLng{
		Lat: p.center.Lat - (pt.Y-float64(p.size.Height)/2)/p.scale,
		Lng: p.center.Lng + (pt.X-float64(p.size.Width)/2)/(p.scale*cellAspect),
	}
}
