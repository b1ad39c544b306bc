package config

import (
	"infobubble/internal/bubble"
)

// Config is the top-level configuration for infobubble.
type Config struct {
	Bubble  BubbleSettings     `yaml:"bubble" toml:"bubble"`
	Map     MapSettings        `yaml:"map" toml:"map"`
	Markers []MarkerDefinition `yaml:"markers,omitempty" toml:"markers,omitempty"`
}

// BubbleSettings overrides bubble options. Nil fields are left to the
// layer below.
type BubbleSettings struct {
	ArrowSize           *int    `yaml:"arrowSize,omitempty" toml:"arrowSize,omitempty"`
	ArrowStyle          *int    `yaml:"arrowStyle,omitempty" toml:"arrowStyle,omitempty"`
	ArrowPosition       *int    `yaml:"arrowPosition,omitempty" toml:"arrowPosition,omitempty"`
	ShadowStyle         *int    `yaml:"shadowStyle,omitempty" toml:"shadowStyle,omitempty"`
	Padding             *int    `yaml:"padding,omitempty" toml:"padding,omitempty"`
	BorderWidth         *int    `yaml:"borderWidth,omitempty" toml:"borderWidth,omitempty"`
	BorderRadius        *int    `yaml:"borderRadius,omitempty" toml:"borderRadius,omitempty"`
	BorderColor         *string `yaml:"borderColor,omitempty" toml:"borderColor,omitempty"`
	BackgroundColor     *string `yaml:"backgroundColor,omitempty" toml:"backgroundColor,omitempty"`
	CloseSrc            *string `yaml:"closeSrc,omitempty" toml:"closeSrc,omitempty"`
	MinWidth            *int    `yaml:"minWidth,omitempty" toml:"minWidth,omitempty"`
	MinHeight           *int    `yaml:"minHeight,omitempty" toml:"minHeight,omitempty"`
	MaxWidth            *int    `yaml:"maxWidth,omitempty" toml:"maxWidth,omitempty"`
	MaxHeight           *int    `yaml:"maxHeight,omitempty" toml:"maxHeight,omitempty"`
	ZIndex              *int    `yaml:"zIndex,omitempty" toml:"zIndex,omitempty"`
	DisableAutoPan      *bool   `yaml:"disableAutoPan,omitempty" toml:"disableAutoPan,omitempty"`
	DisableAnimation    *bool   `yaml:"disableAnimation,omitempty" toml:"disableAnimation,omitempty"`
	HideCloseButton     *bool   `yaml:"hideCloseButton,omitempty" toml:"hideCloseButton,omitempty"`
	TabClassName        *string `yaml:"tabClassName,omitempty" toml:"tabClassName,omitempty"`
	BackgroundClassName *string `yaml:"backgroundClassName,omitempty" toml:"backgroundClassName,omitempty"`
}

// MapSettings describes the initial view.
type MapSettings struct {
	Center *Coordinate `yaml:"center,omitempty" toml:"center,omitempty"`
	Zoom   *int        `yaml:"zoom,omitempty" toml:"zoom,omitempty"`
	// Width and Height size headless renders. Zero keeps the layer below.
	Width  int `yaml:"width,omitempty" toml:"width,omitempty"`
	Height int `yaml:"height,omitempty" toml:"height,omitempty"`
}

// Coordinate is a point on the map.
type Coordinate struct {
	Lat float64 `yaml:"lat" toml:"lat"`
	Lng float64 `yaml:"lng" toml:"lng"`
}

// LatLng converts c for the bubble package.
func (c Coordinate) LatLng() bubble.LatLng {
	return bubble.LatLng{Lat: c.Lat, Lng: c.Lng}
}

// MarkerDefinition is a pin on the map together with what its bubble shows.
// Markers are merged across layers by name.
type MarkerDefinition struct {
	Name         string          `yaml:"name" toml:"name"`
	Lat          float64         `yaml:"lat" toml:"lat"`
	Lng          float64         `yaml:"lng" toml:"lng"`
	Glyph        string          `yaml:"glyph,omitempty" toml:"glyph,omitempty"`
	AnchorHeight int             `yaml:"anchorHeight,omitempty" toml:"anchorHeight,omitempty"`
	Content      string          `yaml:"content,omitempty" toml:"content,omitempty"`
	Tabs         []TabDefinition `yaml:"tabs,omitempty" toml:"tabs,omitempty"`
}

// Position returns where the marker sits.
func (m MarkerDefinition) Position() bubble.LatLng {
	return bubble.LatLng{Lat: m.Lat, Lng: m.Lng}
}

// TabDefinition is one tab of a marker's bubble.
type TabDefinition struct {
	Label   string `yaml:"label" toml:"label"`
	Content string `yaml:"content" toml:"content"`
}
