package config

import (
	"infobubble/internal/bubble"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

func ptr[T any](v T) *T {
	return &v
}

// GetDefaultConfig returns the built-in configuration. Bubble geometry is
// sized for terminal cells rather than pixels.
func GetDefaultConfig() Config {
	return Config{
		Bubble: BubbleSettings{
			ArrowSize:       ptr(1),
			Padding:         ptr(1),
			BorderWidth:     ptr(1),
			BorderRadius:    ptr(1),
			BorderColor:     ptr("#7d7d7d"),
			BackgroundColor: ptr(""),
			CloseSrc:        ptr("✕"),
			MaxWidth:        ptr(48),
		},
		Map: MapSettings{
			Center: &Coordinate{},
			Zoom:   ptr(0),
			Width:  defaultWidth,
			Height: defaultHeight,
		},
	}
}

// Values converts the settings to bubble options, skipping unset fields.
func (s BubbleSettings) Values() bubble.Values {
	v := bubble.Values{}
	putInt := func(key bubble.Option, p *int) {
		if p != nil {
			v[key] = *p
		}
	}
	putString := func(key bubble.Option, p *string) {
		if p != nil {
			v[key] = *p
		}
	}
	putBool := func(key bubble.Option, p *bool) {
		if p != nil {
			v[key] = *p
		}
	}

	putInt(bubble.OptArrowSize, s.ArrowSize)
	putInt(bubble.OptArrowStyle, s.ArrowStyle)
	putInt(bubble.OptArrowPosition, s.ArrowPosition)
	putInt(bubble.OptShadowStyle, s.ShadowStyle)
	putInt(bubble.OptPadding, s.Padding)
	putInt(bubble.OptBorderWidth, s.BorderWidth)
	putInt(bubble.OptBorderRadius, s.BorderRadius)
	putString(bubble.OptBorderColor, s.BorderColor)
	putString(bubble.OptBackgroundColor, s.BackgroundColor)
	putString(bubble.OptCloseSrc, s.CloseSrc)
	putInt(bubble.OptMinWidth, s.MinWidth)
	putInt(bubble.OptMinHeight, s.MinHeight)
	putInt(bubble.OptMaxWidth, s.MaxWidth)
	putInt(bubble.OptMaxHeight, s.MaxHeight)
	putInt(bubble.OptZIndex, s.ZIndex)
	putBool(bubble.OptDisableAutoPan, s.DisableAutoPan)
	putBool(bubble.OptDisableAnimation, s.DisableAnimation)
	putBool(bubble.OptHideCloseButton, s.HideCloseButton)
	putString(bubble.OptTabClassName, s.TabClassName)
	putString(bubble.OptBackgroundClassName, s.BackgroundClassName)
	return v
}
