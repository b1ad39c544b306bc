package mcpserver

import (
	"infobubble/internal/bubble"
	"infobubble/internal/snapshot"
)

// Layout is the JSON shape returned by layout_bubble.
type Layout struct {
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	TabWidth  int        `json:"tabWidth"`
	TabHeight int        `json:"tabHeight"`
	Top       int        `json:"top"`
	Left      int        `json:"left"`
	Shadow    *Rect      `json:"shadow,omitempty"`
	Close     CloseSpot  `json:"close"`
	Tabs      []TabState `json:"tabs,omitempty"`
}

type Rect struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type CloseSpot struct {
	Right int `json:"right"`
	Top   int `json:"top"`
}

type TabState struct {
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

func layoutOf(res snapshot.Result) Layout {
	g := res.Geometry
	l := Layout{
		Width:     g.Size.Width,
		Height:    g.Size.Height,
		TabWidth:  g.Size.TabWidth,
		TabHeight: g.Size.TabHeight,
		Top:       g.Placement.Top,
		Left:      g.Placement.Left,
		Close:     CloseSpot{Right: g.Close.Right, Top: g.Close.Top},
	}
	if g.Placement.ShadowPlaced {
		l.Shadow = rectOf(g.Placement.Shadow)
	}
	for _, t := range res.Tabs {
		l.Tabs = append(l.Tabs, TabState{Label: t.Label, Active: t.Active})
	}
	return l
}

func rectOf(r bubble.Rect) *Rect {
	return &Rect{Top: r.Top, Left: r.Left, Width: r.Width, Height: r.Height}
}
