// Package bubble provides the callout bubble engine for infobubble.
//
// A bubble is an annotation box with an arrow, a drop shadow, an optional tab
// strip and a close control, pinned to a coordinate of a map viewport. This
// package owns the parts with real invariants:
//
//  1. **Store** - named options with defaults and an explicit dispatch table
//     of change handlers
//
//  2. **TabRegistry** - the ordered tab list and its single active tab
//
//  3. **ResolveSize** - content and tab strip sizing against min/max bounds
//     and the viewport allowance
//
//  4. **Place / PlaceClose / PanTarget** - absolute placement of the bubble,
//     its shadow and its close control
//
//  5. **Bubble** - the controller tying the above to a host map
//
// Everything visual is delegated. A Renderer builds and measures elements and
// a MapHost provides event subscription, deferred tasks and id generation. The
// Map a bubble is attached to supplies the viewport, projection and panes.
// The terminal implementations live in internal/tui/render and
// internal/tui/mapview.
//
// Example Usage:
//
//	b, err := bubble.New(bubble.Values{bubble.OptPadding: 1}, host)
//	if err != nil {
//		return err
//	}
//	b.SetContent(bubble.Markup("<b>Berlin</b><br>Population 3.7M"))
//	b.Open(m, marker)
//
// All methods are expected to be called from a single goroutine, the same one
// that runs the host's deferred tasks.
package bubble
