// Package mapview is a terminal map that hosts bubbles.
//
// Host supplies what a bubble needs from its environment: the terminal
// renderer, an event bus and a virtual clock for deferred work. Map is a
// pannable, zoomable viewport with a linear projection, pins and the two
// overlay panes bubbles attach to. Its View composites the base grid, the
// pins and every pane child in z order into one string.
//
// Nothing here runs on its own goroutine. The TUI drives the clock with
// Advance from tick messages, and tests drive it with Flush.
package mapview
