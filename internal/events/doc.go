// Package events is a small synchronous event bus keyed by target.
//
// Listeners are bound to a target value and an event name. Dispatch walks a
// path of targets from the innermost outwards, the way pointer events bubble
// from a bubble element up to the map beneath it, and stops as soon as a
// handler calls StopPropagation. Taps observe every dispatched event through
// a buffered channel, which the TUI uses for its event log.
package events
