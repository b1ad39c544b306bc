package mapview

import (
	"time"

	"github.com/google/uuid"

	"infobubble/internal/bubble"
	"infobubble/internal/events"
	"infobubble/internal/tui/render"
)

// Host implements bubble.MapHost for the terminal.
type Host struct {
	renderer *render.Renderer
	bus      *events.Bus
	clock    *Scheduler
}

// NewHost creates a host whose renderer is configured with opts. Images
// report their load event on the tick after they are first drawn.
func NewHost(opts ...render.Option) *Host {
	h := &Host{
		bus:   events.NewBus(),
		clock: NewScheduler(),
	}
	opts = append(opts, render.WithImageHook(h.imageDrawn))
	h.renderer = render.New(opts...)
	return h
}

func (h *Host) Renderer() bubble.Renderer {
	return h.renderer
}

// Terminal returns the concrete renderer, for drawing and hit testing.
func (h *Host) Terminal() *render.Renderer {
	return h.renderer
}

func (h *Host) Bus() *events.Bus {
	return h.bus
}

func (h *Host) Clock() *Scheduler {
	return h.clock
}

func (h *Host) Listen(target any, event string, fn func(bubble.Event)) bubble.Listener {
	sub := h.bus.Listen(target, event, func(ev *events.Event) {
		fn(ev)
	})
	if sub == nil {
		return noListener{}
	}
	return sub
}

func (h *Host) Trigger(target any, event string) {
	h.bus.Trigger(target, event)
}

// Dispatch fires event along path, innermost target first. It reports
// whether the event got past the last target.
func (h *Host) Dispatch(path []any, event string) bool {
	return h.bus.Dispatch(path, event)
}

func (h *Host) After(delay time.Duration, fn func()) {
	h.clock.After(delay, fn)
}

func (h *Host) NewID() string {
	return uuid.NewString()
}

func (h *Host) imageDrawn(el bubble.Element) {
	h.After(0, func() {
		h.Trigger(el, bubble.EventLoad)
	})
}

type noListener struct{}

func (noListener) Remove() {}
