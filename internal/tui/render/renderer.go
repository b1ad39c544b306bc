package render

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/termenv"

	"infobubble/internal/bubble"
)

// Renderer creates, parses, measures and draws terminal elements.
type Renderer struct {
	lg      *lipgloss.Renderer
	newID   func() string
	onImage func(bubble.Element)
	classes map[string]lipgloss.Style
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColorProfile forces a color profile. termenv.Ascii strips all styling,
// which keeps output stable in tests and when piping.
func WithColorProfile(p termenv.Profile) Option {
	return func(r *Renderer) {
		r.lg.SetColorProfile(p)
	}
}

// WithIDs replaces the element id generator.
func WithIDs(fn func() string) Option {
	return func(r *Renderer) {
		r.newID = fn
	}
}

// WithImageHook registers fn to run the first time an image is drawn. Hosts
// use it to deliver the image's load event.
func WithImageHook(fn func(bubble.Element)) Option {
	return func(r *Renderer) {
		r.onImage = fn
	}
}

// New creates a renderer writing styles for stdout's terminal.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		lg:      lipgloss.NewRenderer(os.Stdout),
		newID:   uuid.NewString,
		classes: make(map[string]lipgloss.Style),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefineClass gives elements carrying class name the given style on top of
// their own.
func (r *Renderer) DefineClass(name string, style lipgloss.Style) {
	r.classes[name] = style
}

// NewStyle returns a style bound to this renderer's color profile.
func (r *Renderer) NewStyle() lipgloss.Style {
	return r.lg.NewStyle()
}

func (r *Renderer) Create(kind bubble.Kind) bubble.Element {
	return r.node(kind)
}

// Parse turns markup into a fragment element.
func (r *Renderer) Parse(markup string) bubble.Element {
	root := r.node(bubble.KindFragment)
	r.parseInto(root, markup)
	return root
}

// Measure returns a sizer over el. el itself is never modified.
func (r *Renderer) Measure(el bubble.Element) bubble.Sizer {
	n, ok := el.(*Node)
	if !ok {
		return &sizer{}
	}
	return &sizer{n: n}
}

func (r *Renderer) node(kind bubble.Kind) *Node {
	return &Node{
		r:     r,
		id:    r.newID(),
		kind:  kind,
		props: make(map[bubble.Prop]string),
	}
}

func (r *Renderer) applyClasses(st lipgloss.Style, n *Node) lipgloss.Style {
	for _, c := range n.classes {
		if cs, ok := r.classes[c]; ok {
			st = st.Inherit(cs)
		}
	}
	return st
}

// sizer measures a node as if it were laid out on its own, optionally
// pinned to a width or a height.
type sizer struct {
	n    *Node
	w, h int
}

func (s *sizer) Size() bubble.Size {
	if s.n == nil {
		return bubble.Size{}
	}
	size := s.n.natural(s.w)
	if s.w > 0 {
		size.Width = s.w
	}
	if s.h > 0 {
		size.Height = s.h
	}
	return size
}

func (s *sizer) SetWidth(w int)  { s.w = w }
func (s *sizer) SetHeight(h int) { s.h = h }
func (s *sizer) Discard()        { s.n = nil }
