package bubble

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies what an element is for, so a renderer knows how to draw it.
type Kind int

const (
	KindBlock Kind = iota
	KindText
	KindImage
	KindFragment
	KindPane
	KindBubble
	KindShadow
	KindTabStrip
	KindTab
	KindClose
	KindContainer
	KindContent
	KindArrow
)

var kindNames = map[Kind]string{
	KindBlock:     "block",
	KindText:      "text",
	KindImage:     "image",
	KindFragment:  "fragment",
	KindPane:      "pane",
	KindBubble:    "bubble",
	KindShadow:    "shadow",
	KindTabStrip:  "tabstrip",
	KindTab:       "tab",
	KindClose:     "close",
	KindContainer: "container",
	KindContent:   "content",
	KindArrow:     "arrow",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Prop is a style property of an element. Values are strings such as "12px",
// "50%", "none" or a color.
type Prop string

const (
	PropDisplay           Prop = "display"
	PropTop               Prop = "top"
	PropLeft              Prop = "left"
	PropRight             Prop = "right"
	PropWidth             Prop = "width"
	PropHeight            Prop = "height"
	PropZIndex            Prop = "zIndex"
	PropPadding           Prop = "padding"
	PropPaddingTop        Prop = "paddingTop"
	PropPaddingBottom     Prop = "paddingBottom"
	PropPaddingLeft       Prop = "paddingLeft"
	PropPaddingRight      Prop = "paddingRight"
	PropMarginTop         Prop = "marginTop"
	PropMarginRight       Prop = "marginRight"
	PropBorderWidth       Prop = "borderWidth"
	PropBorderBottomWidth Prop = "borderBottomWidth"
	PropBorderColor       Prop = "borderColor"
	PropBorderRadius      Prop = "borderRadius"
	PropBackgroundColor   Prop = "backgroundColor"
	PropShadow            Prop = "shadow"
	PropArrowStyle        Prop = "arrowStyle"
	PropSrc               Prop = "src"
	PropAlt               Prop = "alt"
)

// Shadow looks understood by renderers.
const (
	ShadowNone   = ""
	ShadowOffset = "offset"
	ShadowSoft   = "soft"
)

// Element is a visual primitive owned by a Renderer.
type Element interface {
	ID() string
	Kind() Kind
	Set(p Prop, value string)
	Get(p Prop) string
	AddClass(name string)
	RemoveClass(name string)
	HasClass(name string) bool
	// SetMarkup replaces the children with the parsed markup.
	SetMarkup(markup string)
	// Append moves child under this element, detaching it from any previous parent.
	Append(child Element)
	Detach()
	Clear()
	Parent() Element
	Children() []Element
	// Size is the laid-out outer size. It is zero while the element is
	// hidden or not connected to a pane.
	Size() Size
	ClientHeight() int
	ScrollHeight() int
	// Images returns the image descendants in document order.
	Images() []Element
}

// Sizer is an off-screen copy of an element used for measurement.
type Sizer interface {
	Size() Size
	SetWidth(w int)
	SetHeight(h int)
	Discard()
}

// Renderer builds, parses and measures elements.
type Renderer interface {
	Create(kind Kind) Element
	Parse(markup string) Element
	Measure(el Element) Sizer
}

// Content is what a bubble or a tab displays: markup text or a prebuilt
// element. The zero Content is empty.
type Content struct {
	markup string
	node   Element
}

// Markup returns markup content. Surrounding whitespace is ignored.
func Markup(s string) Content {
	return Content{markup: strings.TrimSpace(s)}
}

// Node returns content backed by an existing element.
func Node(el Element) Content {
	return Content{node: el}
}

func (c Content) IsZero() bool {
	return c.markup == "" && c.node == nil
}

func (c Content) Markup() string {
	return c.markup
}

func (c Content) Node() Element {
	return c.node
}

func (c Content) String() string {
	if c.node != nil {
		return fmt.Sprintf("<%s#%s>", c.node.Kind(), c.node.ID())
	}
	return c.markup
}

// contentOf converts a stored option value into Content.
func contentOf(v any) Content {
	switch c := v.(type) {
	case Content:
		return c
	case *Content:
		if c != nil {
			return *c
		}
	case string:
		return Markup(c)
	case Element:
		if c != nil {
			return Node(c)
		}
	}
	return Content{}
}

func px(n int) string {
	return strconv.Itoa(n) + "px"
}

// ParsePx reads the leading integer of a property value, 0 when absent.
func ParsePx(v string) int {
	n, _ := leadingInt(v)
	return n
}
