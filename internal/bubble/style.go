package bubble

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"infobubble/pkg/logging"
)

func (b *Bubble) registerHandlers() {
	handlers := map[Option]func(){
		OptArrowSize:           b.borderWidthChanged,
		OptArrowStyle:          b.borderWidthChanged,
		OptArrowPosition:       b.arrowPositionChanged,
		OptBorderWidth:         b.borderWidthChanged,
		OptBorderRadius:        b.borderRadiusChanged,
		OptBorderColor:         b.borderColorChanged,
		OptBackgroundColor:     b.backgroundColorChanged,
		OptPadding:             b.paddingChanged,
		OptShadowStyle:         b.shadowStyleChanged,
		OptZIndex:              b.zIndexChanged,
		OptHideCloseButton:     b.hideCloseButtonChanged,
		OptCloseSrc:            b.closeSrcChanged,
		OptTabClassName:        b.updateTabStyles,
		OptBackgroundClassName: b.backgroundClassNameChanged,
		OptMinWidth:            b.Redraw,
		OptMinHeight:           b.Redraw,
		OptMaxWidth:            b.Redraw,
		OptMaxHeight:           b.Redraw,
		OptPosition:            b.Draw,
	}
	for key, fn := range handlers {
		b.store.Handle(key, fn)
	}
}

// Set stores a raw option value and runs its handler.
func (b *Bubble) Set(key Option, value any) {
	b.store.Set(key, value)
}

// SetValues applies several options in canonical order.
func (b *Bubble) SetValues(values Values) {
	b.store.SetValues(values)
}

// Option returns the raw value of key.
func (b *Bubble) Option(key Option) (any, bool) {
	return b.store.Get(key)
}

// Options returns a copy of all option values.
func (b *Bubble) Options() Values {
	return b.store.Snapshot()
}

// SetArrowSize sets the arrow height in pixels. The bubble is never
// narrower than twice this size.
func (b *Bubble) SetArrowSize(size int) { b.store.Set(OptArrowSize, size) }

// SetArrowStyle picks the arrow shape: 0 centered, 1 flush left, 2 flush
// right.
func (b *Bubble) SetArrowStyle(style int) { b.store.Set(OptArrowStyle, style) }

// SetArrowPosition places the arrow along the bottom edge, in percent of
// the bubble width.
func (b *Bubble) SetArrowPosition(pos int) { b.store.Set(OptArrowPosition, pos) }

// SetBorderWidth sets the border width of the content box and the arrow.
func (b *Bubble) SetBorderWidth(width int) { b.store.Set(OptBorderWidth, width) }

// SetBorderRadius sets the corner radius of the box and its shadow. It also
// insets the tab strip.
func (b *Bubble) SetBorderRadius(radius int) { b.store.Set(OptBorderRadius, radius) }

// SetShadowStyle picks the shadow: 0 none, 1 offset, 2 soft.
func (b *Bubble) SetShadowStyle(style int) { b.store.Set(OptShadowStyle, style) }

// SetPadding sets the inner padding of the content box.
func (b *Bubble) SetPadding(padding int) { b.store.Set(OptPadding, padding) }

// SetMaxWidth bounds the content width. Zero or less means unbounded.
func (b *Bubble) SetMaxWidth(width int) { b.store.Set(OptMaxWidth, width) }

// SetMaxHeight bounds the content height. Zero or less means unbounded.
func (b *Bubble) SetMaxHeight(height int) { b.store.Set(OptMaxHeight, height) }

// SetMinWidth sets the narrowest content width.
func (b *Bubble) SetMinWidth(width int) { b.store.Set(OptMinWidth, width) }

// SetMinHeight sets the shortest content height.
func (b *Bubble) SetMinHeight(height int) { b.store.Set(OptMinHeight, height) }

// SetZIndex sets the stacking order. Tabs stack below it and the close
// control one above.
func (b *Bubble) SetZIndex(z int) { b.store.Set(OptZIndex, z) }

// ShowCloseButton shows the close control.
func (b *Bubble) ShowCloseButton() { b.store.Set(OptHideCloseButton, false) }

// HideCloseButton hides the close control.
func (b *Bubble) HideCloseButton() { b.store.Set(OptHideCloseButton, true) }

// SetTabClassName replaces the class applied to every tab.
func (b *Bubble) SetTabClassName(name string) { b.store.Set(OptTabClassName, name) }

// SetBackgroundClassName replaces the class of the content box.
func (b *Bubble) SetBackgroundClassName(name string) {
	b.store.Set(OptBackgroundClassName, name)
}

// SetBorderColor is a no-op for empty or unparsable colors.
func (b *Bubble) SetBorderColor(color string) {
	if !ValidColor(color) {
		logging.Debug("Bubble", "ignoring border color %q", color)
		return
	}
	b.store.Set(OptBorderColor, color)
}

// SetBackgroundColor is a no-op for empty or unparsable colors.
func (b *Bubble) SetBackgroundColor(color string) {
	if !ValidColor(color) {
		logging.Debug("Bubble", "ignoring background color %q", color)
		return
	}
	b.store.Set(OptBackgroundColor, color)
}

// SetCloseSrc is a no-op for an empty source.
func (b *Bubble) SetCloseSrc(src string) {
	if strings.TrimSpace(src) == "" {
		return
	}
	b.store.Set(OptCloseSrc, src)
}

// ZIndex returns the configured stacking order, the base order when unset.
func (b *Bubble) ZIndex() int {
	if z := b.store.Int(OptZIndex); z != 0 {
		return z
	}
	return b.base
}

// ValidColor accepts hex colors ("#ccc", "#1e1e2e") and ANSI color numbers.
func ValidColor(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n >= 0 && n <= 255
	}
	_, err := colorful.Hex(s)
	return err == nil
}

func (b *Bubble) arrowPositionChanged() {
	b.arrow.Set(PropLeft, itoa(b.store.Int(OptArrowPosition))+"%")
	b.Redraw()
}

func (b *Bubble) zIndexChanged() {
	z := b.ZIndex()
	b.base = z
	b.bubble.Set(PropZIndex, itoa(z))
	b.closeEl.Set(PropZIndex, itoa(z+1))
}

func (b *Bubble) shadowStyleChanged() {
	display, look := "", ShadowNone
	switch b.store.Int(OptShadowStyle) {
	case 0:
		display = "none"
	case 1:
		look = ShadowOffset
	case 2:
		look = ShadowSoft
	}
	b.shadow.Set(PropShadow, look)
	if b.isOpen {
		b.shadow.Set(PropDisplay, display)
		b.Draw()
	}
}

func (b *Bubble) hideCloseButtonChanged() {
	display := ""
	if b.store.Bool(OptHideCloseButton) {
		display = "none"
	}
	b.closeEl.Set(PropDisplay, display)
}

func (b *Bubble) closeSrcChanged() {
	b.closeEl.Set(PropSrc, b.store.String(OptCloseSrc))
}

func (b *Bubble) backgroundClassNameChanged() {
	if b.bgClass != "" {
		b.content.RemoveClass(b.bgClass)
	}
	b.bgClass = b.store.String(OptBackgroundClassName)
	if b.bgClass != "" {
		b.content.AddClass(b.bgClass)
	}
}

func (b *Bubble) backgroundColorChanged() {
	color := b.store.String(OptBackgroundColor)
	b.container.Set(PropBackgroundColor, color)
	b.arrow.Set(PropBackgroundColor, color)
	b.updateTabStyles()
}

func (b *Bubble) borderColorChanged() {
	color := b.store.String(OptBorderColor)
	b.container.Set(PropBorderColor, color)
	b.arrow.Set(PropBorderColor, color)
	b.updateTabStyles()
}

func (b *Bubble) borderRadiusChanged() {
	radius := b.store.Int(OptBorderRadius)
	width := b.store.Int(OptBorderWidth)
	b.container.Set(PropBorderRadius, px(radius))
	b.shadow.Set(PropBorderRadius, px(radius))
	b.tabStrip.Set(PropPaddingLeft, px(radius+width))
	b.tabStrip.Set(PropPaddingRight, px(radius+width))
	b.Redraw()
}

func (b *Bubble) borderWidthChanged() {
	width := b.store.Int(OptBorderWidth)
	b.container.Set(PropBorderWidth, px(width))
	b.tabStrip.Set(PropTop, px(width))
	b.updateArrowStyle()
	b.updateTabStyles()
	b.borderRadiusChanged()
	b.Redraw()
}

func (b *Bubble) paddingChanged() {
	b.container.Set(PropPadding, px(b.store.Int(OptPadding)))
	b.updateTabStyles()
	b.Redraw()
}

func (b *Bubble) updateArrowStyle() {
	width := b.store.Int(OptBorderWidth)
	size := b.store.Int(OptArrowSize)
	b.arrow.Set(PropArrowStyle, itoa(b.store.Int(OptArrowStyle)))
	b.arrow.Set(PropHeight, px(size))
	b.arrow.Set(PropBorderWidth, px(width))
	b.arrow.Set(PropMarginTop, px(-width))
}

// updateTabStyles restyles every tab at rest and then raises the active one.
func (b *Bubble) updateTabStyles() {
	if b.tabs.Len() == 0 {
		return
	}
	stale := b.tabClass
	for _, t := range b.tabs.tabs {
		b.setTabStyle(t, stale)
	}
	b.tabClass = b.store.String(OptTabClassName)
	if t := b.tabs.Active(); t != nil {
		b.raise(t)
	}
}

// setTabStyle applies the resting style to t, replacing the stale class name.
func (b *Bubble) setTabStyle(t *Tab, stale string) {
	el := t.element
	if el == nil {
		return
	}
	padding := b.store.Int(OptPadding)
	radius := b.store.Int(OptBorderRadius)
	width := b.store.Int(OptBorderWidth)

	el.Set(PropBackgroundColor, b.store.String(OptBackgroundColor))
	el.Set(PropBorderColor, b.store.String(OptBorderColor))
	el.Set(PropBorderWidth, px(width))
	el.Set(PropBorderBottomWidth, px(width))
	el.Set(PropBorderRadius, px(radius))
	el.Set(PropPaddingTop, px(padding/2))
	el.Set(PropPaddingBottom, px(padding/2))
	el.Set(PropPaddingLeft, px(padding))
	el.Set(PropPaddingRight, px(padding))
	el.Set(PropMarginRight, px(-max(padding, radius)))
	el.Set(PropZIndex, itoa(b.base-t.Index))

	if stale != "" {
		el.RemoveClass(stale)
	}
	if name := b.store.String(OptTabClassName); name != "" {
		el.AddClass(name)
	}
}

// rest returns t to its resting style.
func (b *Bubble) rest(t *Tab) {
	if t == nil || t.element == nil {
		return
	}
	t.element.Set(PropZIndex, itoa(b.base-t.Index))
	t.element.Set(PropPaddingBottom, px(b.store.Int(OptPadding)/2))
	t.element.Set(PropBorderBottomWidth, px(b.store.Int(OptBorderWidth)))
}

// raise lifts t above its siblings and opens its bottom edge into the
// content area.
func (b *Bubble) raise(t *Tab) {
	if t.element == nil {
		return
	}
	t.element.Set(PropZIndex, itoa(b.base))
	t.element.Set(PropBorderBottomWidth, px(0))
	t.element.Set(PropPaddingBottom, px(b.store.Int(OptPadding)/2+b.store.Int(OptBorderWidth)))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
