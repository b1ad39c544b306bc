package bubble

import "infobubble/pkg/logging"

// AddTab appends a tab. The first tab becomes active and its content is
// shown.
func (b *Bubble) AddTab(label string, content Content) {
	t, first := b.tabs.Add(label, content)

	el := b.renderer.Create(KindTab)
	el.SetMarkup(label)
	t.element = el
	b.setTabStyle(t, "")
	t.click = b.host.Listen(el, EventClick, func(Event) {
		b.activate(t)
	})
	b.tabStrip.Append(el)

	if first {
		b.show(nil, t)
	}
	el.AddClass(b.animation)
	b.Redraw()
}

// SetTabActive activates the tab at index. Out of range indexes are ignored.
func (b *Bubble) SetTabActive(index int) {
	t := b.tabs.Get(index)
	if t == nil {
		logging.Debug("Bubble", "no tab at index %d", index)
		return
	}
	b.activate(t)
}

// activate makes t the active tab. nil clears the content.
func (b *Bubble) activate(t *Tab) {
	prev := b.tabs.setActive(t)
	b.show(prev, t)
}

// show restores prev to rest, raises t and publishes its content.
func (b *Bubble) show(prev, t *Tab) {
	if t == nil {
		b.store.Set(OptContent, Content{})
		b.publish()
		return
	}
	if prev != nil && prev != t {
		b.rest(prev)
	}
	b.raise(t)
	b.store.Set(OptContent, t.Content)
	b.publish()
	b.Redraw()
}

// UpdateTab changes the label and/or content of the tab at index. nil
// arguments keep the current value. The content is shown again when the tab
// is active.
func (b *Bubble) UpdateTab(index int, label *string, content *Content) {
	t, ok := b.tabs.Update(index, label, content)
	if !ok {
		return
	}
	if label != nil && t.element != nil {
		t.element.SetMarkup(*label)
	}
	if t == b.tabs.Active() {
		b.store.Set(OptContent, t.Content)
		b.publish()
	}
	b.Redraw()
}

// RemoveTab deletes the tab at index. When it was active, the tab taking its
// place becomes active, else the previous one.
func (b *Bubble) RemoveTab(index int) {
	removed, next, wasActive, ok := b.tabs.Remove(index)
	if !ok {
		return
	}
	if removed.element != nil {
		removed.element.Detach()
	}
	if removed.click != nil {
		removed.click.Remove()
		removed.click = nil
	}
	if wasActive {
		b.show(nil, next)
	}
	b.Redraw()
}

// Tabs returns a snapshot of the tab strip.
func (b *Bubble) Tabs() []TabInfo {
	return b.tabs.Info()
}

// ActiveTab returns the index of the active tab, -1 when there is none.
func (b *Bubble) ActiveTab() int {
	return b.tabs.ActiveIndex()
}

// TabElement returns the label element of the tab at index, nil when out of
// range.
func (b *Bubble) TabElement(index int) Element {
	if t := b.tabs.Get(index); t != nil {
		return t.element
	}
	return nil
}
