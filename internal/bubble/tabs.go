package bubble

// Tab is one entry of a bubble's tab strip.
type Tab struct {
	Label   string
	Content Content
	// Index is the tab's current position in the strip.
	Index int

	element Element
	click   Listener
}

// TabInfo is a read-only view of a tab.
type TabInfo struct {
	Label  string
	Index  int
	Active bool
}

// TabRegistry keeps tabs in order and tracks the single active tab. It holds
// no rendering state of its own.
type TabRegistry struct {
	tabs   []*Tab
	active *Tab
}

func (r *TabRegistry) Len() int {
	return len(r.tabs)
}

// Get returns the tab at i, or nil when i is out of range.
func (r *TabRegistry) Get(i int) *Tab {
	if i < 0 || i >= len(r.tabs) {
		return nil
	}
	return r.tabs[i]
}

func (r *TabRegistry) Active() *Tab {
	return r.active
}

// ActiveIndex returns the index of the active tab, -1 when none is active.
func (r *TabRegistry) ActiveIndex() int {
	if r.active == nil {
		return -1
	}
	return r.active.Index
}

// Tabs returns the tabs in order. The slice is a copy.
func (r *TabRegistry) Tabs() []*Tab {
	out := make([]*Tab, len(r.tabs))
	copy(out, r.tabs)
	return out
}

// Add appends a tab. The first tab added to an empty selection becomes
// active, which is reported by the second result.
func (r *TabRegistry) Add(label string, content Content) (*Tab, bool) {
	t := &Tab{Label: label, Content: content, Index: len(r.tabs)}
	r.tabs = append(r.tabs, t)
	if r.active == nil {
		r.active = t
		return t, true
	}
	return t, false
}

// Activate makes tab i active and returns the previously active tab.
// ok is false when i is out of range.
func (r *TabRegistry) Activate(i int) (prev, next *Tab, ok bool) {
	t := r.Get(i)
	if t == nil {
		return nil, nil, false
	}
	return r.setActive(t), t, true
}

// setActive makes t active (nil clears the selection) and returns the
// previously active tab.
func (r *TabRegistry) setActive(t *Tab) *Tab {
	prev := r.active
	r.active = t
	return prev
}

// Update changes the label and/or content of tab i in place. nil arguments
// leave the field untouched.
func (r *TabRegistry) Update(i int, label *string, content *Content) (*Tab, bool) {
	t := r.Get(i)
	if t == nil {
		return nil, false
	}
	if label != nil {
		t.Label = *label
	}
	if content != nil {
		t.Content = *content
	}
	return t, true
}

// Remove deletes tab i and renumbers the rest. When the removed tab was
// active, the tab now at i becomes active, else the one at i-1, else none;
// next holds the new selection in that case.
func (r *TabRegistry) Remove(i int) (removed, next *Tab, wasActive, ok bool) {
	removed = r.Get(i)
	if removed == nil {
		return nil, nil, false, false
	}
	r.tabs = append(r.tabs[:i], r.tabs[i+1:]...)
	for n, t := range r.tabs {
		t.Index = n
	}
	if removed != r.active {
		return removed, nil, false, true
	}
	switch {
	case i < len(r.tabs):
		next = r.tabs[i]
	case i-1 >= 0:
		next = r.tabs[i-1]
	}
	r.active = next
	return removed, next, true, true
}

// Info returns a snapshot of the tabs.
func (r *TabRegistry) Info() []TabInfo {
	out := make([]TabInfo, len(r.tabs))
	for i, t := range r.tabs {
		out[i] = TabInfo{Label: t.Label, Index: t.Index, Active: t == r.active}
	}
	return out
}
