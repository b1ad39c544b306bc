package bubble

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeTabs(t *testing.T) *TabRegistry {
	t.Helper()
	r := &TabRegistry{}
	for _, label := range []string{"a", "b", "c"} {
		r.Add(label, Markup(label))
	}
	require.Equal(t, 3, r.Len())
	return r
}

func labels(r *TabRegistry) []string {
	var out []string
	for _, t := range r.Tabs() {
		out = append(out, t.Label)
	}
	return out
}

func TestTabRegistry_AddActivatesFirst(t *testing.T) {
	r := &TabRegistry{}

	first, activated := r.Add("one", Markup("1"))
	assert.True(t, activated)
	assert.Same(t, first, r.Active())

	second, activated := r.Add("two", Markup("2"))
	assert.False(t, activated)
	assert.Equal(t, 1, second.Index)
	assert.Same(t, first, r.Active())
}

func TestTabRegistry_RemoveActive(t *testing.T) {
	tests := []struct {
		name       string
		remove     int
		wantActive string
		wantLabels []string
	}{
		{name: "first picks the tab taking its place", remove: 0, wantActive: "b", wantLabels: []string{"b", "c"}},
		{name: "middle picks the tab taking its place", remove: 1, wantActive: "c", wantLabels: []string{"a", "c"}},
		{name: "last falls back to the previous tab", remove: 2, wantActive: "b", wantLabels: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := threeTabs(t)
			_, _, ok := r.Activate(tt.remove)
			require.True(t, ok)

			removed, next, wasActive, ok := r.Remove(tt.remove)

			require.True(t, ok)
			assert.True(t, wasActive)
			assert.NotNil(t, removed)
			require.NotNil(t, next)
			assert.Equal(t, tt.wantActive, next.Label)
			assert.Same(t, next, r.Active())
			assert.Equal(t, tt.wantLabels, labels(r))
			for i, tab := range r.Tabs() {
				assert.Equal(t, i, tab.Index)
			}
		})
	}
}

func TestTabRegistry_RemoveLastRemainingClearsSelection(t *testing.T) {
	r := &TabRegistry{}
	r.Add("only", Markup("x"))

	_, next, wasActive, ok := r.Remove(0)

	assert.True(t, ok)
	assert.True(t, wasActive)
	assert.Nil(t, next)
	assert.Nil(t, r.Active())
	assert.Equal(t, -1, r.ActiveIndex())
}

func TestTabRegistry_RemoveInactiveKeepsSelection(t *testing.T) {
	r := threeTabs(t)
	r.Activate(2)

	_, next, wasActive, ok := r.Remove(0)

	assert.True(t, ok)
	assert.False(t, wasActive)
	assert.Nil(t, next)
	assert.Equal(t, "c", r.Active().Label)
	assert.Equal(t, 1, r.ActiveIndex())
}

func TestTabRegistry_OutOfRangeIsNoop(t *testing.T) {
	r := threeTabs(t)
	label := "z"

	for _, i := range []int{-1, 3, 10} {
		_, _, _, ok := r.Remove(i)
		assert.False(t, ok)
		_, ok = r.Update(i, &label, nil)
		assert.False(t, ok)
		_, _, ok = r.Activate(i)
		assert.False(t, ok)
	}
	assert.Equal(t, []string{"a", "b", "c"}, labels(r))
	assert.Equal(t, 0, r.ActiveIndex())
}

func TestTabRegistry_UpdateInPlace(t *testing.T) {
	r := threeTabs(t)
	label := "B"
	content := Markup("<b>bee</b>")

	tab, ok := r.Update(1, &label, nil)
	require.True(t, ok)
	assert.Equal(t, "B", tab.Label)
	assert.Equal(t, "b", tab.Content.Markup())

	tab, ok = r.Update(1, nil, &content)
	require.True(t, ok)
	assert.Equal(t, "B", tab.Label)
	assert.Equal(t, "<b>bee</b>", tab.Content.Markup())
}

func TestTabRegistry_RandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		r := &TabRegistry{}
		for step := 0; step < 40; step++ {
			n := r.Len()
			switch rng.Intn(4) {
			case 0, 1:
				r.Add("t", Markup("c"))
			case 2:
				r.Remove(rng.Intn(n+2) - 1)
			case 3:
				r.Activate(rng.Intn(n+2) - 1)
			}

			active := 0
			for i, tab := range r.Tabs() {
				require.Equal(t, i, tab.Index)
				if tab == r.Active() {
					active++
				}
			}
			require.LessOrEqual(t, active, 1)
			if r.Len() > 0 {
				require.Equal(t, 1, active, "a non-empty registry always has a selection")
			} else {
				require.Nil(t, r.Active())
			}
		}
	}
}

func TestTabRegistry_Info(t *testing.T) {
	r := threeTabs(t)
	r.Activate(1)

	assert.Equal(t, []TabInfo{
		{Label: "a", Index: 0},
		{Label: "b", Index: 1, Active: true},
		{Label: "c", Index: 2},
	}, r.Info())
}
