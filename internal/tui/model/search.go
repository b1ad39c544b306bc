package model

import (
	"github.com/sahilm/fuzzy"
)

type markerSource []*Marker

func (s markerSource) String(i int) string { return s[i].Def.Name }
func (s markerSource) Len() int            { return len(s) }

// UpdateSearch matches the search input against marker names. An empty
// query lists every marker.
func (m *Model) UpdateSearch() {
	query := m.SearchInput.Value()
	if query == "" {
		m.SearchMatches = make(fuzzy.Matches, len(m.Markers))
		for i, mk := range m.Markers {
			m.SearchMatches[i] = fuzzy.Match{Str: mk.Def.Name, Index: i}
		}
	} else {
		m.SearchMatches = fuzzy.FindFrom(query, markerSource(m.Markers))
	}
	m.SearchCursor = min(max(m.SearchCursor, 0), max(len(m.SearchMatches)-1, 0))
}

// MoveSearchCursor moves the highlighted match by delta.
func (m *Model) MoveSearchCursor(delta int) {
	if len(m.SearchMatches) == 0 {
		m.SearchCursor = 0
		return
	}
	m.SearchCursor = min(max(m.SearchCursor+delta, 0), len(m.SearchMatches)-1)
}

// SearchSelection returns the marker index under the cursor, -1 if none.
func (m *Model) SearchSelection() int {
	if m.SearchCursor < 0 || m.SearchCursor >= len(m.SearchMatches) {
		return -1
	}
	return m.SearchMatches[m.SearchCursor].Index
}
