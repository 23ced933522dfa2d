package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// searchNext moves to the next listed alarm containing query, wrapping at the end.
// With inclusive set the current row counts as a match.
func (m *model) searchNext(query string, inclusive bool) tea.Cmd {
	return m.search(query, 1, inclusive)
}

func (m *model) searchPrev(query string) tea.Cmd {
	return m.search(query, -1, false)
}

func (m *model) search(query string, dir int, inclusive bool) tea.Cmd {
	q := strings.ToLower(strings.TrimSpace(query))
	n := len(m.data.filteredIndices)
	if q == "" || n == 0 {
		return nil
	}
	start := m.cursor
	if start < 0 {
		start = 0
	}
	for step := 0; step < n; step++ {
		if step == 0 && !inclusive {
			continue
		}
		i := ((start+dir*step)%n + n) % n
		row := m.data.rows[m.data.filteredIndices[i]]
		if strings.Contains(strings.ToLower(row.String()), q) {
			m.cursor = i
			return nil
		}
	}
	if !inclusive {
		// the only match may be the current row
		row := m.data.rows[m.data.filteredIndices[start]]
		if strings.Contains(strings.ToLower(row.String()), q) {
			return nil
		}
	}
	return m.notify(noticeWarn, "No match for "+query)
}
