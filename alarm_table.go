package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/andareed/siftly-trend/logging"
)

// monochrome reports a terminal without colour, where the selected row is
// shown in reverse video instead of a background.
func monochrome() bool {
	return lipgloss.ColorProfile() == termenv.Ascii
}

// rowBase is the style every cell of listed row pos starts from.
func (m *model) rowBase(pos int) lipgloss.Style {
	if pos != m.cursor {
		return rowStyle
	}
	if monochrome() {
		return rowStyle.Reverse(true)
	}
	return rowSelectedStyle
}

// gutterWidth is the space left of the cells: trip pill plus line number.
func gutterWidth(lastLine int) int {
	return lipgloss.Width(pillMarker) + len(strconv.Itoa(lastLine))
}

func (m *model) lastLine() int {
	if n := len(m.data.rows); n > 0 {
		return m.data.rows[n-1].line
	}
	return 0
}

func (m *model) headerView() string {
	var cells []string
	for _, col := range m.data.header {
		if !col.Visible || col.Width <= 0 {
			continue
		}
		name := col.Name
		if o := m.data.order; o.Active && o.Column == col.Column {
			if o.Descending {
				name += " ▼"
			} else {
				name += " ▲"
			}
		}
		cells = append(cells, cellStyle.Width(col.Width).Render(name))
	}
	gutter := strings.Repeat(" ", gutterWidth(m.lastLine()))
	return headerStyle.Render(gutter + lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}

// renderAlarm lays out listed row pos with its gutter. The height is the
// number of terminal lines the wrapped cells take.
func (m *model) renderAlarm(pos int) (string, int) {
	row := &m.data.rows[m.data.filteredIndices[pos]]
	base := m.rowBase(pos)

	var cells []string
	for i, col := range m.data.header {
		if !col.Visible || col.Width <= 0 || i >= len(row.cols) {
			continue
		}
		style := cellStyle.Inherit(base).Width(col.Width)
		text := row.cols[i]
		if m.ui.searchQuery != "" {
			text = highlight(text, m.ui.searchQuery, base)
		}
		cells = append(cells, style.Render(text))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	row.height = lipgloss.Height(body)

	marker := defaultMarker
	if row.trip {
		marker = tripMarker.Render(pillMarker)
	}
	numW := gutterWidth(m.lastLine()) - lipgloss.Width(pillMarker)
	gutter := make([]string, row.height)
	gutter[0] = marker + base.Render(lipgloss.PlaceHorizontal(numW, lipgloss.Right, strconv.Itoa(row.line)))
	for i := 1; i < row.height; i++ {
		gutter[i] = marker + base.Render(strings.Repeat(" ", numW))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(gutter, "\n"), body), row.height
}

// highlight styles the case-insensitive matches of query in text, leaving
// the rest in base.
func highlight(text, query string, base lipgloss.Style) string {
	idx := matchRunes(text, query)
	if len(idx) == 0 {
		return text
	}
	return lipgloss.StyleRunes(text, idx, searchHighlight, base)
}

// matchRunes lists the rune positions of text covered by a match of query.
func matchRunes(text, query string) []int {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(q) == 0 {
		return nil
	}
	t := []rune(text)
	var out []int
	for i := 0; i+len(q) <= len(t); {
		if strings.EqualFold(string(t[i:i+len(q)]), string(q)) {
			for j := range q {
				out = append(out, i+j)
			}
			i += len(q)
			continue
		}
		i++
	}
	return out
}

// visibleWindow picks the listed rows that fit in height lines around the
// cursor, half the spare lines above it once there is enough history.
func visibleWindow(n, cursor, height int, rowHeight func(int) int) (first, last int) {
	if n == 0 || cursor < 0 || cursor >= n {
		return 0, -1
	}
	first, last = cursor, cursor
	free := height - rowHeight(cursor)
	want := max(0, free/2)
	above := 0
	for free > 0 {
		switch {
		case first > 0 && above < want && rowHeight(first-1) <= free:
			first--
			above += rowHeight(first)
			free -= rowHeight(first)
		case last < n-1 && rowHeight(last+1) <= free:
			last++
			free -= rowHeight(last)
		case first > 0 && rowHeight(first-1) <= free:
			first--
			free -= rowHeight(first)
		default:
			return first, last
		}
	}
	return first, last
}

// renderAlarmTable fills the table viewport around the cursor.
func (m *model) renderAlarmTable() string {
	n := len(m.data.filteredIndices)
	if n == 0 || m.cursor < 0 {
		return ""
	}
	m.cursor = min(m.cursor, n-1)

	rendered := map[int]string{}
	heights := map[int]int{}
	height := func(pos int) int {
		if h, ok := heights[pos]; ok {
			return h
		}
		rendered[pos], heights[pos] = m.renderAlarm(pos)
		return heights[pos]
	}
	first, last := visibleWindow(n, m.cursor, m.viewport.Height, height)
	m.ui.visibleStart, m.ui.visibleEnd = first, last
	m.pageRowSize = last - first + 1
	logging.Debugf("alarm table rows %d-%d of %d", first, last, n)

	lines := make([]string, 0, m.pageRowSize)
	for pos := first; pos <= last; pos++ {
		lines = append(lines, rendered[pos])
	}
	return strings.Join(lines, "\n")
}

func (m *model) alarmTableBody() string {
	switch {
	case m.sess.Alarms() == nil:
		return placeholder(m.viewport.Width, m.viewport.Height, "No alarm file loaded. Press o to open one or pass --alarms.")
	case len(m.data.filteredIndices) == 0:
		return placeholder(m.viewport.Width, m.viewport.Height, "No alarms match the current filter.")
	}
	return m.viewport.View()
}
