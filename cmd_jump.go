package main

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-trend/logging"
	"github.com/andareed/siftly-trend/session"
	"github.com/andareed/siftly-trend/timestamp"
	"github.com/andareed/siftly-trend/trend"
)

func (m *model) checkViewPortHasData() bool {
	return len(m.data.filteredIndices) > 0
}

func (m *model) jumpToStart() {
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = 0
}

func (m *model) jumpToEnd() {
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = len(m.data.filteredIndices) - 1
}

// jumpToLine moves the alarm cursor to the row loaded from file line lineNo.
func (m *model) jumpToLine(lineNo int) tea.Cmd {
	logging.Debugf("jumpToLine %d", lineNo)
	if !m.checkViewPortHasData() {
		return nil
	}
	for i, idx := range m.data.filteredIndices {
		if m.data.rows[idx].line == lineNo {
			m.cursor = i
			return nil
		}
	}
	// skipped rows leave gaps, so a line is only known once a row carries it
	for _, row := range m.data.rows {
		if row.line == lineNo {
			return m.notify(noticeWarn, fmt.Sprintf("Line %d not in current filter", lineNo))
		}
	}
	return m.notify(noticeWarn, fmt.Sprintf("Line %d not loaded", lineNo))
}

// jumpToAlarmTime moves to the first listed alarm at or after the typed instant.
func (m *model) jumpToAlarmTime(text string) tea.Cmd {
	at, ok := m.parser.Parse(text)
	if !ok {
		return m.notify(noticeWarn, "Invalid time "+text)
	}
	table := m.sess.Alarms()
	if table == nil || !m.checkViewPortHasData() {
		return m.notify(noticeWarn, "No alarms loaded")
	}
	best := -1
	for i, idx := range m.data.filteredIndices {
		r := table.Records[idx]
		if r.Instant.Before(at) {
			continue
		}
		if best < 0 || r.Instant.Before(table.Records[m.data.filteredIndices[best]].Instant) {
			best = i
		}
	}
	if best < 0 {
		return m.notify(noticeWarn, "No alarm at or after "+timestamp.Format(at))
	}
	m.cursor = best
	return nil
}

// pinAtText pins the trend cursor at the filtered point nearest the typed instant.
func (m *model) pinAtText(text string) tea.Cmd {
	at, ok := m.parser.Parse(text)
	if !ok {
		return m.notify(noticeWarn, "Invalid time "+text)
	}
	return m.pinCursor(at)
}

// stepCursor moves the pinned cursor to the neighbouring filtered point.
func (m *model) stepCursor(delta int) tea.Cmd {
	cur := m.sess.Cursor()
	view := m.sess.View()
	if !cur.Pinned || view.Empty() {
		return nil
	}
	i, err := trend.Nearest(view.Timestamps, cur.Instant)
	if err != nil {
		return nil
	}
	i = clamp(i+delta, 0, view.Len()-1)
	return m.pinCursor(view.Timestamps[i])
}

func (m *model) pinCursor(at time.Time) tea.Cmd {
	if err := m.sess.Apply(session.PinAt{Instant: at}); err != nil {
		if errors.Is(err, session.ErrNothingPlotted) {
			return m.notify(noticeWarn, "Add a tag before pinning the cursor")
		}
		return m.notify(noticeError, err.Error())
	}
	logging.Debugf("cursor pinned near %s", timestamp.Format(at))
	return nil
}
