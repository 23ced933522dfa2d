package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-trend/alarms"
	"github.com/andareed/siftly-trend/logging"
)

func (m *model) setAlarmFilter(text string) tea.Cmd {
	logging.Infof("Setting alarm filter to: %s", text)
	q, err := alarms.ParseQuery(text)
	if err != nil {
		return m.notify(noticeError, err.Error())
	}
	m.data.query = q
	m.applyFilter()
	if len(m.data.filteredIndices) == 0 && m.sess.Alarms().Len() > 0 {
		return m.notify(noticeWarn, "No alarms match "+q.String())
	}
	return nil
}

func (m *model) clearAlarmFilter() {
	m.data.query = alarms.Query{}
	m.applyFilter()
}

// activeQuery merges the typed filter with the date range drawer.
func (m *model) activeQuery() alarms.Query {
	q := m.data.query
	q.Start, q.End = m.data.alarmRange.Start, m.data.alarmRange.End
	return q
}

// applyFilter rebuilds filteredIndices and keeps the cursor on the same alarm when it survives.
func (m *model) applyFilter() {
	table := m.sess.Alarms()
	keep := -1
	if m.cursor >= 0 && m.cursor < len(m.data.filteredIndices) {
		keep = m.data.filteredIndices[m.cursor]
	}

	m.data.filteredIndices = table.Filter(m.activeQuery())
	table.Sort(m.data.filteredIndices, m.data.order)

	m.cursor = 0
	for i, idx := range m.data.filteredIndices {
		if idx == keep {
			m.cursor = i
			break
		}
	}
	if len(m.data.filteredIndices) == 0 {
		m.cursor = -1
	}
	logging.Debugf("applyFilter: %d of %d alarms, %s", len(m.data.filteredIndices), table.Len(), m.data.order)
	m.refreshView("alarm-filter", true)
}

func (m *model) toggleSort(c alarms.Column) {
	m.data.order = m.data.order.Toggle(c)
	m.applyFilter()
}
