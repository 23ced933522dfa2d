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

// screenRange is the date range narrowing the active screen. Zero is open.
func (m *model) screenRange() trend.DateRange {
	if m.ui.screen == screenAlarms {
		return m.data.alarmRange
	}
	return m.sess.DateRange()
}

// screenExtent is the first and last timestamp of the data behind the active screen.
func (m *model) screenExtent() (time.Time, time.Time, bool) {
	if m.ui.screen == screenAlarms {
		return m.sess.Alarms().Bounds()
	}
	return m.sess.Dataset().Bounds()
}

func (m *model) openRangeDrawer() {
	lo, hi, _ := m.screenExtent()
	m.ui.ranges.show(m.ui.screen, lo, hi, m.screenRange())
	m.ui.mode = modeRange
	m.resize()
}

func (m *model) closeRangeDrawer() {
	m.ui.ranges.hide()
	m.ui.mode = modeView
	m.resize()
}

func (m *model) handleRangeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.ui.ranges.update(msg)
	switch action {
	case rangeApply:
		return m, m.applyRange()
	case rangeClear:
		return m, m.clearRange()
	case rangeCancel:
		m.closeRangeDrawer()
	}
	return m, cmd
}

// applyRange hands the drawer selection to the trend session or the alarm list.
func (m *model) applyRange() tea.Cmd {
	d := &m.ui.ranges
	r, err := d.selection()
	if err != nil {
		d.err = err
		return nil
	}

	if d.target == screenTrend {
		if err := m.sess.Apply(session.SetDateRange{Range: r}); err != nil {
			if errors.Is(err, session.ErrInvertedRange) {
				err = errStartAfterEnd
			}
			d.err = err
			return nil
		}
	} else {
		m.data.alarmRange = r
		m.applyFilter()
	}
	logging.Debugf("date range %s..%s applied to %s", timestamp.Format(r.Start), timestamp.Format(r.End), d.target)
	m.closeRangeDrawer()

	if d.target == screenTrend && m.sess.View().Empty() && len(m.sess.Tags()) > 0 {
		return m.notify(noticeWarn, "No points in the selected range")
	}
	return nil
}

// clearRange reopens the full extent. On the trend it also drops the zoom.
func (m *model) clearRange() tea.Cmd {
	d := &m.ui.ranges
	if !d.hasExtent() {
		d.err = errNoExtent
		return nil
	}
	d.err = nil
	d.from, d.to = d.extent.Start, d.extent.End
	d.writeInputs()

	if d.target == screenTrend {
		if err := m.sess.Apply(session.SetDateRange{ResetZoom: true}); err != nil {
			d.err = err
			return nil
		}
	} else {
		m.data.alarmRange = trend.DateRange{}
		m.applyFilter()
	}
	return m.notify(noticeInfo, "Date range cleared")
}

// rangeStatusLabel describes the range narrowing the active screen.
func (m *model) rangeStatusLabel() string {
	r := m.screenRange()
	if r.IsOpen() {
		return "Range: all"
	}
	return fmt.Sprintf("Range: %s - %s", timestamp.Format(r.Start), timestamp.Format(r.End))
}
