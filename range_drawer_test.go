package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/siftly-trend/timestamp"
	"github.com/andareed/siftly-trend/trend"
)

var day = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func openDrawer(current trend.DateRange) rangeDrawer {
	d := newRangeDrawer(timestamp.Parser{Location: time.UTC})
	d.show(screenTrend, day, day.Add(24*time.Hour), current)
	return d
}

func TestRangeDrawerOpensOnCurrentRange(t *testing.T) {
	d := openDrawer(trend.DateRange{Start: day.Add(6 * time.Hour)})

	assert.Equal(t, "2024-05-01 06:00:00", d.start.Value())
	assert.Equal(t, "2024-05-02 00:00:00", d.end.Value())
	assert.Equal(t, rangeFocusStart, d.focus)
	assert.NoError(t, d.err)
}

func TestRangeDrawerWithoutData(t *testing.T) {
	d := newRangeDrawer(timestamp.Parser{Location: time.UTC})
	d.show(screenAlarms, time.Time{}, time.Time{}, trend.DateRange{})

	assert.ErrorIs(t, d.err, errNoExtent)
	_, err := d.selection()
	assert.ErrorIs(t, err, errNoExtent)
}

func TestRangeDrawerSelectionClampsToExtent(t *testing.T) {
	d := openDrawer(trend.DateRange{})
	d.start.SetValue("2024-04-30 12:00:00")
	d.end.SetValue("2024-05-01 08:00:00")

	r, err := d.selection()
	require.NoError(t, err)
	assert.Equal(t, day, r.Start)
	assert.Equal(t, day.Add(8*time.Hour), r.End)
}

func TestRangeDrawerSelectionErrors(t *testing.T) {
	d := openDrawer(trend.DateRange{})

	d.start.SetValue("soon")
	_, err := d.selection()
	assert.ErrorIs(t, err, errBadStart)

	d.start.SetValue("2024-05-01 10:00:00")
	d.end.SetValue("2024-05-01 09:00:00")
	_, err = d.selection()
	assert.ErrorIs(t, err, errStartAfterEnd)
}

func TestRangeDrawerShiftStopsAtExtent(t *testing.T) {
	d := openDrawer(trend.DateRange{Start: day.Add(20 * time.Hour), End: day.Add(22 * time.Hour)})

	d.shift(time.Hour)
	assert.Equal(t, day.Add(21*time.Hour), d.from)
	assert.Equal(t, day.Add(23*time.Hour), d.to)

	d.shift(6 * time.Hour)
	assert.Equal(t, day.Add(22*time.Hour), d.from)
	assert.Equal(t, day.Add(24*time.Hour), d.to)
	assert.Equal(t, "2024-05-01 22:00:00", d.start.Value())
}

func TestRangeDrawerWiden(t *testing.T) {
	d := openDrawer(trend.DateRange{Start: day.Add(time.Hour), End: day.Add(2 * time.Hour)})

	d.widen(-2 * time.Hour)
	assert.Equal(t, day, d.from)
	d.widen(time.Hour)
	assert.Equal(t, day.Add(3*time.Hour), d.to)
}

func TestRangeDrawerStepBounds(t *testing.T) {
	d := openDrawer(trend.DateRange{})
	for i := 0; i < 10; i++ {
		d.scaleStep(true)
	}
	assert.Equal(t, maxScrubStep, d.step)
	for i := 0; i < 10; i++ {
		d.scaleStep(false)
	}
	assert.Equal(t, minScrubStep, d.step)
	assert.Equal(t, "15m", stepLabel(d.step))
	assert.Equal(t, "2h", stepLabel(2*time.Hour))
}

func TestRangeDrawerKeys(t *testing.T) {
	d := openDrawer(trend.DateRange{})

	act, _ := d.update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, rangeKeep, act)
	assert.Equal(t, rangeFocusEnd, d.focus)

	d.update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, rangeFocusScrubber, d.focus)
	act, _ = d.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Equal(t, rangeClear, act)

	act, _ = d.update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, rangeApply, act)
	act, _ = d.update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, rangeCancel, act)
}

func TestApplyRangeNarrowsTrend(t *testing.T) {
	m := testModel(t)
	loadTrend(t, m, trendCSV)
	m.openRangeDrawer()
	m.ui.ranges.start.SetValue("2024-05-01 01:00:00")
	m.ui.ranges.end.SetValue("2024-05-01 02:00:00")

	m.applyRange()
	assert.False(t, m.ui.ranges.open)
	assert.Equal(t, modeView, m.ui.mode)
	assert.Equal(t, "Range: 2024-05-01 01:00:00 - 2024-05-01 02:00:00", m.rangeStatusLabel())

	m.openRangeDrawer()
	m.clearRange()
	assert.True(t, m.sess.DateRange().IsOpen())
	assert.Equal(t, "Range: all", m.rangeStatusLabel())
}

func TestApplyRangeOnAlarmScreen(t *testing.T) {
	m := testModel(t)
	loadAlarms(t, m, alarmCSV)
	m.ui.screen = screenAlarms
	m.openRangeDrawer()
	m.ui.ranges.start.SetValue("2024-05-01 02:00:00")
	m.ui.ranges.end.SetValue("2024-05-01 04:00:00")

	m.applyRange()
	assert.Equal(t, []string{"XMV(10)", "XMEAS(7)"}, listedTags(m))
	assert.True(t, m.sess.DateRange().IsOpen(), "the trend range is untouched")
}

func TestApplyRangeKeepsDrawerOnError(t *testing.T) {
	m := testModel(t)
	loadTrend(t, m, trendCSV)
	m.openRangeDrawer()
	m.ui.ranges.end.SetValue("2024-05-01 xx")

	m.applyRange()
	assert.True(t, m.ui.ranges.open)
	assert.ErrorIs(t, m.ui.ranges.err, errBadEnd)
	assert.Contains(t, m.ui.ranges.view(100), "invalid end time")
}
