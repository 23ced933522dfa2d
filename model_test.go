package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/siftly-trend/alarms"
	"github.com/andareed/siftly-trend/config"
	"github.com/andareed/siftly-trend/dialogs"
	"github.com/andareed/siftly-trend/session"
	"github.com/andareed/siftly-trend/source"
	"github.com/andareed/siftly-trend/timestamp"
	"github.com/andareed/siftly-trend/trend"
)

const alarmCSV = "Timestamp,Tag,Type,Description\n" +
	"2024-05-01 00:30:00,XMEAS(7),HH,Reactor pressure high high\n" +
	"2024-05-01 01:10:00,XMEAS(9),H,Reactor temperature high\n" +
	"2024-05-01 02:45:00,XMV(10),L,Reactor cooling water flow low\n" +
	"2024-05-01 03:05:00,XMEAS(7),LL,Reactor pressure low low\n"

const trendCSV = "Timestamp,TempC,Pressure\n" +
	"2024-05-01 00:00:00,50,100\n" +
	"2024-05-01 01:00:00,60,120\n" +
	"2024-05-01 02:00:00,55,\n" +
	"2024-05-01 03:00:00,52.5,105\n"

func testModel(t *testing.T) *model {
	t.Helper()
	cfg := config.Default()
	m := newModel(cfg)
	m.parser = timestamp.Parser{Location: time.UTC}
	m.ui.ranges = newRangeDrawer(m.parser)
	return m
}

func loadAlarms(t *testing.T, m *model, csv string) *alarms.Table {
	t.Helper()
	rows, err := source.Read(strings.NewReader(csv), "alarms.csv")
	require.NoError(t, err)
	table, _, err := alarms.FromRows(rows, m.parser)
	require.NoError(t, err)
	require.NoError(t, m.sess.Apply(session.LoadAlarms{Table: table}))
	m.setAlarmRows(table)
	return table
}

func loadTrend(t *testing.T, m *model, csv string) *trend.Dataset {
	t.Helper()
	rows, err := source.Read(strings.NewReader(csv), "trend.csv")
	require.NoError(t, err)
	ds, _, err := trend.FromRows(rows, m.parser)
	require.NoError(t, err)
	require.NoError(t, m.sess.Apply(session.LoadTrend{Dataset: ds}))
	return ds
}

func listedTags(m *model) []string {
	table := m.sess.Alarms()
	out := make([]string, 0, len(m.data.filteredIndices))
	for _, i := range m.data.filteredIndices {
		out = append(out, table.Records[i].Tag)
	}
	return out
}

func TestSetAlarmRowsListsEveryAlarm(t *testing.T) {
	m := testModel(t)
	loadAlarms(t, m, alarmCSV)

	assert.Len(t, m.data.rows, 4)
	assert.Equal(t, []int{0, 1, 2, 3}, m.data.filteredIndices)
	assert.Equal(t, 0, m.cursor)
	assert.True(t, m.data.rows[0].trip)
	assert.False(t, m.data.rows[1].trip)
}

func TestAlarmFilterByType(t *testing.T) {
	m := testModel(t)
	loadAlarms(t, m, alarmCSV)

	assert.Nil(t, m.setAlarmFilter("type=hh"))
	assert.Equal(t, []string{"XMEAS(7)"}, listedTags(m))

	m.clearAlarmFilter()
	assert.Len(t, m.data.filteredIndices, 4)
}

func TestAlarmFilterRejectsUnknownField(t *testing.T) {
	m := testModel(t)
	loadAlarms(t, m, alarmCSV)

	cmd := m.setAlarmFilter("plant=TE")
	assert.NotNil(t, cmd)
	assert.Equal(t, noticeError, m.ui.notice.level)
	assert.Len(t, m.data.filteredIndices, 4)
}

func TestAlarmFilterNoMatchWarns(t *testing.T) {
	m := testModel(t)
	loadAlarms(t, m, alarmCSV)

	cmd := m.setAlarmFilter("desc=compressor")
	assert.NotNil(t, cmd)
	assert.Equal(t, noticeWarn, m.ui.notice.level)
	assert.Empty(t, m.data.filteredIndices)
	assert.Equal(t, -1, m.cursor)
}

func TestApplyFilterKeepsCursorOnSameAlarm(t *testing.T) {
	m := testModel(t)
	loadAlarms(t, m, alarmCSV)
	m.cursor = 3 // second XMEAS(7)

	m.setAlarmFilter("XMEAS(7)")
	require.Equal(t, []int{0, 3}, m.data.filteredIndices)
	assert.Equal(t, 1, m.cursor)
}

func TestToggleSortFlipsDirection(t *testing.T) {
	m := testModel(t)
	loadAlarms(t, m, alarmCSV)

	m.toggleSort(alarms.ColumnTag)
	assert.Equal(t, []string{"XMEAS(7)", "XMEAS(7)", "XMEAS(9)", "XMV(10)"}, listedTags(m))

	m.toggleSort(alarms.ColumnTag)
	assert.Equal(t, []string{"XMV(10)", "XMEAS(9)", "XMEAS(7)", "XMEAS(7)"}, listedTags(m))
	assert.True(t, m.data.order.Descending)
}

func TestAlarmWindowNarrowsList(t *testing.T) {
	m := testModel(t)
	loadAlarms(t, m, alarmCSV)

	start, _ := m.parser.Parse("2024-05-01 01:00:00")
	end, _ := m.parser.Parse("2024-05-01 03:00:00")
	m.data.alarmRange = trend.DateRange{Start: start, End: end}
	m.applyFilter()

	assert.Equal(t, []string{"XMEAS(9)", "XMV(10)"}, listedTags(m))
}

func TestSearchWrapsAround(t *testing.T) {
	m := testModel(t)
	loadAlarms(t, m, alarmCSV)
	m.cursor = 2

	assert.Nil(t, m.searchNext("pressure", false))
	assert.Equal(t, 3, m.cursor)

	assert.Nil(t, m.searchNext("pressure", false))
	assert.Equal(t, 0, m.cursor)

	assert.Nil(t, m.searchPrev("cooling"))
	assert.Equal(t, 2, m.cursor)
}

func TestSearchNoMatchWarns(t *testing.T) {
	m := testModel(t)
	loadAlarms(t, m, alarmCSV)

	assert.NotNil(t, m.searchNext("compressor", true))
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, noticeWarn, m.ui.notice.level)
}

func TestJumpToAlarmTime(t *testing.T) {
	m := testModel(t)
	loadAlarms(t, m, alarmCSV)

	assert.Nil(t, m.jumpToAlarmTime("2024-05-01 01:00:00"))
	assert.Equal(t, 1, m.cursor)

	assert.NotNil(t, m.jumpToAlarmTime("2024-05-02 00:00:00"))
	assert.Equal(t, 1, m.cursor)

	assert.NotNil(t, m.jumpToAlarmTime("yesterday"))
}

func TestJumpToLine(t *testing.T) {
	m := testModel(t)
	loadAlarms(t, m, alarmCSV)
	last := m.data.rows[3].line

	assert.Nil(t, m.jumpToLine(last))
	assert.Equal(t, 3, m.cursor)
	assert.NotNil(t, m.jumpToLine(0))
}

func TestCopyTextOnAlarmScreen(t *testing.T) {
	m := testModel(t)
	loadAlarms(t, m, alarmCSV)
	m.ui.screen = screenAlarms
	m.cursor = 1

	assert.Equal(t, "2024-05-01 01:10:00\tXMEAS(9)\tH\tReactor temperature high", m.copyText())
}

func TestCopyTextNeedsPointerOrCursor(t *testing.T) {
	m := testModel(t)
	loadTrend(t, m, trendCSV)
	require.NoError(t, m.sess.Apply(session.AddTag{Tag: "TempC"}))

	assert.Empty(t, m.copyText())
}

func TestApplyPendingTagsReportsMissing(t *testing.T) {
	m := testModel(t)
	loadTrend(t, m, trendCSV)
	m.ui.pendingTags = []string{"TempC", "FIC101"}

	cmd := m.applyPendingTags()
	assert.NotNil(t, cmd)
	assert.Equal(t, []string{"TempC"}, m.sess.Tags())
	assert.Contains(t, m.ui.notice.text, "FIC101")
	assert.Nil(t, m.ui.pendingTags)
}

func TestApplyTagPick(t *testing.T) {
	m := testModel(t)
	loadTrend(t, m, trendCSV)

	assert.Nil(t, m.applyTagPick(dialogs.TagPickedMsg{Tag: "Pressure"}))
	assert.Equal(t, []string{"Pressure"}, m.sess.Tags())

	assert.Nil(t, m.applyTagPick(dialogs.TagPickedMsg{Tag: "Pressure", Remove: true}))
	assert.Empty(t, m.sess.Tags())
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"XMEAS(1)", "XMV(10)"}, splitTags(" XMEAS(1), ,XMV(10) "))
	assert.Nil(t, splitTags(""))
}

func TestDescriptionDrawerFollowsCursor(t *testing.T) {
	m := testModel(t)
	loadAlarms(t, m, alarmCSV)
	m.drawerPort = viewport.New(60, 4)
	m.cursor = 2

	m.refreshDrawerContent()
	view := m.drawerPort.View()
	assert.Contains(t, view, "2024-05-01 02:45:00  XMV(10)  L")
	assert.Contains(t, view, "cooling water")

	m.setAlarmFilter("desc=nothing here")
	m.refreshDrawerContent()
	assert.NotContains(t, m.drawerPort.View(), "XMV(10)")
}

func TestHeaderOnlyAlarmFileKeepsLoadedAlarms(t *testing.T) {
	m := testModel(t)
	before := loadAlarms(t, m, alarmCSV)

	path := filepath.Join(t.TempDir(), "empty-alarms.csv")
	require.NoError(t, os.WriteFile(path, []byte("Timestamp,Tag,Type,Description\n"), 0o644))
	msg := loadFile(path, source.KindUnknown, m.parser)
	require.Error(t, msg.err)
	assert.True(t, source.IsStructural(msg.err))

	m.handleLoaded(msg)
	assert.Same(t, before, m.sess.Alarms())
	assert.Len(t, m.data.filteredIndices, 4)
	assert.Equal(t, noticeError, m.ui.notice.level)
	assert.Contains(t, m.ui.notice.text, "Rejected")
}
