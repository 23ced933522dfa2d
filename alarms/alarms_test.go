package alarms

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/siftly-trend/source"
	"github.com/andareed/siftly-trend/timestamp"
)

var utc = timestamp.Parser{Location: time.UTC}

func load(t *testing.T, csv string) (*Table, source.Report) {
	t.Helper()
	rows, err := source.Read(strings.NewReader(csv), "alarms.csv")
	require.NoError(t, err)
	table, report, err := FromRows(rows, utc)
	require.NoError(t, err)
	return table, report
}

func at(s string) time.Time {
	ts, _ := utc.Parse(s)
	return ts
}

func TestFromRowsHeadersAnyCase(t *testing.T) {
	table, report := load(t, " Description ,TIMESTAMP,Type,tag\n"+
		"Reactor pressure high,2024-05-01 00:30:00,HH,T1\n"+
		"bad,not a time,H,T2\n")

	require.Equal(t, 1, table.Len())
	assert.Equal(t, 1, report.Skipped)
	r := table.Records[0]
	assert.Equal(t, "T1", r.Tag)
	assert.Equal(t, "HH", r.Severity)
	assert.Equal(t, "Reactor pressure high", r.Description)
	assert.Equal(t, at("2024-05-01 00:30:00"), r.Instant)
	assert.Equal(t, 1, r.Line)
}

func TestFromRowsOptionalColumns(t *testing.T) {
	table, _ := load(t, "timestamp\n2024-05-01 00:00:00\n")
	require.Equal(t, 1, table.Len())
	assert.Empty(t, table.Records[0].Tag)
	assert.Empty(t, table.Records[0].Severity)
}

func TestFromRowsNeedsTimestamp(t *testing.T) {
	rows, err := source.Read(strings.NewReader("tag,type\nT1,HH\n"), "a.csv")
	require.NoError(t, err)
	_, _, err = FromRows(rows, utc)
	require.Error(t, err)
	assert.True(t, source.IsStructural(err))
}

func TestFromRowsNeedsDataRows(t *testing.T) {
	rows, err := source.Read(strings.NewReader("timestamp,tag,type,description\n"), "a.csv")
	require.NoError(t, err)
	table, _, err := FromRows(rows, utc)
	require.Error(t, err)
	assert.True(t, source.IsStructural(err))
	assert.Nil(t, table)
}

func TestIsTrip(t *testing.T) {
	assert.True(t, Record{Severity: " hh "}.IsTrip())
	assert.True(t, Record{Severity: "LL"}.IsTrip())
	assert.False(t, Record{Severity: "H"}.IsTrip())
	assert.False(t, Record{}.IsTrip())
}

func TestAroundWindow(t *testing.T) {
	table, _ := load(t, "timestamp,tag,type,description\n2024-05-01 00:30:00,T1,HH,Trip\n")

	got := table.Around(at("2024-05-01 00:00:00"), time.Hour)
	require.Len(t, got, 1)
	assert.Equal(t, "Trip", got[0].Description)

	assert.Empty(t, table.Around(at("2024-05-01 03:00:00"), time.Hour))
}

func TestAroundInclusiveAndOrdered(t *testing.T) {
	table, _ := load(t, "timestamp,tag\n"+
		"2024-05-01 02:00:00,late\n"+
		"2024-05-01 00:00:00,early\n"+
		"2024-05-01 02:00:01,outside\n"+
		"2024-05-01 01:00:00,middle\n")

	got := table.Around(at("2024-05-01 01:00:00"), time.Hour)
	var tags []string
	for _, r := range got {
		tags = append(tags, r.Tag)
	}
	assert.Equal(t, []string{"late", "early", "middle"}, tags)
}

func TestBounds(t *testing.T) {
	var empty *Table
	_, _, ok := empty.Bounds()
	assert.False(t, ok)

	table, _ := load(t, "timestamp,tag\n"+
		"2024-05-01 02:00:00,b\n"+
		"2024-05-01 00:00:00,a\n"+
		"2024-05-01 01:00:00,c\n")
	first, last, ok := table.Bounds()
	require.True(t, ok)
	assert.Equal(t, at("2024-05-01 00:00:00"), first)
	assert.Equal(t, at("2024-05-01 02:00:00"), last)
}

func TestQueryFilter(t *testing.T) {
	table, _ := load(t, "timestamp,tag,type,description\n"+
		"2024-05-01 00:00:00,XMEAS1,HH,Reactor pressure\n"+
		"2024-05-01 01:00:00,XMEAS2,L,Feed flow\n"+
		"2024-05-01 02:00:00,xmeas10,LL,reactor level\n")

	q, err := ParseQuery("desc=REACTOR")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, table.Filter(q))

	q, err = ParseQuery("tag=xmeas1 type=ll")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, table.Filter(q))

	q.Type = ""
	q.Start = at("2024-05-01 00:00:00")
	q.End = at("2024-05-01 00:00:00")
	assert.Equal(t, []int{0}, table.Filter(q))

	_, err = ParseQuery("colour=red")
	assert.Error(t, err)
}

func TestSort(t *testing.T) {
	table, _ := load(t, "timestamp,tag,type\n"+
		"2024-05-01 02:00:00,XMEAS10,HH\n"+
		"2024-05-01 00:00:00,,LL\n"+
		"2024-05-01 01:00:00,xmeas2,H\n")

	idx := table.Filter(Query{})
	order := Order{}.Toggle(ColumnTag)
	table.Sort(idx, order)
	assert.Equal(t, []int{2, 0, 1}, idx, "numeric aware, blanks last")

	order = order.Toggle(ColumnTag)
	assert.True(t, order.Descending)
	table.Sort(idx, order)
	assert.Equal(t, []int{0, 2, 1}, idx, "blanks stay last when descending")

	order = order.Toggle(ColumnTime)
	assert.False(t, order.Descending)
	table.Sort(idx, order)
	assert.Equal(t, []int{1, 2, 0}, idx)
	assert.Equal(t, "Timestamp asc", order.String())
}
