package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andareed/siftly-trend/alarms"
)

func widths(cols []alarmColumn) []int {
	out := make([]int, len(cols))
	for i, c := range cols {
		out[i] = c.Width
	}
	return out
}

func TestLayoutColumnsSharesSpareWidthByWeight(t *testing.T) {
	cols := layoutColumns(alarmColumns(), 100)
	// the timestamp is fixed; the description takes five shares
	assert.Equal(t, []int{21, 12, 12, 53}, widths(cols))
}

func TestLayoutColumnsTooNarrowUsesMinimums(t *testing.T) {
	cols := layoutColumns(alarmColumns(), 50)
	assert.Equal(t, []int{21, 8, 8, 30}, widths(cols))

	cols = layoutColumns(alarmColumns(), 0)
	assert.Equal(t, []int{0, 0, 0, 0}, widths(cols))
}

func TestMarkEmptyColumnsHidesBlankType(t *testing.T) {
	rows := []tableRow{
		newTableRow(alarms.Record{Tag: "XMEAS(7)", Description: "Reactor pressure high"}),
		newTableRow(alarms.Record{Tag: "XMV(10)"}),
	}
	cols := alarmColumns()
	markEmptyColumns(cols, rows)

	assert.False(t, cols[2].Visible, "type is blank in every row")
	assert.True(t, cols[1].Visible)
	assert.True(t, cols[3].Visible)

	cols = layoutColumns(cols, 100)
	assert.Zero(t, cols[2].Width)
}

func TestMarkEmptyColumnsKeepsDescription(t *testing.T) {
	rows := []tableRow{newTableRow(alarms.Record{Tag: "XMEAS(7)"})}
	cols := alarmColumns()
	markEmptyColumns(cols, rows)
	assert.True(t, cols[3].Visible)
}
