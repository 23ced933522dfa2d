package main

import (
	"strings"

	"github.com/samber/lo"

	"github.com/andareed/siftly-trend/alarms"
	"github.com/andareed/siftly-trend/timestamp"
)

// alarmColumn is one column of the alarm table and its current width.
type alarmColumn struct {
	Name    string
	Column  alarms.Column
	Visible bool
	Width   int

	min      int
	weight   float64 // share of the spare width
	optional bool    // hidden when blank in every row
}

var alarmColumnSizes = map[alarms.Column]alarmColumn{
	alarms.ColumnTime:        {min: len(timestamp.DisplayLayout) + 2},
	alarms.ColumnTag:         {min: 8, weight: 1, optional: true},
	alarms.ColumnType:        {min: 8, weight: 1, optional: true},
	alarms.ColumnDescription: {min: 30, weight: 5},
}

func alarmColumns() []alarmColumn {
	return lo.Map(alarms.Columns, func(c alarms.Column, _ int) alarmColumn {
		col := alarmColumnSizes[c]
		col.Name = c.String()
		col.Column = c
		col.Visible = true
		return col
	})
}

// markEmptyColumns hides the optional columns the export left blank everywhere.
func markEmptyColumns(cols []alarmColumn, rows []tableRow) {
	if len(rows) == 0 {
		return
	}
	for i := range cols {
		if !cols[i].optional {
			continue
		}
		blank := lo.EveryBy(rows, func(r tableRow) bool {
			return i >= len(r.cols) || strings.TrimSpace(r.cols[i]) == ""
		})
		if blank {
			cols[i].Visible = false
			cols[i].Width = 0
		}
	}
}

// layoutColumns sets the widths for totalWidth cells. Below the sum of the
// minimums every column gets its minimum and the table is clipped.
func layoutColumns(cols []alarmColumn, totalWidth int) []alarmColumn {
	if totalWidth <= 0 {
		return cols
	}
	shown := lo.Filter(cols, func(c alarmColumn, _ int) bool { return c.Visible })
	minSum := lo.SumBy(shown, func(c alarmColumn) int { return c.min })
	weightSum := lo.SumBy(shown, func(c alarmColumn) float64 { return c.weight })
	spare := max(0, totalWidth-minSum)

	for i := range cols {
		c := &cols[i]
		switch {
		case !c.Visible:
			c.Width = 0
		case spare == 0 || weightSum == 0:
			c.Width = min(c.min, totalWidth)
		default:
			c.Width = c.min + int(float64(spare)*c.weight/weightSum)
		}
	}
	return cols
}
