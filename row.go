package main

import (
	"strings"

	"github.com/andareed/siftly-trend/alarms"
)

// tableRow is one alarm record laid out as alarm table cells.
type tableRow struct {
	cols   []string
	height int  // terminal lines taken when last rendered
	line   int  // row number in the source file
	trip   bool // HH or LL
}

func newTableRow(r alarms.Record) tableRow {
	cols := make([]string, len(alarms.Columns))
	for i, c := range alarms.Columns {
		cols[i] = c.Value(r)
	}
	return tableRow{cols: cols, height: 1, line: r.Line, trip: r.IsTrip()}
}

// String is tab separated, which pastes cleanly into spreadsheets.
func (r tableRow) String() string {
	return strings.Join(r.cols, "\t")
}
