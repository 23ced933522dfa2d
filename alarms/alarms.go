// Package alarms holds the alarm export and answers which alarms were raised
// around a given instant.
package alarms

import (
	"strings"
	"time"

	"github.com/andareed/siftly-trend/logging"
	"github.com/andareed/siftly-trend/source"
	"github.com/andareed/siftly-trend/timestamp"
)

// Record is one alarm event.
type Record struct {
	Instant     time.Time
	Tag         string
	Severity    string // free text, HH and LL are trips
	Description string
	Line        int // position in the loaded file, 1 based, header excluded
}

// IsTrip reports whether the severity is HH or LL.
func (r Record) IsTrip() bool {
	s := strings.ToUpper(strings.TrimSpace(r.Severity))
	return s == "HH" || s == "LL"
}

// Table is the loaded alarm export in file order. It is replaced on every load.
type Table struct {
	Name    string
	Records []Record
}

// Len is the number of loaded records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// FromRows reads an alarm export. Column names are matched case-insensitively;
// only timestamp is required. Rows whose timestamp does not parse are dropped.
func FromRows(rows *source.Rows, parser timestamp.Parser) (*Table, source.Report, error) {
	report := source.Report{}
	if rows == nil {
		return nil, report, source.Structural("", "no rows")
	}
	report.Name = rows.Name

	cols := map[string]int{"timestamp": -1, "tag": -1, "type": -1, "description": -1}
	for i, h := range rows.Header {
		key := strings.ToLower(strings.TrimSpace(h))
		if idx, ok := cols[key]; ok && idx == -1 {
			cols[key] = i
		}
	}
	if cols["timestamp"] == -1 {
		return nil, report, source.Structural(rows.Name, "missing timestamp column")
	}
	if len(rows.Records) == 0 {
		return nil, report, source.Structural(rows.Name, "CSV requires header + data rows")
	}

	cell := func(rec []string, key string) string {
		i := cols[key]
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	table := &Table{Name: rows.Name, Records: make([]Record, 0, len(rows.Records))}
	for n, rec := range rows.Records {
		ts, ok := parser.Parse(cell(rec, "timestamp"))
		if !ok {
			report.Skip()
			continue
		}
		table.Records = append(table.Records, Record{
			Instant:     ts,
			Tag:         cell(rec, "tag"),
			Severity:    cell(rec, "type"),
			Description: cell(rec, "description"),
			Line:        n + 1,
		})
		report.Keep()
	}

	if report.Skipped > 0 {
		logging.Warnf("alarms: skipped %d rows of %s due to parsing issues", report.Skipped, rows.Name)
	}
	logging.Infof("alarms: loaded %d records from %s", report.Loaded, rows.Name)
	return table, report, nil
}

// Around returns the records within half of instant, bounds included, in load order.
func (t *Table) Around(instant time.Time, half time.Duration) []Record {
	if t == nil {
		return nil
	}
	lo, hi := instant.Add(-half), instant.Add(half)
	var out []Record
	for _, r := range t.Records {
		if r.Instant.Before(lo) || r.Instant.After(hi) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Bounds returns the earliest and latest record instants.
func (t *Table) Bounds() (time.Time, time.Time, bool) {
	if t.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	first, last := t.Records[0].Instant, t.Records[0].Instant
	for _, r := range t.Records[1:] {
		if r.Instant.Before(first) {
			first = r.Instant
		}
		if r.Instant.After(last) {
			last = r.Instant
		}
	}
	return first, last, true
}
