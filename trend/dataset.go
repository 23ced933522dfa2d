// Package trend holds the parsed tag readings and derives the filtered,
// normalised views the plot is drawn from.
package trend

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/andareed/siftly-trend/logging"
	"github.com/andareed/siftly-trend/source"
	"github.com/andareed/siftly-trend/timestamp"
)

// Absent marks a missing reading.
var Absent = math.NaN()

// IsAbsent reports whether v is a missing reading.
func IsAbsent(v float64) bool { return math.IsNaN(v) }

// Dataset is a whole trend export. It is built once and replaced wholesale,
// never patched. Every Values slice is index aligned with Timestamps.
type Dataset struct {
	Name       string
	TimeColumn string
	Timestamps []time.Time
	Tags       []string // header order
	Values     map[string][]float64
}

// Len is the number of accepted rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Timestamps)
}

// HasTag reports whether tag is a column of d.
func (d *Dataset) HasTag(tag string) bool {
	if d == nil {
		return false
	}
	_, ok := d.Values[tag]
	return ok
}

// Bounds is the earliest and latest instant in d.
func (d *Dataset) Bounds() (time.Time, time.Time, bool) {
	if d.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	return extent(d.Timestamps)
}

// FromRows builds a Dataset from a trend export: the first column is the
// timestamp, every other non-blank header is a tag. Rows without a usable
// timestamp are dropped and counted; short rows read as absent values.
func FromRows(rows *source.Rows, parser timestamp.Parser) (*Dataset, source.Report, error) {
	report := source.Report{}
	if rows == nil {
		return nil, report, source.Structural("", "no rows")
	}
	report.Name = rows.Name
	if len(rows.Header) < 2 {
		return nil, report, source.Structural(rows.Name, "invalid header row (needs Timestamp + Tags)")
	}
	if len(rows.Records) == 0 {
		return nil, report, source.Structural(rows.Name, "CSV requires header + data rows")
	}

	type column struct {
		tag   string
		index int
	}
	var cols []column
	for i, h := range rows.Header[1:] {
		if h == "" {
			continue
		}
		cols = append(cols, column{tag: h, index: i + 1})
	}
	if len(cols) == 0 {
		return nil, report, source.Structural(rows.Name, "no tag columns found after timestamp")
	}

	ds := &Dataset{
		Name:       rows.Name,
		TimeColumn: rows.Header[0],
		Timestamps: make([]time.Time, 0, len(rows.Records)),
		Values:     make(map[string][]float64, len(cols)),
	}
	for _, c := range cols {
		if _, dup := ds.Values[c.tag]; dup {
			// later duplicate header columns shadow nothing; first wins
			continue
		}
		ds.Tags = append(ds.Tags, c.tag)
		ds.Values[c.tag] = make([]float64, 0, len(rows.Records))
	}

	seen := make(map[string]bool, len(ds.Tags))
	for _, rec := range rows.Records {
		if len(rec) == 0 {
			report.Skip()
			continue
		}
		ts, ok := parser.Parse(rec[0])
		if !ok {
			report.Skip()
			continue
		}
		ds.Timestamps = append(ds.Timestamps, ts)
		clear(seen)
		for _, c := range cols {
			if seen[c.tag] {
				continue
			}
			seen[c.tag] = true
			v := Absent
			if c.index < len(rec) {
				v = parseValue(rec[c.index])
			}
			ds.Values[c.tag] = append(ds.Values[c.tag], v)
		}
		report.Keep()
	}

	if report.Loaded == 0 {
		return nil, report, source.Structural(rows.Name, "no valid data rows processed")
	}
	if report.Skipped > 0 {
		logging.Warnf("trend: skipped %d rows of %s due to parsing issues", report.Skipped, rows.Name)
	}
	logging.Infof("trend: loaded %d rows, %d tags from %s", report.Loaded, len(ds.Tags), rows.Name)
	return ds, report, nil
}

func parseValue(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return Absent
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return Absent
	}
	return v
}

func extent(ts []time.Time) (time.Time, time.Time, bool) {
	if len(ts) == 0 {
		return time.Time{}, time.Time{}, false
	}
	lo, hi := ts[0], ts[0]
	for _, t := range ts[1:] {
		if t.Before(lo) {
			lo = t
		}
		if t.After(hi) {
			hi = t
		}
	}
	return lo, hi, true
}
