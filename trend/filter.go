package trend

import (
	"fmt"
	"time"
)

// DateRange is inclusive; a zero bound leaves that side open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsOpen reports whether neither bound is set.
func (r DateRange) IsOpen() bool { return r.Start.IsZero() && r.End.IsZero() }

// Contains reports start <= t <= end for the bounds that are set.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// Series is one selected tag inside a FilteredView. Percent and Original are
// index aligned with FilteredView.Timestamps.
type Series struct {
	Percent  []float64
	Original []float64
	Min      float64
	Max      float64
	Defined  bool // false when the range holds no valid reading; Min/Max are then meaningless
}

// FilteredView is the date and tag scoped slice of a Dataset. It is replaced on
// every filter change and never mutated.
type FilteredView struct {
	Indices    []int
	Timestamps []time.Time
	Tags       []string
	Series     map[string]*Series
}

// Empty means there is nothing to draw. It is a valid state, not an error.
func (v *FilteredView) Empty() bool {
	return v == nil || len(v.Timestamps) == 0
}

// Len is the number of points in the view.
func (v *FilteredView) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Timestamps)
}

// Extent is the earliest and latest filtered instant, the domain of the time axis.
func (v *FilteredView) Extent() (time.Time, time.Time, bool) {
	if v.Empty() {
		return time.Time{}, time.Time{}, false
	}
	return extent(v.Timestamps)
}

// Filter selects the rows inside r and normalises each tag in tags to 0..100
// over its own min/max within that range. Tags keep the order they are given in.
func Filter(ds *Dataset, r DateRange, tags []string) *FilteredView {
	view := &FilteredView{Series: map[string]*Series{}}
	if ds.Len() == 0 {
		return view
	}
	for i, ts := range ds.Timestamps {
		if ts.IsZero() || !r.Contains(ts) {
			continue
		}
		view.Indices = append(view.Indices, i)
		view.Timestamps = append(view.Timestamps, ts)
	}
	if len(view.Indices) == 0 {
		return &FilteredView{Series: map[string]*Series{}}
	}

	view.Tags = make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, dup := view.Series[tag]; dup {
			continue
		}
		view.Tags = append(view.Tags, tag)
		view.Series[tag] = normalise(ds.Values[tag], view.Indices)
	}
	return view
}

func normalise(values []float64, indices []int) *Series {
	s := &Series{
		Percent:  make([]float64, len(indices)),
		Original: make([]float64, len(indices)),
	}
	for j, i := range indices {
		v := Absent
		if i < len(values) {
			v = values[i]
		}
		s.Original[j] = v
		if IsAbsent(v) {
			continue
		}
		if !s.Defined {
			s.Min, s.Max, s.Defined = v, v, true
			continue
		}
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}

	span := s.Max - s.Min
	for j, v := range s.Original {
		switch {
		case IsAbsent(v) || !s.Defined:
			s.Percent[j] = Absent
		case span > 0:
			s.Percent[j] = (v - s.Min) / span * 100
		default:
			s.Percent[j] = 50
		}
	}
	return s
}

// Reading is one tag's value at a view index, as shown in the hover readout.
type Reading struct {
	Tag   string
	Value float64
	Valid bool
}

// Text formats the reading with two decimals or "N/A".
func (r Reading) Text() string {
	if !r.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", r.Value)
}

// Readout lists the original value of every selected tag at view index i.
func (v *FilteredView) Readout(i int) []Reading {
	if v.Empty() || i < 0 || i >= len(v.Timestamps) {
		return nil
	}
	out := make([]Reading, 0, len(v.Tags))
	for _, tag := range v.Tags {
		r := Reading{Tag: tag, Value: Absent}
		if s := v.Series[tag]; s != nil && i < len(s.Original) && !IsAbsent(s.Original[i]) {
			r.Value, r.Valid = s.Original[i], true
		}
		out = append(out, r)
	}
	return out
}
