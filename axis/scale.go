// Package axis maps instants and values onto plot columns and rows, and holds
// the zoom transform of the time axis.
package axis

import (
	"math"
	"time"
)

// TimeScale maps [Start, End] linearly onto [0, Width].
type TimeScale struct {
	Start time.Time
	End   time.Time
	Width float64
}

// NewTimeScale builds the base scale of a plot from its data extent.
func NewTimeScale(start, end time.Time, width int) TimeScale {
	return TimeScale{Start: start, End: end, Width: float64(width)}
}

func (s TimeScale) span() float64 {
	return float64(s.End.Sub(s.Start))
}

// Degenerate is true when the domain is a single instant.
func (s TimeScale) Degenerate() bool {
	return s.span() == 0
}

// Apply returns the column of t. A single instant domain maps to the middle.
func (s TimeScale) Apply(t time.Time) float64 {
	span := s.span()
	if span == 0 {
		return s.Width / 2
	}
	return float64(t.Sub(s.Start)) / span * s.Width
}

// Invert returns the instant at column x. Results are rounded to the millisecond.
func (s TimeScale) Invert(x float64) time.Time {
	if s.Width == 0 || s.span() == 0 {
		return s.Start
	}
	d := x / s.Width * s.span()
	return s.Start.Add(time.Duration(math.Round(d))).Round(time.Millisecond)
}

// Contains reports whether column x lies on the plot.
func (s TimeScale) Contains(x float64) bool {
	return x >= 0 && x <= s.Width
}
