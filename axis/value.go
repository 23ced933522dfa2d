package axis

import (
	"fmt"
	"math"
)

// ValueAxis is the left-hand axis of one plotted tag. The plot itself always
// spans 0..100 %, so an axis only relabels that span with the tag's own units.
type ValueAxis struct {
	Tag    string
	Offset int // columns left of the plot origin
	Min    float64
	Max    float64
}

// Tick is one labelled position on a value axis.
type Tick struct {
	Value   float64
	Percent float64
	Label   string
}

// Layout places the value axes of the selected tags.
type Layout struct {
	Margin int
	Axes   []ValueAxis
}

// Extent is the min/max of one tag; Defined is false when it had no valid values.
type Extent struct {
	Min     float64
	Max     float64
	Defined bool
}

// NewLayout puts axis i at spacing*(i+1) columns left of the plot and reserves
// base + n*spacing columns of margin.
func NewLayout(tags []string, extents map[string]Extent, spacing, base int) Layout {
	l := Layout{Margin: base + len(tags)*spacing}
	for i, tag := range tags {
		e := extents[tag]
		lo, hi := 0.0, 0.0
		if e.Defined {
			lo, hi = e.Min, e.Max
		}
		l.Axes = append(l.Axes, ValueAxis{
			Tag:    tag,
			Offset: spacing * (i + 1),
			Min:    lo,
			Max:    hi,
		})
	}
	return l
}

// Percent places v on the shared 0..100 axis.
func (a ValueAxis) Percent(v float64) float64 {
	span := a.Max - a.Min
	if span == 0 {
		return 50
	}
	return (v - a.Min) / span * 100
}

// Ticks returns about count round values between Min and Max.
func (a ValueAxis) Ticks(count int) []Tick {
	var out []Tick
	for _, v := range niceTicks(a.Min, a.Max, count) {
		out = append(out, Tick{Value: v, Percent: a.Percent(v), Label: fmt.Sprintf("%.2f", v)})
	}
	return out
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

func tickSpec(start, stop float64, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	errv := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case errv >= e10:
		factor = 10
	case errv >= e5:
		factor = 5
	case errv >= e2:
		factor = 2
	}
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && count >= 0.5 && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// niceTicks yields 1, 2 or 5 times a power of ten steps inside [start, stop].
func niceTicks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, float64(count))
	if i2 < i1 || math.IsInf(inc, 0) || inc == 0 {
		return nil
	}
	n := int(i2-i1) + 1
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if inc < 0 {
			out[i] = (i1 + float64(i)) / -inc
		} else {
			out[i] = (i1 + float64(i)) * inc
		}
	}
	if reverse {
		for l, r := 0, n-1; l < r; l, r = l+1, r-1 {
			out[l], out[r] = out[r], out[l]
		}
	}
	return out
}
