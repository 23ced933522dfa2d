package session

import (
	"time"

	"github.com/andareed/siftly-trend/axis"
	"github.com/andareed/siftly-trend/trend"
)

// HoverPoint is the filtered point under the pointer.
type HoverPoint struct {
	Index   int
	Instant time.Time
	X       float64
	Readout []trend.Reading
}

// CursorMark is where the pinned cursor is drawn. Visible is false when zoom or
// pan moved it off the plot; the cursor itself stays pinned.
type CursorMark struct {
	Cursor
	X       float64
	Visible bool
}

// Frame is everything the renderer needs after a command.
type Frame struct {
	View      *trend.FilteredView
	Tags      []string
	Plottable bool
	Width     int // plot columns, value axes excluded
	Base      axis.TimeScale
	Visible   axis.TimeScale // Base under the zoom transform
	Zoom      axis.ZoomTransform
	Layout    axis.Layout

	Hover       *HoverPoint
	Cursor      CursorMark
	Correlation Correlation
}

// Frame derives the render state. It does not change the session.
func (s *Session) Frame() Frame {
	base := s.baseScale()
	f := Frame{
		View:        s.view,
		Tags:        s.Tags(),
		Plottable:   s.Plottable(),
		Width:       s.PlotWidth(),
		Base:        base,
		Visible:     s.zoom.Rescale(base),
		Zoom:        s.zoom,
		Layout:      s.layout(),
		Correlation: s.correlation,
		Cursor:      CursorMark{Cursor: s.cursor},
	}
	if !f.Plottable {
		return f
	}
	if s.cursor.Pinned {
		x := s.zoom.Apply(base, s.cursor.Instant)
		f.Cursor.X = x
		f.Cursor.Visible = base.Contains(x)
	}
	if s.hovering {
		if i, x, ok := s.snap(s.hoverX); ok {
			f.Hover = &HoverPoint{
				Index:   i,
				Instant: s.view.Timestamps[i],
				X:       x,
				Readout: s.view.Readout(i),
			}
		}
	}
	return f
}
