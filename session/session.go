// Package session owns everything the trend screen shows: the loaded data, the
// tag selection, the zoom of the time axis and the pinned cursor. It is driven
// by commands applied one at a time from the UI loop.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/andareed/siftly-trend/alarms"
	"github.com/andareed/siftly-trend/axis"
	"github.com/andareed/siftly-trend/logging"
	"github.com/andareed/siftly-trend/trend"
)

var (
	ErrNoTrend        = errors.New("load trend data first")
	ErrUnknownTag     = errors.New("tag not found")
	ErrTagPlotted     = errors.New("tag already plotted")
	ErrTagNotPlotted  = errors.New("tag is not plotted")
	ErrInvertedRange  = errors.New("start date is after end date")
	ErrNothingPlotted = errors.New("nothing is plotted")
)

// Options are the tunables of a Session.
type Options struct {
	Window      time.Duration // half width of the alarm window around the cursor
	Bounds      axis.Bounds
	AxisSpacing int
	AxisBase    int
}

// DefaultOptions correlates alarms within an hour either side of the cursor.
var DefaultOptions = Options{
	Window:      time.Hour,
	Bounds:      axis.DefaultBounds,
	AxisSpacing: 9,
	AxisBase:    1,
}

// Cursor is the pinned instant, if any.
type Cursor struct {
	Pinned  bool
	Instant time.Time
}

type Session struct {
	opts Options

	dataset   *trend.Dataset
	alarms    *alarms.Table
	tags      []string
	dateRange trend.DateRange
	view      *trend.FilteredView

	zoom  axis.ZoomTransform
	width int // columns available for axes and plot together

	hovering bool
	hoverX   float64

	cursor      Cursor
	correlation Correlation
}

// New returns an empty session.
func New(opts Options) *Session {
	if opts.Window <= 0 {
		opts.Window = DefaultOptions.Window
	}
	if opts.Bounds.Min <= 0 || opts.Bounds.Max < opts.Bounds.Min {
		opts.Bounds = DefaultOptions.Bounds
	}
	if opts.AxisSpacing <= 0 {
		opts.AxisSpacing = DefaultOptions.AxisSpacing
	}
	if opts.AxisBase < 0 {
		opts.AxisBase = DefaultOptions.AxisBase
	}
	return &Session{
		opts: opts,
		view: &trend.FilteredView{},
		zoom: axis.Identity,
	}
}

func (s *Session) Options() Options           { return s.opts }
func (s *Session) Dataset() *trend.Dataset    { return s.dataset }
func (s *Session) Alarms() *alarms.Table      { return s.alarms }
func (s *Session) Tags() []string             { return append([]string(nil), s.tags...) }
func (s *Session) DateRange() trend.DateRange { return s.dateRange }
func (s *Session) View() *trend.FilteredView  { return s.view }
func (s *Session) Zoom() axis.ZoomTransform   { return s.zoom }
func (s *Session) Cursor() Cursor             { return s.cursor }
func (s *Session) Correlation() Correlation   { return s.correlation }
func (s *Session) HasTrend() bool             { return s.dataset != nil }
func (s *Session) IsPlotted(tag string) bool  { return lo.Contains(s.tags, tag) }

// AvailableTags are the dataset tags not yet plotted, in header order.
func (s *Session) AvailableTags() []string {
	if s.dataset == nil {
		return nil
	}
	return lo.Filter(s.dataset.Tags, func(tag string, _ int) bool {
		return !lo.Contains(s.tags, tag)
	})
}

// Plottable is true when there is at least one tag and one point to draw.
func (s *Session) Plottable() bool {
	return len(s.tags) > 0 && !s.view.Empty()
}

// PlotWidth is the width of the drawing area once the value axes are laid out.
func (s *Session) PlotWidth() int {
	w := s.width - s.layout().Margin
	if w < 0 {
		return 0
	}
	return w
}

func (s *Session) layout() axis.Layout {
	extents := make(map[string]axis.Extent, len(s.tags))
	for _, tag := range s.tags {
		if series, ok := s.view.Series[tag]; ok {
			extents[tag] = axis.Extent{Min: series.Min, Max: series.Max, Defined: series.Defined}
		}
	}
	return axis.NewLayout(s.tags, extents, s.opts.AxisSpacing, s.opts.AxisBase)
}

// baseScale maps the filtered extent onto the plot, ignoring zoom.
func (s *Session) baseScale() axis.TimeScale {
	start, end, ok := s.view.Extent()
	if !ok {
		return axis.TimeScale{}
	}
	return axis.NewTimeScale(start, end, s.PlotWidth())
}

// refilter rebuilds the filtered view. It is the only place the view changes.
func (s *Session) refilter(resetZoom bool) {
	if s.dataset == nil {
		s.view = &trend.FilteredView{}
	} else {
		s.view = trend.Filter(s.dataset, s.dateRange, s.tags)
	}
	switch {
	case resetZoom || !s.Plottable():
		s.zoom = axis.Identity
	default:
		// the value axes, and with them the plot width, follow the tag set
		s.zoom = s.zoom.Constrain(float64(s.PlotWidth()))
	}
	if !s.Plottable() {
		if s.cursor.Pinned {
			logging.Debugf("session: cursor at %s evicted, nothing left to plot", s.cursor.Instant)
		}
		s.cursor = Cursor{}
		s.hovering = false
	}
	s.correlate()
	logging.Debugf("session: filtered %d points, %d tags, range %v..%v", s.view.Len(), len(s.tags), s.dateRange.Start, s.dateRange.End)
}

func (s *Session) correlate() {
	s.correlation = correlate(s.cursor, s.alarms, s.opts.Window)
}

func (s *Session) pin(t time.Time) {
	s.cursor = Cursor{Pinned: true, Instant: t}
	s.correlate()
	logging.Debugf("session: cursor pinned at %s, %d alarms in window", t, len(s.correlation.Records))
}

func (s *Session) unpin() {
	s.cursor = Cursor{}
	s.correlate()
	logging.Debugf("session: cursor unpinned")
}

// snap returns the filtered instant nearest to plot column x under the current zoom.
func (s *Session) snap(x float64) (int, float64, bool) {
	if !s.Plottable() {
		return -1, 0, false
	}
	base := s.baseScale()
	if !base.Contains(x) {
		return -1, 0, false
	}
	probe := s.zoom.Invert(base, x)
	i, err := trend.Nearest(s.view.Timestamps, probe)
	if err != nil {
		return -1, 0, false
	}
	return i, s.zoom.Apply(base, s.view.Timestamps[i]), true
}

// Apply runs one command. A rejected command returns an error and changes nothing.
func (s *Session) Apply(cmd Command) error {
	switch c := cmd.(type) {
	case LoadTrend:
		if c.Dataset == nil {
			return ErrNoTrend
		}
		s.dataset = c.Dataset
		s.tags = nil
		s.dateRange = trend.DateRange{}
		s.cursor = Cursor{}
		s.hovering = false
		s.refilter(true)

	case LoadAlarms:
		s.alarms = c.Table
		s.correlate()

	case AddTag:
		if s.dataset == nil {
			return ErrNoTrend
		}
		if !s.dataset.HasTag(c.Tag) {
			return fmt.Errorf("%w: %s", ErrUnknownTag, c.Tag)
		}
		if lo.Contains(s.tags, c.Tag) {
			return fmt.Errorf("%w: %s", ErrTagPlotted, c.Tag)
		}
		s.tags = append(s.tags, c.Tag)
		s.refilter(false)

	case RemoveTag:
		if !lo.Contains(s.tags, c.Tag) {
			return fmt.Errorf("%w: %s", ErrTagNotPlotted, c.Tag)
		}
		s.tags = lo.Without(s.tags, c.Tag)
		s.refilter(false)

	case SetDateRange:
		r := c.Range
		if !r.Start.IsZero() && !r.End.IsZero() && r.Start.After(r.End) {
			return ErrInvertedRange
		}
		s.dateRange = r
		s.refilter(c.ResetZoom)

	case Resize:
		if c.Width < 0 {
			return fmt.Errorf("invalid width %d", c.Width)
		}
		s.width = c.Width
		if s.Plottable() {
			s.zoom = s.zoom.Constrain(float64(s.PlotWidth()))
		}

	case Zoom:
		if !s.Plottable() {
			return ErrNothingPlotted
		}
		w := float64(s.PlotWidth())
		s.zoom = s.zoom.ZoomAt(c.Factor, c.AnchorX, w, s.opts.Bounds)

	case Pan:
		if !s.Plottable() {
			return ErrNothingPlotted
		}
		s.zoom = s.zoom.Pan(c.DX, float64(s.PlotWidth()))

	case ResetZoom:
		s.zoom = axis.Identity

	case Hover:
		s.hovering = true
		s.hoverX = c.X

	case Leave:
		s.hovering = false

	case Click:
		if c.Button != ButtonPrimary {
			return nil
		}
		if s.cursor.Pinned {
			s.unpin()
			return nil
		}
		i, x, ok := s.snap(c.X)
		if !ok || !s.baseScale().Contains(x) {
			return nil
		}
		s.pin(s.view.Timestamps[i])

	case PinAt:
		if !s.Plottable() {
			return ErrNothingPlotted
		}
		i, err := trend.Nearest(s.view.Timestamps, c.Instant)
		if err != nil {
			return err
		}
		s.pin(s.view.Timestamps[i])

	case Unpin:
		if s.cursor.Pinned {
			s.unpin()
		}

	default:
		return fmt.Errorf("unknown command %T", cmd)
	}
	return nil
}
