package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/siftly-trend/timestamp"
	"github.com/andareed/siftly-trend/trend"
)

const (
	rangeFocusStart = iota
	rangeFocusEnd
	rangeFocusScrubber
	rangeFocusCount
)

const (
	rangeDrawerRows   = 5
	rangeDrawerHeight = rangeDrawerRows + 2 // top and bottom border

	minScrubStep     = 15 * time.Minute
	defaultScrubStep = time.Hour
	maxScrubStep     = 24 * time.Hour
)

// rangeAction is what a drawer key asks the model to do.
type rangeAction int

const (
	rangeKeep rangeAction = iota
	rangeApply
	rangeClear
	rangeCancel
)

var (
	errNoExtent      = errors.New("no timestamps available")
	errBadStart      = errors.New("invalid start time")
	errBadEnd        = errors.New("invalid end time")
	errStartAfterEnd = errors.New("start is after end")
)

// rangeDrawer edits a date range inside the extent of the loaded data. The
// draft only reaches the data when the model acts on rangeApply.
type rangeDrawer struct {
	open   bool
	target screen
	focus  int
	start  textinput.Model
	end    textinput.Model
	parse  timestamp.Parser

	extent   trend.DateRange // zero when the target has no timestamps
	from, to time.Time       // draft
	step     time.Duration
	err      error
}

func newRangeDrawer(parser timestamp.Parser) rangeDrawer {
	return rangeDrawer{
		start: newRangeInput(),
		end:   newRangeInput(),
		parse: parser,
		step:  defaultScrubStep,
	}
}

func newRangeInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = timestamp.DisplayLayout
	ti.CharLimit = len(timestamp.DisplayLayout)
	ti.Width = len(timestamp.DisplayLayout)
	return ti
}

func (d *rangeDrawer) hasExtent() bool {
	return !d.extent.Start.IsZero() && !d.extent.End.IsZero()
}

// show opens the drawer on current, with open sides taken from the extent.
func (d *rangeDrawer) show(target screen, lo, hi time.Time, current trend.DateRange) {
	d.open = true
	d.target = target
	d.err = nil
	d.extent = trend.DateRange{Start: lo, End: hi}
	d.from, d.to = time.Time{}, time.Time{}
	d.start.SetValue("")
	d.end.SetValue("")

	if !d.hasExtent() {
		d.err = errNoExtent
	} else {
		d.from, d.to = lo, hi
		if !current.Start.IsZero() {
			d.from = current.Start
		}
		if !current.End.IsZero() {
			d.to = current.End
		}
		d.writeInputs()
	}
	d.setFocus(rangeFocusStart)
}

func (d *rangeDrawer) hide() {
	d.open = false
	d.err = nil
	d.start.Blur()
	d.end.Blur()
}

func (d *rangeDrawer) setFocus(f int) {
	d.focus = f
	d.start.Blur()
	d.end.Blur()
	switch f {
	case rangeFocusStart:
		d.start.Focus()
	case rangeFocusEnd:
		d.end.Focus()
	}
}

func (d *rangeDrawer) writeInputs() {
	d.start.SetValue(timestamp.Format(d.from))
	d.end.SetValue(timestamp.Format(d.to))
}

// readInputs pulls typed instants into the draft, keeping the old value for
// a side that does not parse.
func (d *rangeDrawer) readInputs() {
	if t, ok := d.parse.Parse(d.start.Value()); ok {
		d.from = t
	}
	if t, ok := d.parse.Parse(d.end.Value()); ok {
		d.to = t
	}
	if d.from.IsZero() || d.to.IsZero() {
		d.from, d.to = d.extent.Start, d.extent.End
	}
}

func (d *rangeDrawer) clampToExtent(t time.Time) time.Time {
	switch {
	case t.Before(d.extent.Start):
		return d.extent.Start
	case t.After(d.extent.End):
		return d.extent.End
	}
	return t
}

func (d *rangeDrawer) update(msg tea.KeyMsg) (rangeAction, tea.Cmd) {
	onScrubber := d.focus == rangeFocusScrubber
	switch {
	case msg.Type == tea.KeyEsc:
		return rangeCancel, nil
	case msg.Type == tea.KeyEnter:
		return rangeApply, nil
	case msg.Type == tea.KeyCtrlR, onScrubber && msg.String() == "r":
		return rangeClear, nil
	case msg.Type == tea.KeyTab:
		d.setFocus((d.focus + 1) % rangeFocusCount)
		return rangeKeep, nil
	case msg.Type == tea.KeyShiftTab:
		d.setFocus((d.focus + rangeFocusCount - 1) % rangeFocusCount)
		return rangeKeep, nil
	}

	if onScrubber {
		switch msg.String() {
		case "left":
			d.shift(-d.step)
		case "right":
			d.shift(d.step)
		case "shift+left":
			d.widen(-d.step)
		case "shift+right":
			d.widen(d.step)
		case "-":
			d.scaleStep(false)
		case "+", "=":
			d.scaleStep(true)
		}
		return rangeKeep, nil
	}

	var cmd tea.Cmd
	if d.focus == rangeFocusStart {
		d.start, cmd = d.start.Update(msg)
	} else {
		d.end, cmd = d.end.Update(msg)
	}
	return rangeKeep, cmd
}

// selection is the typed range clamped to the extent.
func (d *rangeDrawer) selection() (trend.DateRange, error) {
	if !d.hasExtent() {
		return trend.DateRange{}, errNoExtent
	}
	from, ok := d.parse.Parse(d.start.Value())
	if !ok {
		return trend.DateRange{}, errBadStart
	}
	to, ok := d.parse.Parse(d.end.Value())
	if !ok {
		return trend.DateRange{}, errBadEnd
	}
	if from.After(to) {
		return trend.DateRange{}, errStartAfterEnd
	}
	return trend.DateRange{Start: d.clampToExtent(from), End: d.clampToExtent(to)}, nil
}

// shift slides the draft by delta, holding its length and stopping at the extent.
func (d *rangeDrawer) shift(delta time.Duration) {
	if !d.hasExtent() {
		d.err = errNoExtent
		return
	}
	d.err = nil
	d.readInputs()

	length := d.to.Sub(d.from)
	if length <= 0 {
		length = minScrubStep
	}
	if length >= d.extent.End.Sub(d.extent.Start) {
		d.from, d.to = d.extent.Start, d.extent.End
		d.writeInputs()
		return
	}

	from := d.from.Add(delta)
	switch {
	case from.Before(d.extent.Start):
		from = d.extent.Start
	case from.Add(length).After(d.extent.End):
		from = d.extent.End.Add(-length)
	}
	d.from, d.to = from, from.Add(length)
	d.writeInputs()
}

// widen moves the start earlier for a negative delta, the end later otherwise.
func (d *rangeDrawer) widen(delta time.Duration) {
	if !d.hasExtent() {
		d.err = errNoExtent
		return
	}
	d.err = nil
	d.readInputs()
	if delta < 0 {
		d.from = d.clampToExtent(d.from.Add(delta))
	} else {
		d.to = d.clampToExtent(d.to.Add(delta))
	}
	d.writeInputs()
}

func (d *rangeDrawer) scaleStep(up bool) {
	step := d.step
	if up {
		step *= 2
	} else {
		step /= 2
	}
	d.step = max(minScrubStep, min(step, maxScrubStep))
}

func stepLabel(step time.Duration) string {
	if step%time.Hour == 0 {
		return fmt.Sprintf("%dh", int(step/time.Hour))
	}
	return fmt.Sprintf("%dm", int(step/time.Minute))
}

func (d *rangeDrawer) view(width int) string {
	inner := max(0, width-2)
	row := lipgloss.NewStyle().Width(inner)

	target := "trend"
	if d.target == screenAlarms {
		target = "alarm list"
	}
	status := ""
	if d.err != nil {
		status = "Error: " + d.err.Error()
	}

	lines := []string{
		fmt.Sprintf("From: %s   narrowing the %s", d.start.View(), target),
		fmt.Sprintf("To:   %s", d.end.View()),
		d.scrubber(inner),
		fmt.Sprintf("tab next · enter apply · ctrl+r clear · esc cancel · ←/→ slide %s · shift+←/→ widen · -/+ step",
			stepLabel(d.step)),
		status,
	}
	for i, l := range lines {
		lines[i] = row.Render(l)
	}
	return rangeDrawerStyle.Width(inner).Render(strings.Join(lines, "\n"))
}

// scrubber draws the draft as a bracketed bar over the whole extent.
func (d *rangeDrawer) scrubber(width int) string {
	if !d.hasExtent() {
		return "Extent: n/a"
	}
	from, to := d.from, d.to
	if from.IsZero() || to.IsZero() {
		from, to = d.extent.Start, d.extent.End
	}

	lo, hi := timestamp.Format(d.extent.Start), timestamp.Format(d.extent.End)
	bar := width - len(lo) - len(hi) - 4
	total := d.extent.End.Sub(d.extent.Start)
	if bar < 10 || total <= 0 {
		return fmt.Sprintf("Range: %s - %s", timestamp.Format(from), timestamp.Format(to))
	}

	col := func(t time.Time) int {
		frac := float64(d.clampToExtent(t).Sub(d.extent.Start)) / float64(total)
		return clamp(int(frac*float64(bar-1)), 0, bar-1)
	}
	a, b := col(from), col(to)
	if b < a {
		a, b = b, a
	}

	cells := []rune(strings.Repeat("·", bar))
	for i := a; i <= b; i++ {
		cells[i] = '━'
	}
	cells[a], cells[b] = '[', ']'
	return lo + "  " + string(cells) + "  " + hi
}
