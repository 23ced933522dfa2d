package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/andareed/siftly-trend/alarms"
	"github.com/andareed/siftly-trend/axis"
	"github.com/andareed/siftly-trend/session"
	"github.com/andareed/siftly-trend/timestamp"
	"github.com/andareed/siftly-trend/trend"
)

const (
	plotZoneID = "trend-plot"

	minPlotHeight  = 6
	maxPanelRows   = 8
	xAxisRows      = 2 // axis line and time labels under the plot
	panelChromeRow = 5 // title, table borders and header
)

// trendView renders the trend screen into width x height cells.
func (m *model) trendView(width, height int) string {
	f := m.sess.Frame()

	switch {
	case !m.sess.HasTrend():
		return placeholder(width, height, "No trend data loaded. Press o to open a CSV or pass --trend.")
	case len(f.Tags) == 0:
		return placeholder(width, height, "Press a to add a tag to the plot.")
	}

	panel := m.correlationPanel(f, width, height-2-minPlotHeight-xAxisRows)
	plotH := height - 2
	if panel != "" {
		plotH -= lipgloss.Height(panel)
	}
	plotH = max(minPlotHeight+xAxisRows, plotH)

	var plot string
	if f.Plottable && f.Width > 0 {
		plot = lipgloss.JoinHorizontal(lipgloss.Top,
			m.valueAxes(f, plotH),
			zone.Mark(plotZoneID, m.plotCanvas(f, plotH)),
		)
	} else {
		plot = placeholder(width, plotH, "No points in the selected date range.")
	}

	parts := []string{m.legendLine(f, width), plot, m.readoutLine(f, width)}
	if panel != "" {
		parts = append(parts, panel)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func placeholder(width, height int, text string) string {
	return lipgloss.Place(max(1, width), max(1, height), lipgloss.Center, lipgloss.Center, dimStyle.Render(text))
}

func (m *model) legendLine(f session.Frame, width int) string {
	var b strings.Builder
	for i, tag := range f.Tags {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(tagStyle(m.cfg.Palette, i).Render("■ " + tag))
	}
	if !f.Zoom.IsIdentity() {
		b.WriteString(dimStyle.Render(fmt.Sprintf("   zoom %.1fx", f.Zoom.K)))
	}
	return runewidth.Truncate(b.String(), width, "…")
}

// percentRow maps a 0..100 plot value onto a canvas row, 0 at the top.
func percentRow(p float64, rows int) int {
	if rows <= 1 {
		return 0
	}
	r := rows - 1 - int(math.Round(p/100*float64(rows-1)))
	return clamp(r, 0, rows-1)
}

// valueAxes draws one labelled axis per plotted tag in the left margin.
func (m *model) valueAxes(f session.Frame, height int) string {
	graphRows := height - xAxisRows
	spacing := m.sess.Options().AxisSpacing
	margin := f.Layout.Margin

	grid := make([][]string, height)
	for r := range grid {
		grid[r] = make([]string, margin)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}

	for i, a := range f.Layout.Axes {
		style := tagStyle(m.cfg.Palette, i)
		start := margin - a.Offset
		line := start + spacing - 1
		if start < 0 || line >= margin {
			continue
		}
		for r := 0; r < graphRows; r++ {
			grid[r][line] = style.Render("│")
		}
		labelW := spacing - 1
		for _, t := range a.Ticks(m.cfg.Axis.Ticks) {
			if t.Percent < 0 || t.Percent > 100 {
				continue
			}
			r := percentRow(t.Percent, graphRows)
			grid[r][line] = style.Render("┤")
			label := runewidth.Truncate(t.Label, labelW, "")
			label = strings.Repeat(" ", labelW-runewidth.StringWidth(label)) + label
			for j, ch := range label {
				grid[r][start+j] = style.Render(string(ch))
			}
		}
	}

	lines := make([]string, height)
	for r := range grid {
		lines[r] = strings.Join(grid[r], "")
	}
	return strings.Join(lines, "\n")
}

// timeLabelLayout picks a tick format that suits the visible span.
func timeLabelLayout(span time.Duration) string {
	switch {
	case span >= 24*time.Hour:
		return "01-02 15:04"
	case span < 10*time.Minute:
		return "15:04:05"
	default:
		return "15:04"
	}
}

// timeTick formats the x axis labels of the visible time scale.
func timeTick(visible axis.TimeScale) linechart.LabelFormatter {
	layout := timeLabelLayout(visible.End.Sub(visible.Start))
	return func(_ int, v float64) string {
		return visible.Invert(v).Format(layout)
	}
}

// plotCanvas draws the selected series, the hover guide and the pinned cursor.
func (m *model) plotCanvas(f session.Frame, height int) string {
	w := float64(f.Width)
	layout := timeLabelLayout(f.Visible.End.Sub(f.Visible.Start))
	lc := linechart.New(f.Width+1, height, 0, w, 0, 100,
		linechart.WithXYSteps(len(layout)+4, 0),
	)
	lc.AxisStyle = axisStyle
	lc.LabelStyle = axisStyle
	lc.XLabelFormatter = timeTick(f.Visible)
	lc.DrawXYAxisAndLabel()

	gw, gh := lc.GraphWidth(), lc.GraphHeight()
	if gw <= 0 || gh <= 0 {
		return lc.View()
	}

	xs := make([]float64, len(f.View.Timestamps))
	for i, t := range f.View.Timestamps {
		xs[i] = f.Zoom.Apply(f.Base, t)
	}

	for i, tag := range f.Tags {
		s := f.View.Series[tag]
		if s == nil {
			continue
		}
		grid := graph.NewBrailleGrid(gw, gh, 0, w, 0, 100)
		drawSeries(grid, xs, s.Percent, w)
		graph.DrawBraillePatterns(&lc.Canvas, canvas.Point{X: 0, Y: 0}, grid.BraillePatterns(), tagStyle(m.cfg.Palette, i))
	}

	column := func(x float64) int {
		if w == 0 {
			return 0
		}
		return clamp(int(math.Round(x/w*float64(gw-1))), 0, gw-1)
	}

	if h := f.Hover; h != nil {
		col := column(h.X)
		for r := 0; r < gh; r++ {
			lc.Canvas.SetCell(canvas.Point{X: col, Y: r}, canvas.NewCellWithStyle('┊', hoverStyle))
		}
		for i, tag := range f.Tags {
			s := f.View.Series[tag]
			if s == nil || h.Index >= len(s.Percent) || trend.IsAbsent(s.Percent[h.Index]) {
				continue
			}
			r := percentRow(s.Percent[h.Index], gh)
			lc.Canvas.SetCell(canvas.Point{X: col, Y: r}, canvas.NewCellWithStyle('●', tagStyle(m.cfg.Palette, i)))
		}
	}

	if f.Cursor.Pinned && f.Cursor.Visible {
		col := column(f.Cursor.X)
		for r := 0; r < gh; r++ {
			lc.Canvas.SetCell(canvas.Point{X: col, Y: r}, canvas.NewCellWithStyle('│', cursorStyle))
		}
	}
	return lc.View()
}

// drawSeries sets the braille dots of one series. Absent values break the
// line; a point with no present neighbour is drawn as a single dot.
func drawSeries(grid *graph.BrailleGrid, xs, ps []float64, w float64) {
	n := min(len(xs), len(ps))
	for i := 0; i < n; i++ {
		if trend.IsAbsent(ps[i]) {
			continue
		}
		p1 := canvas.Float64Point{X: xs[i], Y: ps[i]}
		if i+1 < n && !trend.IsAbsent(ps[i+1]) {
			p2 := canvas.Float64Point{X: xs[i+1], Y: ps[i+1]}
			a, b, ok := clipSegment(p1, p2, w)
			if !ok {
				continue
			}
			for _, p := range graph.GetLinePoints(grid.GridPoint(a), grid.GridPoint(b)) {
				grid.Set(p)
			}
			continue
		}
		prevPresent := i > 0 && !trend.IsAbsent(ps[i-1])
		if !prevPresent && xs[i] >= 0 && xs[i] <= w {
			grid.Set(grid.GridPoint(p1))
		}
	}
}

// clipSegment cuts a segment to 0 <= x <= w. ok is false when nothing is left.
func clipSegment(a, b canvas.Float64Point, w float64) (canvas.Float64Point, canvas.Float64Point, bool) {
	if a.X > b.X {
		a, b = b, a
	}
	if b.X < 0 || a.X > w {
		return a, b, false
	}
	at := func(x float64) canvas.Float64Point {
		if b.X == a.X {
			return canvas.Float64Point{X: x, Y: a.Y}
		}
		t := (x - a.X) / (b.X - a.X)
		return canvas.Float64Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
	}
	if a.X < 0 {
		a = at(0)
	}
	if b.X > w {
		b = at(w)
	}
	return a, b, true
}

// readoutLine shows the values under the pointer, or at the pinned cursor.
func (m *model) readoutLine(f session.Frame, width int) string {
	var label string
	var readout []trend.Reading
	switch {
	case f.Hover != nil:
		label = timestamp.Format(f.Hover.Instant)
		readout = f.Hover.Readout
	case f.Cursor.Pinned:
		label = "cursor " + timestamp.Format(f.Cursor.Instant)
		if !f.Cursor.Visible {
			label += " (off screen)"
		}
		if i, err := trend.Nearest(f.View.Timestamps, f.Cursor.Instant); err == nil {
			readout = f.View.Readout(i)
		}
	default:
		return dimStyle.Render(runewidth.Truncate("Hover to read values, click to pin the cursor.", width, "…"))
	}

	var b strings.Builder
	b.WriteString(panelTitle.Render(label))
	for i, r := range readout {
		b.WriteString("  ")
		b.WriteString(tagStyle(m.cfg.Palette, i).Render(r.Tag + " " + r.Text()))
	}
	return runewidth.Truncate(b.String(), width, "…")
}

// windowTitle names the correlation panel after its half width.
func windowTitle(half time.Duration) string {
	return fmt.Sprintf("Alarms (+/- %s around cursor)", shortDuration(half))
}

func shortDuration(d time.Duration) string {
	s := d.String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return s
}

// correlationPanel lists the alarms around the pinned cursor in at most maxHeight lines.
func (m *model) correlationPanel(f session.Frame, width, maxHeight int) string {
	c := f.Correlation
	title := panelTitle.Render(windowTitle(m.cfg.CorrelationWindow))
	switch c.State {
	case session.NoCursor:
		return ""
	case session.NoAlarms:
		msg := "no alarms in window"
		if m.sess.Alarms().Len() == 0 {
			msg = "no alarm file loaded"
		}
		return title + "  " + dimStyle.Render(msg)
	}

	rowsFit := clamp(maxHeight-panelChromeRow, 1, maxPanelRows)
	records := c.Records
	more := 0
	if len(records) > rowsFit {
		// the last row is given over to the overflow line
		shown := max(1, rowsFit-1)
		more = len(records) - shown
		records = records[:shown]
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title+dimStyle.Render(fmt.Sprintf("  %d alarms", len(c.Records))),
		alarmPanelTable(records, width, more),
	)
}

func alarmPanelTable(records []alarms.Record, width, more int) string {
	rows := make([][]string, 0, len(records)+1)
	for _, r := range records {
		cols := make([]string, len(alarms.Columns))
		for i, c := range alarms.Columns {
			cols[i] = c.Value(r)
		}
		rows = append(rows, cols)
	}
	if more > 0 {
		rows = append(rows, []string{fmt.Sprintf("+%d more (A opens them in the table)", more), "", "", ""})
	}

	headers := make([]string, len(alarms.Columns))
	for i, c := range alarms.Columns {
		headers[i] = c.String()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(axisStyle).
		BorderColumn(false).
		Headers(headers...).
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return panelHeader
			case row < len(records) && records[row].IsTrip():
				return tripCellStyle
			case row >= len(records):
				return dimStyle.Padding(0, 1)
			default:
				return cellStyle
			}
		})
	return t.Render()
}
