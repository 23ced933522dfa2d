package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/andareed/siftly-trend/logging"
)

const (
	footerHeight = 2
	facetWidth   = 14 // longest facet value before truncation
)

var (
	footerBar    = lipgloss.NewStyle().Background(lipgloss.Color("#2b2b2b")).Foreground(lipgloss.Color("#cfcfcf"))
	footerPill   = lipgloss.NewStyle().Background(lipgloss.Color("#ff9f1c")).Foreground(lipgloss.Color("#000000")).Bold(true).Padding(0, 1)
	footerFile   = footerBar.Foreground(lipgloss.Color("#e0e0e0"))
	footerFacet  = footerBar.Foreground(lipgloss.Color("#a0a0a0"))
	footerStatus = lipgloss.NewStyle().Background(lipgloss.Color("#000000")).Foreground(lipgloss.Color("#9a9a9a"))
	footerLegend = footerStatus.Foreground(lipgloss.Color("#b0b0b0"))
)

// footerState is everything the two footer lines show.
type footerState struct {
	Pill     string
	File     string
	Input    string // command being typed
	Facets   [2]facet
	Position string
	Status   string
	Level    noticeLevel
	Legend   string
}

type facet struct {
	Label string
	Value string
}

func (f facet) String() string {
	return fmt.Sprintf("[%s: %s]", f.Label, fit(strings.TrimSpace(f.Value), facetWidth))
}

func (m *model) footerView(width int) string {
	st := footerState{
		Pill:   modeLabel(m.ui.screen, CmdNone),
		Status: m.rangeStatusLabel(),
		Legend: "? help · tab screen · " + m.idleCommandHintsLine(),
	}
	if m.ui.mode == modeCommand {
		st.Pill = modeLabel(m.ui.screen, m.ui.command.cmd)
		st.Input = m.activeCommandLine()
		st.Legend = m.commandHintsLine(m.ui.command.cmd)
	}
	if n := m.ui.notice; n.text != "" {
		st.Status, st.Level = n.String(), n.level
	}

	if m.ui.screen == screenTrend {
		st.File = displayName(m.data.trendPath)
		st.Facets = [2]facet{
			{"TAGS", fmt.Sprint(len(m.sess.Tags()))},
			{"ZOOM", fmt.Sprintf("%.1fx", m.sess.Zoom().K)},
		}
		st.Position = m.commandRightContext()
	} else {
		filter := m.data.query.String()
		if !m.data.alarmRange.IsOpen() {
			filter = strings.TrimSpace(filter + " range")
		}
		if filter == "" {
			filter = "none"
		}
		st.File = displayName(m.data.alarmPath)
		st.Facets = [2]facet{{"FILTER", filter}, {"SORT", m.data.order.String()}}
		st.Position = "Rows " + m.commandRightContext()
	}

	if logging.IsDebugMode() {
		st.Legend += fmt.Sprintf(" | term=%dx%d vp=%dx%d cur=%d rows=%d-%d plot=%d",
			m.terminalWidth, m.terminalHeight, m.viewport.Width, m.viewport.Height,
			m.cursor, m.ui.visibleStart, m.ui.visibleEnd, m.sess.PlotWidth())
	}
	return renderFooter(width, st)
}

func displayName(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

// modeLabel is the pill text: the running command, otherwise the screen.
func modeLabel(s screen, c Command) string {
	if label, ok := commandLabels[c]; ok {
		return label
	}
	return s.String()
}

func renderFooter(width int, st footerState) string {
	if width <= 0 {
		return ""
	}
	return controlBar(width, st) + "\n" + statusBar(width, st)
}

// controlBar is pill, file and input, facets, then the position flush right.
// The facets give way before the file name does.
func controlBar(width int, st footerState) string {
	pill := footerPill.Render(runewidth.Truncate(st.Pill, 12, ""))
	position := runewidth.Truncate(" "+st.Position+" ", max(0, width-lipgloss.Width(pill)), "")
	free := width - lipgloss.Width(pill) - runewidth.StringWidth(position) - 2

	facets := st.Facets[0].String() + " · " + st.Facets[1].String()
	facetW := min(runewidth.StringWidth(facets), max(0, free-16))
	facets = fit(facets, facetW)

	name := st.File
	if name == "" {
		name = "(no file)"
	}
	file := "▸ " + name
	if st.Input != "" {
		file += " ▸ " + st.Input
	}
	fileW := max(0, free-runewidth.StringWidth(facets))
	file = runewidth.FillRight(fit(file, fileW), fileW)

	bar := pill + footerBar.Render(" ") + footerFile.Render(file) + footerBar.Render(" ") +
		footerFacet.Render(facets) + footerBar.Render(position)
	if pad := width - lipgloss.Width(bar); pad > 0 {
		bar += footerBar.Render(strings.Repeat(" ", pad))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(bar)
}

// statusBar is the notice or range on the left, the key legend on the right.
func statusBar(width int, st footerState) string {
	legend := fit(st.Legend, width)
	msgW := width - runewidth.StringWidth(legend)
	msg := runewidth.FillRight(fit(st.Status, msgW), msgW)
	return noticeStyles[st.Level].Inherit(footerStatus).Render(msg) + footerLegend.Render(legend)
}

// fit truncates s to w cells with an ellipsis.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
