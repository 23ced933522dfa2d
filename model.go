package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/andareed/siftly-trend/alarms"
	"github.com/andareed/siftly-trend/config"
	"github.com/andareed/siftly-trend/dialogs"
	"github.com/andareed/siftly-trend/logging"
	"github.com/andareed/siftly-trend/session"
	"github.com/andareed/siftly-trend/source"
	"github.com/andareed/siftly-trend/timestamp"
	"github.com/andareed/siftly-trend/trend"
)

const (
	detailDrawerContentHeight = 4
	detailDrawerHeight        = detailDrawerContentHeight + 2
)

type model struct {
	cfg    config.Configuration
	parser timestamp.Parser
	sess   *session.Session
	keys   Keymap

	data dataState
	ui   uiState

	viewport     viewport.Model // alarm table
	drawerPort   viewport.Model // description of the selected alarm
	activeDialog dialogs.Dialog

	cursor      int // index into data.filteredIndices
	pageRowSize int

	terminalWidth  int
	terminalHeight int
	ready          bool

	initialLoads []tea.Cmd
}

func newModel(cfg config.Configuration) *model {
	m := &model{
		cfg:    cfg,
		parser: timestamp.Parser{Location: cfg.Location()},
		sess: session.New(session.Options{
			Window:      cfg.CorrelationWindow,
			Bounds:      cfg.ZoomBounds(),
			AxisSpacing: cfg.Axis.Spacing,
			AxisBase:    cfg.Axis.BaseMargin,
		}),
		keys:   Keys,
		cursor: -1,
	}
	m.data.header = alarmColumns()
	m.ui.ranges = newRangeDrawer(m.parser)
	return m
}

// queueLoad schedules a load for when the program starts.
func (m *model) queueLoad(path string, kind source.Kind) {
	m.initialLoads = append(m.initialLoads, loadFileCmd(path, kind, m.parser))
}

func (m *model) Init() tea.Cmd {
	logging.Infof("siftly-trend: Initialised with %d queued loads", len(m.initialLoads))
	return tea.Batch(m.initialLoads...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case noticeExpiredMsg:
		m.expireNotice(msg)
		return m, nil

	case fileLoadedMsg:
		return m, m.handleLoaded(msg)

	case exportDoneMsg:
		if msg.err != nil {
			logging.Errorf("export to %s failed: %v", msg.path, msg.err)
			return m, m.notify(noticeError, "Export failed: "+msg.err.Error())
		}
		return m, m.notify(noticeSuccess, fmt.Sprintf("Exported %d rows to %s", msg.rows, msg.path))

	case dialogs.ExportConfirmedMsg:
		m.closeDialog()
		return m, m.exportCmd(msg.Path)

	case dialogs.ExportCanceledMsg, dialogs.TagPickCanceledMsg:
		m.closeDialog()
		return m, nil

	case dialogs.TagPickedMsg:
		m.closeDialog()
		return m, m.applyTagPick(msg)

	case tea.MouseMsg:
		if m.activeDialog != nil {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.activeDialog != nil && m.activeDialog.Visible() {
			return m.updateDialog(msg)
		}
		return m.updateKey(msg)
	}

	if m.activeDialog != nil {
		return m.updateDialog(msg)
	}
	return m, nil
}

func (m *model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	d, cmd := m.activeDialog.Update(msg)
	m.activeDialog = d
	if !d.Visible() {
		m.closeDialog()
	}
	return m, cmd
}

func (m *model) openDialog(d dialogs.Dialog) tea.Cmd {
	m.activeDialog = d
	return d.Open()
}

func (m *model) closeDialog() {
	if m.activeDialog != nil {
		m.activeDialog.Close()
	}
	m.activeDialog = nil
}

func (m *model) handleLoaded(msg fileLoadedMsg) tea.Cmd {
	if msg.err != nil {
		logging.Errorf("%v", msg.err)
		text := msg.err.Error()
		if source.IsStructural(msg.err) {
			text = "Rejected " + text
		}
		return m.notify(noticeError, text)
	}

	switch msg.kind {
	case source.KindTrend:
		if err := m.sess.Apply(session.LoadTrend{Dataset: msg.dataset}); err != nil {
			return m.notify(noticeError, err.Error())
		}
		m.data.trendPath = msg.path
		if m.ui.ranges.open {
			m.closeRangeDrawer()
		}
		if cmd := m.applyPendingTags(); cmd != nil {
			m.resize()
			return cmd
		}
	case source.KindAlarms:
		if err := m.sess.Apply(session.LoadAlarms{Table: msg.table}); err != nil {
			return m.notify(noticeError, err.Error())
		}
		m.data.alarmPath = msg.path
		m.setAlarmRows(msg.table)
	}
	m.resize()
	return m.reportNotice(msg.report)
}

func (m *model) applyPendingTags() tea.Cmd {
	tags := m.ui.pendingTags
	m.ui.pendingTags = nil
	var missing []string
	for _, tag := range tags {
		if err := m.sess.Apply(session.AddTag{Tag: tag}); err != nil {
			missing = append(missing, tag)
		}
	}
	if len(missing) > 0 {
		return m.notify(noticeWarn, "Tag not found: "+strings.Join(missing, ", "))
	}
	return nil
}

// setAlarmRows swaps the alarm table screen over to a freshly loaded table.
func (m *model) setAlarmRows(table *alarms.Table) {
	m.data.rows = make([]tableRow, 0, table.Len())
	if table != nil {
		for _, r := range table.Records {
			m.data.rows = append(m.data.rows, newTableRow(r))
		}
	}
	m.data.header = alarmColumns()
	markEmptyColumns(m.data.header, m.data.rows)
	m.data.query = alarms.Query{}
	m.data.order = alarms.Order{}
	m.data.alarmRange = trend.DateRange{}
	m.ui.searchQuery = ""
	m.cursor = -1
	m.applyFilter()
}

func (m *model) applyTagPick(msg dialogs.TagPickedMsg) tea.Cmd {
	var cmd session.Command = session.AddTag{Tag: msg.Tag}
	if msg.Remove {
		cmd = session.RemoveTag{Tag: msg.Tag}
	}
	if err := m.sess.Apply(cmd); err != nil {
		return m.notify(noticeWarn, tagErrorText(err, msg.Tag))
	}
	return nil
}

func tagErrorText(err error, tag string) string {
	switch {
	case errors.Is(err, session.ErrNoTrend):
		return "Load data first"
	case errors.Is(err, session.ErrUnknownTag):
		return fmt.Sprintf("Tag %q not found", tag)
	case errors.Is(err, session.ErrTagPlotted):
		return fmt.Sprintf("Tag %q already plotted", tag)
	default:
		return err.Error()
	}
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.ui.mode {
	case modeCommand:
		return m.handleCommandKey(msg)
	case modeRange:
		return m.handleRangeKey(msg)
	}
	return m.handleViewModeKey(msg)
}

func (m *model) handleViewModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.OpenHelp):
		title := fmt.Sprintf("Keys: %s screen", strings.ToLower(m.ui.screen.String()))
		return m, m.openDialog(dialogs.NewHelpDialog(title, k.Legend(m.ui.screen)))
	case key.Matches(msg, k.SwitchScreen):
		m.switchScreen()
		return m, nil
	case key.Matches(msg, k.DateRange):
		m.openRangeDrawer()
		return m, nil
	case key.Matches(msg, k.ExportToFile):
		return m, m.openExportDialog()
	case key.Matches(msg, k.Copy):
		return m, m.copyToClipboard()
	case key.Matches(msg, k.OpenFile):
		m.enterCommandMode(CmdOpen, "")
		return m, nil
	case key.Matches(msg, k.Jump):
		m.enterCommandMode(CmdJump, "")
		return m, nil
	}

	var cmd tea.Cmd
	if m.ui.screen == screenTrend {
		cmd = m.handleTrendKey(msg)
	} else {
		cmd = m.handleAlarmKey(msg)
	}
	m.refreshView("key", false)
	return m, cmd
}

func (m *model) switchScreen() {
	if m.ui.screen == screenTrend {
		m.ui.screen = screenAlarms
	} else {
		m.ui.screen = screenTrend
	}
	m.ui.drag = dragState{}
	m.sess.Apply(session.Leave{})
	m.resize()
}

func (m *model) handleTrendKey(msg tea.KeyMsg) tea.Cmd {
	k := m.keys
	width := float64(m.sess.PlotWidth())
	switch {
	case key.Matches(msg, k.AddTag):
		if !m.sess.HasTrend() {
			return m.notify(noticeWarn, "Load data first")
		}
		available := m.sess.AvailableTags()
		if len(available) == 0 {
			return m.notify(noticeInfo, "Every tag is already plotted")
		}
		return m.openDialog(dialogs.NewTagPicker(false, available))
	case key.Matches(msg, k.RemoveTag):
		plotted := m.sess.Tags()
		if len(plotted) == 0 {
			return m.notify(noticeInfo, "Nothing is plotted")
		}
		return m.openDialog(dialogs.NewTagPicker(true, plotted))
	case key.Matches(msg, k.ZoomIn):
		return m.apply(session.Zoom{Factor: m.cfg.Zoom.Step, AnchorX: width / 2})
	case key.Matches(msg, k.ZoomOut):
		return m.apply(session.Zoom{Factor: 1 / m.cfg.Zoom.Step, AnchorX: width / 2})
	case key.Matches(msg, k.PanLeft):
		return m.apply(session.Pan{DX: width / 10})
	case key.Matches(msg, k.PanRight):
		return m.apply(session.Pan{DX: -width / 10})
	case key.Matches(msg, k.ResetZoom):
		return m.apply(session.ResetZoom{})
	case key.Matches(msg, k.Unpin):
		return m.apply(session.Unpin{})
	case key.Matches(msg, k.PrevPoint):
		return m.stepCursor(-1)
	case key.Matches(msg, k.NextPoint):
		return m.stepCursor(1)
	case key.Matches(msg, k.ShowAlarms):
		return m.showCorrelatedAlarms()
	}
	return nil
}

// apply runs a session command, turning a rejection into a notice.
func (m *model) apply(cmd session.Command) tea.Cmd {
	if err := m.sess.Apply(cmd); err != nil {
		if errors.Is(err, session.ErrNothingPlotted) {
			return m.notify(noticeInfo, "Add a tag first")
		}
		return m.notify(noticeWarn, err.Error())
	}
	return nil
}

// showCorrelatedAlarms opens the alarm table narrowed to the cursor window.
func (m *model) showCorrelatedAlarms() tea.Cmd {
	c := m.sess.Correlation()
	if c.State == session.NoCursor {
		return m.notify(noticeInfo, "Pin the cursor first")
	}
	m.data.query = alarms.Query{}
	m.data.alarmRange = trend.DateRange{Start: c.Start, End: c.End}
	m.ui.screen = screenAlarms
	m.resize()
	m.applyFilter()
	return m.notify(noticeInfo, windowTitle(m.cfg.CorrelationWindow))
}

func (m *model) handleAlarmKey(msg tea.KeyMsg) tea.Cmd {
	k := m.keys
	n := len(m.data.filteredIndices)
	switch {
	case key.Matches(msg, k.RowDown):
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(msg, k.RowUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, k.PageDown):
		m.pageDown()
	case key.Matches(msg, k.PageUp):
		m.pageUp()
	case key.Matches(msg, k.Top):
		m.jumpToStart()
	case key.Matches(msg, k.Bottom):
		m.jumpToEnd()
	case key.Matches(msg, k.Filter):
		m.enterCommandMode(CmdFilter, m.data.query.String())
	case key.Matches(msg, k.ClearFilter):
		m.clearAlarmFilter()
		m.data.alarmRange = trend.DateRange{}
		m.applyFilter()
	case key.Matches(msg, k.Search):
		m.enterCommandMode(CmdSearch, m.ui.searchQuery)
	case key.Matches(msg, k.NextMatch):
		return m.searchNext(m.ui.searchQuery, false)
	case key.Matches(msg, k.PrevMatch):
		return m.searchPrev(m.ui.searchQuery)
	case key.Matches(msg, k.SortTime):
		m.toggleSort(alarms.ColumnTime)
	case key.Matches(msg, k.SortTag):
		m.toggleSort(alarms.ColumnTag)
	case key.Matches(msg, k.SortType):
		m.toggleSort(alarms.ColumnType)
	case key.Matches(msg, k.SortDesc):
		m.toggleSort(alarms.ColumnDescription)
	case key.Matches(msg, k.Details):
		m.ui.drawerOpen = !m.ui.drawerOpen
		m.resize()
	case key.Matches(msg, k.PinAlarm):
		r, ok := m.selectedAlarm()
		if !ok {
			return nil
		}
		cmd := m.pinCursor(r.Instant)
		if m.sess.Cursor().Pinned {
			m.ui.screen = screenTrend
			m.resize()
		}
		return cmd
	}
	return nil
}

func (m *model) selectedAlarm() (alarms.Record, bool) {
	table := m.sess.Alarms()
	if table == nil || m.cursor < 0 || m.cursor >= len(m.data.filteredIndices) {
		return alarms.Record{}, false
	}
	return table.Records[m.data.filteredIndices[m.cursor]], true
}

func (m *model) pageDown() {
	n := len(m.data.filteredIndices)
	if n == 0 {
		return
	}
	m.cursor = min(m.cursor+max(1, m.pageRowSize), n-1)
}

func (m *model) pageUp() {
	if len(m.data.filteredIndices) == 0 {
		return
	}
	m.cursor = max(m.cursor-max(1, m.pageRowSize), 0)
}

// contentWidth is the terminal width inside appstyle's margins.
func (m *model) contentWidth() int {
	return max(0, m.terminalWidth-4)
}

// bodyHeight is what is left for the active screen once the footer and drawers are placed.
func (m *model) bodyHeight() int {
	h := m.terminalHeight - 2 - footerHeight
	if m.ui.ranges.open {
		h -= rangeDrawerHeight
	}
	if m.ui.screen == screenAlarms && m.ui.drawerOpen {
		h -= detailDrawerHeight
	}
	return max(0, h)
}

// resize recomputes every size derived from the terminal.
func (m *model) resize() {
	if !m.ready {
		return
	}
	w := m.contentWidth()
	// the plot canvas is one column wider than the session's plot width
	if err := m.sess.Apply(session.Resize{Width: max(0, w-1)}); err != nil {
		logging.Warnf("resize: %v", err)
	}

	tableH := max(1, m.bodyHeight()-3)
	m.viewport = viewport.New(max(0, w-2), tableH)
	m.drawerPort = viewport.New(max(0, w-2), detailDrawerContentHeight)
	m.data.header = layoutColumns(m.data.header, max(0, w-2-gutterWidth(m.lastLine())))
	m.refreshView("resize", true)
}

// refreshView re-renders the alarm table into its viewport.
func (m *model) refreshView(reason string, resetOffset bool) {
	if !m.ready {
		return
	}
	logging.Debugf("refreshView reason=%s", reason)
	if resetOffset {
		m.viewport.SetYOffset(0)
	}
	m.viewport.SetContent(m.renderAlarmTable())
	m.refreshDrawerContent()
}

func (m *model) refreshDrawerContent() {
	r, ok := m.selectedAlarm()
	if !ok {
		m.drawerPort.SetContent("")
		return
	}
	text := fmt.Sprintf("%s  %s  %s\n%s",
		timestamp.Format(r.Instant), r.Tag, r.Severity, r.Description)
	m.drawerPort.SetContent(wordwrap.String(text, max(1, m.drawerPort.Width)))
}
