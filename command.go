package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-trend/logging"
	"github.com/andareed/siftly-trend/source"
)

type Command int

const (
	CmdNone Command = iota
	CmdJump
	CmdSearch
	CmdFilter
	CmdOpen
)

const commandHistorySize = 20

var commandLabels = map[Command]string{
	CmdJump:   "JUMP",
	CmdSearch: "SEARCH",
	CmdFilter: "FILTER",
	CmdOpen:   "OPEN",
}

// commandLine is the footer prompt of a running command. Every command
// keeps its own history, browsed with up and down.
type commandLine struct {
	cmd     Command
	input   textinput.Model
	history map[Command][]string
	recall  int // index into the history, len(history) while editing
	draft   string
}

func (c *commandLine) start(cmd Command, prefill string) {
	if c.history == nil {
		c.history = map[Command][]string{}
	}
	c.cmd = cmd
	c.input = textinput.New()
	c.input.Prompt = ""
	c.input.CharLimit = 512
	c.input.SetValue(prefill)
	c.input.CursorEnd()
	c.input.Focus()
	c.recall = len(c.history[cmd])
}

func (c *commandLine) stop() {
	c.input.Blur()
	c.cmd = CmdNone
}

func (c *commandLine) value() string {
	return strings.TrimSpace(c.input.Value())
}

// remember appends v to the history of the running command, skipping repeats.
func (c *commandLine) remember(v string) {
	h := c.history[c.cmd]
	if v == "" || (len(h) > 0 && h[len(h)-1] == v) {
		return
	}
	h = append(h, v)
	if len(h) > commandHistorySize {
		h = h[len(h)-commandHistorySize:]
	}
	c.history[c.cmd] = h
}

func (c *commandLine) browse(delta int) {
	h := c.history[c.cmd]
	next := clamp(c.recall+delta, 0, len(h))
	if next == c.recall {
		return
	}
	if c.recall == len(h) {
		c.draft = c.input.Value()
	}
	c.recall = next
	if next == len(h) {
		c.input.SetValue(c.draft)
	} else {
		c.input.SetValue(h[next])
	}
	c.input.CursorEnd()
}

// text is the plain prompt line with a bar at the cursor.
func (c *commandLine) text() string {
	r := []rune(c.input.Value())
	pos := clamp(c.input.Position(), 0, len(r))
	return string(r[:pos]) + "▏" + string(r[pos:])
}

func (m *model) commandPrompt(cmd Command) string {
	switch cmd {
	case CmdSearch:
		return "search: "
	case CmdFilter:
		return "filter: "
	case CmdJump:
		if m.ui.screen == screenAlarms {
			return "time or line: "
		}
		return "time: "
	case CmdOpen:
		return "open: "
	}
	return ""
}

func (m *model) commandHintsLine(cmd Command) string {
	switch cmd {
	case CmdFilter:
		return "tag=.. type=.. desc=.. or a bare tag · ↑/↓ history · enter apply · esc cancel"
	case CmdJump:
		return "YYYY-MM-DD HH:MM:SS · ↑/↓ history · enter apply · esc cancel"
	}
	return "↑/↓ history · enter apply · esc cancel"
}

func (m *model) idleCommandHintsLine() string {
	if m.ui.screen == screenAlarms {
		return "/ search   f filter   : jump   1-4 sort   enter pin"
	}
	return "a add tag   x remove   : pin time   +/- zoom   t range"
}

func (m *model) activeCommandLine() string {
	return m.commandPrompt(m.ui.command.cmd) + m.ui.command.text()
}

func (m *model) commandRightContext() string {
	if m.ui.screen == screenTrend {
		return fmt.Sprintf("%d pts", m.sess.View().Len())
	}
	return fmt.Sprintf("%d/%d", m.cursor+1, len(m.data.filteredIndices))
}

func (m *model) enterCommandMode(cmd Command, prefill string) {
	m.ui.command.start(cmd, prefill)
	m.ui.mode = modeCommand
}

func (m *model) exitCommandMode() {
	m.ui.command.stop()
	m.ui.mode = modeView
}

func (m *model) runCommand() tea.Cmd {
	buf := m.ui.command.value()
	m.ui.command.remember(buf)
	logging.Debugf("command %s %q", commandLabels[m.ui.command.cmd], buf)

	switch m.ui.command.cmd {
	case CmdJump:
		if buf == "" {
			return nil
		}
		if m.ui.screen == screenAlarms {
			if n, err := strconv.Atoi(buf); err == nil {
				return m.jumpToLine(n)
			}
			return m.jumpToAlarmTime(buf)
		}
		return m.pinAtText(buf)
	case CmdSearch:
		m.ui.searchQuery = buf
		return m.searchNext(buf, true)
	case CmdFilter:
		return m.setAlarmFilter(buf)
	case CmdOpen:
		if buf == "" {
			return nil
		}
		return loadFileCmd(buf, source.KindUnknown, m.parser)
	}
	return nil
}

func (m *model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.exitCommandMode()
		return m, nil
	case tea.KeyEnter:
		cmd := m.runCommand()
		m.exitCommandMode()
		m.refreshView("command", false)
		return m, cmd
	case tea.KeyUp:
		m.ui.command.browse(-1)
		return m, nil
	case tea.KeyDown:
		m.ui.command.browse(1)
		return m, nil
	}
	var cmd tea.Cmd
	m.ui.command.input, cmd = m.ui.command.input.Update(msg)
	return m, cmd
}
