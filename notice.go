package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/siftly-trend/source"
)

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeWarn
	noticeError
)

// notice is the transient message in the footer status line. seq tells a
// stale expiry timer from the one of the current notice.
type notice struct {
	text  string
	level noticeLevel
	seq   int
}

type noticeExpiredMsg struct{ seq int }

var noticeStyles = map[noticeLevel]lipgloss.Style{
	noticeInfo:    lipgloss.NewStyle(),
	noticeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#7bd88f")),
	noticeWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd166")),
	noticeError:   lipgloss.NewStyle().Foreground(tripColor).Bold(true),
}

// lifetime keeps problems on screen longer than confirmations.
func (l noticeLevel) lifetime() time.Duration {
	if l >= noticeWarn {
		return 5 * time.Second
	}
	return 2 * time.Second
}

func (l noticeLevel) icon() string {
	return [...]string{"ℹ", "✓", "!", "×"}[l]
}

func (n notice) String() string {
	if n.text == "" {
		return ""
	}
	return n.level.icon() + " " + n.text
}

func (n notice) style() lipgloss.Style { return noticeStyles[n.level] }

func (m *model) notify(level noticeLevel, text string) tea.Cmd {
	m.ui.notice.seq++
	m.ui.notice.text = text
	m.ui.notice.level = level
	seq := m.ui.notice.seq
	return tea.Tick(level.lifetime(), func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}

func (m *model) expireNotice(msg noticeExpiredMsg) {
	if msg.seq == m.ui.notice.seq {
		m.ui.notice.text = ""
	}
}

// reportNotice shows the skipped row warning of a load, or its summary when clean.
func (m *model) reportNotice(r source.Report) tea.Cmd {
	if w := r.Warning(); w != "" {
		return m.notify(noticeWarn, w)
	}
	return m.notify(noticeSuccess, r.Summary())
}
