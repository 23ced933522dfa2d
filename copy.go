package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-trend/clipboard"
	"github.com/andareed/siftly-trend/logging"
	"github.com/andareed/siftly-trend/timestamp"
	"github.com/andareed/siftly-trend/trend"
)

// copyText is the readout under the pointer or cursor plus its correlated
// alarms on the trend screen, or the selected alarm row.
func (m *model) copyText() string {
	if m.ui.screen == screenAlarms {
		if m.cursor < 0 || m.cursor >= len(m.data.filteredIndices) {
			return ""
		}
		row := m.data.rows[m.data.filteredIndices[m.cursor]]
		return row.String()
	}

	f := m.sess.Frame()
	var at string
	var readout []trend.Reading
	switch {
	case f.Hover != nil:
		at, readout = timestamp.Format(f.Hover.Instant), f.Hover.Readout
	case f.Cursor.Pinned:
		at = timestamp.Format(f.Cursor.Instant)
		if i, err := trend.Nearest(f.View.Timestamps, f.Cursor.Instant); err == nil {
			readout = f.View.Readout(i)
		}
	default:
		return ""
	}

	var b strings.Builder
	b.WriteString(at)
	for _, r := range readout {
		b.WriteString("\t" + r.Tag + "=" + r.Text())
	}
	for _, rec := range f.Correlation.Records {
		row := newTableRow(rec)
		b.WriteString("\n" + row.String())
	}
	return b.String()
}

func (m *model) copyToClipboard() tea.Cmd {
	text := m.copyText()
	if text == "" {
		return m.notify(noticeInfo, "Nothing to copy")
	}
	if err := clipboard.Copy(text); err != nil {
		logging.Warnf("copy failed: %v", err)
		return m.notify(noticeError, "Copy failed: "+err.Error())
	}
	return m.notify(noticeSuccess, "Copied to clipboard")
}
