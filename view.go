package main

import (
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andareed/siftly-trend/dialogs"
)

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.activeDialog != nil && m.activeDialog.Visible() {
		w, h := m.terminalWidth, m.terminalHeight
		return lipgloss.Place(
			w, h,
			lipgloss.Center, lipgloss.Center,
			m.activeDialog.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceBackground(dialogs.Backdrop),
		)
	}

	contentW := m.contentWidth()
	var parts []string
	if m.ui.screen == screenTrend {
		parts = append(parts, m.trendView(contentW, m.bodyHeight()))
	} else {
		parts = append(parts, m.headerView(), tableStyle.Render(m.alarmTableBody()))
		if m.ui.drawerOpen {
			parts = append(parts, drawerArea.Width(max(0, contentW-2)).Render(m.drawerPort.View()))
		}
	}
	if m.ui.ranges.open {
		parts = append(parts, m.ui.ranges.view(contentW))
	}
	parts = append(parts, m.footerView(contentW))
	return zone.Scan(appstyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
}
