package main

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andareed/siftly-trend/logging"
	"github.com/andareed/siftly-trend/session"
)

// handleMouse turns pointer events over the plot into session commands. A
// press and release without motion is a click, with motion a drag pan.
func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ui.screen != screenTrend {
		return m, m.handleTableMouse(msg)
	}

	z := zone.Get(plotZoneID)
	if z == nil || z.IsZero() {
		return m, nil
	}
	x, _ := z.Pos(msg)
	inside := z.InBounds(msg)

	// a drag keeps panning even when the pointer leaves the plot
	if m.ui.drag.active {
		switch msg.Action {
		case tea.MouseActionMotion:
			if !inside {
				return m, nil
			}
			if dx := x - m.ui.drag.lastX; dx != 0 {
				m.ui.drag.moved = true
				m.ui.drag.lastX = x
				return m, m.apply(session.Pan{DX: float64(dx)})
			}
			return m, nil
		case tea.MouseActionRelease:
			drag := m.ui.drag
			m.ui.drag = dragState{}
			if !drag.moved && inside {
				return m, m.apply(session.Click{X: float64(x)})
			}
			return m, nil
		}
	}

	if !inside {
		m.sess.Apply(session.Leave{})
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		return m, m.apply(session.Zoom{Factor: m.cfg.Zoom.Step, AnchorX: float64(x)})
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		return m, m.apply(session.Zoom{Factor: 1 / m.cfg.Zoom.Step, AnchorX: float64(x)})
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.ui.drag = dragState{active: true, lastX: x}
		return m, nil
	case msg.Button == tea.MouseButtonRight && msg.Action == tea.MouseActionPress:
		return m, m.apply(session.Click{X: float64(x), Button: session.ButtonSecondary})
	case msg.Action == tea.MouseActionMotion:
		if err := m.sess.Apply(session.Hover{X: float64(x)}); err != nil {
			logging.Debugf("hover: %v", err)
		}
	}
	return m, nil
}

// handleTableMouse scrolls the alarm table with the wheel.
func (m *model) handleTableMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	n := len(m.data.filteredIndices)
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		if m.cursor < n-1 {
			m.cursor++
		}
	case tea.MouseButtonWheelUp:
		if m.cursor > 0 {
			m.cursor--
		}
	default:
		return nil
	}
	m.refreshView("wheel", false)
	return nil
}
