package dialogs

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var helpKeyStyle = lipgloss.NewStyle().Bold(true).PaddingRight(2)

// Help shows the key legend of the current screen as a table.
type Help struct {
	frame
	bindings []key.Binding
}

func NewHelpDialog(title string, bindings []key.Binding) *Help {
	return &Help{
		frame:    frame{title: title, hint: "esc or ? to close"},
		bindings: bindings,
	}
}

func (d *Help) Open() tea.Cmd {
	d.visible = true
	return nil
}

func (d *Help) Close() { d.visible = false }

func (d *Help) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc", "enter", "?", "q":
			d.visible = false
		}
	}
	return d, nil
}

func (d *Help) View() string {
	if !d.visible {
		return ""
	}
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return helpKeyStyle
			}
			return lipgloss.NewStyle()
		})
	for _, b := range d.bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		t.Row(h.Key, h.Desc)
	}
	return d.render(t.Render())
}
