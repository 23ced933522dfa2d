// Package dialogs holds the modal overlays drawn over the screens: export,
// key help and the tag picker.
package dialogs

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Dialog owns the keyboard while Visible reports true.
type Dialog interface {
	Open() tea.Cmd
	Close()
	Visible() bool
	Update(msg tea.Msg) (Dialog, tea.Cmd)
	View() string
}

// Backdrop is the colour painted around an open dialog.
const Backdrop = lipgloss.Color("236")

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ff9f1c")).
			BorderBackground(Backdrop).
			Padding(1, 2).
			Width(boxWidth)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff9f1c"))
	hintStyle     = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd166"))
)

const (
	boxWidth   = 64
	innerWidth = boxWidth - 4 // padding
)

// frame carries the title, hint line and visibility every dialog shares.
type frame struct {
	title   string
	hint    string
	visible bool
}

func (f *frame) Visible() bool { return f.visible }

// render stacks title, body sections and the hint inside the box.
func (f *frame) render(body ...string) string {
	parts := make([]string, 0, len(body)+2)
	parts = append(parts, titleStyle.Render(f.title))
	for _, b := range body {
		if b != "" {
			parts = append(parts, b)
		}
	}
	parts = append(parts, hintStyle.Render(f.hint))
	return boxStyle.Render(strings.Join(parts, "\n\n"))
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
