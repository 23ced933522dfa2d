package dialogs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/siftly-trend/logging"
)

type (
	TagPickedMsg struct {
		Tag    string
		Remove bool
	}
	TagPickCanceledMsg struct{}
)

const pickerRows = 10

// TagPicker chooses one tag to add to or remove from the plot. Typing narrows
// the list; tab completes the first match.
type TagPicker struct {
	frame
	input    textinput.Model
	tags     []string
	remove   bool
	selected int
}

func NewTagPicker(remove bool, tags []string) *TagPicker {
	ti := textinput.New()
	ti.Prompt = "Tag: "
	ti.Placeholder = "type to narrow"
	ti.CharLimit = 128
	ti.Width = 40
	ti.ShowSuggestions = true
	ti.SetSuggestions(tags)

	title := "Add tag to plot"
	if remove {
		title = "Remove tag from plot"
	}
	return &TagPicker{
		frame:  frame{title: title, hint: "↑/↓ choose · tab complete · enter pick · esc cancel"},
		input:  ti,
		tags:   append([]string(nil), tags...),
		remove: remove,
	}
}

// matchTags keeps the tags containing query, ignoring case, in their original order.
func matchTags(tags []string, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return tags
	}
	var out []string
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			out = append(out, t)
		}
	}
	return out
}

func (d *TagPicker) matches() []string {
	return matchTags(d.tags, d.input.Value())
}

// choice is the exact tag typed, otherwise the highlighted match.
func (d *TagPicker) choice() (string, bool) {
	typed := strings.TrimSpace(d.input.Value())
	for _, t := range d.tags {
		if strings.EqualFold(t, typed) {
			return t, true
		}
	}
	m := d.matches()
	if d.selected < 0 || d.selected >= len(m) {
		return "", false
	}
	return m[d.selected], true
}

func (d *TagPicker) Open() tea.Cmd {
	d.visible = true
	return d.input.Focus()
}

func (d *TagPicker) Close() {
	d.visible = false
	d.input.Blur()
}

func (d *TagPicker) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter":
			tag, ok := d.choice()
			if !ok {
				return d, nil
			}
			logging.Debugf("tag picked: %s remove=%v", tag, d.remove)
			return d, emit(TagPickedMsg{Tag: tag, Remove: d.remove})
		case "esc":
			return d, emit(TagPickCanceledMsg{})
		case "up", "ctrl+p":
			if d.selected > 0 {
				d.selected--
			}
			return d, nil
		case "down", "ctrl+n":
			if d.selected < len(d.matches())-1 {
				d.selected++
			}
			return d, nil
		}
	}
	before := d.input.Value()
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	if d.input.Value() != before {
		d.selected = 0
	}
	return d, cmd
}

func (d *TagPicker) View() string {
	if !d.visible {
		return ""
	}
	return d.render(d.input.View(), d.list())
}

// list is a pickerRows window of the matches that follows the selection.
func (d *TagPicker) list() string {
	matches := d.matches()
	if len(matches) == 0 {
		return lipgloss.PlaceHorizontal(innerWidth, lipgloss.Center, hintStyle.Render("no matching tag"))
	}
	start := max(0, d.selected-pickerRows+1)
	end := min(len(matches), start+pickerRows)
	lines := make([]string, 0, pickerRows+1)
	for i := start; i < end; i++ {
		if i == d.selected {
			lines = append(lines, selectedStyle.Render("› "+matches[i]))
		} else {
			lines = append(lines, "  "+matches[i])
		}
	}
	if rest := len(matches) - end; rest > 0 {
		lines = append(lines, hintStyle.Render(fmt.Sprintf("  +%d more", rest)))
	}
	return strings.Join(lines, "\n")
}
