package dialogs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/andareed/siftly-trend/logging"
)

type (
	ExportConfirmedMsg struct{ Path string }
	ExportCanceledMsg  struct{}
)

// Export asks where to write the visible trend or alarm rows. A bare file
// name is placed next to the source file. Writing over an existing file
// takes a second enter.
type Export struct {
	frame
	input     textinput.Model
	dir       string
	rows      int
	overwrite string // path the user was warned about
}

func NewExportDialog(title, name, dir string, rows int) *Export {
	ti := textinput.New()
	ti.Prompt = "File: "
	ti.Placeholder = name
	ti.CharLimit = 256
	ti.Width = innerWidth - len(ti.Prompt) - 1
	ti.SetValue(name)
	return &Export{
		frame: frame{title: title, hint: "enter export · esc cancel"},
		input: ti,
		dir:   dir,
		rows:  rows,
	}
}

func (d *Export) Open() tea.Cmd {
	d.visible = true
	return d.input.Focus()
}

func (d *Export) Close() {
	d.visible = false
	d.input.Blur()
}

func (d *Export) target() string {
	path := d.input.Value()
	if path == "" {
		path = d.input.Placeholder
	}
	if path != "" && d.dir != "" && !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		path = filepath.Join(d.dir, path)
	}
	return path
}

func (d *Export) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEsc:
			return d, emit(ExportCanceledMsg{})
		case tea.KeyEnter:
			path := d.target()
			if path == "" {
				return d, nil
			}
			if _, err := os.Stat(path); err == nil && d.overwrite != path {
				d.overwrite = path
				return d, nil
			}
			logging.Debugf("export confirmed: %s", path)
			return d, emit(ExportConfirmedMsg{Path: path})
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	if d.overwrite != "" && d.overwrite != d.target() {
		d.overwrite = ""
	}
	return d, cmd
}

func (d *Export) View() string {
	if !d.visible {
		return ""
	}
	note := hintStyle.Render(fmt.Sprintf("%s rows → %s", humanize.Comma(int64(d.rows)), d.target()))
	if d.overwrite != "" {
		note = warnStyle.Render("File exists. Press enter again to overwrite it.")
	}
	return d.render(d.input.View(), note)
}
