package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-trend/alarms"
	"github.com/andareed/siftly-trend/dialogs"
	"github.com/andareed/siftly-trend/logging"
	"github.com/andareed/siftly-trend/timestamp"
	"github.com/andareed/siftly-trend/trend"
)

type exportDoneMsg struct {
	path string
	rows int
	err  error
}

// writeTrendCSV writes the filtered points of every plotted tag, original
// values only. Absent readings are left empty.
func writeTrendCSV(out io.Writer, view *trend.FilteredView) (int, error) {
	w := csv.NewWriter(out)

	header := append([]string{"Timestamp"}, view.Tags...)
	if err := w.Write(header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	n := view.Len()
	for i := 0; i < n; i++ {
		rec := make([]string, 0, len(header))
		rec = append(rec, timestamp.Format(view.Timestamps[i]))
		for _, r := range view.Readout(i) {
			if !r.Valid {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, strconv.FormatFloat(r.Value, 'f', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return i, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return n, fmt.Errorf("flush csv: %w", err)
	}
	return n, nil
}

// writeAlarmCSV writes the records at idx, in that order, with the column
// names the alarm export uses.
func writeAlarmCSV(out io.Writer, table *alarms.Table, idx []int) (int, error) {
	w := csv.NewWriter(out)

	header := make([]string, len(alarms.Columns))
	for i, c := range alarms.Columns {
		header[i] = strings.ToLower(c.String())
	}
	if err := w.Write(header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	for n, i := range idx {
		if i < 0 || i >= table.Len() {
			return n, fmt.Errorf("alarm index %d out of range", i)
		}
		r := table.Records[i]
		rec := make([]string, len(alarms.Columns))
		for j, c := range alarms.Columns {
			rec[j] = c.Value(r)
		}
		if err := w.Write(rec); err != nil {
			return n, fmt.Errorf("write row %d: %w", n, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return len(idx), fmt.Errorf("flush csv: %w", err)
	}
	return len(idx), nil
}

func exportToFile(path string, write func(io.Writer) (int, error)) exportDoneMsg {
	f, err := os.Create(path)
	if err != nil {
		return exportDoneMsg{path: path, err: fmt.Errorf("open export file: %w", err)}
	}
	n, err := write(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	return exportDoneMsg{path: path, rows: n, err: err}
}

// exportCmd writes what the active screen shows. The data is captured before
// the command runs, so later edits cannot race the writer.
func (m *model) exportCmd(path string) tea.Cmd {
	logging.Infof("exporting %s screen to %s", m.ui.screen, path)
	if m.ui.screen == screenTrend {
		view := m.sess.View()
		return func() tea.Msg {
			return exportToFile(path, func(w io.Writer) (int, error) { return writeTrendCSV(w, view) })
		}
	}
	table := m.sess.Alarms()
	idx := append([]int(nil), m.data.filteredIndices...)
	return func() tea.Msg {
		return exportToFile(path, func(w io.Writer) (int, error) { return writeAlarmCSV(w, table, idx) })
	}
}

func (m *model) openExportDialog() tea.Cmd {
	var src, suffix, title string
	var rows int
	if m.ui.screen == screenTrend {
		if len(m.sess.Tags()) == 0 {
			return m.notify(noticeInfo, "Nothing is plotted")
		}
		src, suffix, title = m.data.trendPath, "-trend.csv", "Export plotted tags"
		rows = m.sess.View().Len()
	} else {
		if m.sess.Alarms() == nil {
			return m.notify(noticeInfo, "No alarm file loaded")
		}
		src, suffix, title = m.data.alarmPath, "-alarms.csv", "Export listed alarms"
		rows = len(m.data.filteredIndices)
	}
	return m.openDialog(dialogs.NewExportDialog(title, defaultExportName(src, suffix), filepath.Dir(src), rows))
}

func defaultExportName(src, suffix string) string {
	if src == "" {
		return "siftly" + suffix
	}
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "-export" + suffix
}
