package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-trend/alarms"
	"github.com/andareed/siftly-trend/logging"
	"github.com/andareed/siftly-trend/source"
	"github.com/andareed/siftly-trend/timestamp"
	"github.com/andareed/siftly-trend/trend"
)

// fileLoadedMsg carries a finished load back into the update loop, which
// swaps it in whole. Err leaves whatever was loaded before untouched.
type fileLoadedMsg struct {
	path    string
	kind    source.Kind
	dataset *trend.Dataset
	table   *alarms.Table
	report  source.Report
	err     error
}

// loadFileCmd reads path off the update loop. KindUnknown sniffs the header.
func loadFileCmd(path string, want source.Kind, parser timestamp.Parser) tea.Cmd {
	return func() tea.Msg {
		return loadFile(path, want, parser)
	}
}

func loadFile(path string, want source.Kind, parser timestamp.Parser) fileLoadedMsg {
	msg := fileLoadedMsg{path: path, kind: want}
	rows, err := source.ReadFile(path)
	if err != nil {
		msg.err = err
		return msg
	}
	if msg.kind == source.KindUnknown {
		msg.kind = source.Sniff(rows)
	}
	logging.Infof("loading %s as %s", path, msg.kind)

	switch msg.kind {
	case source.KindTrend:
		msg.dataset, msg.report, msg.err = trend.FromRows(rows, parser)
	case source.KindAlarms:
		msg.table, msg.report, msg.err = alarms.FromRows(rows, parser)
	default:
		msg.err = source.Structural(rows.Name, "neither a trend nor an alarm export")
	}
	if msg.err != nil {
		msg.err = fmt.Errorf("load %s: %w", path, msg.err)
	}
	return msg
}
