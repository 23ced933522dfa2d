package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit         key.Binding
	OpenHelp     key.Binding
	SwitchScreen key.Binding
	DateRange    key.Binding
	ExportToFile key.Binding
	Copy         key.Binding
	OpenFile     key.Binding
	Jump         key.Binding

	// trend screen
	AddTag     key.Binding
	RemoveTag  key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	PanLeft    key.Binding
	PanRight   key.Binding
	ResetZoom  key.Binding
	Unpin      key.Binding
	PrevPoint  key.Binding
	NextPoint  key.Binding
	ShowAlarms key.Binding

	// alarm screen
	RowDown     key.Binding
	RowUp       key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	Search      key.Binding
	NextMatch   key.Binding
	PrevMatch   key.Binding
	SortTime    key.Binding
	SortTag     key.Binding
	SortType    key.Binding
	SortDesc    key.Binding
	Details     key.Binding
	PinAlarm    key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
	SwitchScreen: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch trend / alarm table"),
	),
	DateRange: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "date range"),
	),
	ExportToFile: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export current view to CSV"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy readout / row to clipboard"),
	),
	OpenFile: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open a trend or alarm CSV"),
	),
	Jump: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "jump to time (or alarm line)"),
	),

	AddTag: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add tag to plot"),
	),
	RemoveTag: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "remove tag from plot"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	PanLeft: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "pan earlier"),
	),
	PanRight: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "pan later"),
	),
	ResetZoom: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "reset zoom"),
	),
	Unpin: key.NewBinding(
		key.WithKeys("esc", "c"),
		key.WithHelp("c/esc", "clear cursor"),
	),
	PrevPoint: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "cursor to previous point"),
	),
	NextPoint: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "cursor to next point"),
	),
	ShowAlarms: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "open cursor alarms in the table"),
	),

	RowDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("u", "pgup"),
		key.WithHelp("u/pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("d", "pgdown"),
		key.WithHelp("d/pgdown", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first row"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last row"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter (tag= type= desc=)"),
	),
	ClearFilter: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "clear filter"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	NextMatch: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next match"),
	),
	PrevMatch: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "previous match"),
	),
	SortTime: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "sort by timestamp"),
	),
	SortTag: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "sort by tag"),
	),
	SortType: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "sort by type"),
	),
	SortDesc: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "sort by description"),
	),
	Details: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "toggle description drawer"),
	),
	PinAlarm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "pin trend cursor at alarm"),
	),
}

// Legend lists the bindings that matter on s, shared ones last.
func (k Keymap) Legend(s screen) []key.Binding {
	var out []key.Binding
	if s == screenTrend {
		out = []key.Binding{
			k.AddTag, k.RemoveTag, k.ZoomIn, k.ZoomOut, k.PanLeft, k.PanRight,
			k.ResetZoom, k.Unpin, k.PrevPoint, k.NextPoint, k.ShowAlarms,
		}
	} else {
		out = []key.Binding{
			k.RowDown, k.RowUp, k.PageUp, k.PageDown, k.Top, k.Bottom,
			k.Filter, k.ClearFilter, k.Search, k.NextMatch, k.PrevMatch,
			k.SortTime, k.SortTag, k.SortType, k.SortDesc, k.Details, k.PinAlarm,
		}
	}
	return append(out,
		k.Jump, k.DateRange, k.SwitchScreen, k.OpenFile,
		k.ExportToFile, k.Copy, k.OpenHelp, k.Quit,
	)
}
