package main

type mode int

const (
	modeView mode = iota
	modeCommand
	modeRange
)

type screen int

const (
	screenTrend screen = iota
	screenAlarms
)

func (s screen) String() string {
	if s == screenAlarms {
		return "ALARMS"
	}
	return "TREND"
}

// dragState follows a primary button press on the plot until release.
type dragState struct {
	active bool
	moved  bool
	lastX  int
}

type uiState struct {
	screen       screen
	mode         mode
	command      commandLine
	drawerOpen   bool
	notice       notice
	searchQuery  string
	visibleStart int
	visibleEnd   int
	ranges       rangeDrawer
	drag         dragState
	pendingTags  []string // from --tags, applied once the trend has loaded
}
