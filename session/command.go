package session

import (
	"time"

	"github.com/andareed/siftly-trend/alarms"
	"github.com/andareed/siftly-trend/trend"
)

// Command is one user or loader event. Each maps to a single state change.
type Command interface {
	command()
}

// LoadTrend replaces the dataset and clears the selection, range, zoom and cursor.
type LoadTrend struct{ Dataset *trend.Dataset }

// LoadAlarms replaces the alarm table. A nil table unloads it.
type LoadAlarms struct{ Table *alarms.Table }

type AddTag struct{ Tag string }

type RemoveTag struct{ Tag string }

// SetDateRange refilters to Range, keeping the zoom unless ResetZoom is set.
type SetDateRange struct {
	Range     trend.DateRange
	ResetZoom bool
}

// Resize sets the columns available for the value axes and the plot.
type Resize struct{ Width int }

// Zoom scales the time axis by Factor around plot column AnchorX.
type Zoom struct {
	Factor  float64
	AnchorX float64
}

// Pan shifts the time axis by DX plot columns.
type Pan struct{ DX float64 }

type ResetZoom struct{}

// Hover moves the pointer to plot column X.
type Hover struct{ X float64 }

// Leave takes the pointer off the plot.
type Leave struct{}

type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Click at plot column X pins the nearest point, or unpins when already pinned.
type Click struct {
	X      float64
	Button Button
}

// PinAt pins the filtered point nearest to Instant.
type PinAt struct{ Instant time.Time }

type Unpin struct{}

func (LoadTrend) command()    {}
func (LoadAlarms) command()   {}
func (AddTag) command()       {}
func (RemoveTag) command()    {}
func (SetDateRange) command() {}
func (Resize) command()       {}
func (Zoom) command()         {}
func (Pan) command()          {}
func (ResetZoom) command()    {}
func (Hover) command()        {}
func (Leave) command()        {}
func (Click) command()        {}
func (PinAt) command()        {}
func (Unpin) command()        {}
