package session

import (
	"time"

	"github.com/andareed/siftly-trend/alarms"
)

// CorrelationState tells the three reasons the alarm panel may or may not show apart.
type CorrelationState int

const (
	NoCursor CorrelationState = iota
	NoAlarms                  // pinned, but no loaded alarm falls in the window
	Alarms
)

func (c CorrelationState) String() string {
	switch c {
	case NoCursor:
		return "no cursor"
	case NoAlarms:
		return "no alarms in window"
	case Alarms:
		return "alarms"
	default:
		return "unknown"
	}
}

// Correlation is the alarm panel content for the pinned cursor.
type Correlation struct {
	State   CorrelationState
	Start   time.Time
	End     time.Time
	Records []alarms.Record // load order
}

// Visible reports whether the panel should be drawn.
func (c Correlation) Visible() bool {
	return c.State == Alarms
}

func correlate(cur Cursor, table *alarms.Table, half time.Duration) Correlation {
	if !cur.Pinned {
		return Correlation{State: NoCursor}
	}
	c := Correlation{
		State: NoAlarms,
		Start: cur.Instant.Add(-half),
		End:   cur.Instant.Add(half),
	}
	if recs := table.Around(cur.Instant, half); len(recs) > 0 {
		c.State = Alarms
		c.Records = recs
	}
	return c
}
