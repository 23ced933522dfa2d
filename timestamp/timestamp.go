// Package timestamp turns the textual instants found in process exports into
// time.Time values.
package timestamp

import (
	"strings"
	"time"
)

// DisplayLayout is used everywhere an instant is shown to the operator.
const DisplayLayout = "2006-01-02 15:04:05"

// Layouts are tried in order after the space separator has been replaced by 'T'.
var layouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	dateOnly,
}

// dateOnly text is midnight UTC whatever the Parser location.
const dateOnly = "2006-01-02"

// Parser parses zone-less text in Location. Text that carries its own offset keeps it.
type Parser struct {
	Location *time.Location
}

// Local parses the way the exports are read by default.
var Local = Parser{Location: time.Local}

// Parse is Local.Parse.
func Parse(text string) (time.Time, bool) {
	return Local.Parse(text)
}

// Parse never fails loudly: ok is false when the text is not an instant and the
// caller should drop the record.
func (p Parser) Parse(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	iso := text
	if !strings.Contains(iso, "T") {
		iso = strings.Replace(iso, " ", "T", 1)
	}
	if ts, ok := p.parseLayouts(iso); ok {
		return ts, true
	}
	// Odd fractions ("00:00:20.", "00:00:20.5x") get one more try without them.
	if dot := strings.Index(iso, "."); dot != -1 {
		return p.parseLayouts(iso[:dot])
	}
	return time.Time{}, false
}

func (p Parser) parseLayouts(s string) (time.Time, bool) {
	loc := p.Location
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range layouts {
		in := loc
		if layout == dateOnly {
			in = time.UTC
		}
		ts, err := time.ParseInLocation(layout, s, in)
		if err != nil {
			continue
		}
		// Sub-millisecond digits are discarded, never rounded.
		return ts.Truncate(time.Millisecond), true
	}
	return time.Time{}, false
}

// Format renders t with DisplayLayout, or "" for the zero instant.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayLayout)
}
