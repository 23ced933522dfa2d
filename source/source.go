// Package source reads CSV exports from disk and hands the core plain rows.
// It never interprets the values beyond header trimming.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andareed/siftly-trend/logging"
)

// Kind tells a trend export from an alarm export.
type Kind int

const (
	KindUnknown Kind = iota
	KindTrend
	KindAlarms
)

func (k Kind) String() string {
	switch k {
	case KindTrend:
		return "trend"
	case KindAlarms:
		return "alarms"
	default:
		return "unknown"
	}
}

// Rows is one parsed CSV file: trimmed header names plus the data records in file order.
type Rows struct {
	Name    string
	Header  []string
	Records [][]string
}

// StructuralError rejects a whole load; the previous data stays on screen.
type StructuralError struct {
	Name   string
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Name == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Reason)
}

// Structural builds a *StructuralError.
func Structural(name, format string, args ...any) error {
	return &StructuralError{Name: name, Reason: fmt.Sprintf(format, args...)}
}

// IsStructural reports whether err rejects the whole load.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string) (*Rows, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()
	return Read(f, filepath.Base(path))
}

// Read parses comma separated records. Rows may be shorter or longer than the
// header; interpreting that is up to the caller. Blank lines are skipped.
func Read(r io.Reader, name string) (*Rows, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err == io.EOF {
		return nil, Structural(name, "file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header of %s: %w", name, err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	rows := &Rows{Name: name, Header: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV %s: %w", name, err)
		}
		if blank(rec) {
			continue
		}
		rows.Records = append(rows.Records, rec)
	}
	logging.Debugf("source: read %s header=%d records=%d", name, len(rows.Header), len(rows.Records))
	return rows, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Sniff guesses what kind of export rows holds. An alarm export names a
// timestamp column together with at least two of tag/type/description, so a
// trend with a single tag called Tag or Type still reads as a trend.
func Sniff(rows *Rows) Kind {
	if rows == nil || len(rows.Header) == 0 {
		return KindUnknown
	}
	seen := map[string]bool{}
	for _, h := range rows.Header {
		seen[strings.ToLower(h)] = true
	}
	alarmCols := 0
	for _, c := range []string{"tag", "type", "description"} {
		if seen[c] {
			alarmCols++
		}
	}
	if seen["timestamp"] && alarmCols >= 2 {
		return KindAlarms
	}
	if len(rows.Header) >= 2 {
		return KindTrend
	}
	return KindUnknown
}
