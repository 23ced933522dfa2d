package alarms

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/andareed/siftly-trend/timestamp"
)

// Query narrows the alarm table. Zero fields match everything; text fields are
// case-insensitive substring matches and the dates are inclusive.
type Query struct {
	Start       time.Time
	End         time.Time
	Tag         string
	Type        string
	Description string
}

// IsZero reports whether q matches every record.
func (q Query) IsZero() bool {
	return q == Query{}
}

func (q Query) String() string {
	var parts []string
	if q.Tag != "" {
		parts = append(parts, "tag="+q.Tag)
	}
	if q.Type != "" {
		parts = append(parts, "type="+q.Type)
	}
	if q.Description != "" {
		parts = append(parts, "desc="+q.Description)
	}
	return strings.Join(parts, " ")
}

// Match reports whether r satisfies every set field of q.
func (q Query) Match(r Record) bool {
	if !q.Start.IsZero() && r.Instant.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Instant.After(q.End) {
		return false
	}
	return contains(r.Tag, q.Tag) && contains(r.Severity, q.Type) && contains(r.Description, q.Description)
}

func contains(s, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Filter returns the indices of the records matching q, in load order.
func (t *Table) Filter(q Query) []int {
	if t == nil {
		return nil
	}
	out := make([]int, 0, len(t.Records))
	for i, r := range t.Records {
		if q.Match(r) {
			out = append(out, i)
		}
	}
	return out
}

// ParseQuery reads "tag=.. type=.. desc=.." terms. A bare word is a tag match.
func ParseQuery(text string) (Query, error) {
	var q Query
	for _, term := range strings.Fields(text) {
		key, val, ok := strings.Cut(term, "=")
		if !ok {
			q.Tag = term
			continue
		}
		switch strings.ToLower(key) {
		case "tag":
			q.Tag = val
		case "type", "severity":
			q.Type = val
		case "desc", "description":
			q.Description = val
		default:
			return Query{}, fmt.Errorf("unknown filter field %q (use tag, type or desc)", key)
		}
	}
	return q, nil
}

// Column is a sortable alarm table column.
type Column int

const (
	ColumnTime Column = iota
	ColumnTag
	ColumnType
	ColumnDescription
)

// Columns in display order.
var Columns = []Column{ColumnTime, ColumnTag, ColumnType, ColumnDescription}

func (c Column) String() string {
	switch c {
	case ColumnTime:
		return "Timestamp"
	case ColumnTag:
		return "Tag"
	case ColumnType:
		return "Type"
	case ColumnDescription:
		return "Description"
	default:
		return "?"
	}
}

// Value is the text shown in column c for r.
func (c Column) Value(r Record) string {
	switch c {
	case ColumnTime:
		return timestamp.Format(r.Instant)
	case ColumnTag:
		return r.Tag
	case ColumnType:
		return r.Severity
	case ColumnDescription:
		return r.Description
	default:
		return ""
	}
}

// Order is the active sort of the alarm table.
type Order struct {
	Column     Column
	Descending bool
	Active     bool
}

// Toggle sorts by c: ascending on a new column, flipping direction on the same one.
func (o Order) Toggle(c Column) Order {
	if o.Active && o.Column == c {
		return Order{Column: c, Descending: !o.Descending, Active: true}
	}
	return Order{Column: c, Active: true}
}

func (o Order) String() string {
	if !o.Active {
		return "file order"
	}
	dir := "asc"
	if o.Descending {
		dir = "desc"
	}
	return fmt.Sprintf("%s %s", o.Column, dir)
}

// Sort reorders idx (indices into t.Records) by o. Empty cells sort last in
// either direction; text compares numerically aware and ignoring case.
func (t *Table) Sort(idx []int, o Order) {
	if t == nil || !o.Active {
		return
	}
	coll := collate.New(language.Und, collate.Numeric, collate.IgnoreCase)
	sort.SliceStable(idx, func(a, b int) bool {
		ra, rb := t.Records[idx[a]], t.Records[idx[b]]
		var cmp int
		if o.Column == ColumnTime {
			cmp = ra.Instant.Compare(rb.Instant)
		} else {
			va, vb := o.Column.Value(ra), o.Column.Value(rb)
			switch {
			case va == "":
				return false
			case vb == "":
				return true
			}
			cmp = coll.CompareString(va, vb)
		}
		if o.Descending {
			return cmp > 0
		}
		return cmp < 0
	})
}
