package source

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Report counts what happened to the data rows of one load.
type Report struct {
	Name    string
	Total   int
	Loaded  int
	Skipped int
}

// Skip records one dropped row.
func (r *Report) Skip() {
	r.Total++
	r.Skipped++
}

// Keep records one accepted row.
func (r *Report) Keep() {
	r.Total++
	r.Loaded++
}

// Summary is the operator facing line for a successful load.
func (r Report) Summary() string {
	return fmt.Sprintf("Loaded %s rows from %s", humanize.Comma(int64(r.Loaded)), r.Name)
}

// Warning is empty when no row was dropped.
func (r Report) Warning() string {
	if r.Skipped == 0 {
		return ""
	}
	noun := "rows"
	if r.Skipped == 1 {
		noun = "row"
	}
	return fmt.Sprintf("Skipped %s %s of %s due to parsing issues", humanize.Comma(int64(r.Skipped)), noun, r.Name)
}
