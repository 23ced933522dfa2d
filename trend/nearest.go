package trend

import (
	"errors"
	"sort"
	"time"
)

// ErrNoData is returned when the locator is asked about an empty sequence.
// Callers are expected to check FilteredView.Empty first.
var ErrNoData = errors.New("trend: no data to locate in")

// Nearest returns the index of the instant in timestamps closest to probe.
// timestamps must be ascending; duplicates or disorder only degrade accuracy.
// When both neighbours are equally far the later one wins.
func Nearest(timestamps []time.Time, probe time.Time) (int, error) {
	n := len(timestamps)
	if n == 0 {
		return -1, ErrNoData
	}

	// first position whose instant is not before probe
	idx := sort.Search(n, func(i int) bool {
		return !timestamps[i].Before(probe)
	})
	if idx == 0 {
		return 0, nil
	}
	if idx == n {
		return n - 1, nil
	}

	before := probe.Sub(timestamps[idx-1])
	after := timestamps[idx].Sub(probe)
	if before < after {
		return idx - 1, nil
	}
	return idx, nil
}
