package trend

import (
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/siftly-trend/source"
	"github.com/andareed/siftly-trend/timestamp"
)

var utc = timestamp.Parser{Location: time.UTC}

func load(t *testing.T, csv string) (*Dataset, source.Report) {
	t.Helper()
	rows, err := source.Read(strings.NewReader(csv), "trend.csv")
	require.NoError(t, err)
	ds, report, err := FromRows(rows, utc)
	require.NoError(t, err)
	return ds, report
}

func at(s string) time.Time {
	ts, ok := utc.Parse(s)
	if !ok {
		panic("bad test time " + s)
	}
	return ts
}

func TestFromRowsTwoTags(t *testing.T) {
	ds, report := load(t, "Timestamp,TempC,Pressure\n"+
		"2024-05-01 00:00:00.000000000,50,100\n"+
		"2024-05-01 01:00:00.000000000,60,120\n")

	assert.Equal(t, "Timestamp", ds.TimeColumn)
	assert.Equal(t, []string{"TempC", "Pressure"}, ds.Tags)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []float64{50, 60}, ds.Values["TempC"])
	assert.Equal(t, []float64{100, 120}, ds.Values["Pressure"])
	assert.Equal(t, 2, report.Loaded)
	assert.Zero(t, report.Skipped)

	lo, hi, ok := ds.Bounds()
	require.True(t, ok)
	assert.Equal(t, at("2024-05-01 00:00:00"), lo)
	assert.Equal(t, at("2024-05-01 01:00:00"), hi)
}

func TestFromRowsShortRowIsAbsent(t *testing.T) {
	ds, report := load(t, "Timestamp,A,B\n"+
		"2024-05-01 00:00:00,1,2\n"+
		"2024-05-01 00:01:00,3\n")

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, 2, report.Loaded)
	assert.Equal(t, 3.0, ds.Values["A"][1])
	assert.True(t, IsAbsent(ds.Values["B"][1]))
	for _, tag := range ds.Tags {
		assert.Len(t, ds.Values[tag], ds.Len(), tag)
	}
}

func TestParseValueIsStrict(t *testing.T) {
	assert.Equal(t, 12.5, parseValue(" 12.5 "))
	assert.Equal(t, -3e2, parseValue("-3e2"))
	for _, in := range []string{"", "12.5 degC", "n/a", "+Inf"} {
		assert.True(t, math.IsNaN(parseValue(in)), "%q", in)
	}
}

func TestFromRowsDropsBadTimestamps(t *testing.T) {
	ds, report := load(t, "Timestamp,A\n"+
		"2024-05-01 00:00:00,1\n"+
		"yesterday,2\n"+
		",3\n"+
		"2024-05-01 00:02:00,x\n")

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 4, report.Total)
	assert.True(t, IsAbsent(ds.Values["A"][1]))
}

func TestFromRowsStructuralFailures(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want string
	}{
		{"single column", "Timestamp\n2024-05-01 00:00:00\n", "needs Timestamp + Tags"},
		{"header only", "Timestamp,A\n", "header + data rows"},
		{"blank tag headers", "Timestamp,,\n2024-05-01 00:00:00,1,2\n", "no tag columns"},
		{"no valid rows", "Timestamp,A\nnope,1\n", "no valid data rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := source.Read(strings.NewReader(tt.csv), "bad.csv")
			require.NoError(t, err)
			ds, _, err := FromRows(rows, utc)
			assert.Nil(t, ds)
			require.Error(t, err)
			assert.True(t, source.IsStructural(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFromRowsDuplicateHeaderFirstWins(t *testing.T) {
	ds, _ := load(t, "Timestamp,A,A,B\n2024-05-01 00:00:00,1,9,2\n")
	assert.Equal(t, []string{"A", "B"}, ds.Tags)
	assert.Equal(t, []float64{1}, ds.Values["A"])
}

func TestFilterNormalisesPerTag(t *testing.T) {
	ds, _ := load(t, "Timestamp,TempC,Pressure\n"+
		"2024-05-01 00:00:00.000000000,50,100\n"+
		"2024-05-01 01:00:00.000000000,60,120\n")

	view := Filter(ds, DateRange{}, []string{"TempC", "Pressure"})
	require.False(t, view.Empty())
	assert.Equal(t, []float64{0, 100}, view.Series["TempC"].Percent)
	assert.Equal(t, []float64{0, 100}, view.Series["Pressure"].Percent)
	assert.Equal(t, []float64{50, 60}, view.Series["TempC"].Original)
	assert.Equal(t, 50.0, view.Series["TempC"].Min)
	assert.Equal(t, 60.0, view.Series["TempC"].Max)
}

func TestFilterKeepsSelectionOrder(t *testing.T) {
	ds, _ := load(t, "Timestamp,A,B,C\n2024-05-01 00:00:00,1,2,3\n")
	view := Filter(ds, DateRange{}, []string{"C", "A", "C"})
	assert.Equal(t, []string{"C", "A"}, view.Tags)
}

func TestFilterZeroRangeIsMidpoint(t *testing.T) {
	ds, _ := load(t, "Timestamp,Flat\n"+
		"2024-05-01 00:00:00,7\n"+
		"2024-05-01 00:01:00,\n"+
		"2024-05-01 00:02:00,7\n")

	s := Filter(ds, DateRange{}, []string{"Flat"}).Series["Flat"]
	require.True(t, s.Defined)
	assert.Equal(t, 50.0, s.Percent[0])
	assert.True(t, IsAbsent(s.Percent[1]))
	assert.Equal(t, 50.0, s.Percent[2])
}

func TestFilterUndefinedWhenNoValidValues(t *testing.T) {
	ds, _ := load(t, "Timestamp,A,B\n"+
		"2024-05-01 00:00:00,1,\n"+
		"2024-05-01 00:01:00,2,n/a\n")

	s := Filter(ds, DateRange{}, []string{"B"}).Series["B"]
	assert.False(t, s.Defined)
	for _, p := range s.Percent {
		assert.True(t, IsAbsent(p))
	}
}

func TestFilterDateRangeIsInclusive(t *testing.T) {
	ds, _ := load(t, "Timestamp,A\n"+
		"2024-05-01 00:00:00,0\n"+
		"2024-05-01 00:01:00,10\n"+
		"2024-05-01 00:02:00,20\n"+
		"2024-05-01 00:03:00,30\n")

	view := Filter(ds, DateRange{Start: at("2024-05-01 00:01:00"), End: at("2024-05-01 00:02:00")}, []string{"A"})
	assert.Equal(t, []int{1, 2}, view.Indices)
	assert.Equal(t, []float64{0, 100}, view.Series["A"].Percent)
	assert.Equal(t, []float64{10, 20}, view.Series["A"].Original)

	open := Filter(ds, DateRange{Start: at("2024-05-01 00:02:00")}, []string{"A"})
	assert.Equal(t, []int{2, 3}, open.Indices)

	none := Filter(ds, DateRange{Start: at("2024-06-01 00:00:00")}, []string{"A"})
	assert.True(t, none.Empty())
	_, _, ok := none.Extent()
	assert.False(t, ok)
}

func TestFilterSeriesAlignedWithTimestamps(t *testing.T) {
	ds, _ := load(t, "Timestamp,A,B\n"+
		"2024-05-01 00:00:00,1,5\n"+
		"2024-05-01 00:01:00,2\n"+
		"2024-05-01 00:02:00,,7\n"+
		"2024-05-01 00:03:00,4,8\n")

	view := Filter(ds, DateRange{End: at("2024-05-01 00:02:00")}, []string{"A", "B"})
	for _, tag := range view.Tags {
		s := view.Series[tag]
		assert.Len(t, s.Percent, view.Len(), tag)
		assert.Len(t, s.Original, view.Len(), tag)
	}
}

func TestReadout(t *testing.T) {
	ds, _ := load(t, "Timestamp,A,B\n2024-05-01 00:00:00,1.5\n")
	view := Filter(ds, DateRange{}, []string{"B", "A"})

	got := view.Readout(0)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Tag)
	assert.Equal(t, "N/A", got[0].Text())
	assert.Equal(t, "1.50", got[1].Text())
	assert.Nil(t, view.Readout(1))
}

func TestNearestEmpty(t *testing.T) {
	_, err := Nearest(nil, time.Now())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestNearestTieGoesLater(t *testing.T) {
	base := at("2024-05-01 00:00:00")
	ts := []time.Time{base, base.Add(2 * time.Minute)}

	i, err := Nearest(ts, base.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	i, _ = Nearest(ts, base.Add(-time.Hour))
	assert.Equal(t, 0, i)
	i, _ = Nearest(ts, base.Add(time.Hour))
	assert.Equal(t, 1, i)
	i, _ = Nearest(ts, base.Add(59*time.Second))
	assert.Equal(t, 0, i)
}

func TestNearestMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := at("2024-05-01 00:00:00")

	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(30)
		ts := make([]time.Time, n)
		cur := base
		for i := range ts {
			cur = cur.Add(time.Duration(1+rng.Intn(10)) * time.Second)
			ts[i] = cur
		}
		probe := base.Add(time.Duration(rng.Intn(int(cur.Sub(base)/time.Second)+20)-5) * time.Second)

		got, err := Nearest(ts, probe)
		require.NoError(t, err)

		best := math.MaxInt64
		want := -1
		for i, x := range ts {
			d := x.Sub(probe)
			if d < 0 {
				d = -d
			}
			if int(d) <= best {
				best, want = int(d), i
			}
		}
		assert.Equal(t, want, got, "round %d probe %s", round, probe)
	}
}
