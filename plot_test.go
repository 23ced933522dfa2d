package main

import (
	"testing"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/stretchr/testify/assert"

	"github.com/andareed/siftly-trend/axis"
)

func TestPercentRow(t *testing.T) {
	assert.Equal(t, 9, percentRow(0, 10))
	assert.Equal(t, 0, percentRow(100, 10))
	assert.Equal(t, 5, percentRow(44, 10))
	assert.Equal(t, 0, percentRow(150, 10))
	assert.Equal(t, 9, percentRow(-5, 10))
	assert.Equal(t, 0, percentRow(50, 1))
}

func TestTimeLabelLayout(t *testing.T) {
	assert.Equal(t, "15:04:05", timeLabelLayout(5*time.Minute))
	assert.Equal(t, "15:04", timeLabelLayout(6*time.Hour))
	assert.Equal(t, "01-02 15:04", timeLabelLayout(48*time.Hour))
}

func TestTimeTickFollowsVisibleScale(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	visible := axis.TimeScale{Start: start, End: start.Add(2 * time.Hour), Width: 120}

	tick := timeTick(visible)
	assert.Equal(t, "00:00", tick(0, 0))
	assert.Equal(t, "01:00", tick(1, 60))
	assert.Equal(t, "02:00", tick(2, 120))
}

func TestClipSegment(t *testing.T) {
	a, b, ok := clipSegment(canvas.Float64Point{X: -2, Y: 0}, canvas.Float64Point{X: 2, Y: 40}, 10)
	assert.True(t, ok)
	assert.Equal(t, canvas.Float64Point{X: 0, Y: 20}, a)
	assert.Equal(t, canvas.Float64Point{X: 2, Y: 40}, b)

	a, b, ok = clipSegment(canvas.Float64Point{X: 12, Y: 100}, canvas.Float64Point{X: 8, Y: 0}, 10)
	assert.True(t, ok)
	assert.Equal(t, canvas.Float64Point{X: 8, Y: 0}, a)
	assert.Equal(t, canvas.Float64Point{X: 10, Y: 50}, b)

	_, _, ok = clipSegment(canvas.Float64Point{X: 11, Y: 0}, canvas.Float64Point{X: 14, Y: 0}, 10)
	assert.False(t, ok)
	_, _, ok = clipSegment(canvas.Float64Point{X: -5, Y: 0}, canvas.Float64Point{X: -1, Y: 0}, 10)
	assert.False(t, ok)
}

func TestWindowTitle(t *testing.T) {
	assert.Equal(t, "Alarms (+/- 1h around cursor)", windowTitle(time.Hour))
	assert.Equal(t, "Alarms (+/- 30m around cursor)", windowTitle(30*time.Minute))
	assert.Equal(t, "1h30m", shortDuration(90*time.Minute))
	assert.Equal(t, "45s", shortDuration(45*time.Second))
}

func TestTrendViewPlaceholders(t *testing.T) {
	m := testModel(t)
	assert.Contains(t, m.trendView(80, 20), "No trend data loaded")

	loadTrend(t, m, trendCSV)
	assert.Contains(t, m.trendView(80, 20), "Press a to add a tag")
}
