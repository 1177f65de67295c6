package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSeriesDeterministic(t *testing.T) {
	a := GenerateSeries(59.99, 29.99, "elden-ring", DefaultOptions())
	b := GenerateSeries(59.99, 29.99, "elden-ring", DefaultOptions())

	require.Len(t, a, SeriesWeeks)
	assert.Equal(t, a, b)
}

func TestGenerateSeriesDistinctSeeds(t *testing.T) {
	a := GenerateSeries(59.99, 29.99, "elden-ring", DefaultOptions())
	b := GenerateSeries(59.99, 29.99, "factorio", DefaultOptions())

	assert.NotEqual(t, a, b)
}

func TestGenerateSeriesBounds(t *testing.T) {
	original, floor := 59.99, 29.99
	points := GenerateSeries(original, floor, "elden-ring", DefaultOptions())

	for i, p := range points {
		assert.GreaterOrEqual(t, p.Price, floor, "week %d below floor", i)
		assert.LessOrEqual(t, p.Price, original, "week %d above original", i)
	}
}

func TestGenerateSeriesWeeklyDates(t *testing.T) {
	points := GenerateSeries(39.99, 19.99, "hades-ii", DefaultOptions())

	require.Len(t, points, SeriesWeeks)
	for i := 1; i < len(points); i++ {
		gap := points[i].Date.Sub(points[i-1].Date)
		assert.Equal(t, 7*24*time.Hour, gap, "gap before week %d", i)
	}
}

func TestBuildRecomputesAggregates(t *testing.T) {
	points := GenerateSeries(59.99, 29.99, "elden-ring", DefaultOptions())
	h := Build("g-001", "st-steam", points)

	low, high, avg := Aggregates(points)
	assert.Equal(t, low, h.AllTimeLow)
	assert.Equal(t, high, h.AllTimeHigh)
	assert.Equal(t, avg, h.AveragePrice)
	assert.Equal(t, "g-001", h.GameID)
	for _, p := range h.Points {
		assert.Equal(t, "st-steam", p.StoreID)
	}
}

func TestAggregatesEmpty(t *testing.T) {
	low, high, avg := Aggregates(nil)
	assert.Zero(t, low)
	assert.Zero(t, high)
	assert.Zero(t, avg)
}

func TestSeedForKeyCode(t *testing.T) {
	base := SeedFor(59.99, 29.99, "")
	withKey := SeedFor(59.99, 29.99, "elden-ring")

	assert.Equal(t, base+int64('e'), withKey)
}

func TestRandStaysInUnitInterval(t *testing.T) {
	rng := NewRand(SeedFor(59.99, 29.99, "elden-ring"))
	for i := 0; i < 10_000; i++ {
		v := rng.Next()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestNewRandNormalizesNegativeSeed(t *testing.T) {
	rng := NewRand(-42)
	v := rng.Next()
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 1.0)
}
