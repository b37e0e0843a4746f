package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeLatencyStats_Empty(t *testing.T) {
	stats := ComputeLatencyStats(nil)
	assert.Zero(t, stats.Min)
	assert.Zero(t, stats.Max)
	assert.Zero(t, stats.Mean)
	assert.Zero(t, stats.Median)
	assert.Zero(t, stats.SampleCount)
	assert.True(t, stats.IsZero())
}

func TestComputeLatencyStats_SingleValue(t *testing.T) {
	stats := ComputeLatencyStats([]time.Duration{10 * time.Millisecond})

	assert.Equal(t, 10*time.Millisecond, stats.Min)
	assert.Equal(t, 10*time.Millisecond, stats.Max)
	assert.Equal(t, 10*time.Millisecond, stats.Mean)
	assert.Equal(t, 10*time.Millisecond, stats.Median)
	assert.Equal(t, 1, stats.SampleCount)
	assert.Zero(t, stats.Stddev)
	assert.False(t, stats.IsZero())
}

func TestComputeLatencyStats_MultipleValues(t *testing.T) {
	stats := ComputeLatencyStats([]time.Duration{
		50 * time.Millisecond,
		10 * time.Millisecond,
		30 * time.Millisecond,
		20 * time.Millisecond,
		40 * time.Millisecond,
	})

	assert.Equal(t, 10*time.Millisecond, stats.Min)
	assert.Equal(t, 50*time.Millisecond, stats.Max)
	assert.Equal(t, 30*time.Millisecond, stats.Mean)
	assert.Equal(t, 30*time.Millisecond, stats.Median)
	assert.Equal(t, 5, stats.SampleCount)
}

func TestComputeLatencyStats_Percentiles(t *testing.T) {
	durations := make([]time.Duration, 100)
	for i := range durations {
		durations[i] = time.Duration(i+1) * time.Millisecond
	}
	stats := ComputeLatencyStats(durations)

	assert.InDelta(t, float64(50*time.Millisecond), float64(stats.P50()), float64(1*time.Millisecond))
	assert.InDelta(t, float64(95*time.Millisecond), float64(stats.P95()), float64(1*time.Millisecond))
	assert.InDelta(t, float64(99*time.Millisecond), float64(stats.P99()), float64(1*time.Millisecond))
}

func TestComputeLatencyStats_Stddev(t *testing.T) {
	constant := ComputeLatencyStats([]time.Duration{
		100 * time.Millisecond,
		100 * time.Millisecond,
		100 * time.Millisecond,
	})
	assert.Zero(t, constant.Stddev)

	spread := ComputeLatencyStats([]time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		30 * time.Millisecond,
	})
	assert.Greater(t, spread.Stddev, time.Duration(0))
}
