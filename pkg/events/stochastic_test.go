package events

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const draws = 200000

func frequency(draw func() bool) float64 {
	hits := 0
	for i := 0; i < draws; i++ {
		if draw() {
			hits++
		}
	}
	return float64(hits) / draws
}

func TestSeededSourceIsReproducible(t *testing.T) {
	a := NewSeededSource(42)
	b := NewSeededSource(42)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.UnemploymentOccurs(), b.UnemploymentOccurs())
		require.Equal(t, a.ETFMonthlyReturn(7), b.ETFMonthlyReturn(7))
		require.Equal(t, a.HomeValueMonthlyDrift(4), b.HomeValueMonthlyDrift(4))
	}
}

func TestZeroSeedUsesSeedFunc(t *testing.T) {
	original := seedFunc
	defer func() { seedFunc = original }()
	seedFunc = func() int64 { return 7 }

	a := NewSeededSource(0)
	b := NewSource(rand.New(rand.NewSource(7)))
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.HomeSaleSucceeds(), b.HomeSaleSucceeds())
	}

	c := NewSource(nil)
	d := NewSeededSource(7)
	assert.Equal(t, c.ETFMonthlyReturn(7), d.ETFMonthlyReturn(7))
}

func TestEventProbabilities(t *testing.T) {
	source := NewSeededSource(12345)

	tests := []struct {
		name     string
		draw     func() bool
		expected float64
	}{
		{"Unemployment", source.UnemploymentOccurs, 0.10},
		{"Job search", source.JobSearchSucceeds, 1 - math.Pow(0.5, 4)},
		{"Home sale", source.HomeSaleSucceeds, 4.0 / 6.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, frequency(tt.draw), 0.01)
		})
	}
}

func TestETFMonthlyReturnBounds(t *testing.T) {
	source := NewSeededSource(99)
	low := math.Pow(1.05, 1.0/12) - 1
	high := math.Pow(1.09, 1.0/12) - 1

	sum := 0.0
	for i := 0; i < draws; i++ {
		rate := source.ETFMonthlyReturn(7)
		require.GreaterOrEqual(t, rate, low-1e-12)
		require.LessOrEqual(t, rate, high+1e-12)
		sum += rate
	}
	assert.InDelta(t, math.Pow(1.07, 1.0/12)-1, sum/draws, 1e-4)
}

func TestHomeValueMonthlyDriftBounds(t *testing.T) {
	source := NewSeededSource(2024)
	base := 1 + 0.04/12

	sum := 0.0
	for i := 0; i < draws; i++ {
		drift := source.HomeValueMonthlyDrift(4)
		require.GreaterOrEqual(t, drift, base-0.02)
		require.LessOrEqual(t, drift, base+0.02)
		sum += drift
	}
	assert.InDelta(t, base, sum/draws, 1e-3)
}
