// Package events draws the random outcomes that drive a forecast: job loss, job
// search, market returns, home value drift and home sales.
package events

import (
	"math"
	"math/rand"
	"time"

	"github.com/iwvelando/homeowner-forecast/pkg/constants"
	"github.com/iwvelando/homeowner-forecast/pkg/mathutil"
)

// Source draws independent outcomes from a single pseudo-random generator.
// A Source is not safe for concurrent use.
type Source struct {
	rng *rand.Rand
}

// NewSource wraps an existing generator.
func NewSource(rng *rand.Rand) *Source {
	if rng == nil {
		rng = rand.New(rand.NewSource(seedFunc()))
	}
	return &Source{rng: rng}
}

// NewSeededSource creates a Source whose draws are reproducible for a given seed.
// A zero seed picks one from the clock.
func NewSeededSource(seed int64) *Source {
	if seed == 0 {
		seed = seedFunc()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// seedFunc returns a pseudo-random seed (override for deterministic tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// NewSeed returns a clock-derived seed for callers that derive several sources
// from one base seed.
func NewSeed() int64 {
	return seedFunc()
}

// uniform returns a draw from [lo, hi).
func (s *Source) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *Source) chance(p float64) bool {
	return s.rng.Float64() < p
}

// UnemploymentOccurs reports whether an employed person loses their job this month.
func (s *Source) UnemploymentOccurs() bool {
	return s.chance(constants.UnemploymentProbability)
}

// JobSearchSucceeds runs one weekly search attempt per week of the month and
// reports whether any of them found a job.
func (s *Source) JobSearchSucceeds() bool {
	found := false
	for week := 0; week < constants.WeeksPerMonth; week++ {
		// Every attempt is drawn, so the number of draws per month is fixed.
		if s.chance(constants.WeeklyJobSearchProbability) {
			found = true
		}
	}
	return found
}

// ETFMonthlyReturn perturbs the annual return by up to two percentage points in
// either direction and converts the result to an equivalent monthly rate.
func (s *Source) ETFMonthlyReturn(annualReturnPct float64) float64 {
	annual := mathutil.PercentToRate(annualReturnPct) + s.uniform(-constants.ETFFluctuation, constants.ETFFluctuation)
	return math.Pow(1+annual, 1.0/constants.MonthsPerYear) - 1
}

// HomeValueMonthlyDrift returns the multiplier applied to a home's value this month.
func (s *Source) HomeValueMonthlyDrift(annualAppreciationPct float64) float64 {
	fluctuation := s.uniform(-constants.HomeValueFluctuation, constants.HomeValueFluctuation)
	return 1 + mathutil.PercentToRate(annualAppreciationPct)/constants.MonthsPerYear + fluctuation
}

// HomeSaleSucceeds reports whether an attempt to sell the home finds a buyer.
func (s *Source) HomeSaleSucceeds() bool {
	return s.chance(constants.HomeSaleProbability)
}
