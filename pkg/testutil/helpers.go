// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/homeowner-forecast/internal/config"
)

// StubEvents returns fixed outcomes so a forecast can be checked by hand.
type StubEvents struct {
	// ETFRate is returned as the monthly ETF return.
	ETFRate float64
	// HomeDrift is the monthly home value multiplier; zero means no change.
	HomeDrift float64
	// JobLoss is consumed one entry per unemployment check; once exhausted the
	// person keeps their job.
	JobLoss []bool
	// JobFound is the outcome of every job search.
	JobFound bool
	// HomeSale is the outcome of every sale attempt.
	HomeSale bool

	UnemploymentChecks int
	JobSearches        int
	SaleAttempts       int
}

// AlwaysEmployed returns stub events where nothing random ever happens.
func AlwaysEmployed() *StubEvents {
	return &StubEvents{HomeDrift: 1}
}

// UnemploymentOccurs implements forecast.Events.
func (s *StubEvents) UnemploymentOccurs() bool {
	i := s.UnemploymentChecks
	s.UnemploymentChecks++
	return i < len(s.JobLoss) && s.JobLoss[i]
}

// JobSearchSucceeds implements forecast.Events.
func (s *StubEvents) JobSearchSucceeds() bool {
	s.JobSearches++
	return s.JobFound
}

// ETFMonthlyReturn implements forecast.Events.
func (s *StubEvents) ETFMonthlyReturn(float64) float64 {
	return s.ETFRate
}

// HomeValueMonthlyDrift implements forecast.Events.
func (s *StubEvents) HomeValueMonthlyDrift(float64) float64 {
	if s.HomeDrift == 0 {
		return 1
	}
	return s.HomeDrift
}

// HomeSaleSucceeds implements forecast.Events.
func (s *StubEvents) HomeSaleSucceeds() bool {
	s.SaleAttempts++
	return s.HomeSale
}

// RenterParameters is a one-year renter earning 90k and paying 2000 a month with no
// rent inflation.
func RenterParameters() config.Parameters {
	p := config.DefaultParameters()
	p.Homeowner = false
	p.SimulationDuration = 1
	p.RentInflation = 0
	p.StartingRent = 2000
	p.PreTaxIncome = 90000
	return p
}

// HomeownerParameters is the default 600k purchase with 20% down at 5% over 30 years.
func HomeownerParameters() config.Parameters {
	p := config.DefaultParameters()
	p.Homeowner = true
	return p
}
