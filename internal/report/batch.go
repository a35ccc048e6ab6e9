package report

import (
	"github.com/iwvelando/homeowner-forecast/internal/config"
	"github.com/iwvelando/homeowner-forecast/internal/forecast"
	"github.com/shopspring/decimal"
)

// BatchSummary is the rendered outcome of a batch of runs.
type BatchSummary struct {
	Parameters        config.Parameters     `json:"parameters" yaml:"parameters"`
	Runs              int                   `json:"runs" yaml:"runs"`
	Bankruptcies      int                   `json:"bankruptcies" yaml:"bankruptcies"`
	BankruptcyPercent float64               `json:"bankruptcyPercent" yaml:"bankruptcyPercent"`
	HomeSales         int                   `json:"homeSales" yaml:"homeSales"`
	NetWorthP10       float64               `json:"netWorthP10" yaml:"netWorthP10"`
	NetWorthP50       float64               `json:"netWorthP50" yaml:"netWorthP50"`
	NetWorthP90       float64               `json:"netWorthP90" yaml:"netWorthP90"`
	Outcomes          []forecast.RunOutcome `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
}

// GenerateBatch summarises a batch. Per-run outcomes are kept only when
// includeRuns is set.
func GenerateBatch(batch *forecast.BatchResult, includeRuns bool) BatchSummary {
	summary := BatchSummary{
		Parameters:        batch.Parameters,
		Runs:              batch.Runs,
		Bankruptcies:      batch.Bankruptcies,
		BankruptcyPercent: decimal.NewFromFloat(batch.BankruptcyRate).Shift(2).Round(2).InexactFloat64(),
		HomeSales:         batch.HomeSales,
		NetWorthP10:       Money(batch.NetWorth.P10),
		NetWorthP50:       Money(batch.NetWorth.P50),
		NetWorthP90:       Money(batch.NetWorth.P90),
	}
	if includeRuns {
		summary.Outcomes = batch.Outcomes
	}
	return summary
}
