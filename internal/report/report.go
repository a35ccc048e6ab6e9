// Package report turns simulation results into the year-by-year rows and final
// summary that output renderers consume.
package report

import (
	"github.com/iwvelando/homeowner-forecast/internal/config"
	"github.com/iwvelando/homeowner-forecast/internal/forecast"
	"github.com/iwvelando/homeowner-forecast/pkg/constants"
	"github.com/iwvelando/homeowner-forecast/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// YearRow is the state at the end of one simulated year.
type YearRow struct {
	Year                int     `json:"year" yaml:"year"`
	Through             string  `json:"through,omitempty" yaml:"through,omitempty"`
	BankBalance         float64 `json:"bankBalance" yaml:"bankBalance"`
	ETFBalance          float64 `json:"etfBalance" yaml:"etfBalance"`
	HomeValue           float64 `json:"homeValue" yaml:"homeValue"`
	TotalEquity         float64 `json:"totalEquity" yaml:"totalEquity"`
	TotalPaidOnMortgage float64 `json:"totalPaidOnMortgage" yaml:"totalPaidOnMortgage"`
	PreTaxIncome        float64 `json:"preTaxIncome" yaml:"preTaxIncome"`
	IncomeDelta         float64 `json:"incomeDelta" yaml:"incomeDelta"`
	NetWorth            float64 `json:"netWorth" yaml:"netWorth"`
	Employed            bool    `json:"employed" yaml:"employed"`
}

// Summary describes how a run ended.
type Summary struct {
	State            forecast.State `json:"state" yaml:"state"`
	MonthsSimulated  int            `json:"monthsSimulated" yaml:"monthsSimulated"`
	ElapsedYears     float64        `json:"elapsedYears" yaml:"elapsedYears"`
	FinalBank        float64        `json:"finalBank" yaml:"finalBank"`
	FinalETF         float64        `json:"finalETF" yaml:"finalETF"`
	FinalHomeValue   float64        `json:"finalHomeValue" yaml:"finalHomeValue"`
	FinalMortgage    float64        `json:"finalMortgage" yaml:"finalMortgage"`
	FinalEquity      float64        `json:"finalEquity" yaml:"finalEquity"`
	NetWorth         float64        `json:"netWorth" yaml:"netWorth"`
	CumulativeIncome float64        `json:"cumulativeIncome" yaml:"cumulativeIncome"`
	CapitalGainsTax  float64        `json:"capitalGainsTax" yaml:"capitalGainsTax"`
	Homeowner        bool           `json:"homeowner" yaml:"homeowner"`
	HomeSold         bool           `json:"homeSold" yaml:"homeSold"`
}

// Report is a rendered run.
type Report struct {
	Parameters config.Parameters      `json:"parameters" yaml:"parameters"`
	Years      []YearRow              `json:"years" yaml:"years"`
	Months     []forecast.MonthRecord `json:"months,omitempty" yaml:"months,omitempty"`
	Summary    Summary                `json:"summary" yaml:"summary"`
}

// Generate builds the yearly rows and summary for a finished run. Monthly records
// are carried through untouched.
func Generate(result forecast.Result) Report {
	through := lastDateByYear(result.Months)
	cumulative := decimal.Zero

	years := make([]YearRow, 0, len(result.Years))
	for _, snapshot := range result.Years {
		p := snapshot.Person
		years = append(years, YearRow{
			Year:                snapshot.Year + 1,
			Through:             through[snapshot.Year],
			BankBalance:         Money(p.BankBalance),
			ETFBalance:          Money(p.ETF.Balance),
			HomeValue:           Money(p.HomeValue),
			TotalEquity:         Money(p.TotalEquity),
			TotalPaidOnMortgage: Money(p.TotalPaidOnMortgage),
			PreTaxIncome:        Money(p.PreTaxIncome),
			IncomeDelta:         Money(p.YearIncome),
			NetWorth:            Money(p.NetWorth()),
			Employed:            p.Employed,
		})
		if mathutil.IsFinite(p.YearIncome) {
			cumulative = cumulative.Add(decimal.NewFromFloat(p.YearIncome))
		}
	}

	final := result.Person
	return Report{
		Parameters: result.Parameters,
		Years:      years,
		Months:     result.Months,
		Summary: Summary{
			State:            result.State,
			MonthsSimulated:  result.MonthsSimulated,
			ElapsedYears:     float64(result.MonthsSimulated) / constants.MonthsPerYear,
			FinalBank:        Money(final.BankBalance),
			FinalETF:         Money(final.ETF.Balance),
			FinalHomeValue:   Money(final.HomeValue),
			FinalMortgage:    Money(final.MortgageBalance),
			FinalEquity:      Money(final.TotalEquity),
			NetWorth:         Money(final.NetWorth()),
			CumulativeIncome: cumulative.Round(2).InexactFloat64(),
			CapitalGainsTax:  Money(final.CapitalGainsTax),
			Homeowner:        final.Homeowner,
			HomeSold:         final.HomeSold,
		},
	}
}

// Money rounds a currency amount to cents. NaN and infinities pass through.
func Money(amount float64) float64 {
	if !mathutil.IsFinite(amount) {
		return amount
	}
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

func lastDateByYear(months []forecast.MonthRecord) map[int]string {
	through := make(map[int]string)
	for _, m := range months {
		if m.Date != "" {
			through[m.Year] = m.Date
		}
	}
	return through
}
