// Package forecast defines the data structures related to a forecast and runs the
// month-by-month simulation of a homeowner's or renter's finances.
package forecast

import (
	"fmt"

	"github.com/iwvelando/homeowner-forecast/internal/config"
	"github.com/iwvelando/homeowner-forecast/pkg/constants"
	"github.com/iwvelando/homeowner-forecast/pkg/datetime"
	"github.com/iwvelando/homeowner-forecast/pkg/events"
	"github.com/iwvelando/homeowner-forecast/pkg/finance"
	"github.com/iwvelando/homeowner-forecast/pkg/loans"
	"github.com/iwvelando/homeowner-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// Events is the source of random outcomes consumed by the engine.
type Events interface {
	UnemploymentOccurs() bool
	JobSearchSucceeds() bool
	ETFMonthlyReturn(annualReturnPct float64) float64
	HomeValueMonthlyDrift(annualAppreciationPct float64) float64
	HomeSaleSucceeds() bool
}

// Options selects between alternative readings of the monthly step.
type Options = config.EngineOptions

// State is the lifecycle state of a run.
type State string

// Run states. Bankrupt and Completed are terminal.
const (
	StateRunning   State = "RUNNING"
	StateBankrupt  State = "BANKRUPT"
	StateCompleted State = "COMPLETED"
)

// Result holds everything a run produced.
type Result struct {
	Parameters      config.Parameters `json:"parameters" yaml:"parameters"`
	Person          Person            `json:"person" yaml:"person"`
	Years           []YearSnapshot    `json:"years" yaml:"years"`
	Months          []MonthRecord     `json:"months" yaml:"months"`
	State           State             `json:"state" yaml:"state"`
	MonthsSimulated int               `json:"monthsSimulated" yaml:"monthsSimulated"`
}

// Engine advances a Person through the simulation. An Engine is not safe for
// concurrent use because its Events usually are not.
type Engine struct {
	logger      *zap.Logger
	events      Events
	decisions   DecisionProvider
	opts        Options
	investments *finance.InvestmentProcessor
}

// NewEngine creates an engine. A nil Events draws from a clock-seeded source and
// nil decisions never invest or sell.
func NewEngine(logger *zap.Logger, ev Events, decisions DecisionProvider, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ev == nil {
		ev = events.NewSource(nil)
	}
	if decisions == nil {
		decisions = NoDecisions{}
	}
	return &Engine{
		logger:      logger,
		events:      ev,
		decisions:   decisions,
		opts:        opts,
		investments: finance.NewInvestmentProcessor(logger),
	}
}

// TotalMonths is the number of monthly steps in a simulation of the given length.
func TotalMonths(durationYears float64) int {
	return int(durationYears * constants.MonthsPerYear)
}

// NewPerson builds the starting state. The down payment is assumed to come from
// savings outside the simulation, so the bank starts at StartingBalance.
func NewPerson(params config.Parameters) Person {
	p := Person{
		BankBalance:  params.StartingBalance,
		HomeValue:    params.HomePrice,
		PreTaxIncome: params.PreTaxIncome,
		Employed:     true,
		Homeowner:    params.Homeowner,
	}
	if params.Homeowner {
		p.MortgageBalance = params.Principal()
		p.MonthlyMortgage = loans.MonthlyMortgagePayment(p.MortgageBalance, params.MortgageInterest, params.LoanLength)
		p.MonthlyPropertyTax = finance.MonthlyPropertyTax(params.HomePrice, params.PropertyTaxRate)
		p.MonthlyHOA = params.HOAAnnual / constants.MonthsPerYear
		p.TotalEquity = p.HomeValue - p.MortgageBalance
	} else {
		p.MonthlyRent = params.StartingRent
	}
	return p
}

// Run simulates params until the duration is exhausted or the person goes bankrupt.
// Degenerate parameters such as a zero mortgage rate are not rejected; they produce
// NaN balances.
func (e *Engine) Run(params config.Parameters) Result {
	person := NewPerson(params)
	totalMonths := TotalMonths(params.SimulationDuration)
	labels := e.monthLabels(params.StartDate, totalMonths)

	e.logger.Debug("starting simulation",
		zap.String("op", "forecast.Run"),
		zap.Bool("homeowner", params.Homeowner),
		zap.Int("months", totalMonths),
	)

	result := Result{Parameters: params, State: StateRunning}
	yearIndex := 0
	for month := 0; month < totalMonths; month++ {
		record := e.step(&person, params, yearIndex)
		record.Month = month + 1
		record.Year = yearIndex
		if labels != nil {
			record.Date = labels[month]
		}
		result.Months = append(result.Months, record)
		result.MonthsSimulated = month + 1

		result.Years = recordSnapshot(result.Years, yearIndex, person)

		if person.BankBalance < 0 && !person.Employed {
			result.State = StateBankrupt
			e.logger.Debug(fmt.Sprintf("bankrupt after %d months", month+1),
				zap.String("op", "forecast.Run"),
				zap.Float64("bank", person.BankBalance),
			)
			break
		}

		if (month+1)%constants.MonthsPerYear == 0 {
			person.PreTaxIncome = finance.RaisedIncome(person.PreTaxIncome)
			person.YearIncome = 0
			yearIndex++
		}
	}

	if result.State == StateRunning {
		result.State = StateCompleted
	}
	result.Person = person

	e.logger.Debug("simulation finished",
		zap.String("op", "forecast.Run"),
		zap.String("state", string(result.State)),
		zap.Int("monthsSimulated", result.MonthsSimulated),
		zap.Float64("netWorth", person.NetWorth()),
	)
	return result
}

// step applies one month to p in the fixed order and returns its trace.
func (e *Engine) step(p *Person, params config.Parameters, yearIndex int) MonthRecord {
	var rec MonthRecord

	// Market.
	rec.ETFRate = e.events.ETFMonthlyReturn(params.ETFAnnual)
	rec.ETFDelta = e.investments.Grow(&p.ETF, rec.ETFRate)

	if p.BankBalance > 0 {
		rec.Invested = e.invest(p)
	}

	if !p.Homeowner {
		p.MonthlyRent = finance.MonthlyRent(params.StartingRent, params.RentInflation, yearIndex)
		p.BankBalance -= p.MonthlyRent
		rec.RentPaid += p.MonthlyRent
	}

	p.NetMonthlyIncome = finance.MonthlyIncome(p.PreTaxIncome, yearIndex, p.Employed)
	if p.Employed {
		p.BankBalance += p.NetMonthlyIncome
		p.YearIncome += p.NetMonthlyIncome
		rec.NetIncome = p.NetMonthlyIncome
	} else if !e.opts.SkipUnemployedHousingCost {
		cost := p.housingCost()
		p.BankBalance -= cost
		rec.HousingPaid += cost
	}

	p.HomeValue *= e.events.HomeValueMonthlyDrift(params.AppreciationRate)

	if p.Homeowner {
		cost := p.housingCost()
		p.BankBalance -= cost
		rec.HousingPaid += cost
		if p.MortgageBalance > 0 {
			rec.InterestCharged = e.interest(p.MortgageBalance, params.MortgageInterest)
			rec.PrincipalPaid = p.MonthlyMortgage - rec.InterestCharged
			if rec.PrincipalPaid > p.MortgageBalance {
				rec.PrincipalPaid = p.MortgageBalance
			}
			p.MortgageBalance -= rec.PrincipalPaid
			p.TotalPaidOnMortgage += rec.PrincipalPaid
			if p.MortgageBalance <= 0 || mathutil.IsZero(p.MortgageBalance) {
				p.MortgageBalance = 0
				rec.Notes = append(rec.Notes, "mortgage paid off")
			}
		}
		p.TotalPaidOnMortgage += p.MonthlyPropertyTax + p.MonthlyHOA
		p.TotalEquity = p.HomeValue - p.MortgageBalance
	} else if e.opts.ChargeRentTwice {
		p.BankBalance -= p.MonthlyRent
		rec.RentPaid += p.MonthlyRent
	}

	// Employment. A job found this month can be lost again immediately.
	if !p.Employed && e.events.JobSearchSucceeds() {
		p.Employed = true
		rec.Notes = append(rec.Notes, "found a job")
	}
	if p.Employed && e.events.UnemploymentOccurs() {
		p.Employed = false
		rec.Notes = append(rec.Notes, "lost job")
	}

	if p.BankBalance < 0 && p.ETF.Balance >= -p.BankBalance {
		rec.ETFSold, rec.SaleProceeds = e.sell(p)
	}

	if p.Homeowner && !p.HomeSold && p.BankBalance <= 0 && e.events.HomeSaleSucceeds() {
		sale := finance.SellHome(params.HomePrice, p.HomeValue, p.MortgageBalance, params.SaleTaxRate)
		p.BankBalance += sale.NetProceeds
		p.CapitalGainsTax = sale.CapitalGainsTax
		p.HomeValue = 0
		p.clearHousing()
		p.HomeSold = true
		if e.opts.ClearHomeownerOnSale {
			p.Homeowner = false
		}
		rec.HomeSaleNet = sale.NetProceeds
		rec.Notes = append(rec.Notes, fmt.Sprintf("sold home for %.2f", sale.SalePrice))
		e.logger.Debug("home sold",
			zap.String("op", "forecast.Run"),
			zap.Float64("salePrice", sale.SalePrice),
			zap.Float64("capitalGainsTax", sale.CapitalGainsTax),
			zap.Float64("netProceeds", sale.NetProceeds),
		)
	}

	if !p.Homeowner {
		p.clearHousing()
	}

	rec.Employed = p.Employed
	rec.BankBalance = p.BankBalance
	rec.ETFBalance = p.ETF.Balance
	rec.HomeValue = p.HomeValue
	rec.MortgageBalance = p.MortgageBalance
	rec.NetWorth = p.NetWorth()
	return rec
}

// invest asks the decision provider for a transfer into the ETF and applies it.
func (e *Engine) invest(p *Person) float64 {
	amount := e.decisions.InvestAmount(p.BankBalance, p.ETF.Balance)
	if !mathutil.InRange(amount, 0, p.BankBalance) {
		e.logger.Warn(fmt.Sprintf("rejected investment of %.2f outside [0, %.2f]", amount, p.BankBalance),
			zap.String("op", "forecast.invest"),
		)
		return 0
	}
	if amount == 0 {
		return 0
	}
	if err := e.investments.Invest(&p.ETF, amount); err != nil {
		e.logger.Warn("investment failed", zap.String("op", "forecast.invest"), zap.Error(err))
		return 0
	}
	p.BankBalance -= amount
	return amount
}

// sell asks the decision provider how much ETF to liquidate and credits the
// proceeds, net of the fee, to the bank.
func (e *Engine) sell(p *Person) (float64, float64) {
	amount := e.decisions.SellAmount(p.BankBalance, p.ETF.Balance)
	if !mathutil.InRange(amount, 0, p.ETF.Balance) {
		e.logger.Warn(fmt.Sprintf("rejected ETF sale of %.2f outside [0, %.2f]", amount, p.ETF.Balance),
			zap.String("op", "forecast.sell"),
		)
		return 0, 0
	}
	if amount == 0 {
		return 0, 0
	}
	proceeds, err := e.investments.Sell(&p.ETF, amount)
	if err != nil {
		e.logger.Warn("ETF sale failed", zap.String("op", "forecast.sell"), zap.Error(err))
		return 0, 0
	}
	p.BankBalance += proceeds
	return amount, proceeds
}

func (e *Engine) interest(balance, annualRatePct float64) float64 {
	if e.opts.ProRateMortgageInterest {
		return loans.MonthlyInterest(balance, annualRatePct)
	}
	return loans.SimpleAnnualInterest(balance, annualRatePct)
}

func (e *Engine) monthLabels(start string, count int) []string {
	if start == "" || count <= 0 {
		return nil
	}
	labels, err := datetime.MonthLabels(start, count)
	if err != nil {
		e.logger.Warn(fmt.Sprintf("ignoring invalid start date %q", start),
			zap.String("op", "forecast.Run"),
			zap.Error(err),
		)
		return nil
	}
	return labels
}

// recordSnapshot stores p as the snapshot for yearIndex, replacing an earlier one
// from the same year.
func recordSnapshot(years []YearSnapshot, yearIndex int, p Person) []YearSnapshot {
	snapshot := YearSnapshot{Year: yearIndex, Person: p}
	if yearIndex < len(years) {
		years[yearIndex] = snapshot
		return years
	}
	return append(years, snapshot)
}
