package forecast

import (
	"github.com/iwvelando/homeowner-forecast/pkg/finance"
)

// Person is the financial state advanced one month at a time by the engine. A Person
// belongs to a single run and is never shared.
type Person struct {
	BankBalance         float64            `json:"bankBalance" yaml:"bankBalance"`
	HomeValue           float64            `json:"homeValue" yaml:"homeValue"`
	MortgageBalance     float64            `json:"mortgageBalance" yaml:"mortgageBalance"`
	TotalEquity         float64            `json:"totalEquity" yaml:"totalEquity"`
	TotalPaidOnMortgage float64            `json:"totalPaidOnMortgage" yaml:"totalPaidOnMortgage"`
	MonthlyRent         float64            `json:"monthlyRent" yaml:"monthlyRent"`
	MonthlyMortgage     float64            `json:"monthlyMortgage" yaml:"monthlyMortgage"`
	MonthlyPropertyTax  float64            `json:"monthlyPropertyTax" yaml:"monthlyPropertyTax"`
	MonthlyHOA          float64            `json:"monthlyHOA" yaml:"monthlyHOA"`
	PreTaxIncome        float64            `json:"preTaxIncome" yaml:"preTaxIncome"`
	NetMonthlyIncome    float64            `json:"netMonthlyIncome" yaml:"netMonthlyIncome"`
	CapitalGainsTax     float64            `json:"capitalGainsTax" yaml:"capitalGainsTax"`
	ETF                 finance.ETFAccount `json:"etf" yaml:"etf"`
	Employed            bool               `json:"employed" yaml:"employed"`
	Homeowner           bool               `json:"homeowner" yaml:"homeowner"`
	HomeSold            bool               `json:"homeSold" yaml:"homeSold"`
	// YearIncome is the net income received since the last year boundary.
	YearIncome float64 `json:"yearIncome" yaml:"yearIncome"`
}

// NetWorth is bank plus ETF less the mortgage, counting the home only for owners.
func (p Person) NetWorth() float64 {
	worth := p.BankBalance + p.ETF.Balance - p.MortgageBalance
	if p.Homeowner {
		worth += p.HomeValue
	}
	return worth
}

// housingCost is the monthly mortgage, property tax and HOA due. Nothing is owed on
// a mortgage that has been paid off or cleared by a sale.
func (p Person) housingCost() float64 {
	cost := p.MonthlyPropertyTax + p.MonthlyHOA
	if p.MortgageBalance > 0 {
		cost += p.MonthlyMortgage
	}
	return cost
}

// clearHousing zeroes the fields that only make sense while a mortgage is held.
func (p *Person) clearHousing() {
	p.MortgageBalance = 0
	p.TotalEquity = 0
	p.TotalPaidOnMortgage = 0
}

// YearSnapshot is the state recorded for one simulated year.
type YearSnapshot struct {
	Year   int    `json:"year" yaml:"year"`
	Person Person `json:"person" yaml:"person"`
}

// MonthRecord is the structured trace of a single simulated month.
type MonthRecord struct {
	Month           int      `json:"month" yaml:"month"`
	Date            string   `json:"date,omitempty" yaml:"date,omitempty"`
	Year            int      `json:"year" yaml:"year"`
	ETFRate         float64  `json:"etfRate" yaml:"etfRate"`
	ETFDelta        float64  `json:"etfDelta" yaml:"etfDelta"`
	Invested        float64  `json:"invested" yaml:"invested"`
	ETFSold         float64  `json:"etfSold" yaml:"etfSold"`
	SaleProceeds    float64  `json:"saleProceeds" yaml:"saleProceeds"`
	NetIncome       float64  `json:"netIncome" yaml:"netIncome"`
	RentPaid        float64  `json:"rentPaid" yaml:"rentPaid"`
	HousingPaid     float64  `json:"housingPaid" yaml:"housingPaid"`
	InterestCharged float64  `json:"interestCharged" yaml:"interestCharged"`
	PrincipalPaid   float64  `json:"principalPaid" yaml:"principalPaid"`
	HomeSaleNet     float64  `json:"homeSaleNet,omitempty" yaml:"homeSaleNet,omitempty"`
	Employed        bool     `json:"employed" yaml:"employed"`
	BankBalance     float64  `json:"bankBalance" yaml:"bankBalance"`
	ETFBalance      float64  `json:"etfBalance" yaml:"etfBalance"`
	HomeValue       float64  `json:"homeValue" yaml:"homeValue"`
	MortgageBalance float64  `json:"mortgageBalance" yaml:"mortgageBalance"`
	NetWorth        float64  `json:"netWorth" yaml:"netWorth"`
	Notes           []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}
