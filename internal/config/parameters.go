package config

import (
	"fmt"

	"github.com/iwvelando/homeowner-forecast/pkg/loans"
	"github.com/iwvelando/homeowner-forecast/pkg/validation"
)

// Parameters are the financial assumptions of a single simulation. Rates and ratios
// are percentages (5 means 5%); durations are in years.
type Parameters struct {
	PreTaxIncome       float64 `mapstructure:"preTaxIncome" yaml:"preTaxIncome" json:"preTaxIncome"`
	HomePrice          float64 `mapstructure:"homePrice" yaml:"homePrice" json:"homePrice"`
	LoanLength         float64 `mapstructure:"loanLength" yaml:"loanLength" json:"loanLength"`
	HOAAnnual          float64 `mapstructure:"hoaAnnual" yaml:"hoaAnnual" json:"hoaAnnual"`
	StartingRent       float64 `mapstructure:"startingRent" yaml:"startingRent" json:"startingRent"`
	DownPayRatio       float64 `mapstructure:"downPayRatio" yaml:"downPayRatio" json:"downPayRatio"`
	MortgageInterest   float64 `mapstructure:"mortgageInterest" yaml:"mortgageInterest" json:"mortgageInterest"`
	PropertyTaxRate    float64 `mapstructure:"propertyTaxRate" yaml:"propertyTaxRate" json:"propertyTaxRate"`
	SaleTaxRate        float64 `mapstructure:"saleTaxRate" yaml:"saleTaxRate" json:"saleTaxRate"`
	AppreciationRate   float64 `mapstructure:"appreciationRate" yaml:"appreciationRate" json:"appreciationRate"`
	RentInflation      float64 `mapstructure:"rentInflation" yaml:"rentInflation" json:"rentInflation"`
	ETFAnnual          float64 `mapstructure:"etfAnnual" yaml:"etfAnnual" json:"etfAnnual"`
	SimulationDuration float64 `mapstructure:"simulationDuration" yaml:"simulationDuration" json:"simulationDuration"`
	StartingBalance    float64 `mapstructure:"startingBalance" yaml:"startingBalance" json:"startingBalance"`
	Homeowner          bool    `mapstructure:"homeowner" yaml:"homeowner" json:"homeowner"`
	StartDate          string  `mapstructure:"startDate" yaml:"startDate,omitempty" json:"startDate,omitempty"`
}

// DefaultParameters returns the stock assumptions: a 90k earner weighing a 600k home.
func DefaultParameters() Parameters {
	return Parameters{
		PreTaxIncome:       90000,
		HomePrice:          600000,
		LoanLength:         30,
		HOAAnnual:          3000,
		StartingRent:       2000,
		DownPayRatio:       20,
		MortgageInterest:   5,
		PropertyTaxRate:    1.2,
		SaleTaxRate:        1.5,
		AppreciationRate:   4,
		RentInflation:      2,
		ETFAnnual:          7,
		SimulationDuration: 30,
		StartingBalance:    0,
		Homeowner:          true,
	}
}

// asMap keys every parameter by its config name, for viper defaults.
func (p Parameters) asMap() map[string]interface{} {
	m := make(map[string]interface{}, len(p.NumericFields())+2)
	for _, f := range p.namedFields() {
		m[f.key] = *f.value
	}
	m["homeowner"] = p.Homeowner
	m["startDate"] = p.StartDate
	return m
}

type namedField struct {
	key   string
	label string
	value *float64
}

func (p *Parameters) namedFields() []namedField {
	return []namedField{
		{"preTaxIncome", "Pre-tax income", &p.PreTaxIncome},
		{"homePrice", "Home price", &p.HomePrice},
		{"loanLength", "Loan length", &p.LoanLength},
		{"hoaAnnual", "HOA annual", &p.HOAAnnual},
		{"startingRent", "Starting rent", &p.StartingRent},
		{"downPayRatio", "Down payment ratio", &p.DownPayRatio},
		{"mortgageInterest", "Mortgage interest", &p.MortgageInterest},
		{"propertyTaxRate", "Property tax rate", &p.PropertyTaxRate},
		{"saleTaxRate", "Sale tax rate", &p.SaleTaxRate},
		{"appreciationRate", "Appreciation rate", &p.AppreciationRate},
		{"rentInflation", "Rent inflation", &p.RentInflation},
		{"etfAnnual", "ETF annual return", &p.ETFAnnual},
		{"simulationDuration", "Simulation duration", &p.SimulationDuration},
		{"startingBalance", "Starting balance", &p.StartingBalance},
	}
}

// NumericFields lists the numeric parameters with their display labels.
func (p Parameters) NumericFields() []validation.Field {
	named := p.namedFields()
	fields := make([]validation.Field, len(named))
	for i, f := range named {
		fields[i] = validation.Field{Name: f.label, Value: *f.value}
	}
	return fields
}

// Set assigns the numeric parameter with the given display label.
func (p *Parameters) Set(label string, value float64) error {
	for _, f := range p.namedFields() {
		if f.label == label || f.key == label {
			*f.value = value
			return nil
		}
	}
	return fmt.Errorf("unknown parameter %q", label)
}

// Principal is the amount borrowed after the down payment.
func (p Parameters) Principal() float64 {
	return p.HomePrice * (1 - p.DownPayRatio/100)
}

// DownPayment is the cash put down at purchase.
func (p Parameters) DownPayment() float64 {
	return p.HomePrice * p.DownPayRatio / 100
}

// Mortgage describes the fixed-rate loan taken out to buy the home.
func (p Parameters) Mortgage() loans.LoanConfig {
	return loans.LoanConfig{
		Name:         "mortgage",
		StartDate:    p.StartDate,
		Principal:    p.Principal(),
		InterestRate: p.MortgageInterest,
		TermYears:    p.LoanLength,
	}
}
