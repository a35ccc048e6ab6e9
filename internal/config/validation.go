package config

import (
	"fmt"

	"github.com/iwvelando/homeowner-forecast/pkg/validation"
)

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Nothing is corrected: the engine runs whatever it is given.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	p := c.Parameters

	warnings = append(warnings, validation.ValidateFinite(p.NumericFields())...)
	warnings = append(warnings, validation.ValidateNonNegative([]validation.Field{
		{Name: "Pre-tax income", Value: p.PreTaxIncome},
		{Name: "Home price", Value: p.HomePrice},
		{Name: "HOA annual", Value: p.HOAAnnual},
		{Name: "Starting rent", Value: p.StartingRent},
		{Name: "Property tax rate", Value: p.PropertyTaxRate},
		{Name: "Sale tax rate", Value: p.SaleTaxRate},
	})...)

	if w := validation.ValidatePositive(validation.Field{Name: "Simulation duration", Value: p.SimulationDuration},
		"no months will be simulated"); w != "" {
		warnings = append(warnings, w)
	}

	if p.Homeowner {
		if w := validation.ValidatePercentage(validation.Field{Name: "Down payment ratio", Value: p.DownPayRatio}); w != "" {
			warnings = append(warnings, w)
		}
		if w := validation.ValidatePositive(validation.Field{Name: "Mortgage interest", Value: p.MortgageInterest},
			"the monthly mortgage payment is undefined"); w != "" {
			warnings = append(warnings, w)
		}
		if w := validation.ValidatePositive(validation.Field{Name: "Loan length", Value: p.LoanLength},
			"the monthly mortgage payment is undefined"); w != "" {
			warnings = append(warnings, w)
		}
	}

	d := c.Simulation.Decisions
	if d.InvestFraction < 0 || d.InvestFraction > 1 {
		warnings = append(warnings, fmt.Sprintf("Invest fraction should be between 0 and 1 (got %.2f); out of range transfers are rejected", d.InvestFraction))
	}

	return warnings
}
