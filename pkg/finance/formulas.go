// Package finance provides the income, tax and investment formulas used by the
// forecast engine.
package finance

import (
	"github.com/iwvelando/homeowner-forecast/pkg/constants"
	"github.com/iwvelando/homeowner-forecast/pkg/mathutil"
)

// MonthlyIncome returns one month of pre-tax salary, or zero when unemployed.
// Salary growth is applied by the caller at year boundaries, so yearIndex does not
// change the result.
func MonthlyIncome(annualIncome float64, yearIndex int, employed bool) float64 {
	if !employed {
		return 0
	}
	return annualIncome / constants.MonthsPerYear
}

// RaisedIncome applies one annual raise to a pre-tax income.
func RaisedIncome(annualIncome float64) float64 {
	return annualIncome * (1 + constants.AnnualRaiseRate)
}

// CapitalGainsTax is a flat tax on the whole gain of a home sale once the gain
// exceeds the exclusion; gains at or below the exclusion are untaxed.
func CapitalGainsTax(purchasePrice, salePrice float64) float64 {
	gain := salePrice - purchasePrice
	if gain > constants.CapitalGainsExclusion {
		return gain * constants.CapitalGainsRate
	}
	return 0
}

// MonthlyRent returns the rent due in the given zero-based simulation year.
func MonthlyRent(startingRent, rentInflationPct float64, yearIndex int) float64 {
	return mathutil.Compound(startingRent, mathutil.PercentToRate(rentInflationPct), yearIndex)
}

// MonthlyPropertyTax spreads the annual property tax on the purchase price across twelve months.
func MonthlyPropertyTax(homePrice, propertyTaxRatePct float64) float64 {
	return mathutil.ApplyPercentage(homePrice, propertyTaxRatePct) / constants.MonthsPerYear
}

// HomeSaleResult breaks down the cash produced by selling a home.
type HomeSaleResult struct {
	SalePrice       float64
	SellingCosts    float64
	MortgagePayoff  float64
	CapitalGainsTax float64
	NetProceeds     float64
}

// SellHome computes the cash credited to the seller: the sale price less selling
// costs (saleTaxRatePct of the price), the outstanding mortgage and capital-gains tax.
func SellHome(purchasePrice, salePrice, mortgageBalance, saleTaxRatePct float64) HomeSaleResult {
	result := HomeSaleResult{
		SalePrice:       salePrice,
		SellingCosts:    mathutil.ApplyPercentage(salePrice, saleTaxRatePct),
		MortgagePayoff:  mortgageBalance,
		CapitalGainsTax: CapitalGainsTax(purchasePrice, salePrice),
	}
	result.NetProceeds = salePrice - result.SellingCosts - result.MortgagePayoff - result.CapitalGainsTax
	return result
}
