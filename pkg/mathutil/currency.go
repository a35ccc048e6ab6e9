// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/homeowner-forecast/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within one cent).
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// Clamp bounds val to the closed interval [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// InRange reports whether val lies in [lo, hi]. NaN is never in range.
func InRange(val, lo, hi float64) bool {
	return val >= lo && val <= hi
}

// PercentToRate converts a percentage such as 5 into the rate 0.05.
func PercentToRate(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * PercentToRate(percentage)
}

// Compound grows value by rate for the given number of periods.
func Compound(value, rate float64, periods int) float64 {
	return value * math.Pow(1+rate, float64(periods))
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}
