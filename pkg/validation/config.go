package validation

import (
	"fmt"
	"math"
)

// Field is one named numeric input to check.
type Field struct {
	Name  string
	Value float64
}

// ValidateFinite returns a warning for every field that is NaN or infinite.
func ValidateFinite(fields []Field) []string {
	var warnings []string
	for _, f := range fields {
		if math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
			warnings = append(warnings, fmt.Sprintf("%s is not a finite number (%v)", f.Name, f.Value))
		}
	}
	return warnings
}

// ValidateNonNegative returns a warning for every field below zero.
func ValidateNonNegative(fields []Field) []string {
	var warnings []string
	for _, f := range fields {
		if f.Value < 0 {
			warnings = append(warnings, fmt.Sprintf("%s is negative (%.2f)", f.Name, f.Value))
		}
	}
	return warnings
}

// ValidatePercentage warns when a ratio falls outside [0, 100].
func ValidatePercentage(f Field) string {
	if f.Value < 0 || f.Value > 100 {
		return fmt.Sprintf("%s should be between 0 and 100 (got %.2f)", f.Name, f.Value)
	}
	return ""
}

// ValidatePositive warns when a value that divides something is not above zero.
// consequence describes what goes wrong downstream.
func ValidatePositive(f Field, consequence string) string {
	if f.Value <= 0 {
		return fmt.Sprintf("%s must be positive (got %.2f): %s", f.Name, f.Value, consequence)
	}
	return ""
}
