package validation

import (
	"math"
	"strings"
	"testing"
)

func TestValidateFinite(t *testing.T) {
	warnings := ValidateFinite([]Field{
		{"Home price", 600000},
		{"Pre-tax income", math.NaN()},
		{"Rent", math.Inf(1)},
	})
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "Pre-tax income") || !strings.Contains(warnings[1], "Rent") {
		t.Errorf("unexpected warnings %v", warnings)
	}
}

func TestValidateNonNegative(t *testing.T) {
	warnings := ValidateNonNegative([]Field{{"HOA", -1}, {"Rent", 0}, {"Price", 10}})
	if len(warnings) != 1 || !strings.Contains(warnings[0], "HOA") {
		t.Errorf("unexpected warnings %v", warnings)
	}
}

func TestValidatePercentage(t *testing.T) {
	tests := []struct {
		value float64
		warn  bool
	}{
		{-1, true},
		{0, false},
		{20, false},
		{100, false},
		{101, true},
	}
	for _, tt := range tests {
		got := ValidatePercentage(Field{"Down payment ratio", tt.value})
		if (got != "") != tt.warn {
			t.Errorf("ValidatePercentage(%v) = %q, expected warning %v", tt.value, got, tt.warn)
		}
	}
}

func TestValidatePositive(t *testing.T) {
	if got := ValidatePositive(Field{"Mortgage interest", 0}, "payment is undefined"); !strings.Contains(got, "payment is undefined") {
		t.Errorf("ValidatePositive() = %q", got)
	}
	if got := ValidatePositive(Field{"Mortgage interest", 5}, "payment is undefined"); got != "" {
		t.Errorf("ValidatePositive() = %q, expected no warning", got)
	}
}
