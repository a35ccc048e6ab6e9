package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Mortgage payment", 2576.7437904582707, 2576.74},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small negative", -0.001, true},
		{"Exactly tolerance", 0.01, true},
		{"Just above tolerance", 0.02, false},
		{"Large negative", -100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsZero(tt.input); result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestClampAndInRange(t *testing.T) {
	tests := []struct {
		name    string
		val     float64
		clamped float64
		inRange bool
	}{
		{"Below", -5, 0, false},
		{"Lower bound", 0, 0, true},
		{"Inside", 50, 50, true},
		{"Upper bound", 100, 100, true},
		{"Above", 150, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.val, 0, 100); got != tt.clamped {
				t.Errorf("Clamp(%v) = %v, expected %v", tt.val, got, tt.clamped)
			}
			if got := InRange(tt.val, 0, 100); got != tt.inRange {
				t.Errorf("InRange(%v) = %v, expected %v", tt.val, got, tt.inRange)
			}
		})
	}

	if InRange(math.NaN(), 0, 100) {
		t.Errorf("NaN should never be in range")
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"20% down on 600k", 600000.0, 20.0, 120000.0},
		{"0% of value", 100.0, 0.0, 0.0},
		{"Negative value", -100.0, 50.0, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPercentage(tt.value, tt.percentage)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v",
					tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}

func TestCompound(t *testing.T) {
	// Two years of 2% rent inflation on 2000.
	result := Compound(2000, 0.02, 2)
	if math.Abs(result-2080.8) > 0.0001 {
		t.Errorf("Compound() = %v, expected 2080.8", result)
	}
	if Compound(2000, 0.02, 0) != 2000 {
		t.Errorf("Compound() with zero periods should be identity")
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) {
		t.Errorf("1.5 should be finite")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Errorf("NaN and Inf should not be finite")
	}
}
