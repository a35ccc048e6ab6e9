package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Small", 5.5, "$5.50"},
		{"Thousands", 1234.56, "$1,234.56"},
		{"Millions", 1234567.891, "$1,234,567.89"},
		{"Negative", -1234.56, "-$1,234.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Currency(tt.amount))
		})
	}
}

func TestCurrencyNotFinite(t *testing.T) {
	assert.NotContains(t, Currency(math.NaN()), "$")
}

func TestNumericCurrency(t *testing.T) {
	assert.Equal(t, "66,000.00", NumericCurrency(66000))
	assert.Equal(t, "-500.00", NumericCurrency(-500))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "12.50%", Percent(12.5))
}

func TestYears(t *testing.T) {
	assert.Equal(t, "30 years", Years(30))
	assert.Equal(t, "2.50 years", Years(2.5))
}
