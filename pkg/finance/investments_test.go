package finance

import (
	"math"
	"testing"

	"go.uber.org/zap"
)

func TestSaleProceedsFee(t *testing.T) {
	for _, amount := range []float64{0, 1, 100, 12345.67, 1e6} {
		if got := SaleProceeds(amount); math.Abs(got-amount*0.995) > 1e-9 {
			t.Errorf("SaleProceeds(%v) = %v, expected %v", amount, got, amount*0.995)
		}
	}
}

func TestInvestmentProcessorGrow(t *testing.T) {
	processor := NewInvestmentProcessor(zap.NewNop())

	tests := []struct {
		name     string
		balance  float64
		rate     float64
		delta    float64
		expected float64
	}{
		{"Positive return", 1000, 0.01, 10, 1010},
		{"Negative return", 1000, -0.02, -20, 980},
		{"Empty account", 0, 0.05, 0, 0},
		{"Total loss never goes negative", 1000, -1.5, -1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := &ETFAccount{Balance: tt.balance}
			delta := processor.Grow(account, tt.rate)
			if math.Abs(delta-tt.delta) > 1e-9 {
				t.Errorf("Grow() delta = %.4f, expected %.4f", delta, tt.delta)
			}
			if math.Abs(account.Balance-tt.expected) > 1e-9 {
				t.Errorf("Grow() balance = %.4f, expected %.4f", account.Balance, tt.expected)
			}
		})
	}
}

func TestInvestmentProcessorInvestAndSell(t *testing.T) {
	processor := NewInvestmentProcessor(nil)
	account := &ETFAccount{}

	if err := processor.Invest(account, 5000); err != nil {
		t.Fatalf("Invest() error = %v", err)
	}
	if err := processor.Invest(account, -1); err == nil {
		t.Errorf("Invest() expected error for negative amount")
	}

	proceeds, err := processor.Sell(account, 2000)
	if err != nil {
		t.Fatalf("Sell() error = %v", err)
	}
	if math.Abs(proceeds-1990) > 1e-9 {
		t.Errorf("Sell() proceeds = %.2f, expected 1990", proceeds)
	}
	if math.Abs(account.Balance-3000) > 1e-9 {
		t.Errorf("balance after sale = %.2f, expected 3000", account.Balance)
	}

	if _, err := processor.Sell(account, 3000.01); err == nil {
		t.Errorf("Sell() expected error when selling more than the balance")
	}
	if _, err := processor.Sell(account, -5); err == nil {
		t.Errorf("Sell() expected error for negative amount")
	}
}
