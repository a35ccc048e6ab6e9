package forecast

import (
	"testing"

	"github.com/iwvelando/homeowner-forecast/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestPolicyInvestAmount(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		bank     float64
		expected float64
	}{
		{"No investing", Policy{}, 1000, 0},
		{"Half", Policy{InvestFraction: 0.5}, 1000, 500},
		{"Everything", Policy{InvestFraction: 1}, 1000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.policy.InvestAmount(tt.bank, 0), 1e-9)
		})
	}
}

func TestPolicySellAmount(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		bank     float64
		etf      float64
		expected float64
	}{
		{"Disabled", Policy{}, -995, 5000, 0},
		{"Covers shortfall after fee", Policy{CoverShortfall: true}, -995, 5000, 1000},
		{"Capped at ETF balance", Policy{CoverShortfall: true}, -1000, 1000.5, 1000.5},
		{"Nothing owed", Policy{CoverShortfall: true}, 10, 5000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.policy.SellAmount(tt.bank, tt.etf), 1e-9)
		})
	}
}

func TestPolicyFromConfig(t *testing.T) {
	p := PolicyFromConfig(config.DecisionConfig{InvestFraction: 0.25, CoverShortfall: true})
	assert.Equal(t, Policy{InvestFraction: 0.25, CoverShortfall: true}, p)
}

func TestNoDecisions(t *testing.T) {
	var d DecisionProvider = NoDecisions{}
	assert.Zero(t, d.InvestAmount(1000, 1000))
	assert.Zero(t, d.SellAmount(-1000, 1000))
}
