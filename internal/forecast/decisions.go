package forecast

import (
	"github.com/iwvelando/homeowner-forecast/internal/config"
	"github.com/iwvelando/homeowner-forecast/pkg/finance"
	"github.com/iwvelando/homeowner-forecast/pkg/mathutil"
)

// DecisionProvider supplies the two choices the engine leaves to the user. Calls are
// made inline from the month loop and may block.
type DecisionProvider interface {
	// InvestAmount returns how much of a positive bank balance to move into the ETF,
	// in [0, bank].
	InvestAmount(bank, etf float64) float64
	// SellAmount returns how much ETF to liquidate to cover a negative bank balance,
	// in [0, etf].
	SellAmount(bank, etf float64) float64
}

// NoDecisions never invests and never sells.
type NoDecisions struct{}

// InvestAmount implements DecisionProvider.
func (NoDecisions) InvestAmount(bank, etf float64) float64 { return 0 }

// SellAmount implements DecisionProvider.
func (NoDecisions) SellAmount(bank, etf float64) float64 { return 0 }

// Policy is a fixed, non-interactive decision rule.
type Policy struct {
	// InvestFraction of a positive bank balance is moved into the ETF every month.
	InvestFraction float64
	// CoverShortfall sells enough ETF, after the fee, to bring the bank back to zero.
	CoverShortfall bool
}

// PolicyFromConfig builds a Policy from the configured decisions.
func PolicyFromConfig(d config.DecisionConfig) Policy {
	return Policy{InvestFraction: d.InvestFraction, CoverShortfall: d.CoverShortfall}
}

// InvestAmount implements DecisionProvider.
func (p Policy) InvestAmount(bank, etf float64) float64 {
	return bank * p.InvestFraction
}

// SellAmount implements DecisionProvider.
func (p Policy) SellAmount(bank, etf float64) float64 {
	if !p.CoverShortfall || bank >= 0 {
		return 0
	}
	return mathutil.Clamp(-bank/finance.SaleProceeds(1), 0, etf)
}
