package prompt

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/iwvelando/homeowner-forecast/pkg/format"
	"github.com/iwvelando/homeowner-forecast/pkg/validation"
	"go.uber.org/zap"
)

// Decisions asks at the terminal how much to invest and sell each month. Answers
// outside the allowed range are refused by the form; the engine re-checks them.
type Decisions struct {
	logger *zap.Logger
	ask    func(title string, limit float64) (string, error)
}

// NewDecisions creates a terminal decision provider.
func NewDecisions(logger *zap.Logger) *Decisions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decisions{logger: logger, ask: askAmount}
}

// InvestAmount implements forecast.DecisionProvider.
func (d *Decisions) InvestAmount(bank, etf float64) float64 {
	title := fmt.Sprintf("Bank %s, ETF %s. How much to invest?", format.Currency(bank), format.Currency(etf))
	return d.amount(title, bank)
}

// SellAmount implements forecast.DecisionProvider.
func (d *Decisions) SellAmount(bank, etf float64) float64 {
	title := fmt.Sprintf("Bank %s, ETF %s. How much ETF to sell?", format.Currency(bank), format.Currency(etf))
	return d.amount(title, etf)
}

func (d *Decisions) amount(title string, limit float64) float64 {
	text, err := d.ask(title, limit)
	if err != nil {
		d.logger.Warn("no decision made, using 0", zap.String("op", "prompt.Decisions"), zap.Error(err))
		return 0
	}
	if text == "" {
		return 0
	}
	v, err := validation.ParseFloat(text)
	if err != nil {
		d.logger.Warn("unparseable decision, using 0", zap.String("op", "prompt.Decisions"), zap.Error(err))
		return 0
	}
	return v
}

func rangeValidator(limit float64) func(string) error {
	return func(s string) error {
		if s == "" {
			return nil
		}
		v, err := validation.ParseFloat(s)
		if err != nil {
			return err
		}
		if v < 0 || v > limit {
			return fmt.Errorf("enter an amount between 0 and %s", format.NumericCurrency(limit))
		}
		return nil
	}
}

func askAmount(title string, limit float64) (string, error) {
	var text string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Placeholder("0").
			Value(&text).
			Validate(rangeValidator(limit)),
	)).Run()
	return text, err
}
