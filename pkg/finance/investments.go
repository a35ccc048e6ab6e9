package finance

import (
	"fmt"

	"github.com/iwvelando/homeowner-forecast/pkg/constants"
	"go.uber.org/zap"
)

// ETFChange captures the computed deltas for the ETF account in a given month.
type ETFChange struct {
	Rate       float64
	Growth     float64
	Investment float64
	Sale       float64
	Fee        float64
	Proceeds   float64
}

// ETFAccount tracks the running value of an exchange-traded fund holding.
type ETFAccount struct {
	Balance float64 `json:"balance" yaml:"balance"`
}

// SaleProceeds is the cash received for selling amount of ETF after the transaction fee.
func SaleProceeds(amount float64) float64 {
	return amount * (1 - constants.ETFSaleFeeRate)
}

// InvestmentProcessor applies monthly returns, transfers and sales to an ETF account.
type InvestmentProcessor struct {
	logger *zap.Logger
}

// NewInvestmentProcessor creates a processor for investment calculations.
func NewInvestmentProcessor(logger *zap.Logger) *InvestmentProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvestmentProcessor{logger: logger}
}

// Grow applies a monthly rate of return and returns the change in value. The
// balance never drops below zero.
func (ip *InvestmentProcessor) Grow(account *ETFAccount, monthlyRate float64) float64 {
	previous := account.Balance
	account.Balance += account.Balance * monthlyRate
	if account.Balance < 0 {
		account.Balance = 0
	}
	return account.Balance - previous
}

// Invest moves amount from cash into the account.
func (ip *InvestmentProcessor) Invest(account *ETFAccount, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("investment amount must not be negative, got %.2f", amount)
	}
	account.Balance += amount
	ip.logger.Debug("invested in ETF",
		zap.String("op", "finance.Invest"),
		zap.Float64("amount", amount),
		zap.Float64("balance", account.Balance),
	)
	return nil
}

// Sell liquidates amount from the account and returns the proceeds after the fee.
func (ip *InvestmentProcessor) Sell(account *ETFAccount, amount float64) (float64, error) {
	if amount < 0 || amount > account.Balance {
		return 0, fmt.Errorf("sale amount %.2f outside [0, %.2f]", amount, account.Balance)
	}
	account.Balance -= amount
	proceeds := SaleProceeds(amount)
	ip.logger.Debug("sold ETF",
		zap.String("op", "finance.Sell"),
		zap.Float64("amount", amount),
		zap.Float64("proceeds", proceeds),
		zap.Float64("balance", account.Balance),
	)
	return proceeds, nil
}
