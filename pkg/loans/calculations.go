// Package loans provides mortgage payment and amortization utilities.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/homeowner-forecast/pkg/constants"
	"github.com/iwvelando/homeowner-forecast/pkg/datetime"
	"github.com/iwvelando/homeowner-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given scheduled payment.
type Payment struct {
	Month              int     `json:"month" yaml:"month"`
	Date               string  `json:"date" yaml:"date"`
	Payment            float64 `json:"payment" yaml:"payment"`
	Principal          float64 `json:"principal" yaml:"principal"`
	Interest           float64 `json:"interest" yaml:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal" yaml:"remainingPrincipal"`
}

// TermMonths converts a loan length in years to a whole number of months.
func TermMonths(termYears float64) int {
	return int(math.Round(termYears * constants.MonthsPerYear))
}

// MonthlyMortgagePayment calculates the fixed monthly payment for a loan using the
// standard amortization formula. A zero rate divides by zero and yields NaN; callers
// are expected to reject such input before getting here.
func MonthlyMortgagePayment(principal, annualRatePct, termYears float64) float64 {
	monthlyRate := annualRatePct / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow(1+monthlyRate, float64(TermMonths(termYears)))
	return principal * monthlyRate * power / (power - 1)
}

// SimpleAnnualInterest is the interest charged against the balance by the forecast
// engine each month: the full annual rate, not divided by twelve.
func SimpleAnnualInterest(balance, annualRatePct float64) float64 {
	return balance * mathutil.PercentToRate(annualRatePct)
}

// MonthlyInterest calculates the interest portion of a conventional monthly payment.
func MonthlyInterest(balance, annualRatePct float64) float64 {
	return balance * annualRatePct / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// LoanConfig represents the parameters of a fixed-rate mortgage.
type LoanConfig struct {
	Name         string
	StartDate    string
	Principal    float64
	InterestRate float64 // annual, percent
	TermYears    float64
}

// ScheduleGenerator produces amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Generate creates a complete month-by-month amortization schedule for a loan.
func (g *ScheduleGenerator) Generate(loan LoanConfig) ([]Payment, error) {
	if loan.InterestRate <= 0 {
		return nil, fmt.Errorf("loan %s: interest rate must be positive, got %.4f", loan.Name, loan.InterestRate)
	}
	termMonths := TermMonths(loan.TermYears)
	if termMonths <= 0 {
		return nil, fmt.Errorf("loan %s: term must be positive, got %.2f years", loan.Name, loan.TermYears)
	}
	if loan.Principal < 0 {
		return nil, fmt.Errorf("loan %s: principal must not be negative, got %.2f", loan.Name, loan.Principal)
	}

	var dates []string
	if loan.StartDate != "" {
		var err error
		dates, err = datetime.MonthLabels(loan.StartDate, termMonths)
		if err != nil {
			return nil, fmt.Errorf("loan %s: invalid start date %q: %w", loan.Name, loan.StartDate, err)
		}
	}

	monthlyPayment := MonthlyMortgagePayment(loan.Principal, loan.InterestRate, loan.TermYears)
	schedule := make([]Payment, 0, termMonths)
	remaining := loan.Principal

	for month := 1; month <= termMonths; month++ {
		current := Payment{Month: month, Payment: monthlyPayment}
		if dates != nil {
			current.Date = dates[month-1]
		}
		current.Interest = MonthlyInterest(remaining, loan.InterestRate)
		current.Principal = monthlyPayment - current.Interest

		if month == termMonths || mathutil.Round(remaining-current.Principal) <= 0 {
			// Absorb machine error into the final payment.
			current.Principal = remaining
			current.Payment = remaining + current.Interest
			current.RemainingPrincipal = 0
			schedule = append(schedule, current)
			g.logger.Debug(fmt.Sprintf("loan %s paid off after %d payments", loan.Name, month),
				zap.String("op", "loans.Generate"),
			)
			break
		}

		current.RemainingPrincipal = remaining - current.Principal
		remaining = current.RemainingPrincipal
		schedule = append(schedule, current)
	}

	return schedule, nil
}

// TotalInterest sums the interest paid across a schedule.
func TotalInterest(schedule []Payment) float64 {
	total := 0.0
	for _, p := range schedule {
		total += p.Interest
	}
	return total
}
