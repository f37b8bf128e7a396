package underwriting

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNonPositiveIncome is returned when a DTI ratio is requested for a
// monthly income of zero or less.
var ErrNonPositiveIncome = errors.New("monthly income must be greater than zero")

// CalculateDTI returns the debt-to-income ratio as a percentage, rounded to
// two decimal places. Rounding is half-to-even (banker's rounding): a ratio
// of exactly 30.025 rounds to 30.02, and 30.035 rounds to 30.04.
func CalculateDTI(monthlyDebts, monthlyIncome float64) (float64, error) {
	if monthlyIncome <= 0 {
		return 0, ErrNonPositiveIncome
	}

	ratio := decimal.NewFromFloat(monthlyDebts).
		Div(decimal.NewFromFloat(monthlyIncome)).
		Mul(decimal.NewFromInt(100)).
		RoundBank(2)

	out, _ := ratio.Float64()
	return out, nil
}
