package loanrepay

import (
	"employee-register/internal/loan"
	loanrepayerrors "employee-register/internal/loanrepay/errors"

	"github.com/shopspring/decimal"
)

// applyRepayment adds amount to the loan's prior cumulative repayment and
// returns the new total. A total above the principal is rejected; a total
// equal to it is accepted.
func applyRepayment(principal, prior, amount decimal.Decimal) (decimal.Decimal, error) {
	total := prior.Add(amount)
	if total.GreaterThan(principal) {
		return decimal.Zero, loanrepayerrors.ExceedsLoanAmount(principal.Sub(prior))
	}
	return total, nil
}

// statusFor is the loan status implied by its cumulative repayment.
func statusFor(principal, total decimal.Decimal) string {
	if total.GreaterThanOrEqual(principal) {
		return loan.StatusInactive
	}
	return loan.StatusActive
}
