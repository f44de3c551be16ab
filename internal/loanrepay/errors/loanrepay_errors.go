package loanrepayerrors

import (
	"employee-register/internal/shared/apperror"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// ErrExceedsLoanAmount is the cause carried by every over-repayment rejection.
var ErrExceedsLoanAmount = errors.New("repayment would exceed loan amount")

var (
	ErrRepaymentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Loan repayment not found",
		http.StatusNotFound,
	)
	ErrInvalidRepaymentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid repayment ID",
		http.StatusBadRequest,
	)
	ErrInvalidLoanID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid loan ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidAmount    = apperror.Validation("Repay amount must be greater than zero with at most 2 decimal places")
	ErrInvalidRepayDate = apperror.Validation("Repay date is invalid, expected YYYY-MM-DD")
	ErrEmployeeMismatch = apperror.Validation("Employee ID does not match the loan")
	ErrLoanNotActive    = apperror.Domain("Cannot repay an inactive loan")
)

// ExceedsLoanAmount reports the largest repayment the loan can still take.
func ExceedsLoanAmount(maxAllowed decimal.Decimal) *apperror.AppError {
	return apperror.Wrap(
		ErrExceedsLoanAmount,
		apperror.CodeInvalidInput,
		fmt.Sprintf("Repayment would exceed loan amount. Maximum allowed: %s", maxAllowed.StringFixed(2)),
		http.StatusBadRequest,
	)
}
