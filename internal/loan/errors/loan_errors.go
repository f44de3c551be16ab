package loanerrors

import (
	"employee-register/internal/shared/apperror"
	"net/http"
)

var (
	ErrLoanNotFound = apperror.New(
		apperror.CodeNotFound,
		"Loan not found",
		http.StatusNotFound,
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
	ErrInvalidAmount   = apperror.Validation("Loan amount must be greater than zero with at most 2 decimal places")
	ErrInvalidStatus   = apperror.Validation("Status must be either 'active' or 'inactive'")
	ErrInvalidLoanDate = apperror.Validation("Loan date is invalid, expected YYYY-MM-DD")

	ErrEmployeeNotFound  = apperror.Domain("Cannot register loan for unknown employee")
	ErrEmployeeNotActive = apperror.Domain("Cannot register loan for inactive employee")
)
