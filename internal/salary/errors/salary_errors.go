package salaryerrors

import (
	"employee-register/internal/shared/apperror"
	"net/http"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary record not found",
		http.StatusNotFound,
	)
	ErrNoSalaryRecords = apperror.New(
		apperror.CodeNotFound,
		"No salary records found for employee",
		http.StatusNotFound,
	)
	ErrInvalidSalaryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid salary ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidPaymentType    = apperror.Validation("Payment type must be either 'daily_credit' or 'salary'")
	ErrInvalidAmount         = apperror.Validation("Amount must be greater than zero with at most 2 decimal places")
	ErrInvalidDatePaid       = apperror.Validation("Date paid is invalid, expected YYYY-MM-DD")
	ErrInvalidLastSalaryDate = apperror.Validation("Last salary date is invalid, expected YYYY-MM-DD")
)
