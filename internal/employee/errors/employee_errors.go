package employeeerrors

import (
	"employee-register/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrNameRequired      = apperror.Validation("Name is required")
	ErrInvalidStatus     = apperror.Validation("Status must be active or inactive")
	ErrInvalidJoinDate   = apperror.Validation("Join date is invalid, expected YYYY-MM-DD")
	ErrNegativeSalary    = apperror.Validation("Base salary must not be negative")
	ErrSalaryPrecision   = apperror.Validation("Base salary must have at most 2 decimal places")
	ErrEmployeeNotActive = apperror.Domain("Employee is not active")
)
