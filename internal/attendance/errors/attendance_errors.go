package attendanceerrors

import (
	"employee-register/internal/shared/apperror"
	"net/http"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)
	ErrInvalidAttendanceID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid attendance ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidStatus         = apperror.Validation("invalid attendance status, must be present, absent, halfday or overtime")
	ErrInvalidDate           = apperror.Validation("Invalid date format, use YYYY-MM-DD")
	ErrInvalidPeriod         = apperror.Validation("Month must be between 1 and 12 and year must be positive")
	ErrInvalidOvertimeSalary = apperror.Validation("Overtime salary must have at most 2 decimal places")

	ErrEmployeeNotActive = apperror.Domain("Cannot add attendance for inactive employee")
	ErrAlreadyRecorded   = apperror.Domain("attendance already recorded for this date")
	ErrNotOvertime       = apperror.Domain("Cannot update overtime details for non-overtime attendance")
)
