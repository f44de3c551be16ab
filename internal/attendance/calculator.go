package attendance

import (
	attendanceerrors "employee-register/internal/attendance/errors"
	"employee-register/internal/shared/money"

	"github.com/shopspring/decimal"
)

// TotalSalaryScale is the scale of the total_salary column. Half of a
// two-place base salary needs three places to stay exact.
const TotalSalaryScale int32 = money.Scale + 1

var two = decimal.NewFromInt(2)

// CalculateTotal returns the pay earned for one attendance day. Status is
// matched exactly against the lower-case status names.
func CalculateTotal(status string, baseSalary decimal.Decimal, overtimeSalary *decimal.Decimal) (decimal.Decimal, error) {
	if overtimeSalary != nil && !money.FitsScale(*overtimeSalary, money.Scale) {
		return decimal.Zero, attendanceerrors.ErrInvalidOvertimeSalary
	}
	switch status {
	case StatusPresent:
		return baseSalary, nil
	case StatusHalfday:
		return baseSalary.Div(two), nil
	case StatusOvertime:
		if overtimeSalary == nil {
			return baseSalary, nil
		}
		return baseSalary.Add(*overtimeSalary), nil
	case StatusAbsent:
		return decimal.Zero, nil
	default:
		return decimal.Zero, attendanceerrors.ErrInvalidStatus
	}
}

// summarize folds a month of attendance rows into per-status counts and totals.
func summarize(employeeID string, month, year int, rows []Attendance) MonthlySummary {
	sum := MonthlySummary{
		EmployeeID:          employeeID,
		Month:               month,
		Year:                year,
		TotalDays:           len(rows),
		TotalSalary:         decimal.Zero,
		TotalOvertimeSalary: decimal.Zero,
		TotalOvertimeHours:  decimal.Zero,
	}

	for _, a := range rows {
		switch a.Status {
		case StatusPresent:
			sum.PresentDays++
		case StatusAbsent:
			sum.AbsentDays++
		case StatusHalfday:
			sum.HalfDays++
		case StatusOvertime:
			sum.OvertimeDays++
			if a.OvertimeSalary != nil {
				sum.TotalOvertimeSalary = sum.TotalOvertimeSalary.Add(*a.OvertimeSalary)
			}
			if a.OvertimeHours != nil {
				sum.TotalOvertimeHours = sum.TotalOvertimeHours.Add(*a.OvertimeHours)
			}
		}
		sum.TotalSalary = sum.TotalSalary.Add(a.TotalSalary)
	}

	return sum
}
