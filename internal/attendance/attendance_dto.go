package attendance

import "github.com/shopspring/decimal"

type CreateAttendanceRequest struct {
	EmployeeID          string           `json:"employeeId" binding:"required,uuid"`
	Date                string           `json:"date" binding:"required"`
	Status              string           `json:"status" binding:"required"`
	OvertimeDescription *string          `json:"overtimeDescription"`
	OvertimeSalary      *decimal.Decimal `json:"overtimeSalary"`
	OvertimeHours       *decimal.Decimal `json:"overtimeHours"`
	Description         string           `json:"description"`
}

// UpdateAttendanceRequest overwrites status and description. Overtime fields
// are applied only when present.
type UpdateAttendanceRequest struct {
	Status              string           `json:"status" binding:"required"`
	Description         string           `json:"description"`
	OvertimeDescription *string          `json:"overtimeDescription"`
	OvertimeSalary      *decimal.Decimal `json:"overtimeSalary"`
	OvertimeHours       *decimal.Decimal `json:"overtimeHours"`
}

type UpdateOvertimeRequest struct {
	OvertimeDescription *string          `json:"overtimeDescription"`
	OvertimeSalary      *decimal.Decimal `json:"overtimeSalary"`
	OvertimeHours       *decimal.Decimal `json:"overtimeHours"`
}

type AttendanceResponse struct {
	ID                  string           `json:"id"`
	EmployeeID          string           `json:"employeeId"`
	Date                string           `json:"date"`
	Status              string           `json:"status"`
	OvertimeDescription *string          `json:"overtimeDescription"`
	OvertimeSalary      *decimal.Decimal `json:"overtimeSalary"`
	OvertimeHours       *decimal.Decimal `json:"overtimeHours"`
	Description         string           `json:"description"`
	TotalSalary         decimal.Decimal  `json:"totalSalary"`
}

type MonthlySummary struct {
	EmployeeID          string          `json:"employeeId"`
	Month               int             `json:"month"`
	Year                int             `json:"year"`
	PresentDays         int             `json:"presentDays"`
	AbsentDays          int             `json:"absentDays"`
	HalfDays            int             `json:"halfDays"`
	OvertimeDays        int             `json:"overtimeDays"`
	TotalDays           int             `json:"totalDays"`
	TotalSalary         decimal.Decimal `json:"totalSalary"`
	TotalOvertimeSalary decimal.Decimal `json:"totalOvertimeSalary"`
	TotalOvertimeHours  decimal.Decimal `json:"totalOvertimeHours"`
}
