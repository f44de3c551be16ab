package salary

import "github.com/shopspring/decimal"

type CreateSalaryRequest struct {
	EmployeeID     string           `json:"employeeId" binding:"required,uuid"`
	DatePaid       *string          `json:"datePaid"`
	PaymentType    string           `json:"paymentType"`
	Amount         *decimal.Decimal `json:"amount"`
	LastSalaryDate *string          `json:"lastSalaryDate"`
}

type UpdateSalaryRequest struct {
	DatePaid       *string          `json:"datePaid"`
	PaymentType    string           `json:"paymentType"`
	Amount         *decimal.Decimal `json:"amount"`
	LastSalaryDate *string          `json:"lastSalaryDate"`
}

type SalaryResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employeeId"`
	DatePaid       string          `json:"datePaid"`
	PaymentType    string          `json:"paymentType"`
	Amount         decimal.Decimal `json:"amount"`
	LastSalaryDate *string         `json:"lastSalaryDate"`
}

type MonthlyAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type Statistics struct {
	TotalPaid      decimal.Decimal  `json:"totalPaid"`
	ThisMonth      decimal.Decimal  `json:"thisMonth"`
	LastMonth      decimal.Decimal  `json:"lastMonth"`
	RecentPayments []SalaryResponse `json:"recentPayments"`
	MonthlyData    []MonthlyAmount  `json:"monthlyData"`
}
