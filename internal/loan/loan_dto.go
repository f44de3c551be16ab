package loan

import "github.com/shopspring/decimal"

type RegisterLoanRequest struct {
	EmployeeID string           `json:"employeeId" binding:"required,uuid"`
	LoanDate   *string          `json:"loanDate"`
	LoanAmount *decimal.Decimal `json:"loanAmount"`
	Reason     string           `json:"reason"`
	Status     string           `json:"status"`
}

type UpdateLoanRequest struct {
	LoanDate   *string          `json:"loanDate"`
	LoanAmount *decimal.Decimal `json:"loanAmount"`
	Reason     string           `json:"reason"`
	Status     string           `json:"status" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type LoanResponse struct {
	LoanID     string          `json:"loanId"`
	EmployeeID string          `json:"employeeId"`
	LoanDate   string          `json:"loanDate"`
	LoanAmount decimal.Decimal `json:"loanAmount"`
	Reason     string          `json:"reason"`
	Status     string          `json:"status"`
}
