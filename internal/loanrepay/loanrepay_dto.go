package loanrepay

import "github.com/shopspring/decimal"

type CreateRepaymentRequest struct {
	LoanID      string           `json:"loanId" binding:"required,uuid"`
	EmployeeID  string           `json:"employeeId" binding:"required,uuid"`
	RepayAmount *decimal.Decimal `json:"repayAmount"`
	RepayDate   *string          `json:"repayDate"`
}

type UpdateRepaymentRequest struct {
	RepayAmount *decimal.Decimal `json:"repayAmount"`
	RepayDate   *string          `json:"repayDate"`
}

type RepaymentResponse struct {
	ID          string          `json:"id"`
	LoanID      string          `json:"loanId"`
	EmployeeID  string          `json:"employeeId"`
	RepayAmount decimal.Decimal `json:"repayAmount"`
	RepayDate   string          `json:"repayDate"`
}

type TotalRepaidResponse struct {
	LoanID      string          `json:"loanId"`
	TotalRepaid decimal.Decimal `json:"totalRepaid"`
}
