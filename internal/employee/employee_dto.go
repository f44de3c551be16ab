package employee

import "github.com/shopspring/decimal"

type CreateEmployeeRequest struct {
	Name       string          `json:"name" binding:"required"`
	PhoneNo    string          `json:"phoneNo"`
	Address    string          `json:"address"`
	Email      string          `json:"email" binding:"omitempty,email"`
	Role       string          `json:"role"`
	JoinDate   *string         `json:"joinDate"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	Status     string          `json:"status"`
}

// UpdateEmployeeRequest replaces every field except joinDate, which is kept
// when absent, and status, which is kept when empty.
type UpdateEmployeeRequest struct {
	Name       string          `json:"name" binding:"required"`
	PhoneNo    string          `json:"phoneNo"`
	Address    string          `json:"address"`
	Email      string          `json:"email" binding:"omitempty,email"`
	Role       string          `json:"role"`
	JoinDate   *string         `json:"joinDate"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	Status     string          `json:"status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type EmployeeResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	PhoneNo    string          `json:"phoneNo"`
	Address    string          `json:"address"`
	Email      string          `json:"email"`
	Role       string          `json:"role"`
	JoinDate   *string         `json:"joinDate"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	Status     string          `json:"status"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}
