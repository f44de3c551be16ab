package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SalaryPaidTopic = "employee-register.salary.paid.v1"
	SalaryPaidType  = "salary_paid"
)

type SalaryPaidEvent struct {
	EventType    string          `json:"event_type"`
	RequestID    string          `json:"request_id"`
	SalaryID     string          `json:"salary_id"`
	EmployeeName string          `json:"employee_name"`
	Email        string          `json:"email"`
	Amount       decimal.Decimal `json:"amount"`
	DatePaid     time.Time       `json:"date_paid"`
	OccurredAt   time.Time       `json:"occurred_at"`
}
