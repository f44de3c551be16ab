package salary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentTypeDailyCredit = "daily_credit"
	PaymentTypeSalary      = "salary"
)

type Salary struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_salaries_employee_paid"`
	DatePaid       time.Time       `gorm:"type:date;not null;index:idx_salaries_employee_paid"`
	PaymentType    string          `gorm:"type:varchar(16);not null"`
	Amount         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	LastSalaryDate *time.Time      `gorm:"type:date"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Salary) TableName() string {
	return "salaries"
}

func ValidPaymentType(t string) bool {
	return t == PaymentTypeDailyCredit || t == PaymentTypeSalary
}
