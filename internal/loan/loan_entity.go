package loan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Loan is a loan registration. Active means not yet fully repaid.
type Loan struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_loans_employee_status"`

	LoanDate   time.Time       `gorm:"not null"`
	LoanAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Reason     string          `gorm:"type:text"`
	Status     string          `gorm:"type:varchar(16);not null;default:'active';index:idx_loans_employee_status"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l Loan) IsActive() bool {
	return l.Status == StatusActive
}

func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}
