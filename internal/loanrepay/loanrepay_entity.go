package loanrepay

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LoanRepay struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	LoanID     uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	RepayAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	RepayDate   time.Time       `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LoanRepay) TableName() string {
	return "loan_repayments"
}
