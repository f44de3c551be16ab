package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"not null"`
	PhoneNo    string
	Address    string
	Email      string
	Role       string
	JoinDate   *time.Time      `gorm:"type:date"`
	BaseSalary decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Status     string          `gorm:"type:varchar(16);not null;default:active;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}
