package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPresent  = "present"
	StatusAbsent   = "absent"
	StatusHalfday  = "halfday"
	StatusOvertime = "overtime"
)

type Attendance struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	Date                time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2;index"`
	Status              string    `gorm:"type:varchar(16);not null"`
	OvertimeDescription *string
	OvertimeSalary      *decimal.Decimal `gorm:"type:numeric(14,2)"`
	OvertimeHours       *decimal.Decimal `gorm:"type:numeric(6,2)"`
	Description         string
	TotalSalary         decimal.Decimal `gorm:"type:numeric(15,3);not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (Attendance) TableName() string {
	return "attendance"
}
