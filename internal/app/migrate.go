package app

import (
	"employee-register/internal/attendance"
	"employee-register/internal/employee"
	"employee-register/internal/loan"
	"employee-register/internal/loanrepay"
	"employee-register/internal/messaging/kafka"
	"employee-register/internal/salary"
	"employee-register/internal/user"

	"gorm.io/gorm"
)

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employee.Employee{},
		&attendance.Attendance{},
		&loan.Loan{},
		&loanrepay.LoanRepay{},
		&salary.Salary{},
		&user.User{},
		&kafka.OutboxRecord{},
	)
}
