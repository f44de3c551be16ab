package salary

import (
	"errors"

	employeeerrors "employee-register/internal/employee/errors"
	salaryerrors "employee-register/internal/salary/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salaryerrors.ErrSalaryNotFound
	}
	return err
}

func mapEmployeeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	return err
}
