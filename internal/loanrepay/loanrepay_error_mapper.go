package loanrepay

import (
	"errors"

	loanerrors "employee-register/internal/loan/errors"
	loanrepayerrors "employee-register/internal/loanrepay/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loanrepayerrors.ErrRepaymentNotFound
	}
	return err
}

func mapLoanError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loanerrors.ErrLoanNotFound
	}
	return err
}
