package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string // e.g. INVALID_INPUT
	Message    string // safe to show to clients
	HTTPStatus int
	Err        error // optional cause
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError without a cause
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap creates an AppError around err. A nil err yields nil.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Validation reports malformed or out-of-range input.
func Validation(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

// Domain reports a violated business rule.
func Domain(message string) *AppError {
	return New(CodeInvalidState, message, http.StatusConflict)
}

// HasCode reports whether any AppError in err's chain carries code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	for err != nil {
		if errors.As(err, &appErr) {
			if appErr.Code == code {
				return true
			}
			err = appErr.Err
			continue
		}
		return false
	}
	return false
}
