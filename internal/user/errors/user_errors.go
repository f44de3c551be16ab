package usererrors

import (
	"employee-register/internal/shared/apperror"
	"net/http"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrUsernameTaken   = apperror.Validation("Username already exists")
	ErrEmailTaken      = apperror.Validation("Email already exists")
	ErrMissingUsername = apperror.Validation("Username is required")
	ErrMissingPassword = apperror.Validation("Password is required")
	ErrInvalidRole     = apperror.Validation("Role must be either 'ADMIN' or 'USER'")
)
