package loanrepay

import (
	"errors"
	"testing"

	"employee-register/internal/loan"
	loanrepayerrors "employee-register/internal/loanrepay/errors"
	"employee-register/internal/shared/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyRepayment(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		prior     string
		amount    string
		want      string
		maxAllow  string
	}{
		{name: "first repayment", principal: "500", prior: "0", amount: "300", want: "300"},
		{name: "reaches principal", principal: "500", prior: "300", amount: "200", want: "500"},
		{name: "cents", principal: "100.50", prior: "50.25", amount: "50.25", want: "100.50"},
		{name: "one cent over", principal: "100", prior: "99.99", amount: "0.02", maxAllow: "0.01"},
		{name: "already full", principal: "500", prior: "500", amount: "1", maxAllow: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyRepayment(dec(tt.principal), dec(tt.prior), dec(tt.amount))
			if tt.maxAllow != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, loanrepayerrors.ErrExceedsLoanAmount))
				assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))
				assert.Contains(t, err.Error(), "Maximum allowed: "+dec(tt.maxAllow).StringFixed(2))
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, loan.StatusActive, statusFor(dec("500"), dec("0")))
	assert.Equal(t, loan.StatusActive, statusFor(dec("500"), dec("499.99")))
	assert.Equal(t, loan.StatusInactive, statusFor(dec("500"), dec("500")))
	assert.Equal(t, loan.StatusInactive, statusFor(dec("500"), dec("500.01")))
}
