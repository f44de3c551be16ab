package loanrepay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"employee-register/internal/loanrepay"
	loanrepayerrors "employee-register/internal/loanrepay/errors"
	loanrepayMock "employee-register/internal/loanrepay/mock"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupHandler(t *testing.T) (*gin.Engine, *loanrepayMock.MockService) {
	gin.SetMode(gin.TestMode)
	svc := loanrepayMock.NewMockService(gomock.NewController(t))
	h := loanrepay.NewHandler(svc)

	r := gin.New()
	r.POST("/loan-repayments", h.Create)
	r.PUT("/loan-repayments/:id", h.Update)
	r.DELETE("/loan-repayments/:id", h.Delete)
	r.GET("/loan-repayments/loan/:loanId/total", h.GetTotalRepaid)
	return r, svc
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const (
	loanID     = "8f6a1c8e-2f57-4a51-9b4b-7d3b0d8a6c10"
	employeeID = "3f1c1f59-6d0b-4a3e-9a39-2c2b1f2a0e11"
)

func TestLoanRepayHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		r, svc := setupHandler(t)
		svc.EXPECT().
			Add(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req loanrepay.CreateRepaymentRequest) (loanrepay.RepaymentResponse, error) {
				require.NotNil(t, req.RepayAmount)
				assert.Equal(t, "250", req.RepayAmount.String())
				return loanrepay.RepaymentResponse{ID: "r-1", LoanID: req.LoanID, RepayAmount: *req.RepayAmount}, nil
			})

		w := do(r, http.MethodPost, "/loan-repayments",
			`{"loanId":"`+loanID+`","employeeId":"`+employeeID+`","repayAmount":250}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"loanId":"`+loanID+`"`)
	})

	t.Run("exceeds loan amount", func(t *testing.T) {
		r, svc := setupHandler(t)
		svc.EXPECT().
			Add(gomock.Any(), gomock.Any()).
			Return(loanrepay.RepaymentResponse{}, loanrepayerrors.ExceedsLoanAmount(decimal.NewFromInt(200)))

		w := do(r, http.MethodPost, "/loan-repayments",
			`{"loanId":"`+loanID+`","employeeId":"`+employeeID+`","repayAmount":300}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Maximum allowed: 200.00")
	})

	t.Run("inactive loan", func(t *testing.T) {
		r, svc := setupHandler(t)
		svc.EXPECT().Add(gomock.Any(), gomock.Any()).Return(loanrepay.RepaymentResponse{}, loanrepayerrors.ErrLoanNotActive)

		w := do(r, http.MethodPost, "/loan-repayments",
			`{"loanId":"`+loanID+`","employeeId":"`+employeeID+`","repayAmount":1}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
	})

	t.Run("binding failure never reaches service", func(t *testing.T) {
		r, _ := setupHandler(t)
		w := do(r, http.MethodPost, "/loan-repayments", `{"loanId":"nope","repayAmount":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoanRepayHandler_Update(t *testing.T) {
	r, svc := setupHandler(t)
	svc.EXPECT().
		Update(gomock.Any(), "r-1", gomock.Any()).
		Return(loanrepay.RepaymentResponse{}, loanrepayerrors.ErrRepaymentNotFound)

	w := do(r, http.MethodPut, "/loan-repayments/r-1", `{"repayAmount":10}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoanRepayHandler_Delete(t *testing.T) {
	r, svc := setupHandler(t)
	gomock.InOrder(
		svc.EXPECT().Delete(gomock.Any(), "r-1").Return(true, nil),
		svc.EXPECT().Delete(gomock.Any(), "r-1").Return(false, nil),
	)

	w := do(r, http.MethodDelete, "/loan-repayments/r-1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodDelete, "/loan-repayments/r-1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoanRepayHandler_GetTotalRepaid(t *testing.T) {
	r, svc := setupHandler(t)
	svc.EXPECT().GetTotalRepaidForLoan(gomock.Any(), loanID).Return(decimal.RequireFromString("300.50"), nil)

	w := do(r, http.MethodGet, "/loan-repayments/loan/"+loanID+"/total", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data loanrepay.TotalRepaidResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, loanID, body.Data.LoanID)
	assert.True(t, decimal.RequireFromString("300.50").Equal(body.Data.TotalRepaid))
}
