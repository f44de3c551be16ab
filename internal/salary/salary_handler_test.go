package salary_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"employee-register/internal/salary"
	salaryerrors "employee-register/internal/salary/errors"
	salaryMock "employee-register/internal/salary/mock"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupHandler(t *testing.T) (*gin.Engine, *salaryMock.MockService) {
	gin.SetMode(gin.TestMode)
	svc := salaryMock.NewMockService(gomock.NewController(t))
	h := salary.NewHandler(svc)

	r := gin.New()
	r.POST("/salaries", h.Create)
	r.GET("/salaries/statistics", h.Statistics)
	r.DELETE("/salaries/:id", h.Delete)
	r.GET("/salaries/:id/slip", h.DownloadSlip)
	r.GET("/salaries/employee/:employeeId/latest", h.GetLatestByEmployee)
	return r, svc
}

func TestSalaryHandler_Create(t *testing.T) {
	r, svc := setupHandler(t)
	emplID := "3f1c1f59-6d0b-4a3e-9a39-2c2b1f2a0e11"

	svc.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req salary.CreateSalaryRequest) (salary.SalaryResponse, error) {
			assert.Equal(t, "daily_credit", req.PaymentType)
			return salary.SalaryResponse{ID: "s-1", EmployeeID: req.EmployeeID, PaymentType: req.PaymentType, Amount: *req.Amount}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/salaries",
		strings.NewReader(`{"employeeId":"`+emplID+`","paymentType":"daily_credit","amount":75.5}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"s-1"`)

	req = httptest.NewRequest(http.MethodPost, "/salaries", strings.NewReader(`{"paymentType":"salary"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSalaryHandler_InvalidPaymentType(t *testing.T) {
	r, svc := setupHandler(t)
	svc.EXPECT().Add(gomock.Any(), gomock.Any()).Return(salary.SalaryResponse{}, salaryerrors.ErrInvalidPaymentType)

	req := httptest.NewRequest(http.MethodPost, "/salaries",
		strings.NewReader(`{"employeeId":"3f1c1f59-6d0b-4a3e-9a39-2c2b1f2a0e11","paymentType":"bonus","amount":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "daily_credit")
}

func TestSalaryHandler_Statistics(t *testing.T) {
	r, svc := setupHandler(t)
	svc.EXPECT().Statistics(gomock.Any()).Return(salary.Statistics{
		TotalPaid:   decimal.NewFromInt(10),
		MonthlyData: []salary.MonthlyAmount{{Name: "Mar", Amount: decimal.NewFromInt(10)}},
	}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salaries/statistics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	for _, key := range []string{"totalPaid", "thisMonth", "lastMonth", "recentPayments", "monthlyData", `"name":"Mar"`} {
		assert.Contains(t, w.Body.String(), key)
	}
}

func TestSalaryHandler_Delete(t *testing.T) {
	r, svc := setupHandler(t)

	svc.EXPECT().Delete(gomock.Any(), "s-1").Return(true, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/salaries/s-1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	svc.EXPECT().Delete(gomock.Any(), "s-2").Return(false, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/salaries/s-2", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSalaryHandler_DownloadSlip(t *testing.T) {
	r, svc := setupHandler(t)
	svc.EXPECT().Slip(gomock.Any(), "s-1").Return(salary.Slip{
		Filename: "salary-slip-2026-03-01-abcd1234.pdf",
		Content:  []byte("%PDF-1.3 test"),
	}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salaries/s-1/slip", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="salary-slip-2026-03-01-abcd1234.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3 test", w.Body.String())
}

func TestSalaryHandler_GetLatestByEmployee_None(t *testing.T) {
	r, svc := setupHandler(t)
	svc.EXPECT().GetLatestByEmployee(gomock.Any(), "e-1").Return(salary.SalaryResponse{}, salaryerrors.ErrNoSalaryRecords)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salaries/employee/e-1/latest", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
