package attendance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	attendanceerrors "employee-register/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	Service
	addFn     func(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	summaryFn func(ctx context.Context, employeeID string, month, year int) (MonthlySummary, error)
	deleteFn  func(ctx context.Context, id string) (bool, error)
}

func (f *fakeService) Add(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
	return f.addFn(ctx, req)
}

func (f *fakeService) MonthlySummary(ctx context.Context, employeeID string, month, year int) (MonthlySummary, error) {
	return f.summaryFn(ctx, employeeID, month, year)
}

func (f *fakeService) Delete(ctx context.Context, id string) (bool, error) {
	return f.deleteFn(ctx, id)
}

func newRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/attendance", h.Add)
	r.GET("/attendance/monthly/:employeeId/:month/:year", h.MonthlySummary)
	r.DELETE("/attendance/:id", h.Delete)
	return r
}

func TestHandler_Add(t *testing.T) {
	svc := &fakeService{addFn: func(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
		if req.Status == "vacation" {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
		}
		return AttendanceResponse{ID: "a-1", EmployeeID: req.EmployeeID, Status: req.Status}, nil
	}}
	r := newRouter(NewHandler(svc))

	cases := []struct {
		name string
		body string
		want int
	}{
		{"created", `{"employeeId":"3f1c1f59-6d0b-4a3e-9a39-2c2b1f2a0e11","date":"2025-03-14","status":"present"}`, http.StatusCreated},
		{"calculator rejects status", `{"employeeId":"3f1c1f59-6d0b-4a3e-9a39-2c2b1f2a0e11","date":"2025-03-14","status":"vacation"}`, http.StatusBadRequest},
		{"missing employee", `{"date":"2025-03-14","status":"present"}`, http.StatusBadRequest},
		{"malformed json", `{"employeeId":`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestHandler_MonthlySummary(t *testing.T) {
	svc := &fakeService{summaryFn: func(ctx context.Context, employeeID string, month, year int) (MonthlySummary, error) {
		assert.Equal(t, 7, month)
		assert.Equal(t, 2025, year)
		return MonthlySummary{EmployeeID: employeeID, Month: month, Year: year, PresentDays: 20, TotalDays: 20}, nil
	}}
	r := newRouter(NewHandler(svc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance/monthly/e-1/7/2025", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	for _, key := range []string{"employeeId", "presentDays", "absentDays", "halfDays", "overtimeDays", "totalDays", "totalSalary", "totalOvertimeSalary", "totalOvertimeHours"} {
		assert.Contains(t, w.Body.String(), `"`+key+`"`)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance/monthly/e-1/july/2025", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Delete(t *testing.T) {
	svc := &fakeService{deleteFn: func(ctx context.Context, id string) (bool, error) { return id == "a-1", nil }}
	r := newRouter(NewHandler(svc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/attendance/a-1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/attendance/a-2", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
