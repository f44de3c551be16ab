package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"employee-register/internal/employee"
	employeeerrors "employee-register/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	CreateFn       func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn       func(ctx context.Context) ([]employee.EmployeeResponse, error)
	GetActiveFn    func(ctx context.Context) ([]employee.EmployeeResponse, error)
	CountActiveFn  func(ctx context.Context) (int64, error)
	GetByIDFn      func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	UpdateFn       func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	UpdateStatusFn func(ctx context.Context, id, status string) (employee.EmployeeResponse, error)
	DeleteFn       func(ctx context.Context, id string) (bool, error)
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeEmployeeService) GetActive(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.GetActiveFn(ctx)
}
func (f *fakeEmployeeService) CountActive(ctx context.Context) (int64, error) {
	return f.CountActiveFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) UpdateStatus(ctx context.Context, id, status string) (employee.EmployeeResponse, error) {
	return f.UpdateStatusFn(ctx, id, status)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) (bool, error) {
	return f.DeleteFn(ctx, id)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "John Doe", req.Name)
				assert.Equal(t, "0812", req.PhoneNo)
				return employee.EmployeeResponse{ID: "e-1", Name: req.Name, Status: "active"}, nil
			},
		}
		r := setupRouter()
		r.POST("/employees", employee.NewHandler(svc).Create)

		body := `{"name":"John Doe","phoneNo":"0812","baseSalary":1000}`
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"John Doe"`)
	})

	t.Run("missing name", func(t *testing.T) {
		r := setupRouter()
		r.POST("/employees", employee.NewHandler(&fakeEmployeeService{}).Create)

		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"phoneNo":"1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Name is required")
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{
				{ID: "1", Name: "Charlie", Role: "Driver"},
				{ID: "2", Name: "alice", Role: "Clerk"},
				{ID: "3", Name: "Bob", Role: "Driver"},
			}, nil
		},
	}
	r := setupRouter()
	r.GET("/employees", employee.NewHandler(svc).GetAll)

	req := httptest.NewRequest(http.MethodGet, "/employees?q=driver&sort_by=name&page_size=1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []employee.EmployeeResponse `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Meta.Total)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Bob", body.Data[0].Name)
}

func TestEmployeeHandler_UpdateStatus(t *testing.T) {
	svc := &fakeEmployeeService{
		UpdateStatusFn: func(ctx context.Context, id, status string) (employee.EmployeeResponse, error) {
			assert.Equal(t, "e-1", id)
			if status != "active" && status != "inactive" {
				return employee.EmployeeResponse{}, employeeerrors.ErrInvalidStatus
			}
			return employee.EmployeeResponse{ID: id, Status: status}, nil
		},
	}
	r := setupRouter()
	r.PUT("/employees/:id/status", employee.NewHandler(svc).UpdateStatus)

	cases := []struct {
		body string
		want int
	}{
		{`{"status":"inactive"}`, http.StatusOK},
		{`{"status":"fired"}`, http.StatusBadRequest},
		{`{}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPut, "/employees/e-1/status", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, tc.body)
	}
}

func TestEmployeeHandler_GetByID_NotFound(t *testing.T) {
	svc := &fakeEmployeeService{
		GetByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}
	r := setupRouter()
	r.GET("/employees/:id", employee.NewHandler(svc).GetByID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/x", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestEmployeeHandler_Delete(t *testing.T) {
	deleted := true
	svc := &fakeEmployeeService{
		DeleteFn: func(ctx context.Context, id string) (bool, error) {
			return deleted, nil
		},
	}
	r := setupRouter()
	r.DELETE("/employees/:id", employee.NewHandler(svc).Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/e-1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	deleted = false
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/e-1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
