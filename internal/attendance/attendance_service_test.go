package attendance

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	attendanceerrors "employee-register/internal/attendance/errors"
	"employee-register/internal/employee"
	employeeerrors "employee-register/internal/employee/errors"
	employeeMock "employee-register/internal/employee/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn         func(ctx context.Context, a *Attendance) error
	updateFn         func(ctx context.Context, a *Attendance) error
	deleteFn         func(ctx context.Context, id string) (bool, error)
	findByIDFn       func(ctx context.Context, id string) (*Attendance, error)
	existsFn         func(ctx context.Context, employeeID string, date time.Time) (bool, error)
	findByEmplDateFn func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	betweenFn        func(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error { return f.updateFn(ctx, a) }
func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	return f.deleteFn(ctx, id)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Attendance, error) { return nil, nil }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Attendance, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByIDForUpdate(ctx context.Context, id string) (*Attendance, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	return nil, nil
}
func (f *fakeRepo) FindByDate(ctx context.Context, date time.Time) ([]Attendance, error) {
	return nil, nil
}
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	return f.findByEmplDateFn(ctx, employeeID, date)
}
func (f *fakeRepo) ExistsByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return f.existsFn(ctx, employeeID, date)
}
func (f *fakeRepo) FindByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error) {
	return f.betweenFn(ctx, employeeID, from, to)
}

type testDeps struct {
	db        *sql.DB
	mock      sqlmock.Sqlmock
	repo      *fakeRepo
	employees *employeeMock.MockRepository
	svc       Service
}

func setup(t *testing.T) *testDeps {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeRepo{}
	employees := employeeMock.NewMockRepository(gomock.NewController(t))
	employees.EXPECT().WithTx(gomock.Any()).Return(employees).AnyTimes()

	return &testDeps{
		db:        db,
		mock:      mock,
		repo:      repo,
		employees: employees,
		svc:       NewService(db, repo, employees),
	}
}

func activeEmployee(base string) *employee.Employee {
	return &employee.Employee{ID: uuid.New(), Name: "Ann", BaseSalary: dec(base), Status: employee.StatusActive}
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("overtime total includes overtime salary", func(t *testing.T) {
		d := setup(t)
		empl := activeEmployee("1000")
		d.mock.ExpectBegin()
		d.mock.ExpectCommit()

		d.employees.EXPECT().FindByIDForShare(gomock.Any(), empl.ID.String()).Return(empl, nil)
		d.repo.existsFn = func(ctx context.Context, employeeID string, date time.Time) (bool, error) {
			assert.Equal(t, 0, date.Hour())
			return false, nil
		}
		var saved Attendance
		d.repo.createFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }

		resp, err := d.svc.Add(ctx, CreateAttendanceRequest{
			EmployeeID:     empl.ID.String(),
			Date:           "2025-03-14",
			Status:         "overtime",
			OvertimeSalary: decPtr("50"),
		})

		require.NoError(t, err)
		assert.True(t, dec("1050").Equal(resp.TotalSalary))
		assert.Equal(t, "2025-03-14", resp.Date)
		assert.Equal(t, StatusOvertime, saved.Status)
		assert.NoError(t, d.mock.ExpectationsWereMet())
	})

	t.Run("inactive employee", func(t *testing.T) {
		d := setup(t)
		empl := activeEmployee("1000")
		empl.Status = employee.StatusInactive
		d.mock.ExpectBegin()
		d.mock.ExpectRollback()
		d.employees.EXPECT().FindByIDForShare(gomock.Any(), empl.ID.String()).Return(empl, nil)

		_, err := d.svc.Add(ctx, CreateAttendanceRequest{EmployeeID: empl.ID.String(), Date: "2025-03-14", Status: "present"})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotActive)
		assert.NoError(t, d.mock.ExpectationsWereMet())
	})

	t.Run("unknown employee", func(t *testing.T) {
		d := setup(t)
		id := uuid.NewString()
		d.mock.ExpectBegin()
		d.mock.ExpectRollback()
		d.employees.EXPECT().FindByIDForShare(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := d.svc.Add(ctx, CreateAttendanceRequest{EmployeeID: id, Date: "2025-03-14", Status: "present"})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("invalid status", func(t *testing.T) {
		d := setup(t)
		empl := activeEmployee("1000")
		d.mock.ExpectBegin()
		d.mock.ExpectRollback()
		d.employees.EXPECT().FindByIDForShare(gomock.Any(), empl.ID.String()).Return(empl, nil)

		_, err := d.svc.Add(ctx, CreateAttendanceRequest{EmployeeID: empl.ID.String(), Date: "2025-03-14", Status: "sick"})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidStatus)
	})

	t.Run("status is case sensitive", func(t *testing.T) {
		d := setup(t)
		empl := activeEmployee("1000")
		d.mock.ExpectBegin()
		d.mock.ExpectRollback()
		d.employees.EXPECT().FindByIDForShare(gomock.Any(), empl.ID.String()).Return(empl, nil)

		_, err := d.svc.Add(ctx, CreateAttendanceRequest{EmployeeID: empl.ID.String(), Date: "2025-03-14", Status: "PRESENT"})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidStatus)
	})

	t.Run("halfday of odd base is stored as returned", func(t *testing.T) {
		d := setup(t)
		empl := activeEmployee("1000.01")
		d.mock.ExpectBegin()
		d.mock.ExpectCommit()
		d.employees.EXPECT().FindByIDForShare(gomock.Any(), empl.ID.String()).Return(empl, nil)
		d.repo.existsFn = func(context.Context, string, time.Time) (bool, error) { return false, nil }
		var saved Attendance
		d.repo.createFn = func(ctx context.Context, a *Attendance) error {
			saved = *a
			saved.TotalSalary = a.TotalSalary.Round(TotalSalaryScale)
			return nil
		}

		resp, err := d.svc.Add(ctx, CreateAttendanceRequest{EmployeeID: empl.ID.String(), Date: "2025-03-14", Status: "halfday"})

		require.NoError(t, err)
		assert.Equal(t, "500.005", resp.TotalSalary.String())
		assert.True(t, saved.TotalSalary.Equal(resp.TotalSalary), "stored %s returned %s", saved.TotalSalary, resp.TotalSalary)
	})

	t.Run("overtime salary below a cent", func(t *testing.T) {
		d := setup(t)
		empl := activeEmployee("1000")
		d.mock.ExpectBegin()
		d.mock.ExpectRollback()
		d.employees.EXPECT().FindByIDForShare(gomock.Any(), empl.ID.String()).Return(empl, nil)

		_, err := d.svc.Add(ctx, CreateAttendanceRequest{
			EmployeeID:     empl.ID.String(),
			Date:           "2025-03-14",
			Status:         "overtime",
			OvertimeSalary: decPtr("20.005"),
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidOvertimeSalary)
	})

	t.Run("second record on the same day", func(t *testing.T) {
		d := setup(t)
		empl := activeEmployee("1000")
		d.mock.ExpectBegin()
		d.mock.ExpectRollback()
		d.employees.EXPECT().FindByIDForShare(gomock.Any(), empl.ID.String()).Return(empl, nil)
		d.repo.existsFn = func(context.Context, string, time.Time) (bool, error) { return true, nil }

		_, err := d.svc.Add(ctx, CreateAttendanceRequest{EmployeeID: empl.ID.String(), Date: "2025-03-14", Status: "present"})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyRecorded)
	})

	t.Run("unique index race maps to already recorded", func(t *testing.T) {
		d := setup(t)
		empl := activeEmployee("1000")
		d.mock.ExpectBegin()
		d.mock.ExpectRollback()
		d.employees.EXPECT().FindByIDForShare(gomock.Any(), empl.ID.String()).Return(empl, nil)
		d.repo.existsFn = func(context.Context, string, time.Time) (bool, error) { return false, nil }
		d.repo.createFn = func(context.Context, *Attendance) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"}
		}

		_, err := d.svc.Add(ctx, CreateAttendanceRequest{EmployeeID: empl.ID.String(), Date: "2025-03-14", Status: "present"})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyRecorded)
	})

	t.Run("bad date", func(t *testing.T) {
		d := setup(t)

		_, err := d.svc.Add(ctx, CreateAttendanceRequest{EmployeeID: uuid.NewString(), Date: "14/03/2025", Status: "present"})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes halfday total and keeps overtime fields", func(t *testing.T) {
		d := setup(t)
		empl := activeEmployee("1000")
		existing := &Attendance{
			ID:             uuid.New(),
			EmployeeID:     empl.ID,
			Status:         StatusOvertime,
			OvertimeSalary: decPtr("80"),
			TotalSalary:    dec("1080"),
		}
		d.mock.ExpectBegin()
		d.mock.ExpectCommit()
		d.repo.findByIDFn = func(context.Context, string) (*Attendance, error) { return existing, nil }
		d.employees.EXPECT().FindByIDForShare(gomock.Any(), empl.ID.String()).Return(empl, nil)
		d.repo.updateFn = func(context.Context, *Attendance) error { return nil }

		resp, err := d.svc.Update(ctx, existing.ID.String(), UpdateAttendanceRequest{Status: "halfday", Description: "left early"})

		require.NoError(t, err)
		assert.True(t, dec("500").Equal(resp.TotalSalary))
		assert.Equal(t, "left early", resp.Description)
		require.NotNil(t, resp.OvertimeSalary)
		assert.True(t, dec("80").Equal(*resp.OvertimeSalary))
	})

	t.Run("not found", func(t *testing.T) {
		d := setup(t)
		d.mock.ExpectBegin()
		d.mock.ExpectRollback()
		d.repo.findByIDFn = func(context.Context, string) (*Attendance, error) { return nil, gorm.ErrRecordNotFound }

		_, err := d.svc.Update(ctx, uuid.NewString(), UpdateAttendanceRequest{Status: "present"})

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)
	})
}

func TestService_UpdateOvertime(t *testing.T) {
	ctx := context.Background()

	t.Run("non overtime record", func(t *testing.T) {
		d := setup(t)
		d.mock.ExpectBegin()
		d.mock.ExpectRollback()
		d.repo.findByIDFn = func(context.Context, string) (*Attendance, error) {
			return &Attendance{ID: uuid.New(), Status: StatusPresent}, nil
		}

		_, err := d.svc.UpdateOvertime(ctx, uuid.NewString(), UpdateOvertimeRequest{OvertimeSalary: decPtr("10")})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotOvertime)
	})

	t.Run("recomputes from new overtime salary", func(t *testing.T) {
		d := setup(t)
		empl := activeEmployee("1000")
		d.mock.ExpectBegin()
		d.mock.ExpectCommit()
		d.repo.findByIDFn = func(context.Context, string) (*Attendance, error) {
			return &Attendance{ID: uuid.New(), EmployeeID: empl.ID, Status: StatusOvertime, OvertimeSalary: decPtr("10")}, nil
		}
		d.employees.EXPECT().FindByIDForShare(gomock.Any(), empl.ID.String()).Return(empl, nil)
		d.repo.updateFn = func(context.Context, *Attendance) error { return nil }

		desc := "inventory"
		resp, err := d.svc.UpdateOvertime(ctx, uuid.NewString(), UpdateOvertimeRequest{
			OvertimeDescription: &desc,
			OvertimeSalary:      decPtr("75"),
			OvertimeHours:       decPtr("3"),
		})

		require.NoError(t, err)
		assert.True(t, dec("1075").Equal(resp.TotalSalary))
		assert.Equal(t, "inventory", *resp.OvertimeDescription)
	})
}

func TestService_MonthlySummary(t *testing.T) {
	ctx := context.Background()

	t.Run("folds the month", func(t *testing.T) {
		d := setup(t)
		id := uuid.NewString()
		d.employees.EXPECT().FindByID(gomock.Any(), id).Return(activeEmployee("100"), nil)

		var rows []Attendance
		for i := 0; i < 20; i++ {
			rows = append(rows, Attendance{Status: StatusPresent, TotalSalary: dec("100")})
		}
		for i := 0; i < 5; i++ {
			rows = append(rows, Attendance{Status: StatusAbsent}, Attendance{Status: StatusHalfday, TotalSalary: dec("50")})
		}
		d.repo.betweenFn = func(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error) {
			assert.Equal(t, time.February, from.Month())
			assert.Equal(t, time.March, to.Month())
			assert.Equal(t, 1, to.Day())
			return rows, nil
		}

		sum, err := d.svc.MonthlySummary(ctx, id, 2, 2024)

		require.NoError(t, err)
		assert.Equal(t, 20, sum.PresentDays)
		assert.Equal(t, 5, sum.AbsentDays)
		assert.Equal(t, 5, sum.HalfDays)
		assert.Equal(t, 30, sum.TotalDays)
		assert.True(t, dec("2250").Equal(sum.TotalSalary))
	})

	t.Run("unknown employee", func(t *testing.T) {
		d := setup(t)
		id := uuid.NewString()
		d.employees.EXPECT().FindByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := d.svc.MonthlySummary(ctx, id, 2, 2024)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("month out of range", func(t *testing.T) {
		d := setup(t)

		_, err := d.svc.MonthlySummary(ctx, uuid.NewString(), 13, 2024)

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidPeriod)
	})
}

func TestService_GetByEmployeeAndDate(t *testing.T) {
	d := setup(t)
	d.repo.findByEmplDateFn = func(context.Context, string, time.Time) (*Attendance, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := d.svc.GetByEmployeeAndDate(context.Background(), uuid.NewString(), "2025-01-02")
	assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)

	_, err = d.svc.GetByEmployeeAndDate(context.Background(), uuid.NewString(), "yesterday")
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
}

func TestService_Delete(t *testing.T) {
	d := setup(t)
	d.repo.deleteFn = func(context.Context, string) (bool, error) { return false, errors.New("db down") }

	_, err := d.svc.Delete(context.Background(), uuid.NewString())
	assert.Error(t, err)
}
