package attendance

import (
	"context"
	"database/sql"
	attendanceerrors "employee-register/internal/attendance/errors"
	"employee-register/internal/employee"
	employeeerrors "employee-register/internal/employee/errors"
	"employee-register/internal/shared/contextutil"
	"employee-register/internal/shared/dateutil"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Add(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	UpdateOvertime(ctx context.Context, id string, req UpdateOvertimeRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetAll(ctx context.Context) ([]AttendanceResponse, error)
	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	GetByDate(ctx context.Context, date string) ([]AttendanceResponse, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (AttendanceResponse, error)
	MonthlySummary(ctx context.Context, employeeID string, month, year int) (MonthlySummary, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, employees: employees, logger: l}
}

func (s *service) Add(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	date, err := dateutil.Parse(req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}
	date = dateutil.StartOfDay(date)
	status := strings.TrimSpace(req.Status)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("add attendance begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	empl, err := s.employees.WithTx(tx).FindByIDForShare(ctx, req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, mapEmployeeError(err)
	}
	if !empl.IsActive() {
		s.logger.Warn("add attendance for inactive employee", zap.String("employee_id", req.EmployeeID))
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotActive
	}

	total, err := CalculateTotal(status, empl.BaseSalary, req.OvertimeSalary)
	if err != nil {
		return AttendanceResponse{}, err
	}

	qtx := s.repo.WithTx(tx)
	exists, err := qtx.ExistsByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		s.logger.Error("add attendance duplicate check failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if exists {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyRecorded
	}

	a := &Attendance{
		ID:                  uuid.New(),
		EmployeeID:          empl.ID,
		Date:                date,
		Status:              status,
		OvertimeDescription: req.OvertimeDescription,
		OvertimeSalary:      req.OvertimeSalary,
		OvertimeHours:       req.OvertimeHours,
		Description:         req.Description,
		TotalSalary:         total,
	}
	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("add attendance persist failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("add attendance commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("attendance recorded",
		zap.String("request_id", rid),
		zap.String("attendance_id", a.ID.String()),
		zap.String("status", status),
	)
	return mapToResponse(*a), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidAttendanceID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update attendance begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	a, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	a.Status = strings.TrimSpace(req.Status)
	a.Description = req.Description
	if req.OvertimeDescription != nil {
		a.OvertimeDescription = req.OvertimeDescription
	}
	if req.OvertimeSalary != nil {
		a.OvertimeSalary = req.OvertimeSalary
	}
	if req.OvertimeHours != nil {
		a.OvertimeHours = req.OvertimeHours
	}

	empl, err := s.employees.WithTx(tx).FindByIDForShare(ctx, a.EmployeeID.String())
	if err != nil {
		return AttendanceResponse{}, mapEmployeeError(err)
	}
	total, err := CalculateTotal(a.Status, empl.BaseSalary, a.OvertimeSalary)
	if err != nil {
		return AttendanceResponse{}, err
	}
	a.TotalSalary = total

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("update attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update attendance commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("attendance updated", zap.String("attendance_id", id))
	return mapToResponse(*a), nil
}

// UpdateOvertime overwrites all three overtime fields, clearing those left
// out of the request.
func (s *service) UpdateOvertime(ctx context.Context, id string, req UpdateOvertimeRequest) (AttendanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidAttendanceID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update overtime begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	a, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if a.Status != StatusOvertime {
		return AttendanceResponse{}, attendanceerrors.ErrNotOvertime
	}

	a.OvertimeDescription = req.OvertimeDescription
	a.OvertimeSalary = req.OvertimeSalary
	a.OvertimeHours = req.OvertimeHours

	empl, err := s.employees.WithTx(tx).FindByIDForShare(ctx, a.EmployeeID.String())
	if err != nil {
		return AttendanceResponse{}, mapEmployeeError(err)
	}
	total, err := CalculateTotal(StatusOvertime, empl.BaseSalary, a.OvertimeSalary)
	if err != nil {
		return AttendanceResponse{}, err
	}
	a.TotalSalary = total

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("update overtime persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update overtime commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	return mapToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, attendanceerrors.ErrInvalidAttendanceID
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete attendance failed", zap.Error(err))
		return false, err
	}
	return deleted, nil
}

func (s *service) GetAll(ctx context.Context) ([]AttendanceResponse, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidAttendanceID
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*a), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}
	list, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

func (s *service) GetByDate(ctx context.Context, date string) ([]AttendanceResponse, error) {
	d, err := time.ParseInLocation(dateutil.DateLayout, strings.TrimSpace(date), time.Local)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}
	list, err := s.repo.FindByDate(ctx, d)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

func (s *service) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	d, err := time.ParseInLocation(dateutil.DateLayout, strings.TrimSpace(date), time.Local)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}
	a, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, d)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*a), nil
}

func (s *service) MonthlySummary(ctx context.Context, employeeID string, month, year int) (MonthlySummary, error) {
	if month < 1 || month > 12 || year < 1 {
		return MonthlySummary{}, attendanceerrors.ErrInvalidPeriod
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return MonthlySummary{}, attendanceerrors.ErrInvalidEmployeeID
	}
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		return MonthlySummary{}, mapEmployeeError(err)
	}

	from, to := dateutil.MonthRange(year, time.Month(month), time.Local)
	rows, err := s.repo.FindByEmployeeBetween(ctx, employeeID, from, to)
	if err != nil {
		s.logger.Error("monthly attendance query failed",
			zap.String("employee_id", employeeID),
			zap.Int("month", month),
			zap.Int("year", year),
			zap.Error(err),
		)
		return MonthlySummary{}, err
	}

	return summarize(employeeID, month, year, rows), nil
}

func mapEmployeeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	return err
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:                  a.ID.String(),
		EmployeeID:          a.EmployeeID.String(),
		Date:                dateutil.FormatDate(a.Date),
		Status:              a.Status,
		OvertimeDescription: a.OvertimeDescription,
		OvertimeSalary:      a.OvertimeSalary,
		OvertimeHours:       a.OvertimeHours,
		Description:         a.Description,
		TotalSalary:         a.TotalSalary,
	}
}

func mapToListResponse(list []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(list))
	for i, a := range list {
		res[i] = mapToResponse(a)
	}
	return res
}
