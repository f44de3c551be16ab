package employee

import (
	"context"
	"database/sql"
	employeeerrors "employee-register/internal/employee/errors"
	"employee-register/internal/shared/contextutil"
	"employee-register/internal/shared/dateutil"
	"employee-register/internal/shared/money"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetActive(ctx context.Context) ([]EmployeeResponse, error)
	CountActive(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UpdateStatus(ctx context.Context, id, status string) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("name", req.Name),
	)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return EmployeeResponse{}, employeeerrors.ErrNameRequired
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = StatusActive
	}
	if !ValidStatus(status) {
		return EmployeeResponse{}, employeeerrors.ErrInvalidStatus
	}
	if req.BaseSalary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrNegativeSalary
	}
	if !money.FitsScale(req.BaseSalary, money.Scale) {
		return EmployeeResponse{}, employeeerrors.ErrSalaryPrecision
	}
	joinDate, err := dateutil.ParseOptional(req.JoinDate)
	if err != nil {
		s.logger.Warn("create employee invalid join date", zap.Error(err))
		return EmployeeResponse{}, employeeerrors.ErrInvalidJoinDate
	}

	empl := &Employee{
		ID:         uuid.New(),
		Name:       name,
		PhoneNo:    strings.TrimSpace(req.PhoneNo),
		Address:    strings.TrimSpace(req.Address),
		Email:      strings.TrimSpace(req.Email),
		Role:       strings.TrimSpace(req.Role),
		JoinDate:   joinDate,
		BaseSalary: req.BaseSalary,
		Status:     status,
	}

	if err := s.repo.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetActive(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindByStatus(ctx, StatusActive)
	if err != nil {
		s.logger.Error("get active employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) CountActive(ctx context.Context) (int64, error) {
	count, err := s.repo.CountByStatus(ctx, StatusActive)
	if err != nil {
		s.logger.Error("count active employees failed", zap.Error(err))
		return 0, mapRepositoryError(err)
	}
	return count, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return EmployeeResponse{}, employeeerrors.ErrNameRequired
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != "" && !ValidStatus(status) {
		return EmployeeResponse{}, employeeerrors.ErrInvalidStatus
	}
	if req.BaseSalary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrNegativeSalary
	}
	if !money.FitsScale(req.BaseSalary, money.Scale) {
		return EmployeeResponse{}, employeeerrors.ErrSalaryPrecision
	}
	joinDate, err := dateutil.ParseOptional(req.JoinDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidJoinDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.Name = name
	empl.PhoneNo = strings.TrimSpace(req.PhoneNo)
	empl.Address = strings.TrimSpace(req.Address)
	empl.Email = strings.TrimSpace(req.Email)
	empl.Role = strings.TrimSpace(req.Role)
	empl.BaseSalary = req.BaseSalary
	if status != "" {
		empl.Status = status
	}
	if joinDate != nil {
		empl.JoinDate = joinDate
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) UpdateStatus(ctx context.Context, id, status string) (EmployeeResponse, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !ValidStatus(status) {
		return EmployeeResponse{}, employeeerrors.ErrInvalidStatus
	}
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee status begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.Status = status
	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee status persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee status commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("employee status changed",
		zap.String("employee_id", id),
		zap.String("status", status),
	)
	return mapToResponse(*empl), nil
}

// Delete removes the employee without looking at attendance, salary or loan
// rows that still reference it.
func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, employeeerrors.ErrInvalidEmployeeID
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return false, mapRepositoryError(err)
	}

	if deleted {
		s.logger.Info("delete employee success", zap.String("employee_id", id))
	}
	return deleted, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         empl.ID.String(),
		Name:       empl.Name,
		PhoneNo:    empl.PhoneNo,
		Address:    empl.Address,
		Email:      empl.Email,
		Role:       empl.Role,
		JoinDate:   dateutil.FormatDatePtr(empl.JoinDate),
		BaseSalary: empl.BaseSalary,
		Status:     empl.Status,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
