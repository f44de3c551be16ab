package loan

import (
	"context"
	"database/sql"
	"employee-register/internal/employee"
	loanerrors "employee-register/internal/loan/errors"
	"employee-register/internal/shared/contextutil"
	"employee-register/internal/shared/dateutil"
	"employee-register/internal/shared/money"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=loan_service.go -destination=mock/loan_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterLoanRequest) (LoanResponse, error)
	Update(ctx context.Context, id string, req UpdateLoanRequest) (LoanResponse, error)
	UpdateStatus(ctx context.Context, id, status string) (LoanResponse, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetAll(ctx context.Context) ([]LoanResponse, error)
	GetActive(ctx context.Context) ([]LoanResponse, error)
	GetByID(ctx context.Context, id string) (LoanResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LoanResponse, error)
	GetActiveByEmployee(ctx context.Context, employeeID string) ([]LoanResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("loan.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("loan.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Register(ctx context.Context, req RegisterLoanRequest) (LoanResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("register loan requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
	)

	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidEmployeeID
	}
	loanDate, err := dateutil.ParseOptional(req.LoanDate)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidLoanDate
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = StatusActive
	}
	if !ValidStatus(status) {
		return LoanResponse{}, loanerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register loan begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LoanResponse{}, err
	}
	defer tx.Rollback()

	empl, err := s.employees.WithTx(tx).FindByIDForShare(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanResponse{}, loanerrors.ErrEmployeeNotFound
		}
		return LoanResponse{}, err
	}
	if !empl.IsActive() {
		return LoanResponse{}, loanerrors.ErrEmployeeNotActive
	}
	if !money.IsAmount(req.LoanAmount) {
		return LoanResponse{}, loanerrors.ErrInvalidAmount
	}

	l := &Loan{
		ID:         uuid.New(),
		EmployeeID: empl.ID,
		LoanAmount: *req.LoanAmount,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     status,
	}
	if loanDate != nil {
		l.LoanDate = *loanDate
	} else {
		l.LoanDate = s.now()
	}

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		s.logger.Error("register loan persist failed", zap.String("request_id", rid), zap.Error(err))
		return LoanResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("register loan commit failed", zap.String("request_id", rid), zap.Error(err))
		return LoanResponse{}, err
	}

	s.logger.Info("loan registered",
		zap.String("request_id", rid),
		zap.String("loan_id", l.ID.String()),
		zap.String("amount", l.LoanAmount.StringFixed(2)),
	)
	return mapToResponse(*l), nil
}

// Update rewrites amount, reason and status. The principal is not checked
// against repayments already recorded.
func (s *service) Update(ctx context.Context, id string, req UpdateLoanRequest) (LoanResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidLoanID
	}
	if !money.IsAmount(req.LoanAmount) {
		return LoanResponse{}, loanerrors.ErrInvalidAmount
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if !ValidStatus(status) {
		return LoanResponse{}, loanerrors.ErrInvalidStatus
	}
	loanDate, err := dateutil.ParseOptional(req.LoanDate)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidLoanDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update loan begin tx failed", zap.Error(err))
		return LoanResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return LoanResponse{}, mapRepositoryError(err)
	}

	l.LoanAmount = *req.LoanAmount
	l.Reason = strings.TrimSpace(req.Reason)
	l.Status = status
	if loanDate != nil {
		l.LoanDate = *loanDate
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update loan persist failed", zap.Error(err))
		return LoanResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update loan commit failed", zap.Error(err))
		return LoanResponse{}, err
	}

	return mapToResponse(*l), nil
}

func (s *service) UpdateStatus(ctx context.Context, id, status string) (LoanResponse, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !ValidStatus(status) {
		return LoanResponse{}, loanerrors.ErrInvalidStatus
	}
	if _, err := uuid.Parse(id); err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidLoanID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update loan status begin tx failed", zap.Error(err))
		return LoanResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return LoanResponse{}, mapRepositoryError(err)
	}
	l.Status = status
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update loan status persist failed", zap.Error(err))
		return LoanResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update loan status commit failed", zap.Error(err))
		return LoanResponse{}, err
	}

	s.logger.Info("loan status changed", zap.String("loan_id", id), zap.String("status", status))
	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, loanerrors.ErrInvalidLoanID
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete loan failed", zap.Error(err))
		return false, err
	}
	return deleted, nil
}

func (s *service) GetAll(ctx context.Context) ([]LoanResponse, error) {
	loans, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(loans), nil
}

func (s *service) GetActive(ctx context.Context) ([]LoanResponse, error) {
	loans, err := s.repo.FindByStatus(ctx, StatusActive)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(loans), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LoanResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidLoanID
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LoanResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*l), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]LoanResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, loanerrors.ErrInvalidEmployeeID
	}
	loans, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(loans), nil
}

func (s *service) GetActiveByEmployee(ctx context.Context, employeeID string) ([]LoanResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, loanerrors.ErrInvalidEmployeeID
	}
	loans, err := s.repo.FindByEmployeeAndStatus(ctx, employeeID, StatusActive)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(loans), nil
}

func mapToResponse(l Loan) LoanResponse {
	return LoanResponse{
		LoanID:     l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LoanDate:   dateutil.FormatDate(l.LoanDate),
		LoanAmount: l.LoanAmount,
		Reason:     l.Reason,
		Status:     l.Status,
	}
}

func mapToListResponse(loans []Loan) []LoanResponse {
	res := make([]LoanResponse, len(loans))
	for i, l := range loans {
		res[i] = mapToResponse(l)
	}
	return res
}
