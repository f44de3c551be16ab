package loanrepay

import (
	"context"
	"database/sql"
	"employee-register/internal/loan"
	loanrepayerrors "employee-register/internal/loanrepay/errors"
	"employee-register/internal/shared/contextutil"
	"employee-register/internal/shared/dateutil"
	"employee-register/internal/shared/money"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=loanrepay_service.go -destination=mock/loanrepay_service_mock.go -package=mock
type Service interface {
	Add(ctx context.Context, req CreateRepaymentRequest) (RepaymentResponse, error)
	Update(ctx context.Context, id string, req UpdateRepaymentRequest) (RepaymentResponse, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetAll(ctx context.Context) ([]RepaymentResponse, error)
	GetByID(ctx context.Context, id string) (RepaymentResponse, error)
	GetByLoan(ctx context.Context, loanID string) ([]RepaymentResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]RepaymentResponse, error)
	GetTotalRepaidForLoan(ctx context.Context, loanID string) (decimal.Decimal, error)
}

// service keeps every loan's status in line with its cumulative repayment.
// Each write runs in one transaction holding the loan row lock, so writers
// on the same loan are serialized. Lock order is repayment row, then loan row.
type service struct {
	db     *sql.DB
	repo   Repository
	loans  loan.Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, loans loan.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("loanrepay.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("loanrepay.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		loans:  loans,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Add(ctx context.Context, req CreateRepaymentRequest) (RepaymentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	logger := contextutil.GetLogger(ctx, s.logger)

	loanID, err := uuid.Parse(req.LoanID)
	if err != nil {
		return RepaymentResponse{}, loanrepayerrors.ErrInvalidLoanID
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return RepaymentResponse{}, loanrepayerrors.ErrInvalidEmployeeID
	}
	repayDate, err := dateutil.ParseOptional(req.RepayDate)
	if err != nil {
		return RepaymentResponse{}, loanrepayerrors.ErrInvalidRepayDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("add repayment begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return RepaymentResponse{}, err
	}
	defer tx.Rollback()

	lqtx := s.loans.WithTx(tx)
	rqtx := s.repo.WithTx(tx)

	l, err := lqtx.FindByIDForUpdate(ctx, loanID.String())
	if err != nil {
		return RepaymentResponse{}, mapLoanError(err)
	}
	if !l.IsActive() {
		return RepaymentResponse{}, loanrepayerrors.ErrLoanNotActive
	}
	if l.EmployeeID != employeeID {
		return RepaymentResponse{}, loanrepayerrors.ErrEmployeeMismatch
	}
	if repayDate == nil {
		now := s.now()
		repayDate = &now
	}
	if !money.IsAmount(req.RepayAmount) {
		return RepaymentResponse{}, loanrepayerrors.ErrInvalidAmount
	}

	prior, err := rqtx.SumByLoan(ctx, l.ID.String())
	if err != nil {
		logger.Error("add repayment sum failed", zap.String("loan_id", l.ID.String()), zap.Error(err))
		return RepaymentResponse{}, err
	}
	total, err := applyRepayment(l.LoanAmount, prior, *req.RepayAmount)
	if err != nil {
		logger.Warn("repayment rejected",
			zap.String("loan_id", l.ID.String()),
			zap.String("prior_total", prior.StringFixed(2)),
			zap.String("amount", req.RepayAmount.StringFixed(2)),
		)
		return RepaymentResponse{}, err
	}

	rp := &LoanRepay{
		ID:          uuid.New(),
		LoanID:      l.ID,
		EmployeeID:  employeeID,
		RepayAmount: *req.RepayAmount,
		RepayDate:   *repayDate,
	}
	if err := rqtx.Create(ctx, rp); err != nil {
		logger.Error("add repayment persist failed", zap.String("request_id", rid), zap.Error(err))
		return RepaymentResponse{}, mapRepositoryError(err)
	}

	if statusFor(l.LoanAmount, total) == loan.StatusInactive {
		if err := lqtx.UpdateStatus(ctx, l.ID.String(), loan.StatusInactive); err != nil {
			logger.Error("close loan failed", zap.String("loan_id", l.ID.String()), zap.Error(err))
			return RepaymentResponse{}, mapLoanError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("add repayment commit failed", zap.String("request_id", rid), zap.Error(err))
		return RepaymentResponse{}, err
	}

	logger.Info("repayment recorded",
		zap.String("request_id", rid),
		zap.String("loan_id", l.ID.String()),
		zap.String("repayment_id", rp.ID.String()),
		zap.String("total_repaid", total.StringFixed(2)),
	)
	return mapToResponse(*rp), nil
}

// Update revalidates the new amount as if the old one were removed, then
// writes the loan status implied by the new total whether or not it changed.
func (s *service) Update(ctx context.Context, id string, req UpdateRepaymentRequest) (RepaymentResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return RepaymentResponse{}, loanrepayerrors.ErrInvalidRepaymentID
	}
	repayDate, err := dateutil.ParseOptional(req.RepayDate)
	if err != nil {
		return RepaymentResponse{}, loanrepayerrors.ErrInvalidRepayDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("update repayment begin tx failed", zap.Error(err))
		return RepaymentResponse{}, err
	}
	defer tx.Rollback()

	lqtx := s.loans.WithTx(tx)
	rqtx := s.repo.WithTx(tx)

	rp, err := rqtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return RepaymentResponse{}, mapRepositoryError(err)
	}
	if !money.IsAmount(req.RepayAmount) {
		return RepaymentResponse{}, loanrepayerrors.ErrInvalidAmount
	}
	l, err := lqtx.FindByIDForUpdate(ctx, rp.LoanID.String())
	if err != nil {
		return RepaymentResponse{}, mapLoanError(err)
	}

	current, err := rqtx.SumByLoan(ctx, l.ID.String())
	if err != nil {
		logger.Error("update repayment sum failed", zap.String("loan_id", l.ID.String()), zap.Error(err))
		return RepaymentResponse{}, err
	}
	prior := current.Sub(rp.RepayAmount)
	total, err := applyRepayment(l.LoanAmount, prior, *req.RepayAmount)
	if err != nil {
		return RepaymentResponse{}, err
	}

	rp.RepayAmount = *req.RepayAmount
	if repayDate != nil {
		rp.RepayDate = *repayDate
	}
	if err := rqtx.Update(ctx, rp); err != nil {
		logger.Error("update repayment persist failed", zap.Error(err))
		return RepaymentResponse{}, mapRepositoryError(err)
	}

	status := statusFor(l.LoanAmount, total)
	if err := lqtx.UpdateStatus(ctx, l.ID.String(), status); err != nil {
		logger.Error("recompute loan status failed", zap.String("loan_id", l.ID.String()), zap.Error(err))
		return RepaymentResponse{}, mapLoanError(err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("update repayment commit failed", zap.Error(err))
		return RepaymentResponse{}, err
	}

	logger.Info("repayment updated",
		zap.String("repayment_id", id),
		zap.String("loan_status", status),
		zap.String("total_repaid", total.StringFixed(2)),
	)
	return mapToResponse(*rp), nil
}

// Delete reports false when the repayment does not exist. A closed loan that
// drops below its principal is reopened; an open loan is never closed here.
func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return false, loanrepayerrors.ErrInvalidRepaymentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("delete repayment begin tx failed", zap.Error(err))
		return false, err
	}
	defer tx.Rollback()

	lqtx := s.loans.WithTx(tx)
	rqtx := s.repo.WithTx(tx)

	rp, err := rqtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	l, err := lqtx.FindByIDForUpdate(ctx, rp.LoanID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if _, err := rqtx.Delete(ctx, id); err != nil {
		logger.Error("delete repayment failed", zap.Error(err))
		return false, err
	}

	if l != nil && l.Status == loan.StatusInactive {
		total, err := rqtx.SumByLoan(ctx, l.ID.String())
		if err != nil {
			return false, err
		}
		if total.LessThan(l.LoanAmount) {
			if err := lqtx.UpdateStatus(ctx, l.ID.String(), loan.StatusActive); err != nil {
				logger.Error("reopen loan failed", zap.String("loan_id", l.ID.String()), zap.Error(err))
				return false, mapLoanError(err)
			}
			logger.Info("loan reopened", zap.String("loan_id", l.ID.String()))
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("delete repayment commit failed", zap.Error(err))
		return false, err
	}

	return true, nil
}

func (s *service) GetAll(ctx context.Context) ([]RepaymentResponse, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

func (s *service) GetByID(ctx context.Context, id string) (RepaymentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RepaymentResponse{}, loanrepayerrors.ErrInvalidRepaymentID
	}
	rp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RepaymentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*rp), nil
}

func (s *service) GetByLoan(ctx context.Context, loanID string) ([]RepaymentResponse, error) {
	if _, err := uuid.Parse(loanID); err != nil {
		return nil, loanrepayerrors.ErrInvalidLoanID
	}
	list, err := s.repo.FindByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]RepaymentResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, loanrepayerrors.ErrInvalidEmployeeID
	}
	list, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

func (s *service) GetTotalRepaidForLoan(ctx context.Context, loanID string) (decimal.Decimal, error) {
	if _, err := uuid.Parse(loanID); err != nil {
		return decimal.Zero, loanrepayerrors.ErrInvalidLoanID
	}
	return s.repo.SumByLoan(ctx, loanID)
}

func mapToResponse(rp LoanRepay) RepaymentResponse {
	return RepaymentResponse{
		ID:          rp.ID.String(),
		LoanID:      rp.LoanID.String(),
		EmployeeID:  rp.EmployeeID.String(),
		RepayAmount: rp.RepayAmount,
		RepayDate:   dateutil.FormatDate(rp.RepayDate),
	}
}

func mapToListResponse(list []LoanRepay) []RepaymentResponse {
	res := make([]RepaymentResponse, len(list))
	for i, rp := range list {
		res[i] = mapToResponse(rp)
	}
	return res
}
