package salary

import (
	"context"
	"database/sql"
	"employee-register/internal/employee"
	"employee-register/internal/events"
	"employee-register/internal/messaging/kafka"
	salaryerrors "employee-register/internal/salary/errors"
	"employee-register/internal/shared/contextutil"
	"employee-register/internal/shared/dateutil"
	"employee-register/internal/shared/money"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	StatisticsCacheKey = "salaries:statistics"
	StatisticsCacheTTL = 5 * time.Minute
)

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	Add(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error)
	Update(ctx context.Context, id string, req UpdateSalaryRequest) (SalaryResponse, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetAll(ctx context.Context) ([]SalaryResponse, error)
	GetByID(ctx context.Context, id string) (SalaryResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]SalaryResponse, error)
	GetLatestByEmployee(ctx context.Context, employeeID string) (SalaryResponse, error)
	Statistics(ctx context.Context) (Statistics, error)
	Slip(ctx context.Context, id string) (Slip, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	sf        *singleflight.Group
	now       func() time.Time
	logger    *zap.Logger
}

// NewService wires the salary service. outbox and rdb are optional: without an
// outbox no payment notices are queued, and without rdb statistics are not cached.
func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outbox,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Add(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	logger := contextutil.GetLogger(ctx, s.logger)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidEmployeeID
	}
	datePaid, err := dateutil.ParseOptional(req.DatePaid)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidDatePaid
	}
	lastSalaryDate, err := dateutil.ParseOptional(req.LastSalaryDate)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidLastSalaryDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("add salary begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	empl, err := s.employees.WithTx(tx).FindByIDForShare(ctx, employeeID.String())
	if err != nil {
		return SalaryResponse{}, mapEmployeeError(err)
	}

	if datePaid == nil {
		now := s.now()
		datePaid = &now
	}
	paymentType := strings.ToLower(strings.TrimSpace(req.PaymentType))
	if !ValidPaymentType(paymentType) {
		return SalaryResponse{}, salaryerrors.ErrInvalidPaymentType
	}
	if !money.IsAmount(req.Amount) {
		return SalaryResponse{}, salaryerrors.ErrInvalidAmount
	}

	sal := &Salary{
		ID:             uuid.New(),
		EmployeeID:     empl.ID,
		DatePaid:       dateutil.StartOfDay(*datePaid),
		PaymentType:    paymentType,
		Amount:         *req.Amount,
		LastSalaryDate: lastSalaryDate,
	}
	if err := s.repo.WithTx(tx).Create(ctx, sal); err != nil {
		logger.Error("add salary persist failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err)
	}

	queued := false
	if s.outbox != nil && strings.TrimSpace(empl.Email) != "" {
		event, err := kafka.NewOutboxEvent(rid, "salary", sal.ID.String(), events.SalaryPaidType, events.SalaryPaidTopic,
			events.SalaryPaidEvent{
				EventType:    events.SalaryPaidType,
				RequestID:    rid,
				SalaryID:     sal.ID.String(),
				EmployeeName: empl.Name,
				Email:        empl.Email,
				Amount:       sal.Amount,
				DatePaid:     sal.DatePaid,
				OccurredAt:   s.now().UTC(),
			})
		if err != nil {
			logger.Error("marshal salary_paid event failed", zap.String("request_id", rid), zap.Error(err))
			return SalaryResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			logger.Error("add salary outbox persist failed",
				zap.String("salary_id", sal.ID.String()),
				zap.Error(err),
			)
			return SalaryResponse{}, err
		}
		queued = true
	}

	if err := tx.Commit(); err != nil {
		logger.Error("add salary commit failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryResponse{}, err
	}

	s.invalidateStatistics(ctx)
	logger.Info("salary recorded",
		zap.String("request_id", rid),
		zap.String("salary_id", sal.ID.String()),
		zap.String("employee_id", empl.ID.String()),
		zap.Bool("notice_queued", queued),
	)
	return mapToResponse(*sal), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateSalaryRequest) (SalaryResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidSalaryID
	}
	paymentType := strings.ToLower(strings.TrimSpace(req.PaymentType))
	if !ValidPaymentType(paymentType) {
		return SalaryResponse{}, salaryerrors.ErrInvalidPaymentType
	}
	if !money.IsAmount(req.Amount) {
		return SalaryResponse{}, salaryerrors.ErrInvalidAmount
	}
	datePaid, err := dateutil.ParseOptional(req.DatePaid)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidDatePaid
	}
	lastSalaryDate, err := dateutil.ParseOptional(req.LastSalaryDate)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidLastSalaryDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("update salary begin tx failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	sal, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	sal.PaymentType = paymentType
	sal.Amount = *req.Amount
	if datePaid != nil {
		sal.DatePaid = dateutil.StartOfDay(*datePaid)
	}
	if lastSalaryDate != nil {
		sal.LastSalaryDate = lastSalaryDate
	}

	if err := qtx.Update(ctx, sal); err != nil {
		logger.Error("update salary persist failed", zap.String("salary_id", id), zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		logger.Error("update salary commit failed", zap.Error(err))
		return SalaryResponse{}, err
	}

	s.invalidateStatistics(ctx)
	return mapToResponse(*sal), nil
}

func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, salaryerrors.ErrInvalidSalaryID
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete salary failed", zap.String("salary_id", id), zap.Error(err))
		return false, err
	}
	if deleted {
		s.invalidateStatistics(ctx)
	}
	return deleted, nil
}

func (s *service) GetAll(ctx context.Context) ([]SalaryResponse, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

func (s *service) GetByID(ctx context.Context, id string) (SalaryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidSalaryID
	}
	sal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*sal), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]SalaryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, salaryerrors.ErrInvalidEmployeeID
	}
	list, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

func (s *service) GetLatestByEmployee(ctx context.Context, employeeID string) (SalaryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidEmployeeID
	}
	sal, err := s.repo.FindLatestByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, salaryerrors.ErrNoSalaryRecords
		}
		return SalaryResponse{}, err
	}
	return mapToResponse(*sal), nil
}

// Statistics serves the cached summary when present. Concurrent misses share
// one database read.
func (s *service) Statistics(ctx context.Context) (Statistics, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, StatisticsCacheKey).Result()
		if err == nil {
			var stats Statistics
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return stats, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("read statistics cache failed", zap.Error(err))
		}
	}

	// callers coalesced onto this read must not fail with the first caller's cancellation
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(StatisticsCacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindAll(shared)
		if err != nil {
			return nil, err
		}
		stats := computeStatistics(rows, s.now())

		if s.rdb != nil {
			if data, err := json.Marshal(stats); err == nil {
				if err := s.rdb.Set(shared, StatisticsCacheKey, data, StatisticsCacheTTL).Err(); err != nil {
					s.logger.Warn("write statistics cache failed", zap.Error(err))
				}
			}
		}
		return stats, nil
	})
	if err != nil {
		return Statistics{}, err
	}
	return v.(Statistics), nil
}

func (s *service) Slip(ctx context.Context, id string) (Slip, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Slip{}, salaryerrors.ErrInvalidSalaryID
	}
	sal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Slip{}, mapRepositoryError(err)
	}
	empl, err := s.employees.FindByID(ctx, sal.EmployeeID.String())
	if err != nil {
		return Slip{}, mapEmployeeError(err)
	}

	content, err := renderSlip(slipData{
		SalaryID:     sal.ID.String(),
		EmployeeName: empl.Name,
		EmployeeRole: empl.Role,
		PaymentType:  sal.PaymentType,
		Amount:       sal.Amount.StringFixed(2),
		DatePaid:     sal.DatePaid,
		LastPaid:     sal.LastSalaryDate,
		IssuedAt:     s.now(),
	})
	if err != nil {
		s.logger.Error("render salary slip failed", zap.String("salary_id", id), zap.Error(err))
		return Slip{}, err
	}
	return Slip{
		Filename: "salary-slip-" + dateutil.FormatDate(sal.DatePaid) + "-" + sal.ID.String()[:8] + ".pdf",
		Content:  content,
	}, nil
}

func (s *service) invalidateStatistics(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, StatisticsCacheKey).Err(); err != nil {
		s.logger.Error("invalidate statistics cache failed", zap.String("key", StatisticsCacheKey), zap.Error(err))
	}
}

func mapToResponse(s Salary) SalaryResponse {
	return SalaryResponse{
		ID:             s.ID.String(),
		EmployeeID:     s.EmployeeID.String(),
		DatePaid:       dateutil.FormatDate(s.DatePaid),
		PaymentType:    s.PaymentType,
		Amount:         s.Amount,
		LastSalaryDate: dateutil.FormatDatePtr(s.LastSalaryDate),
	}
}

func mapToListResponse(list []Salary) []SalaryResponse {
	res := make([]SalaryResponse, len(list))
	for i, s := range list {
		res[i] = mapToResponse(s)
	}
	return res
}
