package loan_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"employee-register/internal/employee"
	employeeMock "employee-register/internal/employee/mock"
	"employee-register/internal/loan"
	loanerrors "employee-register/internal/loan/errors"
	loanMock "employee-register/internal/loan/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   loan.Service
	repo      *loanMock.MockRepository
	employees *employeeMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := loanMock.NewMockRepository(ctrl)
	employees := employeeMock.NewMockRepository(ctrl)
	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   loan.NewService(db, repo, employees),
		repo:      repo,
		employees: employees,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestLoanService_Register(t *testing.T) {
	ctx := context.Background()
	emplID := uuid.New()
	active := &employee.Employee{ID: emplID, Status: employee.StatusActive}

	t.Run("defaults date and status", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.employees.EXPECT().WithTx(gomock.Any()).Return(deps.employees)
		deps.employees.EXPECT().FindByIDForShare(gomock.Any(), emplID.String()).Return(active, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, l *loan.Loan) error {
				assert.Equal(t, loan.StatusActive, l.Status)
				assert.False(t, l.LoanDate.IsZero())
				assert.True(t, l.LoanAmount.Equal(decimal.NewFromInt(500)))
				return nil
			})

		resp, err := deps.service.Register(ctx, loan.RegisterLoanRequest{
			EmployeeID: emplID.String(),
			LoanAmount: amount(500),
			Reason:     "rent",
		})

		require.NoError(t, err)
		assert.Equal(t, time.Now().Format("2006-01-02"), resp.LoanDate)
		assert.Equal(t, emplID.String(), resp.EmployeeID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown employee is a domain error", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.employees.EXPECT().WithTx(gomock.Any()).Return(deps.employees)
		deps.employees.EXPECT().FindByIDForShare(gomock.Any(), emplID.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Register(ctx, loan.RegisterLoanRequest{EmployeeID: emplID.String(), LoanAmount: amount(500)})

		assert.ErrorIs(t, err, loanerrors.ErrEmployeeNotFound)
	})

	t.Run("inactive employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.employees.EXPECT().WithTx(gomock.Any()).Return(deps.employees)
		deps.employees.EXPECT().
			FindByIDForShare(gomock.Any(), emplID.String()).
			Return(&employee.Employee{ID: emplID, Status: employee.StatusInactive}, nil)

		_, err := deps.service.Register(ctx, loan.RegisterLoanRequest{EmployeeID: emplID.String(), LoanAmount: amount(500)})

		assert.ErrorIs(t, err, loanerrors.ErrEmployeeNotActive)
	})

	subCent := decimal.RequireFromString("499.999")
	invalid := map[string]*decimal.Decimal{
		"missing amount":  nil,
		"zero amount":     amount(0),
		"negative amount": amount(-5),
		"sub-cent amount": &subCent,
	}
	for name, amt := range invalid {
		t.Run(name, func(t *testing.T) {
			deps := setupServiceTest(t)
			expectTx(t, deps.sqlMock, false)

			deps.employees.EXPECT().WithTx(gomock.Any()).Return(deps.employees)
			deps.employees.EXPECT().FindByIDForShare(gomock.Any(), emplID.String()).Return(active, nil)

			_, err := deps.service.Register(ctx, loan.RegisterLoanRequest{EmployeeID: emplID.String(), LoanAmount: amt})

			assert.ErrorIs(t, err, loanerrors.ErrInvalidAmount)
		})
	}
}

func TestLoanService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	loanDate := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	t.Run("keeps loan date when absent", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByIDForUpdate(gomock.Any(), id.String()).
			Return(&loan.Loan{ID: id, LoanDate: loanDate, LoanAmount: decimal.NewFromInt(500), Status: loan.StatusActive}, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.Update(ctx, id.String(), loan.UpdateLoanRequest{
			LoanAmount: amount(800),
			Reason:     "car",
			Status:     "inactive",
		})

		require.NoError(t, err)
		assert.Equal(t, "2024-01-15", resp.LoanDate)
		assert.Equal(t, loan.StatusInactive, resp.Status)
		assert.True(t, resp.LoanAmount.Equal(decimal.NewFromInt(800)))
	})

	t.Run("zero amount", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Update(ctx, id.String(), loan.UpdateLoanRequest{LoanAmount: amount(0), Status: "active"})

		assert.ErrorIs(t, err, loanerrors.ErrInvalidAmount)
	})

	t.Run("sub-cent amount", func(t *testing.T) {
		deps := setupServiceTest(t)
		v := decimal.RequireFromString("800.125")

		_, err := deps.service.Update(ctx, id.String(), loan.UpdateLoanRequest{LoanAmount: &v, Status: "active"})

		assert.ErrorIs(t, err, loanerrors.ErrInvalidAmount)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), id.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, id.String(), loan.UpdateLoanRequest{LoanAmount: amount(1), Status: "active"})

		assert.ErrorIs(t, err, loanerrors.ErrLoanNotFound)
	})
}

func TestLoanService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid status", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.UpdateStatus(ctx, uuid.NewString(), "closed")

		assert.ErrorIs(t, err, loanerrors.ErrInvalidStatus)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByIDForUpdate(gomock.Any(), id.String()).
			Return(&loan.Loan{ID: id, Status: loan.StatusActive}, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.UpdateStatus(ctx, id.String(), "Inactive")

		require.NoError(t, err)
		assert.Equal(t, loan.StatusInactive, resp.Status)
	})
}

func TestLoanService_Queries(t *testing.T) {
	ctx := context.Background()
	emplID := uuid.NewString()

	deps := setupServiceTest(t)
	deps.repo.EXPECT().
		FindByEmployeeAndStatus(gomock.Any(), emplID, loan.StatusActive).
		Return([]loan.Loan{{ID: uuid.New(), Status: loan.StatusActive}}, nil)
	deps.repo.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, gorm.ErrRecordNotFound)

	active, err := deps.service.GetActiveByEmployee(ctx, emplID)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	_, err = deps.service.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, loanerrors.ErrLoanNotFound)

	_, err = deps.service.GetByEmployee(ctx, "nope")
	assert.ErrorIs(t, err, loanerrors.ErrInvalidEmployeeID)
}
