package loanrepay

import (
	"context"
	"database/sql"
	"employee-register/internal/shared/dbtx"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=loanrepay_repo.go -destination=mock/loanrepay_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *LoanRepay) error
	Update(ctx context.Context, r *LoanRepay) error
	Delete(ctx context.Context, id string) (bool, error)
	FindAll(ctx context.Context) ([]LoanRepay, error)
	FindByID(ctx context.Context, id string) (*LoanRepay, error)
	FindByIDForUpdate(ctx context.Context, id string) (*LoanRepay, error)
	FindByLoan(ctx context.Context, loanID string) ([]LoanRepay, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LoanRepay, error)
	// SumByLoan returns zero when the loan has no repayments.
	SumByLoan(ctx context.Context, loanID string) (decimal.Decimal, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, rp *LoanRepay) error {
	return r.conn(ctx).Create(rp).Error
}

func (r *repository) Update(ctx context.Context, rp *LoanRepay) error {
	return r.conn(ctx).Save(rp).Error
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.conn(ctx).Delete(&LoanRepay{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) FindAll(ctx context.Context) ([]LoanRepay, error) {
	var list []LoanRepay
	err := r.conn(ctx).Order("repay_date DESC").Find(&list).Error
	return list, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LoanRepay, error) {
	var rp LoanRepay
	if err := r.conn(ctx).First(&rp, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rp, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LoanRepay, error) {
	var rp LoanRepay
	if err := r.conn(ctx).Clauses(dbtx.ForUpdate()).First(&rp, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rp, nil
}

func (r *repository) FindByLoan(ctx context.Context, loanID string) ([]LoanRepay, error) {
	var list []LoanRepay
	err := r.conn(ctx).Where("loan_id = ?", loanID).Order("repay_date ASC").Find(&list).Error
	return list, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LoanRepay, error) {
	var list []LoanRepay
	err := r.conn(ctx).Where("employee_id = ?", employeeID).Order("repay_date DESC").Find(&list).Error
	return list, err
}

func (r *repository) SumByLoan(ctx context.Context, loanID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.conn(ctx).
		Model(&LoanRepay{}).
		Select("COALESCE(SUM(repay_amount), 0)").
		Where("loan_id = ?", loanID).
		Row().
		Scan(&total)
	return total, err
}
