package loan

import (
	"context"
	"database/sql"
	"employee-register/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=loan_repo.go -destination=mock/loan_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Loan) error
	Update(ctx context.Context, l *Loan) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) (bool, error)
	FindAll(ctx context.Context) ([]Loan, error)
	FindByStatus(ctx context.Context, status string) ([]Loan, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Loan, error)
	FindByEmployeeAndStatus(ctx context.Context, employeeID, status string) ([]Loan, error)
	FindByID(ctx context.Context, id string) (*Loan, error)
	// FindByIDForUpdate serializes writers of one loan for the rest of the
	// transaction.
	FindByIDForUpdate(ctx context.Context, id string) (*Loan, error)
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

func (r *repository) Create(ctx context.Context, l *Loan) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) Update(ctx context.Context, l *Loan) error {
	return r.conn(ctx).Save(l).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.conn(ctx).
		Model(&Loan{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.conn(ctx).Delete(&Loan{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) FindAll(ctx context.Context) ([]Loan, error) {
	var loans []Loan
	err := r.conn(ctx).Order("loan_date DESC").Find(&loans).Error
	return loans, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]Loan, error) {
	var loans []Loan
	err := r.conn(ctx).Where("status = ?", status).Order("loan_date DESC").Find(&loans).Error
	return loans, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Loan, error) {
	var loans []Loan
	err := r.conn(ctx).Where("employee_id = ?", employeeID).Order("loan_date DESC").Find(&loans).Error
	return loans, err
}

func (r *repository) FindByEmployeeAndStatus(ctx context.Context, employeeID, status string) ([]Loan, error) {
	var loans []Loan
	err := r.conn(ctx).
		Where("employee_id = ? AND status = ?", employeeID, status).
		Order("loan_date DESC").
		Find(&loans).Error
	return loans, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Loan, error) {
	var l Loan
	if err := r.conn(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Loan, error) {
	var l Loan
	if err := r.conn(ctx).Clauses(dbtx.ForUpdate()).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}
