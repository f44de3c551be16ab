package salary

import (
	"context"
	"database/sql"
	"employee-register/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Salary) error
	Update(ctx context.Context, s *Salary) error
	Delete(ctx context.Context, id string) (bool, error)
	FindAll(ctx context.Context) ([]Salary, error)
	FindByID(ctx context.Context, id string) (*Salary, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Salary, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Salary, error)
	FindLatestByEmployee(ctx context.Context, employeeID string) (*Salary, error)
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

func (r *repository) Create(ctx context.Context, s *Salary) error {
	return r.conn(ctx).Create(s).Error
}

func (r *repository) Update(ctx context.Context, s *Salary) error {
	return r.conn(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.conn(ctx).Delete(&Salary{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) FindAll(ctx context.Context) ([]Salary, error) {
	var list []Salary
	err := r.conn(ctx).Order("date_paid DESC, created_at DESC").Find(&list).Error
	return list, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Salary, error) {
	var s Salary
	if err := r.conn(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Salary, error) {
	var s Salary
	if err := r.conn(ctx).Clauses(dbtx.ForUpdate()).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Salary, error) {
	var list []Salary
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("date_paid DESC, created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) FindLatestByEmployee(ctx context.Context, employeeID string) (*Salary, error) {
	var s Salary
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("date_paid DESC, created_at DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
