package employee

import (
	"context"
	"database/sql"
	"employee-register/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByStatus(ctx context.Context, status string) ([]Employee, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	// FindByIDForShare must run inside a transaction; the row stays readable
	// but cannot change until the transaction ends.
	FindByIDForShare(ctx context.Context, id string) (*Employee, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).Order("name ASC").Find(&empls).Error
	return empls, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Where("status = ?", status).
		Order("name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Employee{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	if err := r.conn(ctx).First(&empl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByIDForShare(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	if err := r.conn(ctx).Clauses(dbtx.ForShare()).First(&empl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	if err := r.conn(ctx).Clauses(dbtx.ForUpdate()).First(&empl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.conn(ctx).Delete(&Employee{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
