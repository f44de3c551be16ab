package attendance

import (
	"context"
	"database/sql"
	"employee-register/internal/shared/dbtx"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	Delete(ctx context.Context, id string) (bool, error)
	FindAll(ctx context.Context) ([]Attendance, error)
	FindByID(ctx context.Context, id string) (*Attendance, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Attendance, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	FindByDate(ctx context.Context, date time.Time) ([]Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	ExistsByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	// FindByEmployeeBetween returns rows with from <= date < to.
	FindByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.conn(ctx).Delete(&Attendance{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) FindAll(ctx context.Context) ([]Attendance, error) {
	var list []Attendance
	err := r.conn(ctx).Order("date DESC").Find(&list).Error
	return list, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	if err := r.conn(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	if err := r.conn(ctx).Clauses(dbtx.ForUpdate()).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	var list []Attendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) FindByDate(ctx context.Context, date time.Time) ([]Attendance, error) {
	var list []Attendance
	err := r.conn(ctx).
		Where("date = ?", date.Format("2006-01-02")).
		Find(&list).Error
	return list, err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ExistsByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Attendance{}).
		Where("employee_id = ? AND date = ?", employeeID, date.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error) {
	var list []Attendance
	err := r.conn(ctx).
		Where("employee_id = ? AND date >= ? AND date < ?", employeeID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&list).Error
	return list, err
}
