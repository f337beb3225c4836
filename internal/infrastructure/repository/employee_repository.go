package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	domainRepo "github.com/sangkips/restopos/internal/domain/repository"
	"gorm.io/gorm"
)

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) domainRepo.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *entity.Employee) error {
	return conn(ctx, r.db).Create(employee).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	var employee entity.Employee
	err := conn(ctx, r.db).First(&employee, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &employee, err
}

func (r *employeeRepository) List(ctx context.Context) ([]entity.Employee, error) {
	var employees []entity.Employee
	err := conn(ctx, r.db).Order("name ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) Update(ctx context.Context, employee *entity.Employee) error {
	return conn(ctx, r.db).Save(employee).Error
}

func (r *employeeRepository) SetClockedIn(ctx context.Context, id uuid.UUID, clockedIn bool) error {
	return conn(ctx, r.db).Model(&entity.Employee{}).
		Where("id = ?", id).
		Update("is_clocked_in", clockedIn).Error
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) domainRepo.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, record *entity.AttendanceRecord) error {
	return conn(ctx, r.db).Create(record).Error
}

func (r *attendanceRepository) Update(ctx context.Context, record *entity.AttendanceRecord) error {
	return conn(ctx, r.db).Save(record).Error
}

func (r *attendanceRepository) GetOpen(ctx context.Context, employeeID uuid.UUID) (*entity.AttendanceRecord, error) {
	var record entity.AttendanceRecord
	err := conn(ctx, r.db).
		Where("employee_id = ? AND check_out IS NULL", employeeID).
		Order("created_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *attendanceRepository) List(ctx context.Context, employeeID uuid.UUID) ([]entity.AttendanceRecord, error) {
	var records []entity.AttendanceRecord
	query := conn(ctx, r.db)
	if employeeID != uuid.Nil {
		query = query.Where("employee_id = ?", employeeID)
	}
	err := query.Order("created_at ASC").Find(&records).Error
	return records, err
}
