package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
)

// EmployeeRepository defines the interface for employee data operations
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	List(ctx context.Context) ([]entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	SetClockedIn(ctx context.Context, id uuid.UUID, clockedIn bool) error
}

// AttendanceRepository defines the interface for attendance data operations
type AttendanceRepository interface {
	Create(ctx context.Context, record *entity.AttendanceRecord) error
	Update(ctx context.Context, record *entity.AttendanceRecord) error
	// GetOpen returns the employee's record without a check-out, or nil.
	GetOpen(ctx context.Context, employeeID uuid.UUID) (*entity.AttendanceRecord, error)
	// List returns records of one employee, or of everyone when employeeID
	// is uuid.Nil, oldest first.
	List(ctx context.Context, employeeID uuid.UUID) ([]entity.AttendanceRecord, error)
}
