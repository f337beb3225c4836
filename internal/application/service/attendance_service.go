package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/pkg/apperror"
	"github.com/sangkips/restopos/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AttendanceService manages employees and their clock-ins.
type AttendanceService struct {
	tx         repository.Transactor
	employees  repository.EmployeeRepository
	attendance repository.AttendanceRepository
	store      StoreSettings
	log        *zap.Logger
	now        func() time.Time
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	tx repository.Transactor,
	employees repository.EmployeeRepository,
	attendance repository.AttendanceRepository,
	store StoreSettings,
	log *zap.Logger,
) *AttendanceService {
	return &AttendanceService{
		tx:         tx,
		employees:  employees,
		attendance: attendance,
		store:      store,
		log:        log,
		now:        time.Now,
	}
}

// EmployeeInput represents the create or update employee input
type EmployeeInput struct {
	Name         string
	Role         string
	Department   string
	Salary       decimal.Decimal
	JoinDate     string
	ContractType string
}

func (in *EmployeeInput) validate() error {
	var fields []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if in.Salary.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "salary", Message: "must not be negative"})
	}
	if in.JoinDate != "" {
		iso, err := utils.NormalizeISODate(in.JoinDate)
		if err != nil {
			fields = append(fields, apperror.FieldError{Field: "join_date", Message: "invalid date"})
		}
		in.JoinDate = iso
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields...)
	}
	return nil
}

// CreateEmployee adds a staff member
func (s *AttendanceService) CreateEmployee(ctx context.Context, input *EmployeeInput) (*entity.Employee, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	emp := &entity.Employee{
		Name:         strings.TrimSpace(input.Name),
		Role:         input.Role,
		Department:   input.Department,
		Salary:       input.Salary.Round(2),
		JoinDate:     input.JoinDate,
		ContractType: input.ContractType,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// UpdateEmployee replaces an employee's details. The clock-in flag is not
// editable here.
func (s *AttendanceService) UpdateEmployee(ctx context.Context, id uuid.UUID, input *EmployeeInput) (*entity.Employee, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	emp, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	emp.Name = strings.TrimSpace(input.Name)
	emp.Role = input.Role
	emp.Department = input.Department
	emp.Salary = input.Salary.Round(2)
	emp.JoinDate = input.JoinDate
	emp.ContractType = input.ContractType
	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// GetEmployee retrieves an employee by ID
func (s *AttendanceService) GetEmployee(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	return emp, nil
}

// ListEmployees returns every employee
func (s *AttendanceService) ListEmployees(ctx context.Context) ([]entity.Employee, error) {
	return s.employees.List(ctx)
}

// ClockIn opens an attendance record at the given time, or now.
func (s *AttendanceService) ClockIn(ctx context.Context, employeeID uuid.UUID, at *time.Time) (*entity.AttendanceRecord, error) {
	when := s.at(at)

	var record *entity.AttendanceRecord
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.GetEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		open, err := s.attendance.GetOpen(ctx, emp.ID)
		if err != nil {
			return err
		}
		if emp.IsClockedIn || open != nil {
			return ErrAlreadyClockedIn
		}

		record = &entity.AttendanceRecord{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Date:         utils.DayDate(when),
			CheckIn:      when.Format(utils.ClockLayout),
		}
		if err := s.attendance.Create(ctx, record); err != nil {
			return err
		}
		return s.employees.SetClockedIn(ctx, emp.ID, true)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("employee clocked in",
		zap.String("employee_id", employeeID.String()),
		zap.String("date", record.Date),
		zap.String("check_in", record.CheckIn))
	return record, nil
}

// ClockOut closes the employee's open attendance record.
func (s *AttendanceService) ClockOut(ctx context.Context, employeeID uuid.UUID, at *time.Time) (*entity.AttendanceRecord, error) {
	when := s.at(at)

	var record *entity.AttendanceRecord
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.GetEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		record, err = s.attendance.GetOpen(ctx, emp.ID)
		if err != nil {
			return err
		}
		if record == nil {
			return ErrNotClockedIn
		}

		out := when.Format(utils.ClockLayout)
		record.CheckOut = &out
		if err := s.attendance.Update(ctx, record); err != nil {
			return err
		}
		return s.employees.SetClockedIn(ctx, emp.ID, false)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("employee clocked out", zap.String("employee_id", employeeID.String()))
	return record, nil
}

// ListAttendance returns attendance records, optionally for one employee
// (uuid.Nil for all) and one month (0 for all).
func (s *AttendanceService) ListAttendance(ctx context.Context, employeeID uuid.UUID, month, year int) ([]entity.AttendanceRecord, error) {
	records, err := s.attendance.List(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if month == 0 {
		return records, nil
	}
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	out := make([]entity.AttendanceRecord, 0, len(records))
	for _, rec := range records {
		day, err := utils.ParseDayDate(rec.Date)
		if err != nil {
			continue
		}
		if int(day.Month()) == month && day.Year() == year {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *AttendanceService) at(t *time.Time) time.Time {
	if t != nil {
		return t.In(s.store.loc())
	}
	return s.now().In(s.store.loc())
}
