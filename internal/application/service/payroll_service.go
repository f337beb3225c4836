package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/pkg/apperror"
	"github.com/sangkips/restopos/pkg/utils"
	"go.uber.org/zap"
)

// PayrollService computes and pays monthly salaries.
type PayrollService struct {
	tx         repository.Transactor
	employees  repository.EmployeeRepository
	attendance repository.AttendanceRepository
	expenses   repository.ExpenseRepository
	rules      PayrollRules
	notifier   Notifier
	store      StoreSettings
	log        *zap.Logger
	now        func() time.Time
}

// NewPayrollService creates a new payroll service
func NewPayrollService(
	tx repository.Transactor,
	employees repository.EmployeeRepository,
	attendance repository.AttendanceRepository,
	expenses repository.ExpenseRepository,
	rules PayrollRules,
	notifier Notifier,
	store StoreSettings,
	log *zap.Logger,
) *PayrollService {
	return &PayrollService{
		tx:         tx,
		employees:  employees,
		attendance: attendance,
		expenses:   expenses,
		rules:      rules,
		notifier:   notifier,
		store:      store,
		log:        log,
		now:        time.Now,
	}
}

// Compute returns the payroll of one employee for a month.
func (s *PayrollService) Compute(ctx context.Context, employeeID uuid.UUID, month, year int) (*PayrollResult, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	emp, err := s.employee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	records, err := s.attendance.List(ctx, emp.ID)
	if err != nil {
		return nil, err
	}
	var expenses []entity.Expense
	paid, err := s.expenses.FindPayroll(ctx, emp.ID, utils.PeriodKey(month, year))
	if err != nil {
		return nil, err
	}
	if paid != nil {
		expenses = append(expenses, *paid)
	}

	result := ComputePayroll(emp, records, expenses, month, year, s.rules)
	return &result, nil
}

// ComputeAll returns the payroll of every employee for a month.
func (s *PayrollService) ComputeAll(ctx context.Context, month, year int) ([]PayrollResult, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.attendance.List(ctx, uuid.Nil)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListPayroll(ctx, utils.PeriodKey(month, year))
	if err != nil {
		return nil, err
	}

	results := make([]PayrollResult, 0, len(employees))
	for i := range employees {
		results = append(results, ComputePayroll(&employees[i], records, expenses, month, year, s.rules))
	}
	return results, nil
}

// PayInput represents a salary payout
type PayInput struct {
	EmployeeID    uuid.UUID
	Month         int
	Year          int
	PaymentMethod enum.PaymentMethod
}

// Pay records the net salary of a month as a Salaires expense. A period is
// paid at most once per employee.
func (s *PayrollService) Pay(ctx context.Context, input *PayInput) (*entity.Expense, error) {
	method := input.PaymentMethod
	if method == "" {
		method = enum.PaymentCash
	}
	if !method.Valid() {
		return nil, apperror.NewFieldError("payment_method", "unknown payment method")
	}

	var expense *entity.Expense
	var result *PayrollResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.Compute(ctx, input.EmployeeID, input.Month, input.Year)
		if err != nil {
			return err
		}
		if result.IsPaid {
			return ErrAlreadyPaid
		}
		if !result.NetSalary.IsPositive() {
			return ErrNothingToPay
		}

		employeeID := result.EmployeeID
		expense = &entity.Expense{
			Description:   fmt.Sprintf("Salaire %s - %s", result.EmployeeName, utils.MonthLabelFR(input.Month, input.Year)),
			Amount:        result.NetSalary,
			Date:          s.store.BusinessDay(s.now()),
			Category:      enum.ExpenseSalaries,
			PaymentMethod: method,
			Status:        "paid",
			EmployeeID:    &employeeID,
			PeriodKey:     result.PeriodKey,
		}
		return s.expenses.Create(ctx, expense)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("salary paid",
		zap.String("employee_id", result.EmployeeID.String()),
		zap.String("period", result.PeriodKey),
		zap.String("amount", result.NetSalary.StringFixed(2)))
	s.notifier.Notify(ctx, "Salaire payé", expense.Description, enum.SeveritySuccess)
	return expense, nil
}

func (s *PayrollService) employee(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	return emp, nil
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return apperror.NewFieldError("month", "must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return apperror.NewFieldError("year", "is out of range")
	}
	return nil
}
