package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/pkg/pagination"
)

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	List(ctx context.Context, params *ExpenseFilterParams) ([]entity.Expense, int64, error)
	// ListPayroll returns salary payouts for a period, all employees.
	ListPayroll(ctx context.Context, periodKey string) ([]entity.Expense, error)
	// FindPayroll returns the salary payout of an employee for a period, or nil.
	FindPayroll(ctx context.Context, employeeID uuid.UUID, periodKey string) (*entity.Expense, error)
}

// ExpenseFilterParams contains filtering parameters for expense queries
type ExpenseFilterParams struct {
	Pagination pagination.Params
	Category   *enum.ExpenseCategory
	StartDay   string
	EndDay     string
}
