package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	domainRepo "github.com/sangkips/restopos/internal/domain/repository"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return conn(ctx, r.db).Create(expense).Error
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := conn(ctx, r.db).Model(&entity.Expense{}).
		Scopes(DayRange("date", params.StartDay, params.EndDay))
	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order("date DESC, created_at DESC").
		Find(&expenses).Error
	return expenses, total, err
}

func (r *expenseRepository) ListPayroll(ctx context.Context, periodKey string) ([]entity.Expense, error) {
	var expenses []entity.Expense
	err := conn(ctx, r.db).
		Where("category = ? AND period_key = ?", enum.ExpenseSalaries, periodKey).
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) FindPayroll(ctx context.Context, employeeID uuid.UUID, periodKey string) (*entity.Expense, error) {
	var expense entity.Expense
	err := conn(ctx, r.db).
		Where("category = ? AND employee_id = ? AND period_key = ?", enum.ExpenseSalaries, employeeID, periodKey).
		First(&expense).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}
