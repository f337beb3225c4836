package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/pkg/apperror"
	"github.com/sangkips/restopos/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseService records money paid out outside payroll and purchases.
type ExpenseService struct {
	repo  repository.ExpenseRepository
	store StoreSettings
	log   *zap.Logger
	now   func() time.Time
}

// NewExpenseService creates a new expense service
func NewExpenseService(repo repository.ExpenseRepository, store StoreSettings, log *zap.Logger) *ExpenseService {
	return &ExpenseService{repo: repo, store: store, log: log, now: time.Now}
}

// ExpenseInput represents the record expense input
type ExpenseInput struct {
	Description   string
	Amount        decimal.Decimal
	Date          string
	Category      enum.ExpenseCategory
	PaymentMethod enum.PaymentMethod
}

// Record stores an expense. Salaries are booked by payroll only.
func (s *ExpenseService) Record(ctx context.Context, input *ExpenseInput) (*entity.Expense, error) {
	var fields []apperror.FieldError
	description := strings.TrimSpace(input.Description)
	if description == "" {
		fields = append(fields, apperror.FieldError{Field: "description", Message: "is required"})
	}
	if !input.Amount.IsPositive() {
		fields = append(fields, apperror.FieldError{Field: "amount", Message: "must be positive"})
	}
	category := input.Category
	if category == "" {
		category = enum.ExpenseOther
	}
	if !category.Valid() || category == enum.ExpenseSalaries {
		fields = append(fields, apperror.FieldError{Field: "category", Message: "unknown category"})
	}
	method := input.PaymentMethod
	if method == "" {
		method = enum.PaymentCash
	}
	if !method.Valid() {
		fields = append(fields, apperror.FieldError{Field: "payment_method", Message: "unknown payment method"})
	}
	date := s.store.BusinessDay(s.now())
	if input.Date != "" {
		iso, err := NormalizeDate(input.Date)
		if err != nil {
			fields = append(fields, apperror.FieldError{Field: "date", Message: "expected YYYY-MM-DD or DD/MM/YYYY"})
		}
		date = iso
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields...)
	}

	expense := &entity.Expense{
		Description:   description,
		Amount:        input.Amount.Round(2),
		Date:          date,
		Category:      category,
		PaymentMethod: method,
		Status:        "paid",
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	s.log.Info("expense recorded",
		zap.String("category", string(category)),
		zap.String("amount", expense.Amount.StringFixed(2)))
	return expense, nil
}

// List lists expenses, newest first
func (s *ExpenseService) List(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.Page[entity.Expense], error) {
	params.Pagination = params.Pagination.Normalize()
	expenses, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(expenses, params.Pagination, total), nil
}
