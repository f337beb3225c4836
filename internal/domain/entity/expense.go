package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is money paid out. Salary payouts carry the employee and the
// payroll period they settle.
type Expense struct {
	ID            uuid.UUID            `gorm:"type:char(36);primaryKey" json:"id"`
	Description   string               `gorm:"size:255;not null" json:"description"`
	Amount        decimal.Decimal      `gorm:"type:decimal(14,2);not null" json:"amount"`
	Date          string               `gorm:"size:10;not null;index" json:"date"`
	Category      enum.ExpenseCategory `gorm:"size:50;not null;index" json:"category"`
	PaymentMethod enum.PaymentMethod   `gorm:"size:20" json:"payment_method"`
	Status        string               `gorm:"size:20;default:'paid'" json:"status"`
	EmployeeID    *uuid.UUID           `gorm:"type:char(36);index:idx_expense_payroll" json:"employee_id,omitempty"`
	PeriodKey     string               `gorm:"size:7;index:idx_expense_payroll" json:"period_key,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (Expense) TableName() string {
	return "expenses"
}

// SettlesPayroll reports whether the expense is the salary payout of an
// employee for a period.
func (e *Expense) SettlesPayroll(employeeID uuid.UUID, periodKey string) bool {
	return e.Category == enum.ExpenseSalaries &&
		e.EmployeeID != nil && *e.EmployeeID == employeeID &&
		e.PeriodKey == periodKey
}
