package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeRequest creates or replaces an employee
type EmployeeRequest struct {
	Name         string          `json:"name" binding:"required,max=255"`
	Role         string          `json:"role" binding:"omitempty,max=100"`
	Department   string          `json:"department" binding:"omitempty,max=100"`
	Salary       decimal.Decimal `json:"salary"`
	JoinDate     string          `json:"join_date"`
	ContractType string          `json:"contract_type" binding:"omitempty,max=50"`
}

// ClockRequest records an arrival or departure. At defaults to now.
type ClockRequest struct {
	EmployeeID string     `json:"employee_id" binding:"required,uuid"`
	At         *time.Time `json:"at"`
}

// PeriodRequest selects a payroll month
type PeriodRequest struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year" binding:"omitempty,min=2000,max=2100"`
}

// PayRequest pays an employee for a month
type PayRequest struct {
	Month         int    `json:"month" binding:"required,min=1,max=12"`
	Year          int    `json:"year" binding:"required,min=2000,max=2100"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=cash card mobile transfer"`
}
