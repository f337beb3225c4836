package request

import "github.com/shopspring/decimal"

// PurchaseItemRequest is one received product
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id" binding:"required,uuid"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// ReceivePurchaseRequest records a supplier delivery
type ReceivePurchaseRequest struct {
	Supplier      string                `json:"supplier" binding:"omitempty,max=255"`
	Date          string                `json:"date"`
	Notes         string                `json:"notes" binding:"omitempty,max=1000"`
	Items         []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	RecordExpense bool                  `json:"record_expense"`
	PaymentMethod string                `json:"payment_method" binding:"omitempty,oneof=cash card mobile transfer"`
}

// ExpenseRequest records a non-payroll expense
type ExpenseRequest struct {
	Description   string          `json:"description" binding:"required,max=255"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"payment_method" binding:"omitempty,oneof=cash card mobile transfer"`
}

// ExpenseFilterRequest represents expense filter parameters
type ExpenseFilterRequest struct {
	Category  string `form:"category"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
