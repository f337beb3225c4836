package request

import "github.com/shopspring/decimal"

// SettleRequest represents a checkout of a location's cart
type SettleRequest struct {
	PaymentMethod  string           `json:"payment_method" binding:"omitempty,oneof=cash card mobile transfer"`
	AmountTendered *decimal.Decimal `json:"amount_tendered"`
	CustomerName   string           `json:"customer_name" binding:"omitempty,max=255"`
}

// SaleItemRequest is one line of a manually created sale
type SaleItemRequest struct {
	ProductID string           `json:"product_id" binding:"required,uuid"`
	Quantity  int              `json:"quantity" binding:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest represents a manual sale, quotation or draft
type CreateSaleRequest struct {
	CustomerName   string            `json:"customer_name" binding:"omitempty,max=255"`
	Status         string            `json:"status" binding:"required,oneof=draft confirmed delivered quotation"`
	PaymentMethod  string            `json:"payment_method" binding:"omitempty,oneof=cash card mobile transfer"`
	Location       string            `json:"location" binding:"omitempty,max=100"`
	AmountReceived *decimal.Decimal  `json:"amount_received"`
	Items          []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateSaleStatusRequest moves a sale along its lifecycle
type UpdateSaleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePreparationRequest changes the kitchen state of a sale
type UpdatePreparationRequest struct {
	Status string `json:"status" binding:"required"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Status    string `form:"status"`
	Location  string `form:"location"`
	SessionID string `form:"session_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
