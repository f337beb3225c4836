package request

import "github.com/shopspring/decimal"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name              string          `json:"name" binding:"required,min=1,max=255"`
	SKU               string          `json:"sku" binding:"omitempty,max=100"`
	Price             decimal.Decimal `json:"price"`
	Cost              decimal.Decimal `json:"cost"`
	Stock             int             `json:"stock"`
	Category          string          `json:"category" binding:"omitempty,max=100"`
	LowStockThreshold *int            `json:"low_stock_threshold" binding:"omitempty,min=0"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=255"`
	SKU               *string          `json:"sku" binding:"omitempty,max=100"`
	Price             *decimal.Decimal `json:"price"`
	Cost              *decimal.Decimal `json:"cost"`
	Stock             *int             `json:"stock"`
	Category          *string          `json:"category" binding:"omitempty,max=100"`
	LowStockThreshold *int             `json:"low_stock_threshold" binding:"omitempty,min=0"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}
