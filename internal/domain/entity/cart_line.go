package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is a persisted line of an in-progress order at a location.
// Name, SKU and Price are a snapshot taken when the product was added.
type CartLine struct {
	ID        uuid.UUID       `gorm:"type:char(36);primaryKey" json:"-"`
	Location  string          `gorm:"size:100;not null;index:idx_cart_location_position,priority:1" json:"-"`
	Position  int             `gorm:"not null;index:idx_cart_location_position,priority:2" json:"-"`
	ProductID uuid.UUID       `gorm:"type:char(36);not null" json:"product_id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	SKU       string          `gorm:"size:100" json:"sku"`
	Price     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
}

func (CartLine) TableName() string {
	return "cart_lines"
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
