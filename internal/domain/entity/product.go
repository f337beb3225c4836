package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a sellable item. Price is tax-inclusive.
type Product struct {
	ID                uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	Name              string          `gorm:"size:255;not null" json:"name"`
	SKU               string          `gorm:"size:100;uniqueIndex;not null" json:"sku"`
	Price             decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"`
	Cost              decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"cost"`
	Stock             int             `gorm:"not null;default:0" json:"stock"`
	Category          string          `gorm:"size:100;index" json:"category"`
	LowStockThreshold *int            `json:"low_stock_threshold,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether stock is at or below the product's threshold,
// or fallback when the product has none.
func (p *Product) IsLowStock(fallback int) bool {
	threshold := fallback
	if p.LowStockThreshold != nil {
		threshold = *p.LowStockThreshold
	}
	return p.Stock <= threshold
}
