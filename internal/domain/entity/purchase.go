package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase is a received supplier delivery. Recording it adds its
// quantities to product stock.
type Purchase struct {
	ID          uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	Reference   string          `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	Supplier    string          `gorm:"size:255" json:"supplier"`
	Date        string          `gorm:"size:10;not null;index" json:"date"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"total_amount"`
	Notes       string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Details []PurchaseDetail `gorm:"foreignKey:PurchaseID" json:"details,omitempty"`
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseDetail is one received product line.
type PurchaseDetail struct {
	ID          uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	PurchaseID  uuid.UUID       `gorm:"type:char(36);not null;index" json:"purchase_id"`
	ProductID   uuid.UUID       `gorm:"type:char(36);not null;index" json:"product_id"`
	ProductName string          `gorm:"size:255" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"unit_cost"`
	Total       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
}

func (pd *PurchaseDetail) BeforeCreate(tx *gorm.DB) error {
	if pd.ID == uuid.Nil {
		pd.ID = uuid.New()
	}
	return nil
}

func (PurchaseDetail) TableName() string {
	return "purchase_details"
}
