package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleOrder is a recorded sale. Once created only Status, PreparationStatus
// and RefundedByID change. A refund is its own SaleOrder pointing back at the
// refunded one through RefundOfID.
type SaleOrder struct {
	ID                uuid.UUID              `gorm:"type:char(36);primaryKey" json:"id"`
	Reference         string                 `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	CustomerName      string                 `gorm:"size:255" json:"customer_name"`
	Date              string                 `gorm:"size:32" json:"date"`
	OrderedAt         time.Time              `gorm:"not null" json:"ordered_at"`
	BusinessDay       string                 `gorm:"size:10;not null;index" json:"business_day"`
	Total             decimal.Decimal        `gorm:"type:decimal(14,2);not null" json:"total"`
	Status            enum.SaleStatus        `gorm:"size:20;not null;index" json:"status"`
	PreparationStatus enum.PreparationStatus `gorm:"size:20" json:"preparation_status,omitempty"`
	PaymentMethod     enum.PaymentMethod     `gorm:"size:20" json:"payment_method"`
	AmountReceived    decimal.Decimal        `gorm:"type:decimal(14,2);default:0" json:"amount_received"`
	Change            decimal.Decimal        `gorm:"type:decimal(14,2);default:0" json:"change"`
	Location          string                 `gorm:"size:100;index" json:"location"`
	SessionID         *uuid.UUID             `gorm:"type:char(36);index" json:"session_id,omitempty"`
	CashierName       string                 `gorm:"size:255" json:"cashier_name,omitempty"`
	RefundOfID        *uuid.UUID             `gorm:"type:char(36);index" json:"refund_of_id,omitempty"`
	RefundedByID      *uuid.UUID             `gorm:"type:char(36)" json:"refunded_by_id,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`

	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

func (s *SaleOrder) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (SaleOrder) TableName() string {
	return "sales"
}

// ItemsTotal returns Σ quantity × unit price over the items.
func (s *SaleOrder) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (s *SaleOrder) IsRefunded() bool {
	return s.RefundedByID != nil
}

// SignedTotal is the total as it counts toward revenue and the drawer.
func (s *SaleOrder) SignedTotal() decimal.Decimal {
	return s.Total.Mul(decimal.NewFromInt(int64(s.Status.RevenueSign())))
}

// SaleItem is a product line copied into the sale, so renaming or repricing
// the product later leaves the sale untouched.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	SaleID      uuid.UUID       `gorm:"type:char(36);not null;index" json:"sale_id"`
	ProductID   uuid.UUID       `gorm:"type:char(36);not null;index" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"unit_price"`
	Position    int             `gorm:"not null;default:0" json:"-"`
}

func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (SaleItem) TableName() string {
	return "sale_items"
}

func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
