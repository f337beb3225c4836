package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/pkg/cashcount"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashSession brackets the sales a cashier takes on one terminal between an
// opening and a closing cash count. The expected balance is never stored
// while the session is open; it is recomputed from the sales.
type CashSession struct {
	ID             uuid.UUID          `gorm:"type:char(36);primaryKey" json:"id"`
	TerminalID     string             `gorm:"size:64;not null;index" json:"terminal_id"`
	CashierID      string             `gorm:"size:64" json:"cashier_id"`
	CashierName    string             `gorm:"size:255" json:"cashier_name"`
	Status         enum.SessionStatus `gorm:"size:10;not null;index" json:"status"`
	OpenedAt       time.Time          `gorm:"not null" json:"opened_at"`
	OpeningBalance decimal.Decimal    `gorm:"type:decimal(14,2);not null" json:"opening_balance"`
	OpeningCount   cashcount.Count    `gorm:"serializer:json;type:text" json:"opening_count,omitempty"`

	// Set on close; the session row is kept as history.
	ClosedAt        *time.Time       `json:"closed_at,omitempty"`
	ClosingBalance  *decimal.Decimal `gorm:"type:decimal(14,2)" json:"closing_balance,omitempty"`
	ClosingCount    cashcount.Count  `gorm:"serializer:json;type:text" json:"closing_count,omitempty"`
	ExpectedBalance *decimal.Decimal `gorm:"type:decimal(14,2)" json:"expected_balance,omitempty"`
	Discrepancy     *decimal.Decimal `gorm:"type:decimal(14,2)" json:"discrepancy,omitempty"`
	Notes           string           `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *CashSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (CashSession) TableName() string {
	return "cash_sessions"
}

func (s *CashSession) IsOpen() bool {
	return s.Status == enum.SessionOpen
}

// Owns reports whether a sale belongs to this session: by session id, or
// for sales recorded before ids were attached, by timestamp.
func (s *CashSession) Owns(sale *SaleOrder) bool {
	if sale.SessionID != nil {
		return *sale.SessionID == s.ID
	}
	if sale.OrderedAt.Before(s.OpenedAt) {
		return false
	}
	return s.ClosedAt == nil || !sale.OrderedAt.After(*s.ClosedAt)
}
