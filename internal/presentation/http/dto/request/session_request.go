package request

import (
	"github.com/sangkips/restopos/pkg/cashcount"
	"github.com/shopspring/decimal"
)

// CashCountRequest is a bill and coin breakdown keyed by denomination
type CashCountRequest struct {
	Count cashcount.Count `json:"count" binding:"required"`
}

// OpenSessionRequest opens the register. Count wins over OpeningBalance
// when both are sent.
type OpenSessionRequest struct {
	Count          cashcount.Count  `json:"count"`
	OpeningBalance *decimal.Decimal `json:"opening_balance"`
}

// CloseSessionRequest closes the register with the counted drawer
type CloseSessionRequest struct {
	Count          cashcount.Count  `json:"count"`
	CountedBalance *decimal.Decimal `json:"counted_balance"`
	Notes          string           `json:"notes" binding:"omitempty,max=1000"`
}
