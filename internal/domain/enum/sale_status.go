package enum

import (
	"database/sql/driver"
	"fmt"
)

// SaleStatus is the lifecycle state of a sale order.
type SaleStatus string

const (
	SaleStatusDraft     SaleStatus = "draft"
	SaleStatusConfirmed SaleStatus = "confirmed"
	SaleStatusDelivered SaleStatus = "delivered"
	SaleStatusRefunded  SaleStatus = "refunded"
	SaleStatusQuotation SaleStatus = "quotation"
)

var saleTransitions = map[SaleStatus][]SaleStatus{
	SaleStatusDraft:     {SaleStatusConfirmed, SaleStatusQuotation},
	SaleStatusQuotation: {SaleStatusConfirmed, SaleStatusDraft},
	SaleStatusConfirmed: {SaleStatusDelivered, SaleStatusRefunded},
	SaleStatusDelivered: {SaleStatusRefunded},
}

func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusDraft, SaleStatusConfirmed, SaleStatusDelivered, SaleStatusRefunded, SaleStatusQuotation:
		return true
	}
	return false
}

// CanTransitionTo reports whether a sale may move from s to next.
func (s SaleStatus) CanTransitionTo(next SaleStatus) bool {
	for _, allowed := range saleTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StockSign is the direction stock moves when a sale with this status is
// recorded: -1 consumes stock, +1 restores it, 0 leaves it alone.
func (s SaleStatus) StockSign() int {
	switch s {
	case SaleStatusConfirmed, SaleStatusDelivered:
		return -1
	case SaleStatusRefunded:
		return 1
	}
	return 0
}

// RevenueSign is how a sale's total contributes to revenue and the cash
// drawer: refunds subtract, drafts and quotations do not count.
func (s SaleStatus) RevenueSign() int {
	switch s {
	case SaleStatusConfirmed, SaleStatusDelivered:
		return 1
	case SaleStatusRefunded:
		return -1
	}
	return 0
}

func (s SaleStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	return scanString((*string)(s), value)
}

// PreparationStatus annotates a sale for the kitchen display.
type PreparationStatus string

const (
	PreparationPending   PreparationStatus = "pending"
	PreparationPreparing PreparationStatus = "preparing"
	PreparationReady     PreparationStatus = "ready"
	PreparationServed    PreparationStatus = "served"
)

func (p PreparationStatus) Valid() bool {
	switch p {
	case PreparationPending, PreparationPreparing, PreparationReady, PreparationServed:
		return true
	}
	return false
}

func (p PreparationStatus) Value() (driver.Value, error) {
	return string(p), nil
}

func (p *PreparationStatus) Scan(value interface{}) error {
	return scanString((*string)(p), value)
}

func scanString(dst *string, value interface{}) error {
	switch v := value.(type) {
	case nil:
		*dst = ""
	case string:
		*dst = v
	case []byte:
		*dst = string(v)
	default:
		return fmt.Errorf("enum: cannot scan %T", value)
	}
	return nil
}
