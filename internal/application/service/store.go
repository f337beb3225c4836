package service

import (
	"time"

	"github.com/sangkips/restopos/internal/config"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/pkg/utils"
)

// DefaultLowStockThreshold applies to products without their own threshold.
const DefaultLowStockThreshold = 5

// StoreSettings describes the terminal the services run on.
type StoreSettings struct {
	TerminalID        string
	BusinessName      string
	Currency          string
	Location          *time.Location
	LowStockThreshold int
	PrinterWidth      int
}

// NewStoreSettings builds settings from the app configuration.
func NewStoreSettings(cfg *config.Config) StoreSettings {
	return StoreSettings{
		TerminalID:        cfg.App.TerminalID,
		BusinessName:      cfg.App.BusinessName,
		Currency:          cfg.App.Currency,
		Location:          cfg.App.Location(),
		LowStockThreshold: DefaultLowStockThreshold,
		PrinterWidth:      cfg.Printer.Width,
	}
}

func (s StoreSettings) loc() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

// BusinessDay is the local YYYY-MM-DD day of t.
func (s StoreSettings) BusinessDay(t time.Time) string {
	return utils.ISODate(t.In(s.loc()))
}

func (s StoreSettings) receiptHeader() entity.ReceiptHeader {
	return entity.ReceiptHeader{
		StoreName: s.BusinessName,
		Terminal:  s.TerminalID,
		Currency:  s.Currency,
	}
}
