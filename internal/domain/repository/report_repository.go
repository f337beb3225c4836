package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopProductResult is a product's sold quantity and revenue over a period.
type TopProductResult struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// DailyAmount is a total for one YYYY-MM-DD day.
type DailyAmount struct {
	Day    string
	Amount decimal.Decimal
}

// ReportRepository defines aggregation queries over sales and expenses.
// Day bounds are inclusive YYYY-MM-DD strings.
type ReportRepository interface {
	// RevenueByDay sums sale totals per business day; refunds count
	// negative, drafts and quotations are ignored.
	RevenueByDay(ctx context.Context, startDay, endDay string) ([]DailyAmount, error)
	ExpensesByDay(ctx context.Context, startDay, endDay string) ([]DailyAmount, error)
	// CountSales counts revenue-bearing sales (refunds included).
	CountSales(ctx context.Context, startDay, endDay string) (int64, error)
	// TopProducts ranks products of confirmed and delivered sales that were
	// not refunded by quantity, then revenue, then name.
	TopProducts(ctx context.Context, startDay, endDay string, limit int) ([]TopProductResult, error)
}
