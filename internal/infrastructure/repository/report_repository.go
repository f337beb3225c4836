package repository

import (
	"context"

	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	domainRepo "github.com/sangkips/restopos/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

var countedStatuses = []enum.SaleStatus{enum.SaleStatusConfirmed, enum.SaleStatusDelivered, enum.SaleStatusRefunded}

type dayRow struct {
	Day    string
	Amount decimal.Decimal
}

func toDaily(rows []dayRow) []domainRepo.DailyAmount {
	out := make([]domainRepo.DailyAmount, len(rows))
	for i, r := range rows {
		out[i] = domainRepo.DailyAmount{Day: r.Day, Amount: r.Amount.Round(2)}
	}
	return out
}

func (r *reportRepository) RevenueByDay(ctx context.Context, startDay, endDay string) ([]domainRepo.DailyAmount, error) {
	var rows []dayRow
	err := conn(ctx, r.db).Model(&entity.SaleOrder{}).
		Select("business_day AS day, SUM(CASE WHEN status = ? THEN -total ELSE total END) AS amount", enum.SaleStatusRefunded).
		Scopes(DayRange("business_day", startDay, endDay)).
		Where("status IN ?", countedStatuses).
		Group("business_day").
		Order("business_day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDaily(rows), nil
}

func (r *reportRepository) ExpensesByDay(ctx context.Context, startDay, endDay string) ([]domainRepo.DailyAmount, error) {
	var rows []dayRow
	err := conn(ctx, r.db).Model(&entity.Expense{}).
		Select("date AS day, SUM(amount) AS amount").
		Scopes(DayRange("date", startDay, endDay)).
		Group("date").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDaily(rows), nil
}

func (r *reportRepository) CountSales(ctx context.Context, startDay, endDay string) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.SaleOrder{}).
		Scopes(DayRange("business_day", startDay, endDay)).
		Where("status IN ?", countedStatuses).
		Count(&count).Error
	return count, err
}

func (r *reportRepository) TopProducts(ctx context.Context, startDay, endDay string, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult
	err := conn(ctx, r.db).Table("sale_items AS si").
		Select(`si.product_id AS product_id,
			MAX(si.product_name) AS product_name,
			SUM(si.quantity) AS quantity_sold,
			SUM(si.quantity * si.unit_price) AS revenue`).
		Joins("JOIN sales s ON s.id = si.sale_id").
		Scopes(DayRange("s.business_day", startDay, endDay)).
		Where("s.status IN ?", []enum.SaleStatus{enum.SaleStatusConfirmed, enum.SaleStatusDelivered}).
		Where("s.refunded_by_id IS NULL").
		Group("si.product_id").
		Order("quantity_sold DESC, revenue DESC, product_name ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].Revenue = results[i].Revenue.Round(2)
	}
	return results, nil
}
