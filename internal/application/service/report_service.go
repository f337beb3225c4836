package service

import (
	"context"
	"sort"
	"time"

	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/pkg/apperror"
	"github.com/sangkips/restopos/pkg/utils"
	"github.com/shopspring/decimal"
)

const (
	topProductsLimit = 5
	trendDays        = 7
)

// ReportService aggregates sales and expenses over date ranges.
type ReportService struct {
	reports  repository.ReportRepository
	products repository.ProductRepository
	store    StoreSettings
	now      func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	reports repository.ReportRepository,
	products repository.ProductRepository,
	store StoreSettings,
) *ReportService {
	return &ReportService{
		reports:  reports,
		products: products,
		store:    store,
		now:      time.Now,
	}
}

// NormalizeDate accepts YYYY-MM-DD or DD/MM/YYYY and returns YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	iso, err := utils.NormalizeISODate(s)
	if err != nil {
		return "", apperror.NewFieldError("date", "expected YYYY-MM-DD or DD/MM/YYYY")
	}
	return iso, nil
}

// Summary is the result of a period.
type Summary struct {
	StartDate    string                        `json:"start_date"`
	EndDate      string                        `json:"end_date"`
	TotalRevenue decimal.Decimal               `json:"total_revenue"`
	TotalCosts   decimal.Decimal               `json:"total_costs"`
	NetResult    decimal.Decimal               `json:"net_result"`
	SalesCount   int64                         `json:"sales_count"`
	TopProducts  []repository.TopProductResult `json:"top_products"`
}

// Summary aggregates the inclusive period [start, end]. Empty bounds default
// to today.
func (s *ReportService) Summary(ctx context.Context, start, end string) (*Summary, error) {
	startDay, endDay, err := s.period(start, end)
	if err != nil {
		return nil, err
	}

	revenue, err := s.reports.RevenueByDay(ctx, startDay, endDay)
	if err != nil {
		return nil, err
	}
	costs, err := s.reports.ExpensesByDay(ctx, startDay, endDay)
	if err != nil {
		return nil, err
	}
	count, err := s.reports.CountSales(ctx, startDay, endDay)
	if err != nil {
		return nil, err
	}
	top, err := s.reports.TopProducts(ctx, startDay, endDay, topProductsLimit)
	if err != nil {
		return nil, err
	}
	if top == nil {
		top = []repository.TopProductResult{}
	}

	totalRevenue := sumDaily(revenue)
	totalCosts := sumDaily(costs)
	return &Summary{
		StartDate:    startDay,
		EndDate:      endDay,
		TotalRevenue: totalRevenue,
		TotalCosts:   totalCosts,
		NetResult:    totalRevenue.Sub(totalCosts),
		SalesCount:   count,
		TopProducts:  top,
	}, nil
}

// TrendPoint is one day of the trend chart.
type TrendPoint struct {
	Date     string          `json:"date"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Trend returns the last seven days up to today, oldest first. Days without
// activity are zero.
func (s *ReportService) Trend(ctx context.Context) ([]TrendPoint, error) {
	today := s.now().In(s.store.loc())
	days := make([]string, trendDays)
	for i := range days {
		days[i] = utils.ISODate(today.AddDate(0, 0, i-(trendDays-1)))
	}

	revenue, err := s.reports.RevenueByDay(ctx, days[0], days[trendDays-1])
	if err != nil {
		return nil, err
	}
	expenses, err := s.reports.ExpensesByDay(ctx, days[0], days[trendDays-1])
	if err != nil {
		return nil, err
	}

	rev := indexDaily(revenue)
	exp := indexDaily(expenses)
	points := make([]TrendPoint, trendDays)
	for i, day := range days {
		points[i] = TrendPoint{Date: day, Revenue: rev[day], Expenses: exp[day]}
	}
	return points, nil
}

// LowStock returns products at or below their threshold, lowest stock first.
func (s *ReportService) LowStock(ctx context.Context) ([]entity.Product, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0)
	for _, p := range products {
		if p.IsLowStock(s.store.LowStockThreshold) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	return out, nil
}

func (s *ReportService) period(start, end string) (string, string, error) {
	today := s.store.BusinessDay(s.now())
	startDay, endDay := today, today
	var err error
	if start != "" {
		if startDay, err = NormalizeDate(start); err != nil {
			return "", "", apperror.NewFieldError("start_date", "expected YYYY-MM-DD or DD/MM/YYYY")
		}
	}
	if end != "" {
		if endDay, err = NormalizeDate(end); err != nil {
			return "", "", apperror.NewFieldError("end_date", "expected YYYY-MM-DD or DD/MM/YYYY")
		}
	}
	if startDay > endDay {
		return "", "", apperror.NewFieldError("start_date", "must not be after end_date")
	}
	return startDay, endDay, nil
}

func sumDaily(rows []repository.DailyAmount) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	return total
}

func indexDaily(rows []repository.DailyAmount) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		out[r.Day] = out[r.Day].Add(r.Amount)
	}
	return out
}
