package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/internal/infrastructure/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createProduct(t *testing.T, repo interface {
	Create(context.Context, *entity.Product) error
}, name string, price int64, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: name, SKU: "SKU-" + name, Price: decimal.NewFromInt(price), Stock: stock}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestAdjustStockAllowsNegative(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	p := createProduct(t, repo, "the", 50, 2)

	require.NoError(t, repo.AdjustStock(ctx, map[uuid.UUID]int{p.ID: -5}))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, -3, got.Stock)

	err = repo.AdjustStock(ctx, map[uuid.UUID]int{uuid.New(): 1})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAdjustStockReachesDeletedProducts(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	p := createProduct(t, repo, "bissap", 80, 4)
	require.NoError(t, repo.Delete(ctx, p.ID))

	require.NoError(t, repo.AdjustStock(ctx, map[uuid.UUID]int{p.ID: -1}))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var stored entity.Product
	require.NoError(t, db.Unscoped().First(&stored, "id = ?", p.ID).Error)
	assert.Equal(t, 3, stored.Stock)
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))

	got, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestTransactorRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	tx := NewTransactor(db)
	ctx := context.Background()
	p := createProduct(t, repo, "jus", 100, 10)

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.AdjustStock(ctx, map[uuid.UUID]int{p.ID: -4}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)
}

func TestCartReplaceKeepsOrder(t *testing.T) {
	repo := NewCartRepository(newTestDB(t))
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, repo.Replace(ctx, "Table 1", []entity.CartLine{
		{ProductID: b, Name: "B", Price: decimal.NewFromInt(2), Quantity: 1},
		{ProductID: a, Name: "A", Price: decimal.NewFromInt(1), Quantity: 3},
	}))
	require.NoError(t, repo.Replace(ctx, "Bar", []entity.CartLine{
		{ProductID: a, Name: "A", Price: decimal.NewFromInt(1), Quantity: 1},
	}))

	lines, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "Bar", lines[0].Location)
	assert.Equal(t, b, lines[1].ProductID)
	assert.Equal(t, a, lines[2].ProductID)

	require.NoError(t, repo.Replace(ctx, "Table 1", nil))
	lines, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func saleOn(day string, status enum.SaleStatus, items ...entity.SaleItem) *entity.SaleOrder {
	s := &entity.SaleOrder{
		Reference:   uuid.NewString(),
		OrderedAt:   time.Now(),
		BusinessDay: day,
		Status:      status,
		Items:       items,
	}
	s.Total = s.ItemsTotal()
	return s
}

func TestReportAggregates(t *testing.T) {
	db := newTestDB(t)
	sales := NewSaleRepository(db)
	expenses := NewExpenseRepository(db)
	reports := NewReportRepository(db)
	ctx := context.Background()
	tea, dish := uuid.New(), uuid.New()

	item := func(id uuid.UUID, name string, qty int, price int64) entity.SaleItem {
		return entity.SaleItem{ProductID: id, ProductName: name, Quantity: qty, UnitPrice: decimal.NewFromInt(price)}
	}
	require.NoError(t, sales.Create(ctx, saleOn("2024-03-01", enum.SaleStatusConfirmed, item(tea, "The", 4, 50), item(dish, "Plat", 1, 600))))
	require.NoError(t, sales.Create(ctx, saleOn("2024-03-02", enum.SaleStatusDelivered, item(dish, "Plat", 2, 600))))
	require.NoError(t, sales.Create(ctx, saleOn("2024-03-02", enum.SaleStatusRefunded, item(dish, "Plat", 1, 600))))
	require.NoError(t, sales.Create(ctx, saleOn("2024-03-02", enum.SaleStatusQuotation, item(tea, "The", 10, 50))))
	require.NoError(t, sales.Create(ctx, saleOn("2024-04-01", enum.SaleStatusConfirmed, item(tea, "The", 9, 50))))
	require.NoError(t, expenses.Create(ctx, &entity.Expense{Description: "Gaz", Amount: decimal.NewFromInt(300), Date: "2024-03-02", Category: enum.ExpenseUtilities}))

	revenue, err := reports.RevenueByDay(ctx, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, revenue, 2)
	assert.True(t, revenue[0].Amount.Equal(decimal.NewFromInt(800)), revenue[0].Amount.String())
	assert.True(t, revenue[1].Amount.Equal(decimal.NewFromInt(600)), revenue[1].Amount.String())

	costs, err := reports.ExpensesByDay(ctx, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, costs, 1)
	assert.Equal(t, "2024-03-02", costs[0].Day)

	count, err := reports.CountSales(ctx, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	top, err := reports.TopProducts(ctx, "2024-03-01", "2024-03-31", 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, tea, top[0].ProductID)
	assert.Equal(t, 4, top[0].QuantitySold)
	assert.Equal(t, dish, top[1].ProductID)
	assert.Equal(t, 3, top[1].QuantitySold)
	assert.True(t, top[1].Revenue.Equal(decimal.NewFromInt(1800)))
}

func TestExpenseFindPayroll(t *testing.T) {
	repo := NewExpenseRepository(newTestDB(t))
	ctx := context.Background()
	emp := uuid.New()

	require.NoError(t, repo.Create(ctx, &entity.Expense{
		Description: "Salaire", Amount: decimal.NewFromInt(100), Date: "2024-03-31",
		Category: enum.ExpenseSalaries, EmployeeID: &emp, PeriodKey: "2024-03",
	}))

	found, err := repo.FindPayroll(ctx, emp, "2024-03")
	require.NoError(t, err)
	require.NotNil(t, found)

	missing, err := repo.FindPayroll(ctx, emp, "2024-04")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPreferenceUpsert(t *testing.T) {
	repo := NewPreferenceRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &entity.Preference{Key: "darkMode", Value: "false"}))
	require.NoError(t, repo.Upsert(ctx, &entity.Preference{Key: "darkMode", Value: "true"}))

	got, err := repo.Get(ctx, "darkMode")
	require.NoError(t, err)
	assert.Equal(t, "true", got.Value)
}
