package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/internal/infrastructure/database"
	infraRepo "github.com/sangkips/restopos/internal/infrastructure/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type note struct {
	title    string
	message  string
	severity enum.Severity
}

// recordingNotifier keeps notifications in memory.
type recordingNotifier struct {
	mu    sync.Mutex
	notes []note
}

func (n *recordingNotifier) Notify(_ context.Context, title, message string, severity enum.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, note{title: title, message: message, severity: severity})
}

func (n *recordingNotifier) count(severity enum.Severity) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, x := range n.notes {
		if x.severity == severity {
			c++
		}
	}
	return c
}

type fixture struct {
	ctx   context.Context
	db    *gorm.DB
	clock time.Time

	tx         repository.Transactor
	products   repository.ProductRepository
	sales      repository.SaleRepository
	carts      repository.CartRepository
	sessions   repository.CashSessionRepository
	employees  repository.EmployeeRepository
	attendance repository.AttendanceRepository
	expenses   repository.ExpenseRepository
	purchases  repository.PurchaseRepository
	reports    repository.ReportRepository

	notifier *recordingNotifier
	store    StoreSettings
	log      *zap.Logger

	ledger        *CartLedger
	saleSvc       *SaleService
	sessionSvc    *SessionService
	payrollSvc    *PayrollService
	attendanceSvc *AttendanceService
	reportSvc     *ReportService
	purchaseSvc   *PurchaseService
	productSvc    *ProductService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	f := &fixture{
		ctx:        context.Background(),
		db:         db,
		clock:      time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		tx:         infraRepo.NewTransactor(db),
		products:   infraRepo.NewProductRepository(db),
		sales:      infraRepo.NewSaleRepository(db),
		carts:      infraRepo.NewCartRepository(db),
		sessions:   infraRepo.NewCashSessionRepository(db),
		employees:  infraRepo.NewEmployeeRepository(db),
		attendance: infraRepo.NewAttendanceRepository(db),
		expenses:   infraRepo.NewExpenseRepository(db),
		purchases:  infraRepo.NewPurchaseRepository(db),
		reports:    infraRepo.NewReportRepository(db),
		notifier:   &recordingNotifier{},
		log:        zap.NewNop(),
		store: StoreSettings{
			TerminalID:        "caisse-1",
			BusinessName:      "Chez Test",
			Currency:          "MRU",
			Location:          time.UTC,
			LowStockThreshold: DefaultLowStockThreshold,
			PrinterWidth:      32,
		},
	}
	now := func() time.Time { return f.clock }

	f.ledger = NewCartLedger(f.tx, f.carts, f.products, f.notifier, f.log)
	f.saleSvc = NewSaleService(f.tx, f.sales, f.products, f.carts, f.sessions, f.ledger, f.notifier, f.store, f.log)
	f.saleSvc.now = now
	f.sessionSvc = NewSessionService(f.tx, f.sessions, f.sales, f.ledger, f.notifier, f.store,
		[]int64{5, 10, 20, 50, 100, 200, 500, 1000}, f.log)
	f.sessionSvc.now = now
	f.payrollSvc = NewPayrollService(f.tx, f.employees, f.attendance, f.expenses, DefaultPayrollRules(), f.notifier, f.store, f.log)
	f.payrollSvc.now = now
	f.attendanceSvc = NewAttendanceService(f.tx, f.employees, f.attendance, f.store, f.log)
	f.attendanceSvc.now = now
	f.reportSvc = NewReportService(f.reports, f.products, f.store)
	f.reportSvc.now = now
	f.purchaseSvc = NewPurchaseService(f.tx, f.purchases, f.products, f.expenses, f.store, f.log)
	f.purchaseSvc.now = now
	f.productSvc = NewProductService(f.products)
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func (f *fixture) product(t *testing.T, name string, price int64, stock int) *entity.Product {
	t.Helper()
	p, err := f.productSvc.CreateProduct(f.ctx, &CreateProductInput{
		Name:  name,
		Price: decimal.NewFromInt(price),
		Stock: stock,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) stock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := f.products.GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *fixture) openSession(t *testing.T, opening int64) *entity.CashSession {
	t.Helper()
	balance := decimal.NewFromInt(opening)
	res, err := f.sessionSvc.Open(f.ctx, &OpenInput{CashierName: "Fatou", OpeningBalance: &balance})
	require.NoError(t, err)
	return res.Session
}

func (f *fixture) addToCart(t *testing.T, location string, p *entity.Product, qty int) {
	t.Helper()
	for i := 0; i < qty; i++ {
		_, err := f.ledger.AddItem(f.ctx, location, p.ID)
		require.NoError(t, err)
	}
}

func (f *fixture) employee(t *testing.T, name string, salary int64) *entity.Employee {
	t.Helper()
	emp, err := f.attendanceSvc.CreateEmployee(f.ctx, &EmployeeInput{Name: name, Salary: decimal.NewFromInt(salary)})
	require.NoError(t, err)
	return emp
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}
