package service

import (
	"testing"
	"time"

	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/pkg/cashcount"
	"github.com/sangkips/restopos/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_OnlyOneSessionPerTerminal(t *testing.T) {
	f := newFixture(t)
	f.openSession(t, 1000)

	_, err := f.sessionSvc.Open(f.ctx, &OpenInput{CashierName: "Awa", OpeningBalance: decPtr(0)})
	require.ErrorIs(t, err, ErrSessionAlreadyOpen)
}

func TestOpen_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.sessionSvc.Open(f.ctx, &OpenInput{OpeningBalance: decPtr(0)})
	require.Error(t, err)

	_, err = f.sessionSvc.Open(f.ctx, &OpenInput{CashierName: "Awa"})
	require.Error(t, err)

	_, err = f.sessionSvc.Open(f.ctx, &OpenInput{CashierName: "Awa", OpeningBalance: decPtr(-5)})
	require.Error(t, err)

	_, err = f.sessionSvc.Open(f.ctx, &OpenInput{CashierName: "Awa", Count: cashcount.Count{0: 3}})
	require.Error(t, err)
}

func TestOpen_FromDenominationCount(t *testing.T) {
	f := newFixture(t)

	res, err := f.sessionSvc.Open(f.ctx, &OpenInput{
		CashierName:    "Awa",
		Count:          cashcount.Count{100: 3, 20: 2, 5: 1},
		OpeningBalance: decPtr(9999),
	})
	require.NoError(t, err)
	requireDecimal(t, "345", res.Session.OpeningBalance)
	assert.Equal(t, 3, res.Session.OpeningCount[100])
	assert.Empty(t, res.OccupiedLocations)
	assert.Equal(t, enum.SessionOpen, res.Session.Status)
}

func TestOpen_WarnsAboutOccupiedLocations(t *testing.T) {
	f := newFixture(t)
	tea := f.product(t, "Thé", 50, 10)
	f.addToCart(t, "Table 3", tea, 1)
	f.addToCart(t, "Table 1", tea, 1)

	res, err := f.sessionSvc.Open(f.ctx, &OpenInput{CashierName: "Awa", OpeningBalance: decPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Table 1", "Table 3"}, res.OccupiedLocations)
	assert.Equal(t, 1, f.notifier.count(enum.SeverityWarning))
}

func TestCountCash(t *testing.T) {
	f := newFixture(t)

	count, err := f.sessionSvc.CountCash(cashcount.Count{1000: 2, 50: 3})
	require.NoError(t, err)
	requireDecimal(t, "2150", count.Total)
	assert.NotEmpty(t, count.Lines)

	_, err = f.sessionSvc.CountCash(cashcount.Count{-10: 1})
	require.Error(t, err)
	assert.Equal(t, []int64{5, 10, 20, 50, 100, 200, 500, 1000}, f.sessionSvc.Denominations())
}

func TestCurrent_ExpectedBalanceFollowsSignedSales(t *testing.T) {
	f := newFixture(t)

	_, err := f.sessionSvc.Current(f.ctx)
	require.ErrorIs(t, err, ErrNoOpenSession)

	f.openSession(t, 1000)
	tea := f.product(t, "Thé", 50, 10)
	f.addToCart(t, "Table 1", tea, 2)
	first, err := f.saleSvc.Settle(f.ctx, &SettleInput{Location: "Table 1"})
	require.NoError(t, err)
	f.addToCart(t, "Table 2", tea, 1)
	_, err = f.saleSvc.Settle(f.ctx, &SettleInput{Location: "Table 2"})
	require.NoError(t, err)
	_, err = f.saleSvc.Refund(f.ctx, first.ID)
	require.NoError(t, err)
	_, err = f.saleSvc.CreateSale(f.ctx, &CreateSaleInput{
		Items: []SaleItemInput{{ProductID: tea.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	status, err := f.sessionSvc.Current(f.ctx)
	require.NoError(t, err)
	// 1000 + 100 + 50 - 100; the draft does not count.
	requireDecimal(t, "1050", status.ExpectedBalance)
	assert.Equal(t, 2, status.SalesCount)
	assert.Equal(t, 1, status.RefundCount)
}

func TestExpectedBalance_LegacySalesMatchedByTimestamp(t *testing.T) {
	f := newFixture(t)
	before := &entity.SaleOrder{
		Reference:   "VTE-OLD-1",
		OrderedAt:   f.clock.Add(-time.Hour),
		BusinessDay: "2024-03-15",
		Status:      enum.SaleStatusConfirmed,
		Total:       dec(300),
	}
	require.NoError(t, f.sales.Create(f.ctx, before))

	session := f.openSession(t, 500)
	during := &entity.SaleOrder{
		Reference:   "VTE-OLD-2",
		OrderedAt:   f.clock.Add(time.Minute),
		BusinessDay: "2024-03-15",
		Status:      enum.SaleStatusDelivered,
		Total:       dec(75),
	}
	require.NoError(t, f.sales.Create(f.ctx, during))

	expected, err := f.sessionSvc.ExpectedBalance(f.ctx, session)
	require.NoError(t, err)
	requireDecimal(t, "575", expected)
}

func TestExpectedBalance_CashSaleWithChange(t *testing.T) {
	f := newFixture(t)
	f.openSession(t, 5000)
	dish := f.product(t, "Thieboudienne", 600, 10)
	f.addToCart(t, "Table 3", dish, 2)

	sale, err := f.saleSvc.Settle(f.ctx, &SettleInput{Location: "Table 3", AmountTendered: decPtr(1500)})
	require.NoError(t, err)
	requireDecimal(t, "1200", sale.Total)
	requireDecimal(t, "1500", sale.AmountReceived)
	requireDecimal(t, "300", sale.Change)

	status, err := f.sessionSvc.Current(f.ctx)
	require.NoError(t, err)
	requireDecimal(t, "6200", status.ExpectedBalance)
	assert.Equal(t, 1, status.SalesCount)
}

func TestExpectedBalance_IndependentOfInsertionOrder(t *testing.T) {
	f := newFixture(t)
	opened := f.clock
	session := f.openSession(t, 5000)
	dish := f.product(t, "Thieboudienne", 600, 10)

	f.advance(time.Hour)
	f.addToCart(t, "Table 1", dish, 2)
	_, err := f.saleSvc.Settle(f.ctx, &SettleInput{Location: "Table 1"})
	require.NoError(t, err)

	backdated := []*entity.SaleOrder{
		{
			Reference:   "VTE-LATE-1",
			OrderedAt:   opened.Add(30 * time.Minute),
			BusinessDay: "2024-03-15",
			Status:      enum.SaleStatusConfirmed,
			Total:       dec(600),
			SessionID:   &session.ID,
		},
		{
			Reference:   "VTE-LATE-2",
			OrderedAt:   opened.Add(15 * time.Minute),
			BusinessDay: "2024-03-15",
			Status:      enum.SaleStatusConfirmed,
			Total:       dec(100),
		},
		{
			Reference:   "VTE-LATE-3",
			OrderedAt:   opened.Add(-time.Minute),
			BusinessDay: "2024-03-15",
			Status:      enum.SaleStatusConfirmed,
			Total:       dec(900),
		},
	}
	for _, sale := range backdated {
		require.NoError(t, f.sales.Create(f.ctx, sale))
	}

	expected, err := f.sessionSvc.ExpectedBalance(f.ctx, session)
	require.NoError(t, err)
	// 5000 + 1200 + 600 + 100; the sale before opening is not counted.
	requireDecimal(t, "6900", expected)

	status, err := f.sessionSvc.Current(f.ctx)
	require.NoError(t, err)
	requireDecimal(t, "6900", status.ExpectedBalance)
	assert.Equal(t, 3, status.SalesCount)
}

func TestClose_ReportsDiscrepancyAndKeepsHistory(t *testing.T) {
	f := newFixture(t)
	f.openSession(t, 1000)
	tea := f.product(t, "Thé", 50, 10)
	f.addToCart(t, "Table 1", tea, 2)
	_, err := f.saleSvc.Settle(f.ctx, &SettleInput{Location: "Table 1"})
	require.NoError(t, err)
	f.addToCart(t, "Table 2", tea, 1)
	_, err = f.saleSvc.Settle(f.ctx, &SettleInput{Location: "Table 2", PaymentMethod: enum.PaymentMobile})
	require.NoError(t, err)
	f.addToCart(t, "Table 4", tea, 1)

	f.advance(8 * time.Hour)
	report, err := f.sessionSvc.Close(f.ctx, &CloseInput{
		Count: cashcount.Count{1000: 1, 100: 1, 20: 1},
		Notes: "fin de service",
	})
	require.NoError(t, err)

	requireDecimal(t, "1000", report.OpeningBalance)
	requireDecimal(t, "1150", report.ExpectedBalance)
	requireDecimal(t, "1120", report.CountedBalance)
	requireDecimal(t, "-30", report.Discrepancy)
	assert.Equal(t, 2, report.SalesCount)
	assert.Equal(t, []string{"Table 4"}, report.OccupiedLocations)
	requireDecimal(t, "100", report.TotalsByPayment["cash"])
	requireDecimal(t, "50", report.TotalsByPayment["mobile"])
	assert.Len(t, report.CountLines, 3)
	assert.Equal(t, enum.SessionClosed, report.Session.Status)
	require.NotNil(t, report.Session.ClosedAt)

	// occupied + discrepancy warnings, plus nothing else at warning level
	assert.Equal(t, 2, f.notifier.count(enum.SeverityWarning))

	_, err = f.sessionSvc.Current(f.ctx)
	require.ErrorIs(t, err, ErrNoOpenSession)

	history, err := f.sessionSvc.History(f.ctx, pagination.Default())
	require.NoError(t, err)
	require.Len(t, history.Items, 1)
	assert.Equal(t, report.Session.ID, history.Items[0].ID)

	rebuilt, err := f.sessionSvc.Report(f.ctx, report.Session.ID)
	require.NoError(t, err)
	requireDecimal(t, "-30", rebuilt.Discrepancy)
	assert.Equal(t, "fin de service", rebuilt.Session.Notes)

	f.openSession(t, 1120)
}

func TestClose_ExactCountHasNoDiscrepancyWarning(t *testing.T) {
	f := newFixture(t)
	f.openSession(t, 200)

	report, err := f.sessionSvc.Close(f.ctx, &CloseInput{CountedBalance: decPtr(200)})
	require.NoError(t, err)
	assert.True(t, report.Discrepancy.IsZero())
	assert.Equal(t, 0, f.notifier.count(enum.SeverityWarning))
	assert.Equal(t, 1, f.notifier.count(enum.SeverityInfo))
}

func TestClose_WithoutOpenSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.sessionSvc.Close(f.ctx, &CloseInput{CountedBalance: decPtr(0)})
	require.ErrorIs(t, err, ErrNoOpenSession)
}

func TestReport_RejectsOpenSession(t *testing.T) {
	f := newFixture(t)
	session := f.openSession(t, 0)

	_, err := f.sessionSvc.Report(f.ctx, session.ID)
	require.Error(t, err)
}
