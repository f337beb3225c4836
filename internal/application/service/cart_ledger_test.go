package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartLedger_AddItemRequiresLocation(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Thé", 50, 10)

	_, err := f.ledger.AddItem(f.ctx, "  ", p.ID)
	require.ErrorIs(t, err, ErrNoLocation)
	assert.Equal(t, 1, f.notifier.count(enum.SeverityWarning))
	assert.Empty(t, f.ledger.Occupied())
}

func TestCartLedger_AddItemUnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.AddItem(f.ctx, "Table 1", uuid.New())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestCartLedger_AddItemIncrementsExistingLine(t *testing.T) {
	f := newFixture(t)
	tea := f.product(t, "Thé", 50, 10)
	cake := f.product(t, "Gâteau", 120, 10)

	f.addToCart(t, "Table 1", tea, 2)
	lines, err := f.ledger.AddItem(f.ctx, "Table 1", cake.ID)
	require.NoError(t, err)

	require.Len(t, lines, 2)
	assert.Equal(t, tea.ID, lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, cake.ID, lines[1].ProductID)
	assert.Equal(t, 1, lines[1].Quantity)
	requireDecimal(t, "220", f.ledger.Total("Table 1"))
	assert.True(t, f.ledger.IsOccupied("Table 1"))
	assert.False(t, f.ledger.IsOccupied("Table 2"))
}

func TestCartLedger_AdjustQuantityNeverBelowOne(t *testing.T) {
	f := newFixture(t)
	tea := f.product(t, "Thé", 50, 10)
	f.addToCart(t, "Table 1", tea, 3)

	lines, err := f.ledger.AdjustQuantity(f.ctx, "Table 1", tea.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 1, lines[0].Quantity)

	lines, err = f.ledger.AdjustQuantity(f.ctx, "Table 1", tea.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, lines[0].Quantity)

	_, err = f.ledger.AdjustQuantity(f.ctx, "Table 9", tea.ID, 1)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestCartLedger_RemoveLine(t *testing.T) {
	f := newFixture(t)
	tea := f.product(t, "Thé", 50, 10)
	cake := f.product(t, "Gâteau", 120, 10)
	f.addToCart(t, "Table 1", tea, 1)
	f.addToCart(t, "Table 1", cake, 1)

	lines, err := f.ledger.RemoveLine(f.ctx, "Table 1", tea.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, cake.ID, lines[0].ProductID)

	lines, err = f.ledger.RemoveLine(f.ctx, "Table 1", cake.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.False(t, f.ledger.IsOccupied("Table 1"))
}

func TestCartLedger_TransferAppendsWithoutMerging(t *testing.T) {
	f := newFixture(t)
	tea := f.product(t, "Thé", 50, 10)
	cake := f.product(t, "Gâteau", 120, 10)
	f.addToCart(t, "Table 1", tea, 2)
	f.addToCart(t, "Table 2", cake, 1)
	f.addToCart(t, "Table 2", tea, 1)

	lines, err := f.ledger.Transfer(f.ctx, "Table 1", "Table 2")
	require.NoError(t, err)

	require.Len(t, lines, 3)
	assert.Equal(t, cake.ID, lines[0].ProductID)
	assert.Equal(t, tea.ID, lines[1].ProductID)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, tea.ID, lines[2].ProductID)
	assert.Equal(t, 2, lines[2].Quantity)
	assert.False(t, f.ledger.IsOccupied("Table 1"))
	assert.Equal(t, []string{"Table 2"}, f.ledger.Occupied())
}

func TestCartLedger_TransferEdgeCases(t *testing.T) {
	f := newFixture(t)
	tea := f.product(t, "Thé", 50, 10)
	f.addToCart(t, "Table 1", tea, 1)

	_, err := f.ledger.Transfer(f.ctx, "Table 1", "")
	require.ErrorIs(t, err, ErrNoLocation)

	lines, err := f.ledger.Transfer(f.ctx, "Table 1", "Table 1")
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	lines, err = f.ledger.Transfer(f.ctx, "Table 5", "Table 1")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, []string{"Table 1"}, f.ledger.Occupied())
}

func TestCartLedger_LocationIsTrimmedEverywhere(t *testing.T) {
	f := newFixture(t)
	tea := f.product(t, "Thé", 50, 10)
	cake := f.product(t, "Gâteau", 120, 10)
	f.addToCart(t, "Table 1", tea, 1)
	f.addToCart(t, " Table 1", cake, 1)

	lines, err := f.ledger.AdjustQuantity(f.ctx, "Table 1 ", tea.ID, 2)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 3, lines[0].Quantity)

	lines, err = f.ledger.RemoveLine(f.ctx, "  Table 1", cake.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.True(t, f.ledger.IsOccupied("Table 1\t"))
	assert.Len(t, f.ledger.Lines(" Table 1 "), 1)

	lines, err = f.ledger.Transfer(f.ctx, " Table 1 ", "Table 2")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, []string{"Table 2"}, f.ledger.Occupied())

	require.NoError(t, f.ledger.ClearCart(f.ctx, "Table 2 "))
	assert.Empty(t, f.ledger.Occupied())

	restarted := NewCartLedger(f.tx, f.carts, f.products, f.notifier, f.log)
	require.NoError(t, restarted.Load(f.ctx))
	assert.Empty(t, restarted.Occupied())
}

func TestCartLedger_ClearIsIdempotent(t *testing.T) {
	f := newFixture(t)
	tea := f.product(t, "Thé", 50, 10)
	f.addToCart(t, "Table 1", tea, 1)

	require.NoError(t, f.ledger.ClearCart(f.ctx, "Table 1"))
	require.NoError(t, f.ledger.ClearCart(f.ctx, "Table 1"))
	assert.Empty(t, f.ledger.Lines("Table 1"))
	assert.True(t, f.ledger.Total("Table 1").IsZero())
}

func TestCartLedger_LoadRestoresPersistedCarts(t *testing.T) {
	f := newFixture(t)
	tea := f.product(t, "Thé", 50, 10)
	cake := f.product(t, "Gâteau", 120, 10)
	f.addToCart(t, "Table 1", tea, 2)
	f.addToCart(t, "Table 1", cake, 1)
	f.addToCart(t, "Emporter", cake, 1)

	restarted := NewCartLedger(f.tx, f.carts, f.products, f.notifier, f.log)
	require.NoError(t, restarted.Load(f.ctx))

	assert.Equal(t, []string{"Emporter", "Table 1"}, restarted.Occupied())
	lines := restarted.Lines("Table 1")
	require.Len(t, lines, 2)
	assert.Equal(t, tea.ID, lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, cake.ID, lines[1].ProductID)
	requireDecimal(t, "220", restarted.Total("Table 1"))
}

func TestCartLedger_LinesReturnsCopy(t *testing.T) {
	f := newFixture(t)
	tea := f.product(t, "Thé", 50, 10)
	f.addToCart(t, "Table 1", tea, 1)

	lines := f.ledger.Lines("Table 1")
	lines[0].Quantity = 99
	assert.Equal(t, 1, f.ledger.Lines("Table 1")[0].Quantity)
}
