package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaleTransitions(t *testing.T) {
	assert.True(t, SaleStatusDraft.CanTransitionTo(SaleStatusConfirmed))
	assert.True(t, SaleStatusQuotation.CanTransitionTo(SaleStatusDraft))
	assert.True(t, SaleStatusConfirmed.CanTransitionTo(SaleStatusRefunded))
	assert.True(t, SaleStatusDelivered.CanTransitionTo(SaleStatusRefunded))

	assert.False(t, SaleStatusRefunded.CanTransitionTo(SaleStatusConfirmed))
	assert.False(t, SaleStatusConfirmed.CanTransitionTo(SaleStatusDraft))
	assert.False(t, SaleStatusDraft.CanTransitionTo(SaleStatusRefunded))
}

func TestSaleSigns(t *testing.T) {
	assert.Equal(t, -1, SaleStatusConfirmed.StockSign())
	assert.Equal(t, 1, SaleStatusRefunded.StockSign())
	assert.Equal(t, 0, SaleStatusQuotation.StockSign())

	assert.Equal(t, 1, SaleStatusDelivered.RevenueSign())
	assert.Equal(t, -1, SaleStatusRefunded.RevenueSign())
	assert.Equal(t, 0, SaleStatusDraft.RevenueSign())
}

func TestScanString(t *testing.T) {
	var s SaleStatus
	assert.NoError(t, s.Scan([]byte("delivered")))
	assert.Equal(t, SaleStatusDelivered, s)
	assert.Error(t, s.Scan(42))
}
