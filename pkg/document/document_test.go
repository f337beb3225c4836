package document

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var header = Header{BusinessName: "Chez Fatma", Currency: "MRU"}

func TestRenderInvoice(t *testing.T) {
	out, err := RenderInvoice(header, Invoice{
		Reference:     "VTE-20240315-0001",
		Date:          "15/03/2024 12:30",
		Location:      "Table 4",
		Status:        "confirmed",
		PaymentMethod: "cash",
		Lines: []InvoiceLine{
			{Name: "Thé à la menthe", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
			{Name: "Mafé", Quantity: 1, UnitPrice: decimal.NewFromInt(1000)},
		},
		Total:    decimal.NewFromInt(1200),
		Received: decimal.NewFromInt(1500),
		Change:   decimal.NewFromInt(300),
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderPayslip(t *testing.T) {
	out, err := RenderPayslip(header, Payslip{
		EmployeeName:     "Moussa",
		Role:             "Serveur",
		Period:           "mars 2024",
		BaseSalary:       decimal.NewFromInt(30000),
		DaysWorked:       20,
		AbsenceDays:      6,
		AbsenceDeduction: decimal.RequireFromString("6923.08"),
		NetSalary:        decimal.RequireFromString("23076.92"),
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
