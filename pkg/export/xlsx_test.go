package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookRoundTrip(t *testing.T) {
	sales := Sheet{Name: "Ventes", Headers: []string{"Référence", "Total"}, Widths: []float64{24, 12}}
	sales.AddRow("VTE-1", decimal.NewFromInt(1200))
	sales.AddRow("VTE-2", decimal.RequireFromString("99.5"))
	summary := Sheet{Name: "Résumé", Headers: []string{"Ventes"}}
	summary.AddRow(2)

	out, err := Workbook(sales, summary)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Ventes", "Résumé"}, f.GetSheetList())

	rows, err := f.GetRows("Ventes")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Référence", "Total"}, rows[0])
	assert.Equal(t, []string{"VTE-2", "99.5"}, rows[2])
}

func TestWorkbookNeedsASheet(t *testing.T) {
	_, err := Workbook()
	assert.Error(t, err)
}
