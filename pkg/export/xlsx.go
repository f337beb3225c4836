// Package export writes tabular data as XLSX workbooks.
package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet: a bold header row followed by data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
	// Widths sets column widths by index; missing entries keep the default.
	Widths []float64
}

// AddRow appends a row. decimal.Decimal values are written as numbers.
func (s *Sheet) AddRow(cells ...any) {
	row := make([]any, len(cells))
	for i, c := range cells {
		if d, ok := c.(decimal.Decimal); ok {
			row[i] = d.InexactFloat64()
			continue
		}
		row[i] = c
	}
	s.Rows = append(s.Rows, row)
}

// Workbook renders the sheets, in order, into an XLSX file.
func Workbook(sheets ...Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("export: no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("export: header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return nil, fmt.Errorf("export: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, fmt.Errorf("export: add sheet %q: %w", s.Name, err)
		}

		if err := writeSheet(f, s, bold); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s Sheet, headerStyle int) error {
	header := make([]any, len(s.Headers))
	for i, h := range s.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
		return fmt.Errorf("export: %s header: %w", s.Name, err)
	}
	if len(s.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(s.Headers), 1)
		if err := f.SetCellStyle(s.Name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("export: %s header style: %w", s.Name, err)
		}
	}

	for i, row := range s.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		r := row
		if err := f.SetSheetRow(s.Name, cell, &r); err != nil {
			return fmt.Errorf("export: %s row %d: %w", s.Name, i+1, err)
		}
	}

	for i, w := range s.Widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(s.Name, col, col, w); err != nil {
			return fmt.Errorf("export: %s width: %w", s.Name, err)
		}
	}
	return nil
}
