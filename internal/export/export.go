// Package export serializes a filtered view to the two download formats:
// a UTF-8 comma-separated CSV with a header row and no index column, and a
// single-sheet XLSX workbook. Both reproduce exactly the rows and columns
// passing the active filters, in the view's column order.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/databoard/databoard/internal/dataset"
	"github.com/databoard/databoard/internal/engine"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single sheet in the XLSX download.
const SheetName = "FilteredData"

// CSVFileName and XLSXFileName are the download filenames.
const (
	CSVFileName  = "filtered_data.csv"
	XLSXFileName = "filtered_data.xlsx"
)

// dateLayout is how datetime cells render in the CSV output.
const dateLayout = "2006-01-02"

// CSV encodes the view as UTF-8 comma-separated text.
func CSV(v engine.View) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(v.Data.Names()); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	cols := v.Data.Columns()
	record := make([]string, len(cols))
	for row := 0; row < v.Len(); row++ {
		for ci, col := range cols {
			record[ci] = formatCell(v, row, col)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", row, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSX encodes the view as a workbook with one sheet named FilteredData.
// Numeric and datetime cells keep their native types.
func XLSX(v engine.View) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	cols := v.Data.Columns()
	for ci, col := range cols {
		cell, err := excelize.CoordinatesToCellName(ci+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, col.Name); err != nil {
			return nil, fmt.Errorf("write header %q: %w", col.Name, err)
		}
	}

	for row := 0; row < v.Len(); row++ {
		for ci, col := range cols {
			cell, err := excelize.CoordinatesToCellName(ci+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			val := cellValue(v, row, col)
			if val == nil {
				continue
			}
			if err := f.SetCellValue(SheetName, cell, val); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// formatCell renders one cell as CSV text; missing cells are empty.
func formatCell(v engine.View, row int, col *dataset.Column) string {
	switch col.Kind {
	case dataset.KindNumeric:
		f, ok := v.Float(row, col)
		if !ok {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case dataset.KindDatetime:
		t, ok := v.Time(row, col)
		if !ok {
			return ""
		}
		return t.Format(dateLayout)
	default:
		s, _ := v.String(row, col)
		return s
	}
}

// cellValue returns the native value for an XLSX cell, or nil for missing.
func cellValue(v engine.View, row int, col *dataset.Column) interface{} {
	switch col.Kind {
	case dataset.KindNumeric:
		if f, ok := v.Float(row, col); ok {
			return f
		}
	case dataset.KindDatetime:
		if t, ok := v.Time(row, col); ok {
			return t.Format(dateLayout)
		}
	default:
		if s, ok := v.String(row, col); ok {
			return s
		}
	}
	return nil
}
