// Package loader parses uploaded CSV/XLSX bytes into a dataset.Dataset.
//
// The loader owns all ingest-side decisions: file-format dispatch, column
// name normalization, and per-column type inference. A column whose
// normalized name contains "date" is coerced to datetime cell by cell, with
// unparsable values recorded as missing rather than failing the load. A text
// column whose every non-empty cell parses as a number becomes numeric.
package loader

import (
	"fmt"
	"strings"
	"time"

	"github.com/databoard/databoard/internal/dataset"
)

// Options controls loading behavior.
type Options struct {
	// Synonyms extends the default column-name synonym map.
	Synonyms map[string]string
}

// Load parses raw upload bytes into a Dataset. ext is the declared file
// extension ("csv" or "xlsx", leading dot and case ignored).
func Load(data []byte, ext string, opts Options) (*dataset.Dataset, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no file provided: upload is empty")
	}

	var (
		header []string
		rows   [][]string
		err    error
	)

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "csv":
		header, rows, err = readCSV(data)
	case "xlsx":
		header, rows, err = readXLSX(data)
	default:
		return nil, fmt.Errorf("unsupported file type %q: upload a .csv or .xlsx file", ext)
	}
	if err != nil {
		return nil, err
	}

	norm := dataset.NewNormalizer(opts.Synonyms)
	names := norm.NormalizeHeaders(header)

	cols := make([]*dataset.Column, len(names))
	for i, name := range names {
		cols[i] = buildColumn(name, columnCells(rows, i))
	}

	return dataset.New(cols), nil
}

// columnCells extracts column i from the row-major parse result.
func columnCells(rows [][]string, i int) []string {
	cells := make([]string, len(rows))
	for r, row := range rows {
		if i < len(row) {
			cells[r] = CleanCell(row[i])
		}
	}
	return cells
}

// buildColumn infers the storage type for one column and coerces its cells.
func buildColumn(name string, cells []string) *dataset.Column {
	if strings.Contains(name, "date") {
		return buildDatetimeColumn(name, cells)
	}
	if col, ok := tryNumericColumn(name, cells); ok {
		return col
	}
	return buildTextColumn(name, cells)
}

func buildDatetimeColumn(name string, cells []string) *dataset.Column {
	col := &dataset.Column{
		Name:    name,
		Kind:    dataset.KindDatetime,
		Times:   make([]time.Time, len(cells)),
		Missing: make([]bool, len(cells)),
	}
	for i, cell := range cells {
		t, ok := ParseDate(cell)
		if !ok {
			col.Missing[i] = true
			continue
		}
		col.Times[i] = t
	}
	return col
}

// tryNumericColumn succeeds only when every non-empty cell parses as a
// number. A column with no non-empty cells stays text.
func tryNumericColumn(name string, cells []string) (*dataset.Column, bool) {
	col := &dataset.Column{
		Name:    name,
		Kind:    dataset.KindNumeric,
		Floats:  make([]float64, len(cells)),
		Missing: make([]bool, len(cells)),
	}
	any := false
	for i, cell := range cells {
		if cell == "" {
			col.Missing[i] = true
			continue
		}
		f, ok := ParseNumber(cell)
		if !ok {
			return nil, false
		}
		col.Floats[i] = f
		any = true
	}
	return col, any
}

func buildTextColumn(name string, cells []string) *dataset.Column {
	col := &dataset.Column{
		Name:    name,
		Kind:    dataset.KindText,
		Strings: make([]string, len(cells)),
		Missing: make([]bool, len(cells)),
	}
	for i, cell := range cells {
		if cell == "" {
			col.Missing[i] = true
			continue
		}
		col.Strings[i] = cell
	}
	return col
}
