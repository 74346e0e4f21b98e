package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// readCSV parses CSV bytes into a header row and data rows.
//
// Spreadsheet exports frequently arrive in Latin-1 rather than UTF-8, so
// bytes that are not valid UTF-8 are decoded as ISO 8859-1 before parsing.
// Short rows are padded with empty cells; long rows are truncated to the
// header width.
func readCSV(data []byte) ([]string, [][]string, error) {
	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, nil, fmt.Errorf("decode latin-1: %w", err)
		}
		data = decoded
	}

	// Strip UTF-8 BOM if present
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("invalid csv: file is empty")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("invalid csv: %w", err)
	}
	if len(header) == 0 {
		return nil, nil, fmt.Errorf("invalid csv: no columns")
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("invalid csv: row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, padRow(row, len(header)))
	}

	return header, rows, nil
}

// padRow forces a row to exactly width cells.
func padRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
