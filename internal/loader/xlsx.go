package loader

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readXLSX parses the first sheet of a workbook into a header row and data
// rows. Cells are read as display strings and pushed through the same type
// inference as CSV input.
func readXLSX(data []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("invalid xlsx: workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid xlsx: read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("invalid xlsx: sheet %q is empty", sheets[0])
	}

	header := rows[0]
	if len(header) == 0 {
		return nil, nil, fmt.Errorf("invalid xlsx: no columns")
	}

	body := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		body = append(body, padRow(row, len(header)))
	}

	return header, body, nil
}
