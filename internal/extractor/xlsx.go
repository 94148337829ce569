package extractor

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExtractXLSX reads the first sheet of a workbook.
func ExtractXLSX(data []byte, maxRows int) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	t := &Table{Columns: normalizeHeader(rows[0])}
	for _, record := range rows[1:] {
		if maxRows > 0 && len(t.Rows) >= maxRows {
			break
		}
		if isBlank(record) {
			continue
		}
		t.Rows = append(t.Rows, fitRow(record, len(t.Columns)))
	}

	return t, nil
}
