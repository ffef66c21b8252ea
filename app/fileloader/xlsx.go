package fileloader

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSXRecords returns the rows of the first worksheet. Cells come back as
// their formatted text, the same shape ReadCSVRecords produces.
func ReadXLSXRecords(data []byte) ([][]string, error) {
	if len(data) == 0 {
		return nil, errors.New("workbook is empty")
	}
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}
