package fileloader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// utf8BOM is stripped from the front of CSV data; spreadsheet exports often carry it.
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// ReadCSVRecords parses comma-delimited data into raw records.
// Rows may have different field counts and stray quotes are tolerated.
// Blank lines are dropped by encoding/csv itself.
func ReadCSVRecords(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(data) == 0 {
		return nil, nil
	}

	reader := csv.NewReader(bytes.NewReader(data))
	// Allow variable number of fields per record to handle ragged exports
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, fmt.Errorf("failed to parse CSV: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteCSVRecords writes records as comma-delimited text without a header line.
func WriteCSVRecords(w io.Writer, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
