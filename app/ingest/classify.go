package ingest

import (
	"math"
	"strconv"
	"strings"
)

// CoerceCell converts one raw cell to a number.
//
// Decimal and exponent forms parse as floats. "true"/"TRUE" and
// "false"/"FALSE" count as 1 and 0, and unsigned 0x, 0o and 0b literals
// parse in their base. Blank cells and other text are not numbers. NaN and
// infinities are not numbers either, since a project file cannot hold them;
// a row containing one is treated as a header.
func CoerceCell(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	switch s {
	case "":
		return 0, false
	case "true", "TRUE":
		return 1, true
	case "false", "FALSE":
		return 0, true
	}
	if base, digits, ok := basePrefix(s); ok {
		u, err := strconv.ParseUint(digits, base, 64)
		if err != nil {
			return 0, false
		}
		return float64(u), true
	}
	if _, _, signed := basePrefix(strings.TrimLeft(s, "+-")); signed {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func basePrefix(s string) (int, string, bool) {
	if len(s) < 2 || s[0] != '0' {
		return 0, "", false
	}
	switch s[1] {
	case 'x', 'X':
		return 16, s[2:], true
	case 'o', 'O':
		return 8, s[2:], true
	case 'b', 'B':
		return 2, s[2:], true
	}
	return 0, "", false
}

// IsEmptyRow reports whether every cell of a row is blank.
func IsEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// IsHeaderRow reports whether a row should be skipped as a header:
// one non-blank cell that is not a number is enough.
func IsHeaderRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		if _, ok := CoerceCell(cell); !ok {
			return true
		}
	}
	return false
}

// NumericVector returns the numeric cells of a row in column order.
func NumericVector(row []string) []float64 {
	out := make([]float64, 0, len(row))
	for _, cell := range row {
		if v, ok := CoerceCell(cell); ok {
			out = append(out, v)
		}
	}
	return out
}
