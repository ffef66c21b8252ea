package session

import "encoding/json"

// ChartData is the aligned array handed to the chart widget:
// X values followed by one Y series per line.
type ChartData struct {
	X      []float64
	Series [][]float64
}

// Align builds chart data for the given series with X[i] = i * scale.
// X spans the longest series; shorter series are padded with nulls when encoded.
func Align(scale float64, series ...[]float64) ChartData {
	scale = NormalizeTimeScale(scale)
	n := 0
	for _, ys := range series {
		n = max(n, len(ys))
	}
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i) * scale
	}
	return ChartData{X: x, Series: series}
}

// ChartData returns the chart data for the current sample, or empty data
// when there is no sample.
func (s *Session) ChartData() ChartData {
	current := s.Current()
	if current == nil {
		return ChartData{X: []float64{}, Series: [][]float64{{}}}
	}
	return Align(s.TimeScale, current.Data)
}

// MarshalJSON encodes the data as [[x...], [y1...], ...]. Series shorter
// than X are padded with null.
func (c ChartData) MarshalJSON() ([]byte, error) {
	rows := make([][]any, 0, 1+len(c.Series))
	rows = append(rows, padRow(c.X, len(c.X)))
	for _, ys := range c.Series {
		rows = append(rows, padRow(ys, len(c.X)))
	}
	return json.Marshal(rows)
}

func padRow(values []float64, width int) []any {
	row := make([]any, width)
	for i := range row {
		if i < len(values) {
			row[i] = values[i]
		}
	}
	return row
}
