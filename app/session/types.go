// Package session holds the in-memory labeling state: samples, label set,
// cursor and per-project configuration, plus everything derived from them.
package session

// Direction selects the way a navigation operation moves the cursor.
type Direction string

const (
	Prev Direction = "prev"
	Next Direction = "next"
)

// DefaultTitle is the project title of a fresh session.
const DefaultTitle = "CSV时间序列标注工程"

// ImportedTitle is used when an imported project carries no title.
const ImportedTitle = "导入的项目"

// DefaultTimeScale is the X-axis multiplier of a fresh session.
const DefaultTimeScale = 1.0

// DefaultLabels is the label set of a fresh session.
var DefaultLabels = []string{"正常", "异常", "噪声"}

// Sample is one numeric vector taken from one source row.
type Sample struct {
	ID             string    `json:"id"`
	Data           []float64 `json:"data"`
	Label          *string   `json:"label"`
	OriginalRow    []string  `json:"originalRow"`
	SourceFileName string    `json:"sourceFileName"`
}

// LabelText returns the assigned label or "" when unlabeled.
func (s *Sample) LabelText() string {
	if s == nil || s.Label == nil {
		return ""
	}
	return *s.Label
}

// IsLabeled reports whether a label string is stored on the sample,
// including labels no longer present in the label set.
func (s *Sample) IsLabeled() bool {
	return s != nil && s.Label != nil
}

// Clone returns a deep copy of the sample.
func (s *Sample) Clone() *Sample {
	if s == nil {
		return nil
	}
	c := &Sample{
		ID:             s.ID,
		Data:           append([]float64(nil), s.Data...),
		OriginalRow:    append([]string(nil), s.OriginalRow...),
		SourceFileName: s.SourceFileName,
	}
	if s.Label != nil {
		label := *s.Label
		c.Label = &label
	}
	return c
}

// FileGroup is one entry of the per-file sidebar view.
type FileGroup struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	FirstIndex int    `json:"firstIndex"`
}

// Progress summarizes labeling progress.
type Progress struct {
	Labeled int            `json:"labeled"`
	Total   int            `json:"total"`
	Percent float64        `json:"percent"`
	ByLabel map[string]int `json:"byLabel"`
}
