package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"tslabel/app/session"

	"github.com/google/uuid"
	"github.com/ohler55/ojg/oj"
)

// ProjectVersion is written into every snapshot. It is informational only.
const ProjectVersion = "1.2"

// ErrInvalidProject is returned for documents that parse but do not describe a project.
var ErrInvalidProject = errors.New("invalid project file")

// Snapshot is the persisted form of a session.
type Snapshot struct {
	Version              string            `json:"version"`
	ProjectTitle         string            `json:"projectTitle"`
	Samples              []*session.Sample `json:"samples"`
	Labels               []string          `json:"labels"`
	CurrentIndex         int               `json:"currentIndex"`
	TimeScaleCoefficient float64           `json:"timeScaleCoefficient"`
}

// SnapshotOf captures the state of s.
func SnapshotOf(s *session.Session) Snapshot {
	snap := Snapshot{
		Version:              ProjectVersion,
		ProjectTitle:         s.Title,
		Samples:              s.Samples,
		Labels:               s.Labels,
		CurrentIndex:         s.Cursor,
		TimeScaleCoefficient: session.NormalizeTimeScale(s.TimeScale),
	}
	if snap.Samples == nil {
		snap.Samples = []*session.Sample{}
	}
	if snap.Labels == nil {
		snap.Labels = []string{}
	}
	return snap
}

// ProjectFileName names the project file for a title.
func ProjectFileName(title string) string {
	return nameReplacer.Replace(title+"_工程") + ".json"
}

// EncodeProject serializes the session as UTF-8 JSON.
func EncodeProject(s *session.Session) ([]byte, error) {
	b, err := json.Marshal(SnapshotOf(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode project: %w", err)
	}
	return b, nil
}

// DecodeProject parses a project document into a new session. Absent fields
// fall back to defaults; anything structurally wrong fails the whole import.
func DecodeProject(data []byte) (*session.Session, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidProject)
	}

	s := session.New()
	s.Title = session.ImportedTitle
	if v, ok := root["projectTitle"]; ok && v != nil {
		title, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: projectTitle is not a string", ErrInvalidProject)
		}
		if title != "" {
			s.Title = title
		}
	}

	// Projects written before per-file grouping stored one file name at the top level
	legacyFileName, _ := root["fileName"].(string)

	if v, ok := root["samples"]; ok && v != nil {
		items, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: samples is not an array", ErrInvalidProject)
		}
		s.Samples = make([]*session.Sample, 0, len(items))
		for i, item := range items {
			sample, err := decodeSample(item, legacyFileName)
			if err != nil {
				return nil, fmt.Errorf("%w: sample %d: %v", ErrInvalidProject, i, err)
			}
			s.Samples = append(s.Samples, sample)
		}
	}

	if v, ok := root["labels"]; ok && v != nil {
		items, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: labels is not an array", ErrInvalidProject)
		}
		lines := make([]string, 0, len(items))
		for i, item := range items {
			label, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: label %d is not a string", ErrInvalidProject, i)
			}
			lines = append(lines, label)
		}
		s.Labels = session.ParseLabelSet(strings.Join(lines, "\n"))
	}

	if v, ok := root["currentIndex"]; ok && v != nil {
		n, ok := toFloat(v)
		if !ok || n != math.Trunc(n) {
			return nil, fmt.Errorf("%w: currentIndex is not an integer", ErrInvalidProject)
		}
		s.Cursor = int(n)
	}

	if v, ok := root["timeScaleCoefficient"]; ok && v != nil {
		scale, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: timeScaleCoefficient is not a number", ErrInvalidProject)
		}
		s.SetTimeScale(scale)
	}

	// Replace clamps the cursor to the imported samples
	out := session.New()
	out.Replace(s)
	return out, nil
}

func decodeSample(item any, legacyFileName string) (*session.Sample, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return nil, errors.New("not an object")
	}

	sample := &session.Sample{SourceFileName: legacyFileName}

	switch id := obj["id"].(type) {
	case string:
		sample.ID = id
	case int64:
		sample.ID = strconv.FormatInt(id, 10)
	case json.Number:
		sample.ID = id.String()
	case nil:
		sample.ID = uuid.NewString()
	default:
		return nil, fmt.Errorf("id has unsupported type %T", id)
	}

	rawData, ok := obj["data"].([]any)
	if !ok {
		return nil, errors.New("data is not an array")
	}
	sample.Data = make([]float64, 0, len(rawData))
	for _, v := range rawData {
		f, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("data contains non-numeric value %v", v)
		}
		sample.Data = append(sample.Data, f)
	}
	if len(sample.Data) < 2 {
		return nil, fmt.Errorf("data has %d values, need at least 2", len(sample.Data))
	}

	switch label := obj["label"].(type) {
	case nil:
	case string:
		sample.Label = &label
	default:
		return nil, fmt.Errorf("label has unsupported type %T", label)
	}

	switch row := obj["originalRow"].(type) {
	case nil:
		sample.OriginalRow = make([]string, len(sample.Data))
		for i, f := range sample.Data {
			sample.OriginalRow[i] = formatNumber(f)
		}
	case []any:
		sample.OriginalRow = make([]string, len(row))
		for i, cell := range row {
			text, err := cellText(cell)
			if err != nil {
				return nil, fmt.Errorf("originalRow[%d]: %v", i, err)
			}
			sample.OriginalRow[i] = text
		}
	default:
		return nil, fmt.Errorf("originalRow has unsupported type %T", row)
	}

	if v, ok := obj["sourceFileName"]; ok && v != nil {
		name, ok := v.(string)
		if !ok {
			return nil, errors.New("sourceFileName is not a string")
		}
		sample.SourceFileName = name
	}
	return sample, nil
}

// cellText renders a cell of an originalRow. Older projects stored typed cells.
func cellText(cell any) (string, error) {
	switch v := cell.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return formatNumber(v), nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("unsupported cell type %T", cell)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// toFloat accepts the number types the parser produces. Numbers with more
// digits than int64 or float64 carry arrive as json.Number.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
