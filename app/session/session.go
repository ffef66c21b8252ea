package session

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Session is the labeling state of one project. The zero value is not ready
// for use; call New.
type Session struct {
	Title     string
	Labels    []string
	Samples   []*Sample
	Cursor    int
	TimeScale float64
}

// New returns an empty session with the default title, labels and time scale.
func New() *Session {
	return &Session{
		Title:     DefaultTitle,
		Labels:    append([]string(nil), DefaultLabels...),
		TimeScale: DefaultTimeScale,
	}
}

// Clone returns a deep copy, so callers can compare states before and after a mutation.
func (s *Session) Clone() *Session {
	c := &Session{
		Title:     s.Title,
		Labels:    append([]string(nil), s.Labels...),
		Samples:   make([]*Sample, len(s.Samples)),
		Cursor:    s.Cursor,
		TimeScale: s.TimeScale,
	}
	for i, sample := range s.Samples {
		c.Samples[i] = sample.Clone()
	}
	return c
}

// Replace swaps in the full state of other. Used by project import once the
// incoming document has been validated.
func (s *Session) Replace(other *Session) {
	*s = *other
	s.clampCursor()
}

// Len returns the number of samples.
func (s *Session) Len() int {
	return len(s.Samples)
}

// IsEmpty reports whether the session has no samples.
func (s *Session) IsEmpty() bool {
	return len(s.Samples) == 0
}

// Current returns the sample under the cursor, or nil when empty.
func (s *Session) Current() *Sample {
	if s.IsEmpty() {
		return nil
	}
	return s.Samples[s.Cursor]
}

// SetTitle sets the project title.
func (s *Session) SetTitle(title string) {
	s.Title = title
}

// SetTimeScale sets the X-axis multiplier. Non-positive or non-finite values
// fall back to DefaultTimeScale.
func (s *Session) SetTimeScale(scale float64) {
	s.TimeScale = NormalizeTimeScale(scale)
}

// NormalizeTimeScale maps invalid time scales to DefaultTimeScale.
func NormalizeTimeScale(scale float64) float64 {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return DefaultTimeScale
	}
	return scale
}

// AppendSamples adds freshly ingested samples after the existing ones.
// The cursor is left where it was; an empty session starts at 0.
func (s *Session) AppendSamples(samples []*Sample) {
	s.Samples = append(s.Samples, samples...)
	s.clampCursor()
}

// Navigate moves the cursor one step, clamped to the valid range. It never wraps.
func (s *Session) Navigate(dir Direction) {
	if s.IsEmpty() {
		return
	}
	switch dir {
	case Prev:
		s.Cursor = max(0, s.Cursor-1)
	case Next:
		s.Cursor = min(len(s.Samples)-1, s.Cursor+1)
	}
}

// JumpTo moves the cursor to a 1-based position typed by the user. Numbers
// outside [1, len] are clamped. Only the leading integer counts, so "2.5"
// and "2abc" both jump to 2. Input without one leaves the session untouched.
// The returned string is the 1-based position to display.
func (s *Session) JumpTo(input string) (string, bool) {
	n, ok := leadingInt(input)
	if !ok || s.IsEmpty() {
		return s.displayPosition(), false
	}
	n = max(1, min(len(s.Samples), n))
	s.Cursor = n - 1
	return s.displayPosition(), true
}

// leadingInt parses an optionally signed run of digits at the start of
// input, after leading whitespace. Values beyond the int range saturate.
func leadingInt(input string) (int, bool) {
	input = strings.TrimLeftFunc(input, unicode.IsSpace)
	end := 0
	if end < len(input) && (input[end] == '+' || input[end] == '-') {
		end++
	}
	digits := end
	for end < len(input) && input[end] >= '0' && input[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(input[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}

func (s *Session) displayPosition() string {
	return strconv.Itoa(s.Cursor + 1)
}

// JumpToFile moves the cursor to the first sample of fileName, if it has any.
func (s *Session) JumpToFile(fileName string) bool {
	idx := s.firstIndexOf(fileName)
	if idx < 0 {
		return false
	}
	s.Cursor = idx
	return true
}

// JumpFileBoundary moves between source files. Next goes to the first sample
// of the following file. Prev goes to the start of the current file, or to the
// start of the previous file when already there.
func (s *Session) JumpFileBoundary(dir Direction) {
	if s.IsEmpty() {
		return
	}
	currentFile := s.Samples[s.Cursor].SourceFileName

	if dir == Next {
		for i := s.Cursor + 1; i < len(s.Samples); i++ {
			if s.Samples[i].SourceFileName != currentFile {
				s.Cursor = i
				return
			}
		}
		return
	}

	firstOfCurrent := s.firstIndexOf(currentFile)
	if s.Cursor > firstOfCurrent {
		s.Cursor = firstOfCurrent
		return
	}
	if firstOfCurrent > 0 {
		prevFile := s.Samples[firstOfCurrent-1].SourceFileName
		s.Cursor = s.firstIndexOf(prevFile)
	}
}

// SetLabel labels the current sample and advances the cursor.
func (s *Session) SetLabel(label string) {
	if s.IsEmpty() {
		return
	}
	s.Samples[s.Cursor].Label = &label
	s.Navigate(Next)
}

// ClearLabel removes the label of the current sample without moving.
func (s *Session) ClearLabel() {
	if s.IsEmpty() {
		return
	}
	s.Samples[s.Cursor].Label = nil
}

// RemoveFile deletes every sample of fileName and clamps the cursor.
// It returns the number of samples removed.
func (s *Session) RemoveFile(fileName string) int {
	kept := s.Samples[:0:0]
	for _, sample := range s.Samples {
		if sample.SourceFileName != fileName {
			kept = append(kept, sample)
		}
	}
	removed := len(s.Samples) - len(kept)
	s.Samples = kept
	s.clampCursor()
	return removed
}

// SetLabelSet replaces the label set with the labels parsed from text.
func (s *Session) SetLabelSet(text string) {
	s.Labels = ParseLabelSet(text)
}

// LabelText renders the label set back to its editable text form.
func (s *Session) LabelText() string {
	return strings.Join(s.Labels, "\n")
}

// HasLabel reports whether label is part of the current label set.
func (s *Session) HasLabel(label string) bool {
	for _, l := range s.Labels {
		if l == label {
			return true
		}
	}
	return false
}

func (s *Session) firstIndexOf(fileName string) int {
	for i, sample := range s.Samples {
		if sample.SourceFileName == fileName {
			return i
		}
	}
	return -1
}

func (s *Session) clampCursor() {
	if len(s.Samples) == 0 {
		s.Cursor = 0
		return
	}
	s.Cursor = max(0, min(len(s.Samples)-1, s.Cursor))
}
