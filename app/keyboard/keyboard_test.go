package keyboard

import (
	"testing"

	"tslabel/app/session"
)

var labels = []string{"正常", "异常", "噪声"}

func TestKeyDown(t *testing.T) {
	tests := []struct {
		key  string
		want Action
	}{
		{"a", Action{Kind: Navigate, Direction: session.Prev}},
		{"A", Action{Kind: Navigate, Direction: session.Prev}},
		{"ArrowRight", Action{Kind: Navigate, Direction: session.Next}},
		{"d", Action{Kind: Navigate, Direction: session.Next}},
		{"w", Action{Kind: FileBoundary, Direction: session.Prev}},
		{"ArrowDown", Action{Kind: FileBoundary, Direction: session.Next}},
		{"2", Action{Kind: ApplyLabel, Label: "异常"}},
		{"4", Action{}},
		{"0", Action{}},
		{"x", Action{}},
		{"Enter", Action{}},
	}
	for _, tt := range tests {
		c := New()
		if got := c.KeyDown(KeyEvent{Key: tt.key}, labels); got != tt.want {
			t.Errorf("KeyDown(%q) = %+v, want %+v", tt.key, got, tt.want)
		}
	}
}

func TestKeyDown_Suppressed(t *testing.T) {
	c := New()
	if got := c.KeyDown(KeyEvent{Key: "1", TextInputFocused: true}, labels); got.Handled() {
		t.Errorf("focused text input: got %+v", got)
	}
	if c.Armed() != "" {
		t.Errorf("armed = %q while focused", c.Armed())
	}

	c.Enabled = false
	if got := c.KeyDown(KeyEvent{Key: "d"}, labels); got.Handled() {
		t.Errorf("disabled: got %+v", got)
	}
}

func TestArming(t *testing.T) {
	c := New()
	c.KeyDown(KeyEvent{Key: "3"}, labels)
	if c.Armed() != "噪声" {
		t.Fatalf("armed = %q after key-down", c.Armed())
	}
	if got := c.KeyUp("a"); got.Handled() || c.Armed() != "噪声" {
		t.Errorf("non-digit key-up changed state: %+v, armed %q", got, c.Armed())
	}
	if got := c.KeyUp("3"); got.Kind != Disarm || c.Armed() != "" {
		t.Errorf("digit key-up: %+v, armed %q", got, c.Armed())
	}

	c.Arm("异常")
	if c.Armed() != "异常" {
		t.Errorf("Arm: armed = %q", c.Armed())
	}
	c.Disarm()
	if c.Armed() != "" {
		t.Errorf("Disarm: armed = %q", c.Armed())
	}
}

func TestApply(t *testing.T) {
	s := session.New()
	for _, file := range []string{"a.csv", "a.csv", "b.csv"} {
		s.Samples = append(s.Samples, &session.Sample{Data: []float64{1, 2}, SourceFileName: file})
	}

	c := New()
	c.KeyDown(KeyEvent{Key: "s"}, s.Labels).Apply(s)
	if s.Cursor != 2 {
		t.Fatalf("cursor = %d after next file", s.Cursor)
	}
	c.KeyDown(KeyEvent{Key: "w"}, s.Labels).Apply(s)
	c.KeyDown(KeyEvent{Key: "1"}, s.Labels).Apply(s)
	if s.Samples[0].LabelText() != "正常" || s.Cursor != 1 {
		t.Errorf("label = %q, cursor = %d", s.Samples[0].LabelText(), s.Cursor)
	}
	if (Action{}).Apply(s) {
		t.Error("empty action reported a change")
	}
}
