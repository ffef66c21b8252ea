// Package keyboard maps key events from the frontend to session operations.
//
// Hotkeys are active only while the global flag is on and no text input has
// focus. Focus is reported with every event rather than tracked here.
package keyboard

import (
	"strings"

	"tslabel/app/session"
)

// Kind identifies what a key event asks the session to do.
type Kind string

const (
	None         Kind = ""
	Navigate     Kind = "navigate"
	FileBoundary Kind = "fileBoundary"
	ApplyLabel   Kind = "applyLabel"
	Disarm       Kind = "disarm"
)

// KeyEvent is a key press or release as seen by the frontend.
// Key uses the DOM KeyboardEvent.key names ("a", "ArrowLeft", "1").
type KeyEvent struct {
	Key              string `json:"key"`
	TextInputFocused bool   `json:"textInputFocused"`
}

// Action is the outcome of a key event.
type Action struct {
	Kind      Kind              `json:"kind"`
	Direction session.Direction `json:"direction,omitempty"`
	Label     string            `json:"label,omitempty"`
}

// Handled reports whether the event mapped to anything.
func (a Action) Handled() bool {
	return a.Kind != None
}

// Apply performs the action on s and reports whether it touched the session.
func (a Action) Apply(s *session.Session) bool {
	switch a.Kind {
	case Navigate:
		s.Navigate(a.Direction)
	case FileBoundary:
		s.JumpFileBoundary(a.Direction)
	case ApplyLabel:
		s.SetLabel(a.Label)
	default:
		return false
	}
	return true
}

var moves = map[string]Action{
	"a":          {Kind: Navigate, Direction: session.Prev},
	"arrowleft":  {Kind: Navigate, Direction: session.Prev},
	"d":          {Kind: Navigate, Direction: session.Next},
	"arrowright": {Kind: Navigate, Direction: session.Next},
	"w":          {Kind: FileBoundary, Direction: session.Prev},
	"arrowup":    {Kind: FileBoundary, Direction: session.Prev},
	"s":          {Kind: FileBoundary, Direction: session.Next},
	"arrowdown":  {Kind: FileBoundary, Direction: session.Next},
}

// Controller holds the enable flag and the armed label. It is not safe for
// concurrent use; the App serializes access.
type Controller struct {
	Enabled bool
	armed   string
}

// New returns an enabled controller.
func New() *Controller {
	return &Controller{Enabled: true}
}

// KeyDown maps a key press to an action. Digit keys 1-9 pick the label at
// that position and arm it; digits past the end of the label set do nothing.
func (c *Controller) KeyDown(ev KeyEvent, labels []string) Action {
	if !c.Enabled || ev.TextInputFocused {
		return Action{}
	}
	if action, ok := moves[strings.ToLower(ev.Key)]; ok {
		return action
	}
	if n, ok := digit(ev.Key); ok {
		label, ok := session.HotkeyLabel(labels, n)
		if !ok {
			return Action{}
		}
		c.armed = label
		return Action{Kind: ApplyLabel, Label: label}
	}
	return Action{}
}

// KeyUp disarms after a digit key is released. Release is honored even when
// hotkeys are suppressed so a highlight can never get stuck.
func (c *Controller) KeyUp(key string) Action {
	if _, ok := digit(key); !ok || c.armed == "" {
		return Action{}
	}
	c.armed = ""
	return Action{Kind: Disarm}
}

// Arm highlights a label from a mouse press on its button.
func (c *Controller) Arm(label string) {
	c.armed = label
}

// Disarm clears the highlight.
func (c *Controller) Disarm() {
	c.armed = ""
}

// Armed returns the highlighted label, or "".
func (c *Controller) Armed() string {
	return c.armed
}

func digit(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '0'), true
}
