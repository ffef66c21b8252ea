package app

import (
	"fmt"

	"tslabel/app/session"
)

// Navigate moves to the previous or next sample ("prev" / "next")
func (a *App) Navigate(direction string) SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.Navigate(session.Direction(direction))
	return a.changed()
}

// JumpFileBoundary moves to the previous or next source file ("prev" / "next")
func (a *App) JumpFileBoundary(direction string) SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.JumpFileBoundary(session.Direction(direction))
	return a.changed()
}

// JumpTo moves to the 1-based position typed into the jump box. The returned
// display text replaces whatever the user typed.
func (a *App) JumpTo(input string) JumpResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	display, moved := a.session.JumpTo(input)
	if !moved && !a.session.IsEmpty() {
		a.Log("debug", fmt.Sprintf("Ignored jump to %q", input))
	}
	return JumpResult{Display: display, Moved: moved, View: a.changed()}
}

// JumpToFile moves to the first sample of a source file
func (a *App) JumpToFile(name string) SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.JumpToFile(name)
	return a.changed()
}

// SetLabel labels the current sample and advances to the next one
func (a *App) SetLabel(label string) SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.session.HasLabel(label) {
		a.Log("warn", fmt.Sprintf("Label %q is not in the label set", label))
	}
	a.session.SetLabel(label)
	return a.changed()
}

// ClearLabel removes the label of the current sample
func (a *App) ClearLabel() SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.ClearLabel()
	return a.changed()
}

// SetLabels replaces the label set with the newline-separated labels in text.
// Samples keep labels that are no longer in the set.
func (a *App) SetLabels(text string) SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.SetLabelSet(text)
	a.Log("info", fmt.Sprintf("Label set now has %d labels", len(a.session.Labels)))
	return a.changed()
}

// SetTitle sets the project title
func (a *App) SetTitle(title string) SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.SetTitle(title)
	return a.changed()
}

// SetTimeScale sets the X-axis multiplier; invalid values fall back to 1
func (a *App) SetTimeScale(scale float64) SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.SetTimeScale(scale)
	return a.changed()
}
