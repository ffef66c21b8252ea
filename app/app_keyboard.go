package app

import "tslabel/app/keyboard"

// KeyDown handles a key press forwarded by the frontend. The view is returned
// even when the key maps to nothing so the caller can always re-render.
func (a *App) KeyDown(ev keyboard.KeyEvent) SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	action := a.keys.KeyDown(ev, a.session.Labels)
	if !action.Handled() {
		return a.view()
	}
	action.Apply(a.session)
	return a.changed()
}

// KeyUp handles a key release; releasing a digit disarms its label
func (a *App) KeyUp(key string) SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.keys.KeyUp(key).Handled() {
		return a.view()
	}
	return a.changed()
}

// ArmLabel highlights a label while its button is pressed
func (a *App) ArmLabel(label string) SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.keys.Arm(label)
	return a.changed()
}

// DisarmLabel clears the label highlight
func (a *App) DisarmLabel() SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.keys.Disarm()
	return a.changed()
}

// SetKeyboardEnabled toggles all hotkeys for this run without touching settings
func (a *App) SetKeyboardEnabled(enabled bool) SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.keys.Enabled = enabled
	if !enabled {
		a.keys.Disarm()
	}
	return a.changed()
}
