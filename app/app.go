package app

import (
	"context"
	"fmt"
	"sync"

	"tslabel/app/keyboard"
	"tslabel/app/session"
	"tslabel/app/settings"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// App struct
type App struct {
	ctx context.Context

	// Wails calls bound methods from its own goroutines
	mu       sync.Mutex
	session  *session.Session
	keys     *keyboard.Controller
	loadedBy map[string]string // content fingerprint -> source file name

	// clipboard init
	clipOnce sync.Once
	clipOK   bool
}

// NewApp creates a new App with an empty project seeded from settings
func NewApp() *App {
	a := &App{
		keys:     keyboard.New(),
		loadedBy: make(map[string]string),
	}
	a.session = newSessionFromSettings(settings.GetEffectiveSettings())
	a.keys.Enabled = settings.GetEffectiveSettings().KeyboardEnabled
	return a
}

func newSessionFromSettings(st settings.Settings) *session.Session {
	s := session.New()
	if st.ProjectTitle != "" {
		s.SetTitle(st.ProjectTitle)
	}
	if len(st.Labels) > 0 {
		s.Labels = append([]string(nil), st.Labels...)
	}
	s.SetTimeScale(st.TimeScale)
	return s
}

// Startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	a.mu.Lock()
	defer a.mu.Unlock()
	a.updateWindowTitle()
}

// Ctx returns the app context
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Log emits a structured log event to the frontend console window
func (a *App) Log(level, message string) {
	if a == nil || a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, "log", map[string]any{
		"level":   level,
		"message": message,
	})
}

// SettingsChanged applies saved settings that affect the running project.
// Title, labels and time scale only seed new projects.
func (a *App) SettingsChanged(prev, next settings.Settings) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if prev.KeyboardEnabled != next.KeyboardEnabled {
		a.keys.Enabled = next.KeyboardEnabled
		a.changed()
	}
}

// NewProject discards the current session and starts an empty one from settings
func (a *App) NewProject() SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = newSessionFromSettings(settings.GetEffectiveSettings())
	a.loadedBy = make(map[string]string)
	a.keys.Disarm()
	a.Log("info", "Started a new project")
	return a.changed()
}

// GetSession returns the current session view
func (a *App) GetSession() SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view()
}

// changed builds the view, pushes it to the frontend and refreshes the window
// title. Callers hold a.mu.
func (a *App) changed() SessionView {
	v := a.view()
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "session:changed", v)
	}
	a.updateWindowTitle()
	return v
}

func (a *App) updateWindowTitle() {
	if a.ctx == nil {
		return
	}
	title := "TSLabel"
	if a.session.Title != "" {
		title = fmt.Sprintf("%s - TSLabel", a.session.Title)
	}
	runtime.WindowSetTitle(a.ctx, title)
}

// SaveWindowSize saves the current window dimensions to the settings file
func (a *App) SaveWindowSize(width, height int) error {
	// Validate minimum window size
	if width < 400 || height < 300 {
		return fmt.Errorf("window size too small: minimum 400x300, got %dx%d", width, height)
	}
	currentSettings := settings.GetEffectiveSettings()
	currentSettings.WindowWidth = width
	currentSettings.WindowHeight = height
	return settings.NewSettingsService().SaveSettings(currentSettings)
}

// GetSavedWindowSize returns the saved window dimensions from settings
func (a *App) GetSavedWindowSize() (width, height int, err error) {
	currentSettings := settings.GetEffectiveSettings()
	width = currentSettings.WindowWidth
	height = currentSettings.WindowHeight
	defaults := settings.Defaults()
	if width < 400 {
		width = defaults.WindowWidth
	}
	if height < 300 {
		height = defaults.WindowHeight
	}
	return width, height, nil
}

// GetInstanceID returns a unique identifier for this installation
func (a *App) GetInstanceID() (string, error) {
	currentSettings := settings.GetEffectiveSettings()
	if currentSettings.InstanceID == "" {
		return "", fmt.Errorf("instance ID not found in settings")
	}
	return currentSettings.InstanceID, nil
}
