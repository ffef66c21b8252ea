package settings

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// SettingsService manages reading/writing settings from disk.
type SettingsService struct {
	ctx      context.Context
	listener ChangeListener
}

func NewSettingsService() *SettingsService {
	return &SettingsService{}
}

// SetChangeListener lets main inject the App so saved settings take effect immediately.
func (s *SettingsService) SetChangeListener(l ChangeListener) {
	s.listener = l
}

// Startup receives the Wails context
func (s *SettingsService) Startup(ctx context.Context) {
	s.ctx = ctx
}

// GetSettings returns the effective settings (defaults overlaid with file overrides if any).
func (s *SettingsService) GetSettings() (Settings, error) {
	return readSettings()
}

// GetDefaultSettings returns the built-in defaults for the settings dialog's reset button.
func (s *SettingsService) GetDefaultSettings() Settings {
	return Defaults()
}

// SaveSettings saves only the values that differ from defaults into YAML in the binary directory.
func (s *SettingsService) SaveSettings(in Settings) error {
	old := GetEffectiveSettings()
	if err := writeSettings(nonDefaults(in, old)); err != nil {
		return err
	}
	if s.listener != nil {
		s.listener.SettingsChanged(old, GetEffectiveSettings())
	}
	return nil
}

// EnsureInstanceID generates and saves a unique instance ID if one doesn't exist
func (s *SettingsService) EnsureInstanceID() error {
	settings, err := s.GetSettings()
	if err != nil {
		return err
	}
	if strings.TrimSpace(settings.InstanceID) != "" {
		return nil
	}
	settings.InstanceID = uuid.New().String()
	return s.SaveSettings(settings)
}
