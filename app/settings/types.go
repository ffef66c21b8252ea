package settings

import (
	"tslabel/app/fileloader"
	"tslabel/app/session"
)

// Settings holds application settings that can be overridden by the user.
type Settings struct {
	// Title given to new projects
	ProjectTitle string `yaml:"project_title" json:"project_title"`
	// Label set given to new projects, one label per entry
	Labels []string `yaml:"labels" json:"labels"`
	// X-axis multiplier given to new projects
	TimeScale       float64 `yaml:"time_scale" json:"time_scale"`
	KeyboardEnabled bool    `yaml:"keyboard_enabled" json:"keyboard_enabled"`
	// Doublestar pattern used when importing a folder, e.g. "**/*.csv"
	FolderPattern string `yaml:"folder_pattern" json:"folder_pattern"`
	// Base-name patterns skipped by a folder import
	FolderExclude []string `yaml:"folder_exclude" json:"folder_exclude"`
	// Maximum number of files picked up by one folder import
	MaxFolderFiles int `yaml:"max_folder_files" json:"max_folder_files"`
	// Window size settings (not visible in settings dialog, but persisted)
	WindowWidth  int `yaml:"window_width,omitempty" json:"window_width,omitempty"`
	WindowHeight int `yaml:"window_height,omitempty" json:"window_height,omitempty"`
	// InstanceID identifies this installation (not visible in settings dialog)
	InstanceID string `yaml:"instance_id,omitempty" json:"instance_id,omitempty"`
}

// ChangeListener is notified after settings are saved.
// This breaks the circular dependency between app and settings packages
type ChangeListener interface {
	SettingsChanged(prev, next Settings)
}

const (
	minWindowWidth    = 400
	minWindowHeight   = 300
	minMaxFolderFiles = 10
)

// defaultSettings defines the built-in defaults.
var defaultSettings = Settings{
	ProjectTitle:    session.DefaultTitle,
	Labels:          session.DefaultLabels,
	TimeScale:       session.DefaultTimeScale,
	KeyboardEnabled: true,
	FolderPattern:   fileloader.DefaultFolderPattern,
	FolderExclude:   fileloader.DefaultExcludePatterns,
	MaxFolderFiles:  500,
	// Default window size (matches main.go defaults)
	WindowWidth:  1280,
	WindowHeight: 800,
}

// Defaults returns a copy of the built-in defaults.
func Defaults() Settings {
	d := defaultSettings
	d.Labels = append([]string(nil), defaultSettings.Labels...)
	d.FolderExclude = append([]string(nil), defaultSettings.FolderExclude...)
	return d
}
