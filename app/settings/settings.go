package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"tslabel/app/session"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// FileName is the settings file kept next to the executable.
const FileName = "tslabel.yml"

// settingsFilePath is a variable so tests can point it at a temp dir.
var settingsFilePath = func() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), FileName), nil
}

// GetEffectiveSettings returns the effective settings (defaults overlaid with file overrides if any).
// If anything goes wrong, it returns defaults.
func GetEffectiveSettings() Settings {
	settings, err := readSettings()
	if err != nil {
		return Defaults()
	}
	return settings
}

func readSettings() (Settings, error) {
	settings := Defaults()
	path, err := settingsFilePath()
	if err != nil {
		return settings, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, err
	}
	// Unmarshal into a generic map to detect key presence
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return settings, err
	}
	overlay(&settings, m)
	return settings, nil
}

// overlay copies well-typed values from m onto settings. Values of the wrong
// type or out of range are ignored.
func overlay(settings *Settings, m map[string]any) {
	if v, ok := m["project_title"]; ok {
		if vs, oks := v.(string); oks && strings.TrimSpace(vs) != "" {
			settings.ProjectTitle = vs
		}
	}
	if v, ok := m["labels"]; ok {
		if items, oka := v.([]any); oka {
			lines := make([]string, 0, len(items))
			for _, item := range items {
				if s, oks := item.(string); oks {
					lines = append(lines, s)
				}
			}
			if labels := session.ParseLabelSet(strings.Join(lines, "\n")); len(labels) > 0 {
				settings.Labels = labels
			}
		}
	}
	if v, ok := m["time_scale"]; ok {
		switch n := v.(type) {
		case int:
			settings.TimeScale = session.NormalizeTimeScale(float64(n))
		case float64:
			settings.TimeScale = session.NormalizeTimeScale(n)
		}
	}
	if v, ok := m["keyboard_enabled"]; ok {
		if vb, okb := v.(bool); okb {
			settings.KeyboardEnabled = vb
		}
	}
	if v, ok := m["folder_pattern"]; ok {
		if vs, oks := v.(string); oks && strings.TrimSpace(vs) != "" {
			settings.FolderPattern = strings.TrimSpace(vs)
		}
	}
	if v, ok := m["folder_exclude"]; ok {
		if items, oka := v.([]any); oka {
			patterns := make([]string, 0, len(items))
			for _, item := range items {
				if s, oks := item.(string); oks {
					patterns = append(patterns, s)
				}
			}
			settings.FolderExclude = cleanPatterns(patterns)
		}
	}
	if v, ok := m["max_folder_files"]; ok {
		if vi, oki := v.(int); oki && vi >= minMaxFolderFiles {
			settings.MaxFolderFiles = vi
		}
	}
	if v, ok := m["window_width"]; ok {
		if vi, oki := v.(int); oki && vi >= minWindowWidth {
			settings.WindowWidth = vi
		}
	}
	if v, ok := m["window_height"]; ok {
		if vi, oki := v.(int); oki && vi >= minWindowHeight {
			settings.WindowHeight = vi
		}
	}
	if v, ok := m["instance_id"]; ok {
		if vs, oks := v.(string); oks {
			settings.InstanceID = vs
		}
	}
}

// nonDefaults builds a minimal map containing only non-default values to
// avoid zero-value serialization pitfalls. Hidden values missing from in are
// carried over from old.
func nonDefaults(in, old Settings) map[string]any {
	data := make(map[string]any)
	if title := strings.TrimSpace(in.ProjectTitle); title != "" && title != defaultSettings.ProjectTitle {
		data["project_title"] = title
	}
	if labels := session.ParseLabelSet(strings.Join(in.Labels, "\n")); len(labels) > 0 && !equalStrings(labels, defaultSettings.Labels) {
		data["labels"] = labels
	}
	if scale := session.NormalizeTimeScale(in.TimeScale); scale != defaultSettings.TimeScale {
		data["time_scale"] = scale
	}
	if in.KeyboardEnabled != defaultSettings.KeyboardEnabled {
		data["keyboard_enabled"] = in.KeyboardEnabled
	}
	if pattern := strings.TrimSpace(in.FolderPattern); pattern != "" && pattern != defaultSettings.FolderPattern {
		data["folder_pattern"] = pattern
	}
	if exclude := cleanPatterns(in.FolderExclude); !equalStrings(exclude, defaultSettings.FolderExclude) {
		data["folder_exclude"] = exclude
	}
	if in.MaxFolderFiles != defaultSettings.MaxFolderFiles && in.MaxFolderFiles >= minMaxFolderFiles {
		data["max_folder_files"] = in.MaxFolderFiles
	}

	// Preserve window size: use incoming values if provided, otherwise the existing ones
	windowWidth := in.WindowWidth
	if windowWidth == 0 {
		windowWidth = old.WindowWidth
	}
	if windowWidth != defaultSettings.WindowWidth && windowWidth >= minWindowWidth {
		data["window_width"] = windowWidth
	}
	windowHeight := in.WindowHeight
	if windowHeight == 0 {
		windowHeight = old.WindowHeight
	}
	if windowHeight != defaultSettings.WindowHeight && windowHeight >= minWindowHeight {
		data["window_height"] = windowHeight
	}

	// Preserve instance ID (not visible in settings dialog, but must persist)
	instanceID := strings.TrimSpace(in.InstanceID)
	if instanceID == "" {
		instanceID = strings.TrimSpace(old.InstanceID)
	}
	if instanceID != "" {
		data["instance_id"] = instanceID
	}
	return data
}

func writeSettings(data map[string]any) error {
	path, err := settingsFilePath()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		// If there is an existing file, remove it to reflect defaults-only state
		if _, statErr := os.Stat(path); statErr == nil {
			_ = os.Remove(path)
		}
		return nil
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// cleanPatterns trims patterns and drops blank or malformed ones. An empty
// result is kept so a user can turn exclusion off.
func cleanPatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p != "" && doublestar.ValidatePattern(p) {
			out = append(out, p)
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
