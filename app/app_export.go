package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tslabel/app/export"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// ExportLabelledCSVsDialog asks for a folder and writes one CSV per (file, label) pair into it
func (a *App) ExportLabelledCSVsDialog() (*ExportResult, error) {
	dir, err := runtime.OpenDirectoryDialog(a.ctx, runtime.OpenDialogOptions{
		Title:                "Export Labelled CSVs",
		CanCreateDirectories: true,
	})
	if err != nil {
		return nil, err
	}
	if dir == "" {
		// user cancelled
		return nil, nil
	}
	return a.ExportLabelledCSVs(dir)
}

// ExportLabelledCSVs writes the labelled subsets into dir
func (a *App) ExportLabelledCSVs(dir string) (*ExportResult, error) {
	a.mu.Lock()
	files := export.PlanLabelledCSVs(a.session.Title, a.session.Samples, a.session.Labels)
	a.mu.Unlock()

	if len(files) == 0 {
		a.Log("warn", "Nothing to export: no sample carries a label from the label set")
		return &ExportResult{Files: []string{}}, nil
	}
	written, err := export.WriteLabelledCSVs(dir, files)
	if err != nil {
		a.Log("error", fmt.Sprintf("CSV export failed: %v", err))
		return nil, err
	}
	a.Log("info", fmt.Sprintf("Exported %d CSV files to %s", len(written), dir))
	return &ExportResult{Files: written}, nil
}

// ExportProjectDialog asks where to save the project snapshot and writes it
func (a *App) ExportProjectDialog() (string, error) {
	a.mu.Lock()
	defaultName := export.ProjectFileName(a.session.Title)
	a.mu.Unlock()

	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Export Project",
		DefaultFilename: defaultName,
		Filters:         []runtime.FileFilter{{DisplayName: "Project File", Pattern: "*.json"}},
	})
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", nil
	}
	// Ensure .json extension
	if !strings.HasSuffix(strings.ToLower(path), ".json") {
		path = path + ".json"
	}
	if err := a.ExportProject(path); err != nil {
		return "", err
	}
	return path, nil
}

// ExportProject writes the project snapshot to path
func (a *App) ExportProject(path string) error {
	a.mu.Lock()
	b, err := export.EncodeProject(a.session)
	a.mu.Unlock()
	if err != nil {
		a.Log("error", err.Error())
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		a.Log("error", fmt.Sprintf("Failed to write project: %v", err))
		return err
	}
	a.Log("info", fmt.Sprintf("Saved project to %s", filepath.Base(path)))
	return nil
}

// ImportProjectDialog asks for a project file and replaces the session with it.
// Failures are shown in a dialog and leave the session untouched.
func (a *App) ImportProjectDialog() (*SessionView, error) {
	path, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title:   "Import Project",
		Filters: []runtime.FileFilter{{DisplayName: "Project File", Pattern: "*.json"}},
	})
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}
	v, err := a.ImportProject(path)
	if err != nil {
		if a.ctx != nil {
			_, _ = runtime.MessageDialog(a.ctx, runtime.MessageDialogOptions{
				Type:    runtime.ErrorDialog,
				Title:   "Import Failed",
				Message: err.Error(),
			})
		}
		return nil, err
	}
	return v, nil
}

// ImportProject reads a project file and replaces the session with it
func (a *App) ImportProject(path string) (*SessionView, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		a.Log("error", fmt.Sprintf("Failed to read project: %v", err))
		return nil, err
	}
	return a.ImportProjectData(filepath.Base(path), b)
}

// ImportProjectData replaces the session with a decoded project document
func (a *App) ImportProjectData(name string, data []byte) (*SessionView, error) {
	imported, err := export.DecodeProject(data)
	if err != nil {
		a.Log("error", fmt.Sprintf("Failed to import %s: %v", name, err))
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.Replace(imported)
	a.loadedBy = make(map[string]string)
	a.keys.Disarm()
	a.Log("info", fmt.Sprintf("Imported %s: %d samples, %d labels", name, imported.Len(), len(imported.Labels)))
	v := a.changed()
	return &v, nil
}
