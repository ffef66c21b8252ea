package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"tslabel/app/fileloader"
	"tslabel/app/ingest"
	"tslabel/app/session"
	"tslabel/app/settings"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// dataFilePatterns lists what the open dialog offers. Compressed variants are
// detected from content, so the suffixes only help the dialog filter.
var dataFilePatterns = []string{
	"*.csv", "*.xlsx",
	"*.csv.gz", "*.csv.bz2", "*.csv.xz",
	"*.gz", "*.bz2", "*.xz",
}

// OpenDataFilesDialog lets the user pick one or more files and adds them to the session
func (a *App) OpenDataFilesDialog() (*LoadResult, error) {
	paths, err := runtime.OpenMultipleFilesDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Add Data Files",
		Filters: []runtime.FileFilter{
			{DisplayName: "Data Files", Pattern: strings.Join(dataFilePatterns, ";")},
			{DisplayName: "All Files", Pattern: "*.*"},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		// user cancelled
		return nil, nil
	}
	return a.AddFiles(paths), nil
}

// OpenFolderDialog lets the user pick a folder and adds every file matching the folder pattern
func (a *App) OpenFolderDialog() (*LoadResult, error) {
	dir, err := runtime.OpenDirectoryDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Add Folder",
	})
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, nil
	}
	return a.AddFolder(dir)
}

// IsPathDirectory checks if the given path is a directory, for drag and drop
func (a *App) IsPathDirectory(path string) bool {
	return fileloader.IsDirectory(path)
}

// AddFiles loads each path and appends its samples in the given order.
// A file that cannot be read is skipped; the others still load.
func (a *App) AddFiles(paths []string) *LoadResult {
	loaded := make([]*fileloader.LoadedFile, 0, len(paths))
	var errs []string
	for _, path := range paths {
		lf, err := fileloader.LoadFile(path)
		if err != nil {
			a.Log("error", fmt.Sprintf("Failed to load %s: %v", filepath.Base(path), err))
			errs = append(errs, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			continue
		}
		loaded = append(loaded, lf)
	}
	return a.ingest(loaded, errs)
}

// AddFolder adds every file below dir that matches the configured folder pattern.
// Files are named by their slash-separated path relative to dir.
func (a *App) AddFolder(dir string) (*LoadResult, error) {
	st := settings.GetEffectiveSettings()
	info, err := fileloader.DiscoverFiles(dir, fileloader.DirectoryDiscoveryOptions{
		Pattern:         st.FolderPattern,
		ExcludePatterns: st.FolderExclude,
		MaxFiles:        st.MaxFolderFiles,
	})
	if err != nil {
		a.Log("error", fmt.Sprintf("Failed to scan %s: %v", dir, err))
		return nil, err
	}
	a.Log("info", fmt.Sprintf("Found %d files (%d bytes) matching %s in %s",
		info.TotalFiles, info.TotalSize, st.FolderPattern, filepath.Base(info.RootPath)))
	if info.TotalFiles == st.MaxFolderFiles {
		a.Log("warn", fmt.Sprintf("Folder import stopped at the limit of %d files", st.MaxFolderFiles))
	}

	loaded := make([]*fileloader.LoadedFile, 0, len(info.Files))
	var errs []string
	for _, path := range info.Files {
		name, relErr := filepath.Rel(info.RootPath, path)
		if relErr != nil {
			name = filepath.Base(path)
		}
		name = filepath.ToSlash(name)

		lf, err := fileloader.LoadFile(path)
		if err != nil {
			a.Log("error", fmt.Sprintf("Failed to load %s: %v", name, err))
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		lf.Name = name
		loaded = append(loaded, lf)
	}
	return a.ingest(loaded, errs), nil
}

// AddFileContent ingests file content delivered by the frontend, e.g. a
// dropped file the webview could read but not locate on disk.
func (a *App) AddFileContent(name string, content []byte) *LoadResult {
	lf, err := fileloader.LoadBytes(name, content)
	if err != nil {
		a.Log("error", fmt.Sprintf("Failed to load %s: %v", name, err))
		return a.ingest(nil, []string{fmt.Sprintf("%s: %v", name, err)})
	}
	return a.ingest([]*fileloader.LoadedFile{lf}, nil)
}

// ingest turns loaded files into samples and appends them in order.
func (a *App) ingest(files []*fileloader.LoadedFile, errs []string) *LoadResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := &LoadResult{Errors: errs, Reports: make([]ingest.Report, 0, len(files))}
	var added []*session.Sample
	for _, lf := range files {
		if !fileloader.IsSupportedFile(lf.Name) {
			a.Log("warn", fmt.Sprintf("%s has an unrecognized extension; reading it as CSV", lf.Name))
		}
		if prev, ok := a.loadedBy[lf.Fingerprint]; ok {
			a.Log("warn", fmt.Sprintf("%s has the same content as %s, which is already loaded", lf.Name, prev))
		} else {
			a.loadedBy[lf.Fingerprint] = lf.Name
		}
		if lf.Warning != "" {
			a.Log("warn", fmt.Sprintf("%s: %s", lf.Name, lf.Warning))
		}

		samples, report := ingest.FromLoadedFile(lf)
		if report.HeaderRows > 0 || report.ShortRows > 0 {
			a.Log("debug", fmt.Sprintf("%s: skipped %d header rows and %d rows with fewer than %d numbers",
				lf.Name, report.HeaderRows, report.ShortRows, ingest.MinSampleLength))
		}
		a.Log("info", fmt.Sprintf("Loaded %d samples from %s (%s)", report.Samples, lf.Name, lf.Type))
		result.Reports = append(result.Reports, report)
		added = append(added, samples...)
	}

	a.session.AppendSamples(added)
	result.Added = len(added)
	result.View = a.changed()
	return result
}

// RemoveFile removes every sample of a source file from the session
func (a *App) RemoveFile(name string) SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	removed := a.session.RemoveFile(name)
	for fp, loaded := range a.loadedBy {
		if loaded == name {
			delete(a.loadedBy, fp)
		}
	}
	a.Log("info", fmt.Sprintf("Removed %d samples of %s", removed, name))
	return a.changed()
}
