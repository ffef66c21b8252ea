package fileloader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultFolderPattern selects every CSV below the chosen folder.
const DefaultFolderPattern = "**/*.csv"

// DefaultExcludePatterns skips macOS resource forks and Office lock files.
var DefaultExcludePatterns = []string{"._*", "~$*"}

// DirectoryInfo contains metadata about a discovered directory
type DirectoryInfo struct {
	RootPath   string   // Absolute path to directory
	Files      []string // List of discovered file paths (absolute)
	TotalFiles int      // Total files found
	TotalSize  int64    // Total size in bytes
}

// DirectoryDiscoveryOptions controls file discovery behavior
type DirectoryDiscoveryOptions struct {
	Pattern         string   // Glob pattern filter (e.g., "**/*.csv", "*.csv.gz")
	ExcludePatterns []string // Patterns matched against the base name to exclude
	MaxFiles        int      // Maximum files to include (0 = unlimited)
}

// IsDirectory checks if the path is a directory
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// DiscoverFiles finds all files matching the pattern below dirPath.
// Files are returned sorted by path so a folder always ingests in the same order.
func DiscoverFiles(dirPath string, options DirectoryDiscoveryOptions) (*DirectoryInfo, error) {
	pattern := options.Pattern
	if pattern == "" {
		pattern = DefaultFolderPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid file pattern: %s", pattern)
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	matches, err := doublestar.Glob(os.DirFS(absPath), pattern)
	if err != nil {
		return nil, fmt.Errorf("pattern matching failed: %w", err)
	}
	sort.Strings(matches)

	info := &DirectoryInfo{RootPath: absPath}
	for _, match := range matches {
		full := filepath.Join(absPath, filepath.FromSlash(match))
		stat, err := os.Stat(full)
		if err != nil || stat.IsDir() {
			continue
		}

		excluded := false
		for _, excludePattern := range options.ExcludePatterns {
			if matched, _ := doublestar.Match(excludePattern, filepath.Base(full)); matched {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}

		info.Files = append(info.Files, full)
		info.TotalSize += stat.Size()

		if options.MaxFiles > 0 && len(info.Files) >= options.MaxFiles {
			break
		}
	}
	info.TotalFiles = len(info.Files)
	return info, nil
}
