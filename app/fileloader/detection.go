package fileloader

import (
	"path/filepath"
	"strings"
)

// DetectFileTypeAndCompression guesses the inner file type and the wrapper
// from a file name. Anything that is not .xlsx is read as CSV. The loader
// trusts magic bytes over the compression guess.
func DetectFileTypeAndCompression(fileName string) (FileType, CompressionType) {
	if fileName == "" {
		return FileTypeUnknown, CompressionNone
	}
	ct, inner := compressionByExtension(fileName)
	if _, ok := cutSuffixFold(inner, ".xlsx"); ok {
		return FileTypeXLSX, ct
	}
	return FileTypeCSV, ct
}

// BaseName strips the directory and the last extension from a source file name.
// e.g. "runs/sensor_a.csv" -> "sensor_a", "archive.tar.csv" -> "archive.tar"
func BaseName(fileName string) string {
	name := filepath.Base(filepath.FromSlash(fileName))
	if ext := filepath.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// IsSupportedFile reports whether a name looks like something the loader reads.
func IsSupportedFile(fileName string) bool {
	_, inner := compressionByExtension(fileName)
	for _, ext := range []string{".csv", ".xlsx", ".txt"} {
		if _, ok := cutSuffixFold(inner, ext); ok {
			return true
		}
	}
	return false
}

func cutSuffixFold(s, suffix string) (string, bool) {
	if len(s) < len(suffix) || !strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return s, false
	}
	return s[:len(s)-len(suffix)], true
}
