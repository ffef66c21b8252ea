// Package fileloader reads sample source files (CSV, XLSX, optionally compressed)
// into raw records. It does not interpret cells; ingest decides what a sample is.
package fileloader

// FileType represents the type of data file being processed
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeXLSX
)

// String returns the string representation of FileType
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "CSV"
	case FileTypeXLSX:
		return "XLSX"
	default:
		return "Unknown"
	}
}

// LoadedFile is the raw content of one source file.
type LoadedFile struct {
	Path        string     // Path the file was read from (empty for in-memory loads)
	Name        string     // Base file name, used as the sample source name
	Type        FileType   // Detected inner file type
	Compression CompressionType
	Records     [][]string // Raw rows, cells verbatim
	Fingerprint string     // HighwayHash of the raw file bytes
	Warning     string     // Non-fatal problem (e.g. truncated archive)
}
