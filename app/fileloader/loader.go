package fileloader

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadFile reads a source file from disk and returns its raw records.
func LoadFile(filePath string) (*LoadedFile, error) {
	if filePath == "" {
		return nil, fmt.Errorf("file path is empty")
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	lf, err := LoadBytes(filepath.Base(filePath), data)
	if err != nil {
		return nil, err
	}
	lf.Path = filePath
	return lf, nil
}

// LoadBytes decodes in-memory file content. The name drives type detection;
// compression is detected from the content.
func LoadBytes(name string, data []byte) (*LoadedFile, error) {
	fileType, named := DetectFileTypeAndCompression(name)
	// Magic bytes win over the extension; a misnamed .gz is read as plain text
	compression := DetectCompressionByMagic(data)

	fingerprint, err := Fingerprint(data)
	if err != nil {
		return nil, err
	}

	lf := &LoadedFile{
		Name:        name,
		Type:        fileType,
		Compression: compression,
		Fingerprint: fingerprint,
	}

	if named != CompressionNone && compression == CompressionNone {
		lf.Warning = fmt.Sprintf("named as %s but not compressed; read as plain data", named)
	}
	if compression != CompressionNone {
		result, err := Decompress(data, compression)
		switch {
		case err == nil:
			data = result.Data
			lf.Warning = result.Warning
		case named == CompressionNone:
			// Plain text that happens to start with a magic number
			lf.Compression = CompressionNone
			lf.Warning = fmt.Sprintf("looks like %s but does not decompress; read as plain data", compression)
		default:
			return nil, fmt.Errorf("failed to decompress %s: %w", name, err)
		}
	}

	switch fileType {
	case FileTypeXLSX:
		lf.Records, err = ReadXLSXRecords(data)
	default:
		lf.Records, err = ReadCSVRecords(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return lf, nil
}
