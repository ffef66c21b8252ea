package fileloader

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// CompressionType is the outer wrapper of a source file, if any.
type CompressionType int

const (
	CompressionNone CompressionType = iota
	CompressionGzip
	CompressionBzip2
	CompressionXZ
)

// codec describes one supported wrapper: how to recognize it and how to unwrap it.
type codec struct {
	name  string
	ext   string
	magic []byte
	open  func(r io.Reader) (io.Reader, error)
}

var codecs = map[CompressionType]codec{
	CompressionGzip: {
		name:  "gzip",
		ext:   ".gz",
		magic: []byte{0x1f, 0x8b},
		open:  func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) },
	},
	CompressionBzip2: {
		name:  "bzip2",
		ext:   ".bz2",
		magic: []byte("BZh"),
		open:  func(r io.Reader) (io.Reader, error) { return bzip2.NewReader(r), nil },
	},
	CompressionXZ: {
		name:  "xz",
		ext:   ".xz",
		magic: []byte{0xfd, '7', 'z', 'X', 'Z', 0x00},
		open:  func(r io.Reader) (io.Reader, error) { return xz.NewReader(r) },
	},
}

func (ct CompressionType) String() string {
	if c, ok := codecs[ct]; ok {
		return c.name
	}
	return "none"
}

// DecompressionResult holds unwrapped bytes. Warning is set when the stream
// ended early and Data is only a prefix.
type DecompressionResult struct {
	Data    []byte
	Warning string
}

// DetectCompressionByMagic sniffs the leading bytes of data.
func DetectCompressionByMagic(data []byte) CompressionType {
	for ct, c := range codecs {
		if bytes.HasPrefix(data, c.magic) {
			return ct
		}
	}
	return CompressionNone
}

// compressionByExtension reports the wrapper named by a trailing extension
// and the name with that extension removed.
func compressionByExtension(name string) (CompressionType, string) {
	for ct, c := range codecs {
		if trimmed, ok := cutSuffixFold(name, c.ext); ok {
			return ct, trimmed
		}
	}
	return CompressionNone, name
}

// Decompress unwraps data. A stream that breaks part way still yields the
// rows read so far; only a stream that yields nothing is an error.
func Decompress(data []byte, ct CompressionType) (*DecompressionResult, error) {
	if ct == CompressionNone {
		return &DecompressionResult{Data: data}, nil
	}
	c, ok := codecs[ct]
	if !ok {
		return nil, fmt.Errorf("unsupported compression type: %v", ct)
	}

	r, err := c.open(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s stream: %w", c.name, err)
	}
	if closer, ok := r.(io.Closer); ok {
		defer closer.Close()
	}

	var buf bytes.Buffer
	_, copyErr := io.Copy(&buf, r)
	switch {
	case copyErr == nil:
		return &DecompressionResult{Data: buf.Bytes()}, nil
	case buf.Len() > 0:
		return &DecompressionResult{
			Data:    buf.Bytes(),
			Warning: fmt.Sprintf("%s stream is truncated (%v); later rows are missing", c.name, copyErr),
		}, nil
	default:
		return nil, fmt.Errorf("%s decompression failed: %w", c.name, copyErr)
	}
}
