package fileloader

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ulikunitz/xz"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = "t,v\n0,1.5\n\n1,2.5\n"

var sampleRecords = [][]string{{"t", "v"}, {"0", "1.5"}, {"1", "2.5"}}

func TestReadCSVRecords(t *testing.T) {
	records, err := ReadCSVRecords([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSVRecords failed: %v", err)
	}
	if !reflect.DeepEqual(records, sampleRecords) {
		t.Errorf("Expected %v, got %v", sampleRecords, records)
	}
}

func TestReadCSVRecords_RaggedAndBOM(t *testing.T) {
	data := append([]byte{0xef, 0xbb, 0xbf}, []byte("a,b,c\n1,2\n3,\"4\",5,6\n")...)
	records, err := ReadCSVRecords(data)
	if err != nil {
		t.Fatalf("ReadCSVRecords failed: %v", err)
	}
	expected := [][]string{{"a", "b", "c"}, {"1", "2"}, {"3", "4", "5", "6"}}
	if !reflect.DeepEqual(records, expected) {
		t.Errorf("Expected %v, got %v", expected, records)
	}
}

func TestReadCSVRecords_Empty(t *testing.T) {
	records, err := ReadCSVRecords(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %v", records)
	}
}

func TestWriteCSVRecords(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSVRecords(&buf, [][]string{{"0", "a,b", ""}, {"1", "2", "x"}}); err != nil {
		t.Fatalf("WriteCSVRecords failed: %v", err)
	}
	expected := "0,\"a,b\",\n1,2,x\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestLoadBytes_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(sampleCSV)); err != nil {
		t.Fatalf("gzip write failed: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close failed: %v", err)
	}

	lf, err := LoadBytes("run.csv.gz", buf.Bytes())
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}
	if lf.Compression != CompressionGzip {
		t.Errorf("Expected gzip compression, got %v", lf.Compression)
	}
	if !reflect.DeepEqual(lf.Records, sampleRecords) {
		t.Errorf("Expected %v, got %v", sampleRecords, lf.Records)
	}
}

func TestLoadBytes_XZ(t *testing.T) {
	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz writer failed: %v", err)
	}
	if _, err := xw.Write([]byte(sampleCSV)); err != nil {
		t.Fatalf("xz write failed: %v", err)
	}
	if err := xw.Close(); err != nil {
		t.Fatalf("xz close failed: %v", err)
	}

	// Misnamed on purpose: magic bytes decide
	lf, err := LoadBytes("run.csv", buf.Bytes())
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}
	if lf.Compression != CompressionXZ {
		t.Errorf("Expected xz compression, got %v", lf.Compression)
	}
	if !reflect.DeepEqual(lf.Records, sampleRecords) {
		t.Errorf("Expected %v, got %v", sampleRecords, lf.Records)
	}
}

func TestLoadBytes_PlainTextWithMagicPrefix(t *testing.T) {
	lf, err := LoadBytes("x.csv", []byte("BZh,v\n0,1.5\n1,2.5\n"))
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}
	want := [][]string{{"BZh", "v"}, {"0", "1.5"}, {"1", "2.5"}}
	if !reflect.DeepEqual(lf.Records, want) {
		t.Errorf("Expected %v, got %v", want, lf.Records)
	}
	if lf.Compression != CompressionNone {
		t.Errorf("Expected no compression, got %v", lf.Compression)
	}
	if lf.Warning == "" {
		t.Errorf("Expected a warning for the magic prefix")
	}

	// A name that claims compression still fails
	if _, err := LoadBytes("x.csv.bz2", []byte("BZh,v\n0,1.5\n")); err == nil {
		t.Errorf("Expected an error for a broken .bz2 file")
	}
}

func TestLoadBytes_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range sampleRecords {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name failed: %v", err)
			}
			if err := f.SetCellStr(sheet, name, cell); err != nil {
				t.Fatalf("SetCellStr failed: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}

	lf, err := LoadBytes("run.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}
	if lf.Type != FileTypeXLSX {
		t.Errorf("Expected XLSX, got %v", lf.Type)
	}
	if !reflect.DeepEqual(lf.Records, sampleRecords) {
		t.Errorf("Expected %v, got %v", sampleRecords, lf.Records)
	}
}

func TestFingerprint(t *testing.T) {
	a1, err := Fingerprint([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	a2, _ := Fingerprint([]byte(sampleCSV))
	b, _ := Fingerprint([]byte(sampleCSV + "2,3.5\n"))
	if a1 != a2 {
		t.Errorf("Fingerprint not stable: %s vs %s", a1, a2)
	}
	if a1 == b {
		t.Errorf("Different content produced the same fingerprint %s", a1)
	}
	if len(a1) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(a1))
	}
}

func TestDiscoverFiles(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{"a.csv", "nested/b.csv", "nested/skip.csv", "notes.txt"}
	for _, name := range files {
		path := filepath.Join(tmpDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	info, err := DiscoverFiles(tmpDir, DirectoryDiscoveryOptions{ExcludePatterns: []string{"skip*"}})
	if err != nil {
		t.Fatalf("DiscoverFiles failed: %v", err)
	}
	expected := []string{filepath.Join(tmpDir, "a.csv"), filepath.Join(tmpDir, "nested", "b.csv")}
	if !reflect.DeepEqual(info.Files, expected) {
		t.Errorf("Expected %v, got %v", expected, info.Files)
	}
	if info.TotalFiles != 2 {
		t.Errorf("Expected 2 files, got %d", info.TotalFiles)
	}
	if want := int64(2 * len(sampleCSV)); info.TotalSize != want {
		t.Errorf("Expected %d bytes, got %d", want, info.TotalSize)
	}

	limited, err := DiscoverFiles(tmpDir, DirectoryDiscoveryOptions{MaxFiles: 1})
	if err != nil {
		t.Fatalf("DiscoverFiles failed: %v", err)
	}
	if limited.TotalFiles != 1 {
		t.Errorf("Expected MaxFiles to cap discovery at 1, got %d", limited.TotalFiles)
	}

	if _, err := DiscoverFiles(tmpDir, DirectoryDiscoveryOptions{Pattern: "[.csv"}); err == nil {
		t.Error("Expected invalid pattern to fail")
	}
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"sensor_a.csv":      "sensor_a",
		"runs/sensor_b.csv": "sensor_b",
		"archive.tar.csv":   "archive.tar",
		"noext":             "noext",
	}
	for in, want := range tests {
		if got := BaseName(in); got != want {
			t.Errorf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDetectFileTypeAndCompression(t *testing.T) {
	tests := []struct {
		name        string
		fileType    FileType
		compression CompressionType
		supported   bool
	}{
		{"a.csv", FileTypeCSV, CompressionNone, true},
		{"a.CSV.GZ", FileTypeCSV, CompressionGzip, true},
		{"book.xlsx", FileTypeXLSX, CompressionNone, true},
		{"book.xlsx.bz2", FileTypeXLSX, CompressionBzip2, true},
		{"log.txt.xz", FileTypeCSV, CompressionXZ, true},
		{"data.bin", FileTypeCSV, CompressionNone, false},
	}
	for _, tt := range tests {
		ft, ct := DetectFileTypeAndCompression(tt.name)
		if ft != tt.fileType || ct != tt.compression {
			t.Errorf("DetectFileTypeAndCompression(%q) = %v, %v; want %v, %v", tt.name, ft, ct, tt.fileType, tt.compression)
		}
		if got := IsSupportedFile(tt.name); got != tt.supported {
			t.Errorf("IsSupportedFile(%q) = %v, want %v", tt.name, got, tt.supported)
		}
	}
}

func TestDecompress_Truncated(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(bytes.Repeat([]byte("1,2\n"), 2000)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()[:buf.Len()-8]

	res, err := Decompress(data, CompressionGzip)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if res.Warning == "" || len(res.Data) == 0 {
		t.Errorf("expected partial data with a warning, got %d bytes, warning %q", len(res.Data), res.Warning)
	}
}
