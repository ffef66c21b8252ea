package ingest

import (
	"bytes"
	"compress/gzip"
	"reflect"
	"strings"
	"testing"

	"tslabel/app/fileloader"
)

func TestFromRecords_HeaderRow(t *testing.T) {
	records := [][]string{{"t", "v"}, {"0", "1.5"}, {"1", "2.5"}}
	samples, report := FromRecords("a.csv", records)

	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if !reflect.DeepEqual(samples[0].Data, []float64{0, 1.5}) {
		t.Errorf("sample 0 data = %v", samples[0].Data)
	}
	if !reflect.DeepEqual(samples[1].Data, []float64{1, 2.5}) {
		t.Errorf("sample 1 data = %v", samples[1].Data)
	}
	want := Report{FileName: "a.csv", Rows: 3, Samples: 2, HeaderRows: 1}
	if report != want {
		t.Errorf("report = %+v, want %+v", report, want)
	}
}

func TestFromRecords_SkipsRows(t *testing.T) {
	records := [][]string{
		{"", " "},
		{"1", "2", "3"},
		{"5"},
		{"1", "", "2"},
		{"true", "1", "2"},
		{"NaN", "1", "2"},
		{"1e3", "abc"},
	}
	samples, report := FromRecords("f.csv", records)

	var got [][]float64
	for _, s := range samples {
		got = append(got, s.Data)
	}
	want := [][]float64{{1, 2, 3}, {1, 2}, {1, 1, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("data = %v, want %v", got, want)
	}
	if report.Rows != 6 || report.HeaderRows != 2 || report.ShortRows != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestCoerceCell(t *testing.T) {
	tests := []struct {
		cell   string
		want   float64
		wantOK bool
	}{
		{"1.5", 1.5, true},
		{" -2 ", -2, true},
		{"+3", 3, true},
		{"1e3", 1000, true},
		{".5", 0.5, true},
		{"true", 1, true},
		{"TRUE", 1, true},
		{"false", 0, true},
		{"FALSE", 0, true},
		{"True", 0, false},
		{"0x10", 16, true},
		{"0X1f", 31, true},
		{"0o17", 15, true},
		{"0b101", 5, true},
		{"010", 10, true},
		{"0x", 0, false},
		{"0xg", 0, false},
		{"0x1p-2", 0, false},
		{"-0x10", 0, false},
		{"-0x1p-2", 0, false},
		{"NaN", 0, false},
		{"Infinity", 0, false},
		{"-inf", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := CoerceCell(tt.cell)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("CoerceCell(%q) = %v, %v; want %v, %v", tt.cell, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFromRecords_KeepsOriginalRow(t *testing.T) {
	records := [][]string{{" 1", "", "2.50"}}
	samples, _ := FromRecords("f.csv", records)
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	if !reflect.DeepEqual(samples[0].OriginalRow, []string{" 1", "", "2.50"}) {
		t.Errorf("originalRow = %q", samples[0].OriginalRow)
	}
	if samples[0].SourceFileName != "f.csv" || samples[0].IsLabeled() {
		t.Errorf("unexpected sample %+v", samples[0])
	}

	records[0][0] = "changed"
	if samples[0].OriginalRow[0] != " 1" {
		t.Error("originalRow shares storage with the input records")
	}
}

func TestFromRecords_UniqueIDs(t *testing.T) {
	records := [][]string{{"1", "2"}, {"3", "4"}}
	first, _ := FromRecords("f.csv", records)
	second, _ := FromRecords("f.csv", records)

	seen := make(map[string]bool)
	for _, s := range append(first, second...) {
		if seen[s.ID] {
			t.Fatalf("duplicate id %q", s.ID)
		}
		seen[s.ID] = true
	}
	if !strings.HasPrefix(first[1].ID, "f.csv-1-") {
		t.Errorf("id = %q, want file and row prefix", first[1].ID)
	}
}

func TestFromRecords_EmptyRowsKeepRowIndex(t *testing.T) {
	records := [][]string{{"1", "2"}, {""}, {"3", "4"}}
	samples, _ := FromRecords("f.csv", records)
	if !strings.HasPrefix(samples[1].ID, "f.csv-1-") {
		t.Errorf("id = %q, empty rows must not consume a row index", samples[1].ID)
	}
}

func TestFromCSV(t *testing.T) {
	data := []byte("time,value\n0,1\n\n1,2\n")
	samples, report, err := FromCSV("x.csv", data)
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}
	if len(samples) != 2 || report.HeaderRows != 1 {
		t.Errorf("samples = %d, report = %+v", len(samples), report)
	}
}

func TestFromCSV_Empty(t *testing.T) {
	samples, report, err := FromCSV("x.csv", nil)
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}
	if len(samples) != 0 || report.Rows != 0 {
		t.Errorf("samples = %d, report = %+v", len(samples), report)
	}
}

func TestFromLoadedFile_CompressedMatchesPlain(t *testing.T) {
	plain := []byte("t,v\n0,1.5\n1,2.5\n")
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(plain); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	lf, err := fileloader.LoadBytes("a.csv.gz", buf.Bytes())
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	fromGzip, report := FromLoadedFile(lf)
	fromPlain, _, err := FromCSV("a.csv.gz", plain)
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}

	if len(fromGzip) != len(fromPlain) {
		t.Fatalf("got %d samples, want %d", len(fromGzip), len(fromPlain))
	}
	for i := range fromGzip {
		if !reflect.DeepEqual(fromGzip[i].Data, fromPlain[i].Data) || !reflect.DeepEqual(fromGzip[i].OriginalRow, fromPlain[i].OriginalRow) {
			t.Errorf("sample %d differs: %+v vs %+v", i, fromGzip[i], fromPlain[i])
		}
	}
	if report.Fingerprint == "" {
		t.Error("report is missing the file fingerprint")
	}
}
