// Package ingest turns raw file records into labelable samples.
package ingest

import (
	"fmt"

	"tslabel/app/fileloader"
	"tslabel/app/session"

	"github.com/google/uuid"
)

// MinSampleLength is the shortest numeric vector accepted as a sample.
const MinSampleLength = 2

// Report summarizes what happened to the rows of one file.
type Report struct {
	FileName    string `json:"fileName"`
	Rows        int    `json:"rows"`        // non-empty rows seen
	Samples     int    `json:"samples"`     // rows turned into samples
	HeaderRows  int    `json:"headerRows"`  // rows skipped as headers
	ShortRows   int    `json:"shortRows"`   // rows with fewer than MinSampleLength numbers
	Fingerprint string `json:"fingerprint"` // content hash, empty for record-only ingestion
	Warning     string `json:"warning,omitempty"`
}

// NewSampleID builds a sample id unique across files and repeated loads.
func NewSampleID(fileName string, rowIndex int) string {
	return fmt.Sprintf("%s-%d-%s", fileName, rowIndex, uuid.NewString())
}

// FromRecords converts the rows of one file into samples. Row problems are
// never errors: empty rows, header rows and short rows are skipped and counted.
// Empty rows do not consume a row index.
func FromRecords(fileName string, records [][]string) ([]*session.Sample, Report) {
	report := Report{FileName: fileName}
	samples := make([]*session.Sample, 0, len(records))

	rowIndex := 0
	for _, row := range records {
		if IsEmptyRow(row) {
			continue
		}
		idx := rowIndex
		rowIndex++
		report.Rows++

		if IsHeaderRow(row) {
			report.HeaderRows++
			continue
		}
		data := NumericVector(row)
		if len(data) < MinSampleLength {
			report.ShortRows++
			continue
		}

		original := make([]string, len(row))
		copy(original, row)
		samples = append(samples, &session.Sample{
			ID:             NewSampleID(fileName, idx),
			Data:           data,
			OriginalRow:    original,
			SourceFileName: fileName,
		})
	}
	report.Samples = len(samples)
	return samples, report
}

// FromCSV parses CSV content and converts it into samples.
func FromCSV(fileName string, data []byte) ([]*session.Sample, Report, error) {
	records, err := fileloader.ReadCSVRecords(data)
	if err != nil {
		return nil, Report{FileName: fileName}, err
	}
	samples, report := FromRecords(fileName, records)
	return samples, report, nil
}

// FromLoadedFile converts a file read by fileloader into samples.
func FromLoadedFile(lf *fileloader.LoadedFile) ([]*session.Sample, Report) {
	samples, report := FromRecords(lf.Name, lf.Records)
	report.Fingerprint = lf.Fingerprint
	report.Warning = lf.Warning
	return samples, report
}
