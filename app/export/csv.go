// Package export writes labeling results: per-label CSV subsets of the source
// rows and the JSON project snapshot.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tslabel/app/fileloader"
	"tslabel/app/session"
)

// CSVFile is one (source file, label) subset ready to be written.
type CSVFile struct {
	Name       string     `json:"name"`
	SourceFile string     `json:"sourceFile"`
	Label      string     `json:"label"`
	Rows       [][]string `json:"rows"`
}

// nameReplacer maps characters that are not allowed in file names to '_'.
var nameReplacer = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_",
)

// CSVFileName names the export of one (source file, label) pair:
// <title>_<source base name>_<label>.csv
func CSVFileName(title, sourceFile, label string) string {
	name := fmt.Sprintf("%s_%s_%s", title, fileloader.BaseName(sourceFile), label)
	return nameReplacer.Replace(name) + ".csv"
}

// PlanLabelledCSVs partitions samples by source file, then by label.
// Files keep their first-seen order and labels follow the label set order;
// labels outside the label set are not exported. Pairs without samples
// produce no file. Rows keep session order. Colliding names get a numeric suffix.
func PlanLabelledCSVs(title string, samples []*session.Sample, labels []string) []CSVFile {
	var order []string
	byFile := make(map[string][]*session.Sample)
	for _, s := range samples {
		if _, ok := byFile[s.SourceFileName]; !ok {
			order = append(order, s.SourceFileName)
		}
		byFile[s.SourceFileName] = append(byFile[s.SourceFileName], s)
	}

	var files []CSVFile
	used := make(map[string]int)
	for _, source := range order {
		for _, label := range labels {
			var rows [][]string
			for _, s := range byFile[source] {
				if s.IsLabeled() && *s.Label == label {
					rows = append(rows, s.OriginalRow)
				}
			}
			if len(rows) == 0 {
				continue
			}
			files = append(files, CSVFile{
				Name:       uniqueName(used, CSVFileName(title, source, label)),
				SourceFile: source,
				Label:      label,
				Rows:       rows,
			})
		}
	}
	return files
}

// uniqueName suffixes a name that is already taken, e.g. when two folders
// both hold a data.csv: "P_data_x.csv", then "P_data_x_2.csv".
func uniqueName(used map[string]int, name string) string {
	used[name]++
	if used[name] == 1 {
		return name
	}
	stem := strings.TrimSuffix(name, ".csv")
	for n := used[name]; ; n++ {
		candidate := fmt.Sprintf("%s_%d.csv", stem, n)
		if used[candidate] == 0 {
			used[candidate]++
			return candidate
		}
	}
}

// Bytes renders the subset as CSV without a header line.
func (f CSVFile) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := fileloader.WriteCSVRecords(&buf, f.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteLabelledCSVs writes every planned file into dir and returns the written paths.
// Existing files with the same name are overwritten.
func WriteLabelledCSVs(dir string, files []CSVFile) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	written := make([]string, 0, len(files))
	for _, f := range files {
		b, err := f.Bytes()
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, b, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
		written = append(written, path)
	}
	return written, nil
}
