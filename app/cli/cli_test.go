package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tslabel/app/export"
	"tslabel/app/ingest"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.csv", "t,v\n0,1\n1\n")

	var reports []ingest.Report
	if err := json.Unmarshal([]byte(run(t, "inspect", dir)), &reports); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("reports = %+v", reports)
	}
	r := reports[0]
	if r.FileName != "a.csv" || r.Samples != 1 || r.HeaderRows != 1 || r.ShortRows != 1 {
		t.Errorf("report = %+v", r)
	}
}

func TestBuildThenExport(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "a.csv", "1,2\n3,4\n")
	project := filepath.Join(dir, "p.json")

	run(t, "build", src, "-o", project, "-t", "P", "-l", "x,y")

	b, err := os.ReadFile(project)
	if err != nil {
		t.Fatal(err)
	}
	s, err := export.DecodeProject(b)
	if err != nil {
		t.Fatalf("DecodeProject: %v", err)
	}
	if s.Title != "P" || s.Len() != 2 || strings.Join(s.Labels, ",") != "x,y" {
		t.Fatalf("project = %+v", s)
	}

	// Label the first sample and save it back
	s.SetLabel("y")
	b, err = export.EncodeProject(s)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(project, b, 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "out")
	out := run(t, "export", project, "-o", outDir)
	want := filepath.Join(outDir, "P_a_y.csv")
	if strings.TrimSpace(out) != want {
		t.Errorf("export output = %q, want %q", out, want)
	}
	got, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "1,2\n" {
		t.Errorf("csv = %q", got)
	}

	if stats := run(t, "stats", project); !strings.Contains(stats, `"labeled": 1`) {
		t.Errorf("stats = %s", stats)
	}
}

func TestExport_MissingProject(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"export", filepath.Join(t.TempDir(), "nope.json")})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing project")
	}
}
