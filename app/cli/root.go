// Package cli implements the headless tslabel commands: inspecting source
// files, building a project from them, and exporting a saved project.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tslabel/app/export"
	"tslabel/app/fileloader"
	"tslabel/app/ingest"
	"tslabel/app/session"
	"tslabel/app/settings"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. A fresh tree per call keeps flag state
// out of package globals.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tslabel-cli",
		Short:         "Headless tools for tslabel projects",
		Long:          "Inspect CSV/XLSX sources, build a project file from them, and export labelled CSVs without the desktop app.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("pattern", "p", "", "Pattern for files inside directory arguments (default from settings)")

	root.AddCommand(newInspectCmd(), newBuildCmd(), newExportCmd(), newStatsCmd())
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// loadArgs expands directory arguments with the folder pattern and loads every file.
func loadArgs(cmd *cobra.Command, args []string) ([]*fileloader.LoadedFile, error) {
	st := settings.GetEffectiveSettings()
	pattern, _ := cmd.Flags().GetString("pattern")
	if pattern == "" {
		pattern = st.FolderPattern
	}

	var files []*fileloader.LoadedFile
	for _, arg := range args {
		if !fileloader.IsDirectory(arg) {
			lf, err := fileloader.LoadFile(arg)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", arg, err)
			}
			files = append(files, lf)
			continue
		}

		info, err := fileloader.DiscoverFiles(arg, fileloader.DirectoryDiscoveryOptions{
			Pattern:         pattern,
			ExcludePatterns: st.FolderExclude,
			MaxFiles:        st.MaxFolderFiles,
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", arg, err)
		}
		for _, path := range info.Files {
			lf, err := fileloader.LoadFile(path)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
			if rel, err := filepath.Rel(info.RootPath, path); err == nil {
				lf.Name = filepath.ToSlash(rel)
			}
			files = append(files, lf)
		}
	}
	return files, nil
}

func readProject(path string) (*session.Session, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return export.DecodeProject(b)
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE|DIR...",
		Short: "Report how each source file ingests",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := loadArgs(cmd, args)
			if err != nil {
				return err
			}
			reports := make([]ingest.Report, 0, len(files))
			for _, lf := range files {
				_, report := ingest.FromLoadedFile(lf)
				reports = append(reports, report)
			}
			return writeJSON(cmd.OutOrStdout(), reports)
		},
	}
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build FILE|DIR...",
		Short: "Build an unlabelled project file from source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			title, _ := cmd.Flags().GetString("title")
			labels, _ := cmd.Flags().GetStringSlice("labels")

			files, err := loadArgs(cmd, args)
			if err != nil {
				return err
			}

			st := settings.GetEffectiveSettings()
			s := session.New()
			s.SetTitle(st.ProjectTitle)
			s.Labels = append([]string(nil), st.Labels...)
			s.SetTimeScale(st.TimeScale)
			if title != "" {
				s.SetTitle(title)
			}
			if len(labels) > 0 {
				s.SetLabelSet(strings.Join(labels, "\n"))
			}
			for _, lf := range files {
				samples, _ := ingest.FromLoadedFile(lf)
				s.AppendSamples(samples)
			}

			if out == "" {
				out = export.ProjectFileName(s.Title)
			}
			b, err := export.EncodeProject(s)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d samples from %d files to %s\n", s.Len(), len(files), out)
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "", "Project file to write (default <title>_工程.json)")
	cmd.Flags().StringP("title", "t", "", "Project title (default from settings)")
	cmd.Flags().StringSliceP("labels", "l", nil, "Comma-separated label set (default from settings)")
	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Write one CSV per source file and label from a project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			s, err := readProject(args[0])
			if err != nil {
				return err
			}
			written, err := export.WriteLabelledCSVs(dir, export.PlanLabelledCSVs(s.Title, s.Samples, s.Labels))
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().StringP("dir", "o", ".", "Directory to write the CSV files into")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats PROJECT",
		Short: "Show labeling progress of a project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readProject(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), struct {
				Title    string              `json:"title"`
				Labels   []string            `json:"labels"`
				Progress session.Progress    `json:"progress"`
				Files    []session.FileGroup `json:"files"`
			}{s.Title, s.Labels, s.Progress(), s.FileGroups()})
		},
	}
}
