package weedtrack

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/selloa/weed-tracker/internal/service"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data to a portable JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(tr *service.Tracker) error {
			data, err := tr.Export()
			if err != nil {
				return err
			}
			out := exportOut
			if out == "" {
				out = service.ExportFilename(tr.Now())
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(tr.Entries), out)
			return nil
		})
	},
}

var (
	importFile string
	importYes  bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import data from an export file, replacing current state",
	RunE: func(cmd *cobra.Command, args []string) error {
		if importFile == "" {
			return fmt.Errorf("--file is required")
		}
		if ext := strings.ToLower(filepath.Ext(importFile)); ext != ".json" {
			return fmt.Errorf("import file must be .json, got %q", ext)
		}
		info, err := os.Stat(importFile)
		if err != nil {
			return fmt.Errorf("stat import file: %w", err)
		}
		if info.Size() > service.MaxImportBytes {
			return fmt.Errorf("import file exceeds %d MB limit", service.MaxImportBytes>>20)
		}
		raw, err := os.ReadFile(importFile)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}

		doc, preview, err := service.ParseImport(raw)
		if err != nil {
			return err
		}

		return withTracker(func(tr *service.Tracker) error {
			if !importYes {
				fmt.Fprintf(cmd.OutOrStdout(), "Import %d entries (exported %s), replacing current data? [y/N] ",
					preview.EntryCount, orUnknown(preview.ExportDate))
				reader := bufio.NewReader(cmd.InOrStdin())
				line, _ := reader.ReadString('\n')
				answer := strings.ToLower(strings.TrimSpace(line))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled")
					return nil
				}
			}
			if err := tr.CommitImport(doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries\n", preview.EntryCount)
			return nil
		})
	},
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "unknown date"
	}
	return value
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default weed-tracker-export-<date>.json)")
	importCmd.Flags().StringVar(&importFile, "file", "", "Export .json file to import")
	importCmd.Flags().BoolVar(&importYes, "yes", false, "Skip the confirmation prompt")
}
