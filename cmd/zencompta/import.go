package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/zencompta/zencompta-engine/internal/ingest"
	"github.com/zencompta/zencompta-engine/internal/model"
	"github.com/zencompta/zencompta-engine/internal/normalize"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import accounting documents",
		Long: `Import accounting documents from CSV, XLSX, JSON or OFX files.
Each file becomes one immutable document; re-importing a file creates a new
document rather than replacing the old one.

Examples:
  # Import a trial balance
  zencompta import --project audit-2025 --year 2025 --type balance balance.csv

  # Import all journals of a directory
  zencompta import --project audit-2025 --year 2025 --type journal journals/*.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("project", "", "audit project identifier")
	cmd.Flags().Int("year", 0, "fiscal year")
	cmd.Flags().String("type", "journal", "document type (balance, journal, ledger)")
	cmd.Flags().String("currency", "XOF", "default currency for rows without one")
	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("year")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	projectID, _ := cmd.Flags().GetString("project")
	fiscalYear, _ := cmd.Flags().GetInt("year")
	rawType, _ := cmd.Flags().GetString("type")
	currency, _ := cmd.Flags().GetString("currency")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	docType, err := model.ParseDocumentType(rawType)
	if err != nil {
		return err
	}

	files, err := expandPatterns(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	opts := normalize.DefaultOptions()
	opts.DefaultCurrency = currency

	storage, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = storage.Close() }()

	if !dryRun {
		if err := storage.Migrate(cmd.Context()); err != nil {
			return err
		}
	}

	bar := progressbar.Default(int64(len(files)), "importing")
	var imported, excluded int
	for _, path := range files {
		rows, err := readFile(cmd, path)
		if err != nil {
			slog.Error("Failed to read file", "file", path, "error", err)
			_ = bar.Add(1)
			continue
		}

		doc, warnings, err := normalize.Normalize(rows, filepath.Base(path), docType, opts)
		if err != nil {
			slog.Error("Failed to normalize file", "file", path, "error", err)
			_ = bar.Add(1)
			continue
		}
		doc.ProjectID = projectID
		doc.FiscalYear = fiscalYear

		for _, warning := range warnings {
			slog.Warn("Excluded row",
				"file", filepath.Base(path),
				"row", warning.Row,
				"field", warning.Field,
				"reason", warning.Reason)
		}
		excluded += len(warnings)

		if len(doc.Entries) == 0 {
			slog.Warn("No usable entries in file", "file", filepath.Base(path))
			_ = bar.Add(1)
			continue
		}

		if !dryRun {
			if err := storage.SaveDocument(cmd.Context(), doc); err != nil {
				return fmt.Errorf("failed to save %s: %w", filepath.Base(path), err)
			}
		}

		imported += len(doc.Entries)
		slog.Info("Imported document",
			"file", filepath.Base(path),
			"document_id", doc.ID,
			"entries", len(doc.Entries),
			"excluded_rows", len(warnings))
		_ = bar.Add(1)
	}

	slog.Info("Import complete",
		"files", len(files),
		"entries", imported,
		"excluded_rows", excluded,
		"dry_run", dryRun)
	return nil
}

func readFile(cmd *cobra.Command, path string) ([]normalize.RawRow, error) {
	format, err := ingest.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	reader, err := ingest.ForFormat(format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return reader.Read(cmd.Context(), f)
}

func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}
