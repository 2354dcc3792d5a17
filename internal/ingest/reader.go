// Package ingest reads accounting files in their native formats and produces
// raw rows for normalization. Format-specific quirks stop here; everything
// downstream sees the same key-value rows.
package ingest

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/zencompta/zencompta-engine/internal/normalize"
)

// Format identifies a supported input file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
	FormatOFX  Format = "ofx"
)

// Reader parses one file format into raw rows.
type Reader interface {
	// Read extracts raw rows from the input.
	Read(ctx context.Context, r io.Reader) ([]normalize.RawRow, error)
}

// DetectFormat infers the file format from its extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	case ".ofx", ".qfx":
		return FormatOFX, nil
	default:
		return "", fmt.Errorf("unsupported file extension %q", filepath.Ext(path))
	}
}

// ForFormat returns the reader handling the given format.
func ForFormat(format Format) (Reader, error) {
	switch format {
	case FormatCSV:
		return NewCSVReader(), nil
	case FormatXLSX:
		return NewXLSXReader(), nil
	case FormatJSON:
		return NewJSONReader(), nil
	case FormatOFX:
		return NewOFXReader(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
