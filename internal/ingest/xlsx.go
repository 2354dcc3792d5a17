package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zencompta/zencompta-engine/internal/normalize"
)

// XLSXReader parses Excel workbooks. Only the first sheet is read; accounting
// exports put their data there and later sheets hold summaries or charts.
type XLSXReader struct{}

// NewXLSXReader creates an XLSX reader.
func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

// Read implements Reader.
func (xr *XLSXReader) Read(ctx context.Context, r io.Reader) ([]normalize.RawRow, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = workbook.Close() }()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheets[0])
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	columns := records[0]
	rows := make([]normalize.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if isEmptyRecord(record) {
			continue
		}
		row := make(normalize.RawRow, len(columns))
		for i, column := range columns {
			if i >= len(record) {
				break
			}
			row[strings.TrimSpace(column)] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
