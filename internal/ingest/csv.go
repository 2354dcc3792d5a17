package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/zencompta/zencompta-engine/internal/normalize"
)

// CSVReader parses delimiter-separated files. The delimiter is sniffed from
// the header line: French exports commonly use semicolons, FEC files tabs.
type CSVReader struct{}

// NewCSVReader creates a CSV reader.
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Read implements Reader.
func (cr *CSVReader) Read(ctx context.Context, r io.Reader) ([]normalize.RawRow, error) {
	buffered := bufio.NewReader(r)
	header, err := buffered.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	reader := csv.NewReader(buffered)
	reader.Comma = sniffDelimiter(header)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV has no data rows")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	columns := records[0]
	rows := make([]normalize.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
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

// sniffDelimiter picks the separator appearing most often in the first line.
func sniffDelimiter(header []byte) rune {
	if i := bytes.IndexByte(header, '\n'); i >= 0 {
		header = header[:i]
	}
	best := ','
	bestCount := bytes.Count(header, []byte{','})
	for _, candidate := range []byte{';', '\t', '|'} {
		if count := bytes.Count(header, []byte{candidate}); count > bestCount {
			best = rune(candidate)
			bestCount = count
		}
	}
	return best
}
