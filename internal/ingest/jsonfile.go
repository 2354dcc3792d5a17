package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/zencompta/zencompta-engine/internal/normalize"
)

// JSONReader parses JSON exports: either a top-level array of objects or an
// object with an "entries" array. Scalar values are stringified so the
// normalizer sees the same row shape as with tabular formats.
type JSONReader struct{}

// NewJSONReader creates a JSON reader.
func NewJSONReader() *JSONReader {
	return &JSONReader{}
}

// Read implements Reader.
func (jr *JSONReader) Read(ctx context.Context, r io.Reader) ([]normalize.RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		var wrapper struct {
			Entries []map[string]any `json:"entries"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil || wrapper.Entries == nil {
			return nil, fmt.Errorf("JSON must be an array of objects or an object with an entries array")
		}
		objects = wrapper.Entries
	}

	rows := make([]normalize.RawRow, 0, len(objects))
	for _, object := range objects {
		row := make(normalize.RawRow, len(object))
		for key, value := range object {
			row[key] = stringifyValue(value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
