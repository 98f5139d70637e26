package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/milv-tools/rvu-atlas/pkg/models/store"
)

// Reader reads a delimited exam file into a raw table. The first row
// is treated as the header.
type Reader struct {
	path  string
	comma rune
}

type Option func(*Reader)

// WithComma overrides the field delimiter (default ',').
func WithComma(c rune) Option {
	return func(r *Reader) { r.comma = c }
}

func NewReader(path string, opts ...Option) *Reader {
	r := &Reader{path: path, comma: ','}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) Read(_ context.Context) (*store.RawTable, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = r.comma
	cr.TrimLeadingSpace = true
	// Sources exported from spreadsheets occasionally carry ragged rows.
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	table := &store.RawTable{Source: r.path}
	if len(rows) == 0 {
		return table, nil
	}

	table.Columns = rows[0]
	table.Rows = rows[1:]
	return table, nil
}
