package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/milv-tools/rvu-atlas/pkg/models/store"
)

// Reader reads the first sheet of an .xlsx workbook into a raw table.
// The practice's productivity export (`latest_rvu.xlsx`) keeps all
// exam rows on the first sheet with a single header row.
type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

func (r *Reader) Read(_ context.Context) (*store.RawTable, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s contains no sheets", r.path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	table := &store.RawTable{Source: r.path}
	if len(rows) == 0 {
		return table, nil
	}

	table.Columns = rows[0]
	table.Rows = rows[1:]
	return table, nil
}
