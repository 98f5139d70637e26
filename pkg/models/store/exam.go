package store

import "time"

// RawTable is the format-agnostic result of reading a tabular source:
// a header plus string-valued rows. Schema resolution and row
// validation happen in the dataset loader, not in the readers.
type RawTable struct {
	Source  string
	Columns []string
	Rows    [][]string
}

// ExamRow is the row model of the DuckDB exam table.
type ExamRow struct {
	Physician string
	Modality  string
	RVU       float64
	Points    float64
	ExamTime  time.Time
	ExamType  string
}
