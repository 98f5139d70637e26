package dataset

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/milv-tools/rvu-atlas/pkg/models/domain"
	"github.com/milv-tools/rvu-atlas/pkg/models/store"
)

// Reader is any tabular exam source: CSV, Excel, or a DuckDB file.
type Reader interface {
	Read(ctx context.Context) (*store.RawTable, error)
}

// Canonical column names of the exam schema. Header matching is
// case-insensitive and tolerates the practice's historical export
// headings.
const (
	colPhysician = "physician"
	colModality  = "modality"
	colRVU       = "rvu"
	colPoints    = "points"
	colTimestamp = "timestamp"
	colExamType  = "exam_type"
)

var requiredColumns = []string{
	colPhysician, colModality, colRVU, colPoints, colTimestamp, colExamType,
}

var columnAliases = map[string]string{
	"physician":           colPhysician,
	"finalizing provider": colPhysician,
	"author":              colPhysician,
	"modality":            colModality,
	"rvu":                 colRVU,
	"total_rvu":           colRVU,
	"total rvu":           colRVU,
	"points":              colPoints,
	"total_points":        colPoints,
	"total points":        colPoints,
	"timestamp":           colTimestamp,
	"date":                colTimestamp,
	"exam date":           colTimestamp,
	"exam_type":           colExamType,
	"exam type":           colExamType,
	"procedure":           colExamType,
}

// All timestamps are parsed in the loader's single configured
// location; the convention is never inferred per record.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04",
	"2006-01-02",
}

type Loader struct {
	loc     *time.Location
	maxRate float64
}

type Option func(*Loader)

// WithLocation sets the location source timestamps are interpreted in
// (default UTC).
func WithLocation(loc *time.Location) Option {
	return func(l *Loader) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// WithMaxExclusionRate aborts the load with an EmptyDatasetError when
// excluded/total exceeds the rate. An explicit 0 fails the load on any
// excluded row; the default of 1.0 only fails a load that excluded
// every row. Negative rates are ignored.
func WithMaxExclusionRate(rate float64) Option {
	return func(l *Loader) {
		if rate >= 0 {
			l.maxRate = rate
		}
	}
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{loc: time.UTC, maxRate: 1.0}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the source and produces a normalized dataset. Rows that
// fail validation are dropped and tallied; missing columns or an
// unusable source abort the load. The source is never mutated.
func (l *Loader) Load(ctx context.Context, reader Reader) (*domain.NormalizedDataset, error) {
	logger := zerolog.Ctx(ctx)

	table, err := reader.Read(ctx)
	if err != nil {
		return nil, err
	}

	index, missing := resolveSchema(table.Columns)
	if len(missing) > 0 {
		return nil, &domain.SchemaError{Source: table.Source, Missing: missing}
	}

	if len(table.Rows) == 0 {
		return nil, &domain.EmptyDatasetError{Source: table.Source}
	}

	ds := &domain.NormalizedDataset{
		Source:           table.Source,
		LoadedAt:         time.Now(),
		Records:          make([]domain.ExamRecord, 0, len(table.Rows)),
		ExclusionReasons: make(map[string]int),
	}

	for i, row := range table.Rows {
		record, vErr := l.parseRow(row, index)
		if vErr != nil {
			vErr.Row = i + 1
			ds.Excluded++
			ds.ExclusionReasons[vErr.Reason]++
			logger.Debug().Str("source", table.Source).Err(vErr).Msg("row excluded")
			continue
		}

		if ds.Len() == 0 {
			ds.Period = domain.DatasetPeriod{Start: record.Timestamp, End: record.Timestamp}
		} else {
			if record.Timestamp.Before(ds.Period.Start) {
				ds.Period.Start = record.Timestamp
			}
			if record.Timestamp.After(ds.Period.End) {
				ds.Period.End = record.Timestamp
			}
		}
		ds.Records = append(ds.Records, record)
	}

	total := len(table.Rows)
	rate := float64(ds.Excluded) / float64(total)
	if ds.Len() == 0 || rate > l.maxRate {
		return nil, &domain.EmptyDatasetError{
			Source:   table.Source,
			Total:    total,
			Excluded: ds.Excluded,
		}
	}

	logger.Info().
		Str("source", table.Source).
		Int("records", ds.Len()).
		Int("excluded", ds.Excluded).
		Msg("dataset loaded")

	return ds, nil
}

func (l *Loader) parseRow(row []string, index map[string]int) (domain.ExamRecord, *domain.ValidationError) {
	var record domain.ExamRecord

	record.Physician = strings.TrimSpace(field(row, index[colPhysician]))
	if record.Physician == "" {
		return record, &domain.ValidationError{Reason: "missing physician"}
	}

	record.Modality = strings.TrimSpace(field(row, index[colModality]))
	if record.Modality == "" {
		return record, &domain.ValidationError{Reason: "missing modality"}
	}

	ts, ok := l.parseTimestamp(field(row, index[colTimestamp]))
	if !ok {
		return record, &domain.ValidationError{Reason: "invalid timestamp"}
	}
	record.Timestamp = ts

	rvu, vErr := parseMetric(field(row, index[colRVU]), colRVU)
	if vErr != nil {
		return record, vErr
	}
	record.RVU = rvu

	points, vErr := parseMetric(field(row, index[colPoints]), colPoints)
	if vErr != nil {
		return record, vErr
	}
	record.Points = points

	record.ExamType = strings.TrimSpace(field(row, index[colExamType]))
	return record, nil
}

func (l *Loader) parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, l.loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseMetric accepts blank values as zero, matching the zero-fill
// behavior of the practice's spreadsheet exports. Zero is a valid
// workload value; negative and non-finite values are not. ParseFloat
// accepts "NaN" and "Inf" spellings, which would otherwise poison
// every downstream sum.
func parseMetric(raw, name string) (float64, *domain.ValidationError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &domain.ValidationError{Reason: "invalid " + name}
	}
	if v < 0 {
		return 0, &domain.ValidationError{Reason: "negative " + name}
	}
	return v, nil
}

func resolveSchema(columns []string) (map[string]int, []string) {
	index := make(map[string]int, len(requiredColumns))
	for i, col := range columns {
		canonical, ok := columnAliases[strings.ToLower(strings.TrimSpace(col))]
		if !ok {
			continue
		}
		if _, seen := index[canonical]; !seen {
			index[canonical] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return index, missing
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
