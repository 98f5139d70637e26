package exam

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/milv-tools/rvu-atlas/pkg/models/store"
	"github.com/milv-tools/rvu-atlas/pkg/store/duckdb"
)

// TimeLayout is the canonical timestamp rendering used when exam rows
// are handed to the dataset loader.
const TimeLayout = "2006-01-02 15:04:05"

const selectExams = `
		SELECT physician, modality, rvu, points, exam_time, exam_type
		FROM exam_records
		ORDER BY exam_time`

// Store reads exam rows from a DuckDB exam_records table. Add exists
// for fixtures and one-off materialization; the loader itself only
// reads.
type Store interface {
	Add(ctx context.Context, rows []store.ExamRow) error
	GetExams(ctx context.Context) ([]store.ExamRow, error)
}

type examStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &examStore{db: db}, nil
}

func (s *examStore) Add(ctx context.Context, rows []store.ExamRow) error {
	if len(rows) == 0 {
		return nil
	}

	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO exam_records (
			physician, modality, rvu, points, exam_time, exam_type
		) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err = stmt.ExecContext(ctx,
			row.Physician,
			row.Modality,
			row.RVU,
			row.Points,
			row.ExamTime,
			row.ExamType,
		)
		if err != nil {
			return fmt.Errorf("insert exam row: %w", err)
		}
	}
	return nil
}

func (s *examStore) GetExams(ctx context.Context) ([]store.ExamRow, error) {
	rows, err := s.db.QueryContext(ctx, selectExams)
	if err != nil {
		return nil, fmt.Errorf("query exam records: %w", err)
	}
	defer rows.Close()

	var result []store.ExamRow
	for rows.Next() {
		var r store.ExamRow
		var examType sql.NullString
		if err := rows.Scan(&r.Physician, &r.Modality, &r.RVU, &r.Points, &r.ExamTime, &examType); err != nil {
			return nil, fmt.Errorf("scan exam row: %w", err)
		}
		r.ExamType = examType.String
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exam rows: %w", err)
	}
	return result, nil
}

// Reader adapts a DuckDB database file to the loader's raw-table
// contract. The file is opened read-only for the duration of the read.
type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

func (r *Reader) Read(ctx context.Context) (*store.RawTable, error) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: r.path, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer db.Close()

	examStore, err := NewStore(db)
	if err != nil {
		return nil, err
	}

	rows, err := examStore.GetExams(ctx)
	if err != nil {
		return nil, err
	}

	return TableFromRows(r.path, rows), nil
}

// TableFromRows renders typed exam rows into the loader's raw-table
// format so every source format goes through the same validation path.
func TableFromRows(source string, rows []store.ExamRow) *store.RawTable {
	table := &store.RawTable{
		Source:  source,
		Columns: []string{"physician", "modality", "rvu", "points", "timestamp", "exam_type"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.Physician,
			r.Modality,
			strconv.FormatFloat(r.RVU, 'f', -1, 64),
			strconv.FormatFloat(r.Points, 'f', -1, 64),
			r.ExamTime.Format(TimeLayout),
			r.ExamType,
		})
	}
	return table
}
