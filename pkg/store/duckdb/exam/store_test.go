package exam

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milv-tools/rvu-atlas/pkg/models/store"
	"github.com/milv-tools/rvu-atlas/pkg/store/duckdb"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	examStore, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: examStore}
}

func sampleRows() []store.ExamRow {
	return []store.ExamRow{
		{
			Physician: "A",
			Modality:  "CT",
			RVU:       2.0,
			Points:    1.0,
			ExamTime:  time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			ExamType:  "CT Head",
		},
		{
			Physician: "B",
			Modality:  "MR",
			RVU:       3.0,
			Points:    1.5,
			ExamTime:  time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC),
			ExamType:  "MR Brain",
		},
	}
}

func TestExamStore_AddAndGet(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Add(ctx, sampleRows()))

	rows, err := f.store.GetExams(ctx)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Physician)
	assert.Equal(t, 2.0, rows[0].RVU)
	assert.Equal(t, "MR Brain", rows[1].ExamType)
	// Ordered by exam_time.
	assert.True(t, rows[0].ExamTime.Before(rows[1].ExamTime))
}

func TestExamStore_GetExams_ScanErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	examStore, err := NewStore(db)
	require.NoError(t, err)

	cols := []string{"physician", "modality", "rvu", "points", "exam_time", "exam_type"}
	mock.ExpectQuery(regexp.QuoteMeta(selectExams)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("A", "CT", 2.0, 1.0, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), nil))

	rows, err := examStore.GetExams(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].ExamType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestTableFromRows(t *testing.T) {
	table := TableFromRows("exams.duckdb", sampleRows())

	assert.Equal(t, "exams.duckdb", table.Source)
	assert.Equal(t, []string{"physician", "modality", "rvu", "points", "timestamp", "exam_type"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"A", "CT", "2", "1", "2024-01-01 09:00:00", "CT Head"}, table.Rows[0])
}
