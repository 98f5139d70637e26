package excel

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		for j, cell := range row {
			col, err := excelize.ColumnNumberToName(j + 1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", fmt.Sprintf("%s%d", col, i+1), cell))
		}
	}

	path := filepath.Join(t.TempDir(), "latest_rvu.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReader_Read(t *testing.T) {
	ctx := context.Background()

	t.Run("reads the first sheet", func(t *testing.T) {
		path := writeWorkbook(t, [][]any{
			{"physician", "modality", "rvu", "points", "timestamp", "exam_type"},
			{"A", "CT", "2.0", "1.0", "2024-01-01 09:00:00", "CT Head"},
			{"B", "MR", "3.0", "1.5", "2024-01-01 14:00:00", "MR Brain"},
		})

		table, err := NewReader(path).Read(ctx)
		require.NoError(t, err)

		assert.Equal(t, []string{"physician", "modality", "rvu", "points", "timestamp", "exam_type"}, table.Columns)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, "A", table.Rows[0][0])
		assert.Equal(t, "MR Brain", table.Rows[1][5])
	})

	t.Run("workbook with only a header yields no rows", func(t *testing.T) {
		path := writeWorkbook(t, [][]any{
			{"physician", "modality", "rvu", "points", "timestamp", "exam_type"},
		})

		table, err := NewReader(path).Read(ctx)
		require.NoError(t, err)
		assert.Len(t, table.Columns, 6)
		assert.Empty(t, table.Rows)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := NewReader("/does/not/exist.xlsx").Read(ctx)
		assert.Error(t, err)
	})
}
